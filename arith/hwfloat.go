package arith

import (
	"math"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Hardware float/double leaves: plain IEEE-754 arithmetic, the non-
// canonicalized approximate end of the lattice.

func hwfloat64Add(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat64(h, object.HWFloat64Value(x)+object.HWFloat64Value(y))
}
func hwfloat64Sub(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat64(h, object.HWFloat64Value(x)-object.HWFloat64Value(y))
}
func hwfloat64Mul(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat64(h, object.HWFloat64Value(x)*object.HWFloat64Value(y))
}
func hwfloat64Div(h *heap.Heap, x, y object.Object) (object.Object, error) {
	a, b := object.HWFloat64Value(x), object.HWFloat64Value(y)
	if b == 0 {
		return object.NewInfinity(h, a < 0)
	}
	return object.NewHWFloat64(h, a/b)
}
func hwfloat64Mod(h *heap.Heap, x, y object.Object) (object.Object, error) {
	a, b := object.HWFloat64Value(x), object.HWFloat64Value(y)
	if b == 0 {
		return object.Object{}, rplerr.New(rplerr.DivideByZero, "MOD", "modulus is zero")
	}
	r := math.Mod(a, b) // Euclidean: 0 <= r < |b|
	if r < 0 {
		r += math.Abs(b)
	}
	return object.NewHWFloat64(h, r)
}
func hwfloat64Rem(h *heap.Heap, x, y object.Object) (object.Object, error) {
	a, b := object.HWFloat64Value(x), object.HWFloat64Value(y)
	if b == 0 {
		return object.Object{}, rplerr.New(rplerr.DivideByZero, "REM", "modulus is zero")
	}
	return object.NewHWFloat64(h, math.Mod(a, b))
}
func hwfloat64Pow(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat64(h, math.Pow(object.HWFloat64Value(x), object.HWFloat64Value(y)))
}
func hwfloat64Hypot(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat64(h, math.Hypot(object.HWFloat64Value(x), object.HWFloat64Value(y)))
}
func hwfloat64Atan2(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat64(h, math.Atan2(object.HWFloat64Value(x), object.HWFloat64Value(y)))
}

func hwfloat32Add(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat32(h, object.HWFloat32Value(x)+object.HWFloat32Value(y))
}
func hwfloat32Sub(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat32(h, object.HWFloat32Value(x)-object.HWFloat32Value(y))
}
func hwfloat32Mul(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat32(h, object.HWFloat32Value(x)*object.HWFloat32Value(y))
}
func hwfloat32Div(h *heap.Heap, x, y object.Object) (object.Object, error) {
	a, b := object.HWFloat32Value(x), object.HWFloat32Value(y)
	if b == 0 {
		return object.NewInfinity(h, a < 0)
	}
	return object.NewHWFloat32(h, a/b)
}
func hwfloat32Mod(h *heap.Heap, x, y object.Object) (object.Object, error) {
	a, b := float64(object.HWFloat32Value(x)), float64(object.HWFloat32Value(y))
	if b == 0 {
		return object.Object{}, rplerr.New(rplerr.DivideByZero, "MOD", "modulus is zero")
	}
	r := math.Mod(a, b) // Euclidean: 0 <= r < |b|
	if r < 0 {
		r += math.Abs(b)
	}
	return object.NewHWFloat32(h, float32(r))
}
func hwfloat32Rem(h *heap.Heap, x, y object.Object) (object.Object, error) {
	a, b := float64(object.HWFloat32Value(x)), float64(object.HWFloat32Value(y))
	if b == 0 {
		return object.Object{}, rplerr.New(rplerr.DivideByZero, "REM", "modulus is zero")
	}
	return object.NewHWFloat32(h, float32(math.Mod(a, b)))
}
func hwfloat32Pow(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat32(h, float32(math.Pow(float64(object.HWFloat32Value(x)), float64(object.HWFloat32Value(y)))))
}
func hwfloat32Hypot(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat32(h, float32(math.Hypot(float64(object.HWFloat32Value(x)), float64(object.HWFloat32Value(y)))))
}
func hwfloat32Atan2(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return object.NewHWFloat32(h, float32(math.Atan2(float64(object.HWFloat32Value(x)), float64(object.HWFloat32Value(y)))))
}
