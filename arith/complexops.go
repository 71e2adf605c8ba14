package arith

import (
	"math"
	"math/big"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// Complex fast path: both operands are widened to a float64 (re, im) pair
// regardless of source representation (rectangular, polar, or a bare real
// promoted with im=0), operated on in rectangular form, and rebuilt as a
// rectangular complex decimal ( promotion lattice branch
// "complex(rectangular|polar)").

func toComplexFloat(o object.Object) (re, im float64) {
	if !o.IsComplex() {
		return numericToFloat(o), 0
	}
	first, second, err := object.ComplexParts(o)
	if err != nil {
		return 0, 0
	}
	if o.Tag() == object.TagComplexPolar {
		modulus := numericToFloat(first)
		angle := numericToFloat(second) * math.Pi
		return modulus * math.Cos(angle), modulus * math.Sin(angle)
	}
	return numericToFloat(first), numericToFloat(second)
}

func numericToFloat(o object.Object) float64 {
	switch o.Tag() {
	case object.TagDecimal:
		return decimalToFloat(o)
	case object.TagHWFloat32:
		return float64(object.HWFloat32Value(o))
	case object.TagHWFloat64:
		return object.HWFloat64Value(o)
	case object.TagFraction:
		f, _ := toBigRat(o).Float64()
		return f
	default:
		f, _ := new(big.Float).SetInt(toBigInt(o)).Float64()
		return f
	}
}

func buildComplex(h *heap.Heap, re, im float64) (object.Object, bool, error) {
	reObj, err := floatToDecimal(h, re)
	if err != nil {
		return object.Object{}, false, err
	}
	imObj, err := floatToDecimal(h, im)
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewComplexRect(h, reObj, imObj)
	return o, true, err
}

func complexAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ax, ay := toComplexFloat(x)
	bx, by := toComplexFloat(y)
	return buildComplex(h, ax+bx, ay+by)
}

func complexSub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ax, ay := toComplexFloat(x)
	bx, by := toComplexFloat(y)
	return buildComplex(h, ax-bx, ay-by)
}

func complexMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ax, ay := toComplexFloat(x)
	bx, by := toComplexFloat(y)
	return buildComplex(h, ax*bx-ay*by, ax*by+ay*bx)
}

func complexDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ax, ay := toComplexFloat(x)
	bx, by := toComplexFloat(y)
	denom := bx*bx + by*by
	if denom == 0 {
		o, err := object.NewInfinity(h, false)
		return o, true, err
	}
	return buildComplex(h, (ax*bx+ay*by)/denom, (ay*bx-ax*by)/denom)
}

// complexPow handles a non-integer or negative exponent via the polar form:
// r^n·(cos nθ, sin nθ) ( "defer to exp(y·ln x) on the complex path").
func complexPow(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	re, im := toComplexFloat(x)
	n, _ := toComplexFloat(y)
	r := math.Hypot(re, im)
	theta := math.Atan2(im, re)
	if r == 0 {
		return buildComplex(h, 0, 0)
	}
	rn := math.Pow(r, n)
	return buildComplex(h, rn*math.Cos(n*theta), rn*math.Sin(n*theta))
}
