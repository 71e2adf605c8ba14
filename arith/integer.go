package arith

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// Integer and based-integer fast paths. Based integers never promote: they
// wrap within their word-size mask instead.

func bothBased(x, y object.Object) bool { return x.IsBased() && y.IsBased() }

func integerAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if bothBased(x, y) {
		o, err := basedOp(h, x, y, func(a, b uint64) uint64 { return a + b })
		return o, true, err
	}
	if !x.IsInteger() || !y.IsInteger() || x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	a, b := object.IntegerValue(x), object.IntegerValue(y)
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return object.Object{}, false, nil
	}
	o, err := object.NewInteger(h, r)
	return o, true, err
}

func integerSub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if bothBased(x, y) {
		o, err := basedOp(h, x, y, func(a, b uint64) uint64 { return a - b })
		return o, true, err
	}
	if !x.IsInteger() || !y.IsInteger() || x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	a, b := object.IntegerValue(x), object.IntegerValue(y)
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return object.Object{}, false, nil
	}
	o, err := object.NewInteger(h, r)
	return o, true, err
}

func integerMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if bothBased(x, y) {
		o, err := basedOp(h, x, y, func(a, b uint64) uint64 { return a * b })
		return o, true, err
	}
	if !x.IsInteger() || !y.IsInteger() || x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	a, b := object.IntegerValue(x), object.IntegerValue(y)
	if a == 0 || b == 0 {
		o, err := object.NewInteger(h, 0)
		return o, true, err
	}
	r := a * b
	if r/b != a {
		return object.Object{}, false, nil
	}
	o, err := object.NewInteger(h, r)
	return o, true, err
}

func integerDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if bothBased(x, y) {
		o, err := basedOp(h, x, y, func(a, b uint64) uint64 {
			if b == 0 {
				return 0
			}
			return a / b
		})
		return o, true, err
	}
	// Exact-integer division only when it divides evenly; otherwise
	// defer to fraction_ok so `3/2` promotes instead of truncating.
	if !x.IsInteger() || !y.IsInteger() || x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	a, b := object.IntegerValue(x), object.IntegerValue(y)
	if b == 0 {
		return divByZero(h, a)
	}
	if a%b != 0 {
		return object.Object{}, false, nil
	}
	o, err := object.NewInteger(h, a/b)
	return o, true, err
}

func integerMod(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if !x.IsInteger() || !y.IsInteger() || x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	a, b := object.IntegerValue(x), object.IntegerValue(y)
	if b == 0 {
		return object.Object{}, false, nil
	}
	r := a % b // Euclidean: 0 <= r < |b|
	if r < 0 {
		if b < 0 {
			r -= b
		} else {
			r += b
		}
	}
	o, err := object.NewInteger(h, r)
	return o, true, err
}

func integerRem(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if !x.IsInteger() || !y.IsInteger() || x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	a, b := object.IntegerValue(x), object.IntegerValue(y)
	if b == 0 {
		return object.Object{}, false, nil
	}
	o, err := object.NewInteger(h, a%b)
	return o, true, err
}

// integerPow implements binary exponentiation, declining (so the caller
// promotes to bignum) as soon as a multiplication would overflow int64;
// negative exponents are declined here and inverted by fractionPow.
func integerPow(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if !x.IsInteger() || x.IsBased() || y.Tag() != object.TagInteger {
		return object.Object{}, false, nil
	}
	n := object.IntegerValue(y)
	base := object.IntegerValue(x)
	if n < 0 {
		return object.Object{}, false, nil // let fraction_ok handle inversion
	}
	result := int64(1)
	b := base
	e := n
	for e > 0 {
		if e&1 == 1 {
			if willOverflowMul(result, b) {
				return object.Object{}, false, nil
			}
			result *= b
		}
		e >>= 1
		if e > 0 {
			if willOverflowMul(b, b) {
				return object.Object{}, false, nil
			}
			b *= b
		}
	}
	o, err := object.NewInteger(h, result)
	return o, true, err
}

func willOverflowMul(a, b int64) bool {
	if a == 0 || b == 0 {
		return false
	}
	r := a * b
	return r/b != a
}

// basedOp applies fn to the magnitudes of two based integers and masks
// the result to the wider of the two word-size masks.
func basedOp(h *heap.Heap, x, y object.Object, fn func(a, b uint64) uint64) (object.Object, error) {
	ax, base, bitsX := object.BasedValue(x)
	ay, _, bitsY := object.BasedValue(y)
	bits := bitsX
	if bitsY > bits {
		bits = bitsY
	}
	return object.NewBased(h, fn(ax, ay), base, bits)
}

func divByZero(h *heap.Heap, numerator int64) (object.Object, bool, error) {
	o, err := object.NewInfinity(h, numerator < 0)
	return o, true, err
}
