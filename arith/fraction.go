package arith

import (
	"math/big"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// Fraction fast path: exact rational arithmetic, the rung above bignum_ok. Any
// exact family (integer/based/bignum/fraction) qualifies; decimal and hardware
// float do not.

func fractionOperands(x, y object.Object) (bool, *big.Rat, *big.Rat) {
	if !x.IsReal() || !y.IsReal() || x.IsDecimal() || y.IsDecimal() || x.IsHWFloat() || y.IsHWFloat() {
		return false, nil, nil
	}
	return true, toBigRat(x), toBigRat(y)
}

// reduced wraps a *big.Rat result back down to Integer/Bignum when its
// denominator is 1, matching the "fractions are reduced" canonical form.
func reduced(h *heap.Heap, r *big.Rat) (object.Object, error) {
	if r.IsInt() {
		n := r.Num()
		if n.IsInt64() {
			return object.NewInteger(h, n.Int64())
		}
		return object.NewBignum(h, n)
	}
	return object.NewFraction(h, r)
}

func fractionAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := fractionOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	o, err := reduced(h, new(big.Rat).Add(a, b))
	return o, true, err
}

func fractionSub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := fractionOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	o, err := reduced(h, new(big.Rat).Sub(a, b))
	return o, true, err
}

func fractionMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := fractionOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	o, err := reduced(h, new(big.Rat).Mul(a, b))
	return o, true, err
}

func fractionDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := fractionOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	if b.Sign() == 0 {
		o, err := object.NewInfinity(h, a.Sign() < 0)
		return o, true, err
	}
	o, err := reduced(h, new(big.Rat).Quo(a, b))
	return o, true, err
}

// fractionPow inverts |n| for a negative integer exponent.
func fractionPow(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if y.Tag() != object.TagInteger {
		return object.Object{}, false, nil
	}
	n := object.IntegerValue(y)
	if n >= 0 {
		return object.Object{}, false, nil
	}
	base := toBigRat(x)
	if base.Sign() == 0 {
		return object.Object{}, false, nil
	}
	r := new(big.Rat).SetInt64(1)
	inv := new(big.Rat).Inv(base)
	for i := int64(0); i < -n; i++ {
		r.Mul(r, inv)
	}
	o, err := reduced(h, r)
	return o, true, err
}
