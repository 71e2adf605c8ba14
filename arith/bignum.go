package arith

import (
	"math/big"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// Bignum fast paths: exact arbitrary-precision integer arithmetic, the first
// promotion rung above integer_ok.

func bignumOperands(x, y object.Object) (bool, *big.Int, *big.Int) {
	if !x.IsReal() || !y.IsReal() || x.IsFraction() || y.IsFraction() || x.IsDecimal() || y.IsDecimal() || x.IsHWFloat() || y.IsHWFloat() {
		return false, nil, nil
	}
	return true, toBigInt(x), toBigInt(y)
}

func bignumAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := bignumOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	o, err := object.NewBignum(h, new(big.Int).Add(a, b))
	return o, true, err
}

func bignumSub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := bignumOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	o, err := object.NewBignum(h, new(big.Int).Sub(a, b))
	return o, true, err
}

func bignumMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := bignumOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	o, err := object.NewBignum(h, new(big.Int).Mul(a, b))
	return o, true, err
}

func bignumDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := bignumOperands(x, y)
	if !ok {
		return object.Object{}, false, nil
	}
	if b.Sign() == 0 {
		o, err := object.NewInfinity(h, a.Sign() < 0)
		return o, true, err
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 {
		return object.Object{}, false, nil // defer to fraction_ok
	}
	o, err := object.NewBignum(h, q)
	return o, true, err
}

func bignumMod(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := bignumOperands(x, y)
	if !ok || b.Sign() == 0 {
		return object.Object{}, false, nil
	}
	r := new(big.Int).Mod(a, new(big.Int).Abs(b)) // big.Int.Mod is already Euclidean (0 <= r < |b|)
	o, err := object.NewBignum(h, r)
	return o, true, err
}

func bignumRem(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	ok, a, b := bignumOperands(x, y)
	if !ok || b.Sign() == 0 {
		return object.Object{}, false, nil
	}
	r := new(big.Int).Rem(a, b)
	o, err := object.NewBignum(h, r)
	return o, true, err
}

func bignumPow(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsFraction() || x.IsDecimal() || x.IsHWFloat() || y.Tag() != object.TagInteger {
		return object.Object{}, false, nil
	}
	n := object.IntegerValue(y)
	if n < 0 {
		return object.Object{}, false, nil
	}
	base := toBigInt(x)
	r := new(big.Int).Exp(base, big.NewInt(n), nil)
	o, err := object.NewBignum(h, r)
	return o, true, err
}
