package arith

import (
	"math"
	"math/big"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Decimal leaves: the arbitrary-precision-mantissa, decimal-exponent
// representation at the bottom of the "approximate" side of the lattice.
// Add/Sub/Mul are exact (decimal arithmetic never loses digits for those
// three); Div/Pow/Hypot/Atan2 round to precisionDigits significant digits.

func alignExponents(ma, mb *big.Int, expA, expB int32) (*big.Int, *big.Int, int32) {
	if expA == expB {
		return ma, mb, expA
	}
	ten := big.NewInt(10)
	if expA > expB {
		scale := new(big.Int).Exp(ten, big.NewInt(int64(expA-expB)), nil)
		return new(big.Int).Mul(ma, scale), mb, expB
	}
	scale := new(big.Int).Exp(ten, big.NewInt(int64(expB-expA)), nil)
	return ma, new(big.Int).Mul(mb, scale), expA
}

func decimalAdd(h *heap.Heap, x, y object.Object) (object.Object, error) {
	mx, ex := object.DecimalValue(x)
	my, ey := object.DecimalValue(y)
	ax, ay, e := alignExponents(mx, my, ex, ey)
	return decimalQuantize(h, new(big.Int).Add(ax, ay), e)
}

func decimalSub(h *heap.Heap, x, y object.Object) (object.Object, error) {
	mx, ex := object.DecimalValue(x)
	my, ey := object.DecimalValue(y)
	ax, ay, e := alignExponents(mx, my, ex, ey)
	return decimalQuantize(h, new(big.Int).Sub(ax, ay), e)
}

func decimalMul(h *heap.Heap, x, y object.Object) (object.Object, error) {
	mx, ex := object.DecimalValue(x)
	my, ey := object.DecimalValue(y)
	return decimalQuantize(h, new(big.Int).Mul(mx, my), ex+ey)
}

func decimalDiv(h *heap.Heap, x, y object.Object) (object.Object, error) {
	my, _ := object.DecimalValue(y)
	if my.Sign() == 0 {
		mx, _ := object.DecimalValue(x)
		return object.NewInfinity(h, mx.Sign() < 0)
	}
	rx, ry := decimalRat(x), decimalRat(y)
	return ratToDecimal(h, new(big.Rat).Quo(rx, ry), precisionDigits)
}

func decimalRat(o object.Object) *big.Rat {
	m, e := object.DecimalValue(o)
	r := new(big.Rat).SetInt(m)
	if e == 0 {
		return r
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(e))), nil)
	if e > 0 {
		r.Mul(r, new(big.Rat).SetInt(scale))
	} else {
		r.Quo(r, new(big.Rat).SetInt(scale))
	}
	return r
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func decimalMod(h *heap.Heap, x, y object.Object) (object.Object, error) {
	fx, fy := decimalToFloat(x), decimalToFloat(y)
	if fy == 0 {
		return object.Object{}, rplerr.New(rplerr.DivideByZero, "MOD", "modulus is zero")
	}
	r := math.Mod(fx, fy) // Euclidean: 0 <= r < |fy|
	if r < 0 {
		r += math.Abs(fy)
	}
	return floatToDecimal(h, r)
}

func decimalRem(h *heap.Heap, x, y object.Object) (object.Object, error) {
	fx, fy := decimalToFloat(x), decimalToFloat(y)
	if fy == 0 {
		return object.Object{}, rplerr.New(rplerr.DivideByZero, "REM", "modulus is zero")
	}
	return floatToDecimal(h, math.Mod(fx, fy))
}

// decimalPow defers non-integer exponents to a float64 exp(y*ln x) evaluation
// per; integer exponents use exact mantissa repeated squaring via decimalMul
// so e.g. (1/3 as decimal)^2 stays precise to the working precision rather
// than double-rounding through float64.
func decimalPow(h *heap.Heap, x, y object.Object) (object.Object, error) {
	if y.Tag() == object.TagInteger {
		n := object.IntegerValue(y)
		neg := n < 0
		if neg {
			n = -n
		}
		result, err := object.NewDecimal(h, big.NewInt(1), 0)
		if err != nil {
			return object.Object{}, err
		}
		base := x
		for n > 0 {
			if n&1 == 1 {
				result, err = decimalMul(h, result, base)
				if err != nil {
					return object.Object{}, err
				}
			}
			n >>= 1
			if n > 0 {
				base, err = decimalMul(h, base, base)
				if err != nil {
					return object.Object{}, err
				}
			}
		}
		if neg {
			return decimalDiv(h, mustDecimal(h, 1), result)
		}
		return result, nil
	}
	fx, fy := decimalToFloat(x), decimalToFloat(y)
	return floatToDecimal(h, math.Pow(fx, fy))
}

func mustDecimal(h *heap.Heap, v int64) object.Object {
	o, _ := object.NewDecimal(h, big.NewInt(v), 0)
	return o
}

func decimalHypot(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return floatToDecimal(h, math.Hypot(decimalToFloat(x), decimalToFloat(y)))
}

func decimalAtan2(h *heap.Heap, x, y object.Object) (object.Object, error) {
	return floatToDecimal(h, math.Atan2(decimalToFloat(x), decimalToFloat(y)))
}
