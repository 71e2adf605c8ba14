package arith

import (
	"math"
	"math/big"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// precisionDigits bounds the mantissa of any decimal produced by a
// leaf op that cannot represent its result exactly (division, pow,
// the transcendental leaves). It is not a spec constant; it mirrors
// the fixed working precision every BCD-based calculator engine picks
// so repeated division terminates.
const precisionDigits = 34

// toBigInt extracts an exact integer value from any integer-family
// object (integer, based, bignum).
func toBigInt(o object.Object) *big.Int {
	switch o.Tag() {
	case object.TagInteger:
		return big.NewInt(object.IntegerValue(o))
	case object.TagBased:
		mag, _, _ := object.BasedValue(o)
		return new(big.Int).SetUint64(mag)
	case object.TagBignum:
		return object.BignumValue(o)
	default:
		return big.NewInt(0)
	}
}

// toBigRat extracts an exact rational from any exact family (integer,
// based, bignum, fraction).
func toBigRat(o object.Object) *big.Rat {
	if o.Tag() == object.TagFraction {
		return object.FractionValue(o)
	}
	return new(big.Rat).SetInt(toBigInt(o))
}

// toDecimal widens any real object to a Decimal.
func toDecimal(h *heap.Heap, o object.Object) (object.Object, error) {
	switch o.Tag() {
	case object.TagDecimal:
		return o, nil
	case object.TagInteger, object.TagBased, object.TagBignum:
		return object.NewDecimal(h, toBigInt(o), 0)
	case object.TagFraction:
		return ratToDecimal(h, object.FractionValue(o), precisionDigits)
	case object.TagHWFloat32:
		return floatToDecimal(h, float64(object.HWFloat32Value(o)))
	case object.TagHWFloat64:
		return floatToDecimal(h, object.HWFloat64Value(o))
	default:
		return object.Object{}, rplerr.New(rplerr.Type, "", "cannot widen %s to decimal", o.Tag().Name())
	}
}

// ratToDecimal performs long division of num/den to digits significant
// decimal digits, rounding half-away-from-zero on the final digit.
func ratToDecimal(h *heap.Heap, r *big.Rat, digits int) (object.Object, error) {
	num := new(big.Int).Set(r.Num())
	den := new(big.Int).Set(r.Denom())
	neg := num.Sign() < 0
	if neg {
		num.Neg(num)
	}
	if num.Sign() == 0 {
		return object.NewDecimal(h, big.NewInt(0), 0)
	}

	// Scale numerator or denominator by a power of ten chosen from their
	// digit counts so integer division yields `digits` (at most one more)
	// significant digits of quotient, then track that power of ten.
	shift := digits - (len(num.Text(10)) - len(den.Text(10)))
	if shift >= 0 {
		num.Mul(num, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(shift)), nil))
	} else {
		den.Mul(den, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-shift)), nil))
	}
	q, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	// Round half-up on the dropped remainder.
	twice := new(big.Int).Lsh(rem, 1)
	if twice.CmpAbs(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}
	return object.NewDecimal(h, q, -int32(shift))
}

func floatToDecimal(h *heap.Heap, f float64) (object.Object, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return object.Object{}, rplerr.New(rplerr.ValueRange, "", "value not representable as decimal")
	}
	bf := new(big.Float).SetPrec(200).SetFloat64(f)
	r, _ := bf.Rat(nil)
	return ratToDecimal(h, r, precisionDigits)
}

func decimalToFloat(o object.Object) float64 {
	m, exp := object.DecimalValue(o)
	f := new(big.Float).SetPrec(200).SetInt(m)
	if exp != 0 {
		scale := new(big.Float).SetPrec(200)
		ten := big.NewFloat(10)
		scale.SetInt64(1)
		if exp > 0 {
			for i := int32(0); i < exp; i++ {
				scale.Mul(scale, ten)
			}
			f.Mul(f, scale)
		} else {
			for i := int32(0); i > exp; i-- {
				scale.Mul(scale, ten)
			}
			f.Quo(f, scale)
		}
	}
	v, _ := f.Float64()
	return v
}

func toHWFloat64(h *heap.Heap, o object.Object) (object.Object, error) {
	switch o.Tag() {
	case object.TagHWFloat64:
		return o, nil
	case object.TagHWFloat32:
		return object.NewHWFloat64(h, float64(object.HWFloat32Value(o)))
	case object.TagDecimal:
		return object.NewHWFloat64(h, decimalToFloat(o))
	case object.TagInteger, object.TagBased, object.TagBignum:
		f, _ := new(big.Float).SetInt(toBigInt(o)).Float64()
		return object.NewHWFloat64(h, f)
	case object.TagFraction:
		f, _ := toBigRat(o).Float64()
		return object.NewHWFloat64(h, f)
	default:
		return object.Object{}, rplerr.New(rplerr.Type, "", "cannot widen %s to real", o.Tag().Name())
	}
}

func toHWFloat32(h *heap.Heap, o object.Object) (object.Object, error) {
	d, err := toHWFloat64(h, o)
	if err != nil {
		return object.Object{}, err
	}
	return object.NewHWFloat32(h, float32(object.HWFloat64Value(d)))
}

// decimalQuantize strips trailing-zero digits back down after an exact
// integer-arithmetic step (add/sub/mul) so stored decimals stay canonical.
func decimalQuantize(h *heap.Heap, m *big.Int, exp int32) (object.Object, error) {
	return object.NewDecimal(h, m, exp)
}
