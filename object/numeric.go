package object

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/hpcalc/rpl48/heap"
)

// --- Integer: a canonical machine-word exact integer. ---

func NewInteger(h *heap.Heap, v int64) (Object, error) {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutVarint(buf[:], v)
	return alloc(h, TagInteger, buf[:n])
}

func IntegerValue(o Object) int64 {
	v, _ := binary.Varint(o.Payload())
	return v
}

// --- Based integer: a bit pattern with an explicit base and word-size mask
// (Glossary "Based integer"; "carry the current word-size mask applied on
// construction"). ---

func NewBased(h *heap.Heap, magnitude uint64, base, bits uint8) (Object, error) {
	if bits > 0 && bits < 64 {
		magnitude &= (uint64(1) << bits) - 1
	}
	buf := make([]byte, 0, binary.MaxVarintLen64+2)
	buf = putUvarint(buf, magnitude)
	buf = append(buf, base, bits)
	return alloc(h, TagBased, buf)
}

func BasedValue(o Object) (magnitude uint64, base, bits uint8) {
	p := o.Payload()
	magnitude, n := binary.Uvarint(p)
	base = p[n]
	bits = p[n+1]
	return
}

// --- Bignum: arbitrary precision exact integer. ---

func NewBignum(h *heap.Heap, v *big.Int) (Object, error) {
	sign := byte(0)
	if v.Sign() < 0 {
		sign = 1
	}
	mag := new(big.Int).Abs(v).Bytes()
	buf := append([]byte{sign}, mag...)
	return alloc(h, TagBignum, buf)
}

func BignumValue(o Object) *big.Int {
	p := o.Payload()
	v := new(big.Int).SetBytes(p[1:])
	if p[0] == 1 {
		v.Neg(v)
	}
	return v
}

// --- Fraction: an exact rational, always reduced with a positive denominator.
// ---

func NewFraction(h *heap.Heap, r *big.Rat) (Object, error) {
	num := r.Num()
	den := r.Denom()
	numSign := byte(0)
	if num.Sign() < 0 {
		numSign = 1
	}
	numBytes := new(big.Int).Abs(num).Bytes()
	denBytes := den.Bytes()

	buf := []byte{numSign}
	buf = putUvarint(buf, uint64(len(numBytes)))
	buf = append(buf, numBytes...)
	buf = append(buf, denBytes...)
	return alloc(h, TagFraction, buf)
}

func FractionValue(o Object) *big.Rat {
	p := o.Payload()
	sign := p[0]
	rest := p[1:]
	numLen, n := binary.Uvarint(rest)
	rest = rest[n:]
	numBytes := rest[:numLen]
	denBytes := rest[numLen:]

	num := new(big.Int).SetBytes(numBytes)
	if sign == 1 {
		num.Neg(num)
	}
	den := new(big.Int).SetBytes(denBytes)
	return new(big.Rat).SetFrac(num, den)
}

// --- Decimal: arbitrary-precision mantissa + decimal exponent
// (value = mantissa * 10^exp), normalized so the mantissa carries no
// trailing zero digits unless it is itself zero. ---

func NewDecimal(h *heap.Heap, mantissa *big.Int, exp int32) (Object, error) {
	mantissa, exp = normalizeDecimal(mantissa, exp)
	sign := byte(0)
	if mantissa.Sign() < 0 {
		sign = 1
	}
	mag := new(big.Int).Abs(mantissa).Bytes()
	buf := []byte{sign}
	var expBuf [binary.MaxVarintLen32]byte
	n := binary.PutVarint(expBuf[:], int64(exp))
	buf = append(buf, expBuf[:n]...)
	buf = append(buf, mag...)
	return alloc(h, TagDecimal, buf)
}

func normalizeDecimal(mantissa *big.Int, exp int32) (*big.Int, int32) {
	if mantissa.Sign() == 0 {
		return big.NewInt(0), 0
	}
	m := new(big.Int).Set(mantissa)
	ten := big.NewInt(10)
	rem := new(big.Int)
	for {
		q, r := new(big.Int).QuoRem(m, ten, rem)
		if r.Sign() != 0 {
			break
		}
		m = q
		exp++
	}
	return m, exp
}

func DecimalValue(o Object) (mantissa *big.Int, exp int32) {
	p := o.Payload()
	sign := p[0]
	rest := p[1:]
	e, n := binary.Varint(rest)
	rest = rest[n:]
	m := new(big.Int).SetBytes(rest)
	if sign == 1 {
		m.Neg(m)
	}
	return m, int32(e)
}

// --- Hardware float/double: raw IEEE-754 bits, the non-canonicalized
// approximate leaf types. ---

func NewHWFloat32(h *heap.Heap, v float32) (Object, error) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(v))
	return alloc(h, TagHWFloat32, buf[:])
}

func HWFloat32Value(o Object) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(o.Payload()))
}

func NewHWFloat64(h *heap.Heap, v float64) (Object, error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	return alloc(h, TagHWFloat64, buf[:])
}

func HWFloat64Value(o Object) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(o.Payload()))
}

// --- Infinity: ±∞, the special value consulted by division-by-zero and the
// infinity-arithmetic rules of. ---

func NewInfinity(h *heap.Heap, negative bool) (Object, error) {
	b := byte(0)
	if negative {
		b = 1
	}
	return alloc(h, TagInfinity, []byte{b})
}

func InfinityNegative(o Object) bool {
	return o.Payload()[0] == 1
}
