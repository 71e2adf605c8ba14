package arith

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Bitwise ops on based integers: a bit pattern has no promotion target, so
// these skip the family lattice entirely and run as non_numeric hooks that
// either produce a based result or fail with a type error.

func logicalAnd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	return basedLogic(h, And, x, y, func(a, b uint64) uint64 { return a & b })
}

func logicalOr(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	return basedLogic(h, Or, x, y, func(a, b uint64) uint64 { return a | b })
}

func logicalXor(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	return basedLogic(h, Xor, x, y, func(a, b uint64) uint64 { return a ^ b })
}

// logicalNot is wired as a binary hook like the rest of the bundle, but the
// unary NOT command in eval calls it with y set to x, so bothBased(x, y)
// reduces to x.IsBased() and only x's magnitude is read.
func logicalNot(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	return basedLogic(h, Not, x, y, func(a, _ uint64) uint64 { return ^a })
}

func basedLogic(h *heap.Heap, op Op, x, y object.Object, fn func(a, b uint64) uint64) (object.Object, bool, error) {
	if !bothBased(x, y) {
		return object.Object{}, false, rplerr.New(rplerr.Type, op.String(), "expected based integers")
	}
	o, err := basedOp(h, x, y, fn)
	return o, true, err
}

func logicalShl(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	return basedShift(h, Shl, x, y, func(a uint64, n uint) uint64 { return a << n })
}

func logicalShr(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	return basedShift(h, Shr, x, y, func(a uint64, n uint) uint64 { return a >> n })
}

// basedShift shifts a based integer's magnitude by a plain-integer count,
// masking the result to x's own word size.
func basedShift(h *heap.Heap, op Op, x, y object.Object, fn func(a uint64, n uint) uint64) (object.Object, bool, error) {
	if !x.IsBased() || y.Tag() != object.TagInteger {
		return object.Object{}, false, rplerr.New(rplerr.Type, op.String(), "expected a based integer and an integer shift count")
	}
	n := object.IntegerValue(y)
	if n < 0 {
		return object.Object{}, false, rplerr.New(rplerr.ValueRange, op.String(), "negative shift count")
	}
	magnitude, base, bits := object.BasedValue(x)
	o, err := object.NewBased(h, fn(magnitude, uint(n)), base, bits)
	return o, true, err
}
