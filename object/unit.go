package object

import "github.com/hpcalc/rpl48/heap"

// Unit: a value paired with a unit-expression, itself a symbolic
// product/quotient of base unit symbols (Glossary "Unit").

func NewUnit(h *heap.Heap, value, unitExpr Object) (Object, error) {
	return alloc(h, TagUnit, encodeChildren([]Object{value, unitExpr}))
}

func UnitParts(o Object) (value, unitExpr Object, err error) {
	children, err := decodeChildren(o.H, o.Payload())
	if err != nil {
		return Object{}, Object{}, err
	}
	return children[0], children[1], nil
}
