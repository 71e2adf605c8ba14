package object

import "github.com/hpcalc/rpl48/heap"

// Complex objects carry two real children: rectangular (re, im) or polar
// (modulus, angle-in-π-units).

func NewComplexRect(h *heap.Heap, re, im Object) (Object, error) {
	return alloc(h, TagComplexRect, encodeChildren([]Object{re, im}))
}

func NewComplexPolar(h *heap.Heap, modulus, angle Object) (Object, error) {
	return alloc(h, TagComplexPolar, encodeChildren([]Object{modulus, angle}))
}

// ComplexParts decodes either complex variant into its two children,
// in the order they were constructed (re/im, or modulus/angle).
func ComplexParts(o Object) (first, second Object, err error) {
	children, err := decodeChildren(o.H, o.Payload())
	if err != nil {
		return Object{}, Object{}, err
	}
	return children[0], children[1], nil
}
