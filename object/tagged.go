package object

import "github.com/hpcalc/rpl48/heap"

// Tagged: a label attached to a value. The label is carried as a Text child so
// the renderer can print it without a separate case.

func NewTagged(h *heap.Heap, label string, value Object) (Object, error) {
	labelObj, err := NewText(h, label)
	if err != nil {
		return Object{}, err
	}
	return alloc(h, TagTagged, encodeChildren([]Object{labelObj, value}))
}

func TaggedParts(o Object) (label string, value Object, err error) {
	children, err := decodeChildren(o.H, o.Payload())
	if err != nil {
		return "", Object{}, err
	}
	return TextValue(children[0]), children[1], nil
}
