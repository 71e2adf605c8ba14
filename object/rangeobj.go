package object

import "github.com/hpcalc/rpl48/heap"

// Range objects: three presentation forms of an interval (endpoints,
// ±delta, ±percent) plus the uncertain (mean, σ) form (Glossary
// "Range"). All four share the two-children shape.

func NewRangeInterval(h *heap.Heap, low, high Object) (Object, error) {
	return alloc(h, TagRangeInterval, encodeChildren([]Object{low, high}))
}

func NewRangeDelta(h *heap.Heap, center, delta Object) (Object, error) {
	return alloc(h, TagRangeDelta, encodeChildren([]Object{center, delta}))
}

func NewRangePercent(h *heap.Heap, center, percent Object) (Object, error) {
	return alloc(h, TagRangePercent, encodeChildren([]Object{center, percent}))
}

func NewUncertain(h *heap.Heap, mean, stddev Object) (Object, error) {
	return alloc(h, TagUncertain, encodeChildren([]Object{mean, stddev}))
}

// RangeParts decodes any of the four range/uncertain variants into its
// two children.
func RangeParts(o Object) (first, second Object, err error) {
	children, err := decodeChildren(o.H, o.Payload())
	if err != nil {
		return Object{}, Object{}, err
	}
	return children[0], children[1], nil
}
