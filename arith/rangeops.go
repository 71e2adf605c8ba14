package arith

import (
	"math"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// Range fast path: intervals use min/max endpoint rules; the uncertain
// (mean,σ) variant uses linear error propagation. Every presentation
// (interval/delta/percent) is normalized down to an (low, high) pair before
// computing, then rebuilt as an interval — losing the original presentation
// choice is an accepted simplification (see DESIGN.md).

func toInterval(o object.Object) (low, high float64, uncertain bool, mean, sigma float64) {
	if !o.IsRange() {
		v := numericToFloat(o)
		return v, v, false, v, 0
	}
	first, second, err := object.RangeParts(o)
	if err != nil {
		return 0, 0, false, 0, 0
	}
	a, b := numericToFloat(first), numericToFloat(second)
	switch o.Tag() {
	case object.TagRangeInterval:
		return a, b, false, (a + b) / 2, (b - a) / 2
	case object.TagRangeDelta:
		return a - b, a + b, false, a, b
	case object.TagRangePercent:
		d := a * b / 100
		return a - d, a + d, false, a, d
	case object.TagUncertain:
		return a - b, a + b, true, a, b
	default:
		return a, b, false, a, 0
	}
}

func buildInterval(h *heap.Heap, low, high float64) (object.Object, bool, error) {
	lo, err := floatToDecimal(h, low)
	if err != nil {
		return object.Object{}, false, err
	}
	hi, err := floatToDecimal(h, high)
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewRangeInterval(h, lo, hi)
	return o, true, err
}

func buildUncertain(h *heap.Heap, mean, sigma float64) (object.Object, bool, error) {
	m, err := floatToDecimal(h, mean)
	if err != nil {
		return object.Object{}, false, err
	}
	s, err := floatToDecimal(h, sigma)
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewUncertain(h, m, s)
	return o, true, err
}

func eitherUncertain(x, y object.Object) bool {
	return x.Tag() == object.TagUncertain || y.Tag() == object.TagUncertain
}

func rangeAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if eitherUncertain(x, y) {
		_, _, _, mx, sx := toInterval(x)
		_, _, _, my, sy := toInterval(y)
		return buildUncertain(h, mx+my, math.Sqrt(sx*sx+sy*sy))
	}
	alo, ahi, _, _, _ := toInterval(x)
	blo, bhi, _, _, _ := toInterval(y)
	return buildInterval(h, alo+blo, ahi+bhi)
}

func rangeSub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if eitherUncertain(x, y) {
		_, _, _, mx, sx := toInterval(x)
		_, _, _, my, sy := toInterval(y)
		return buildUncertain(h, mx-my, math.Sqrt(sx*sx+sy*sy))
	}
	alo, ahi, _, _, _ := toInterval(x)
	blo, bhi, _, _, _ := toInterval(y)
	return buildInterval(h, alo-bhi, ahi-blo)
}

func rangeMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if eitherUncertain(x, y) {
		_, _, _, mx, sx := toInterval(x)
		_, _, _, my, sy := toInterval(y)
		prod := mx * my
		var rel float64
		if mx != 0 && my != 0 {
			rel = math.Sqrt(math.Pow(sx/mx, 2) + math.Pow(sy/my, 2))
		}
		return buildUncertain(h, prod, math.Abs(prod)*rel)
	}
	alo, ahi, _, _, _ := toInterval(x)
	blo, bhi, _, _, _ := toInterval(y)
	corners := []float64{alo * blo, alo * bhi, ahi * blo, ahi * bhi}
	return buildInterval(h, minOf(corners), maxOf(corners))
}

func rangeDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if eitherUncertain(x, y) {
		_, _, _, mx, sx := toInterval(x)
		_, _, _, my, sy := toInterval(y)
		if my == 0 {
			o, err := object.NewInfinity(h, mx < 0)
			return o, true, err
		}
		quot := mx / my
		rel := math.Sqrt(math.Pow(sx/mx, 2) + math.Pow(sy/my, 2))
		return buildUncertain(h, quot, math.Abs(quot)*rel)
	}
	alo, ahi, _, _, _ := toInterval(x)
	blo, bhi, _, _, _ := toInterval(y)
	if blo <= 0 && bhi >= 0 {
		o, err := object.NewInfinity(h, false)
		return o, true, err
	}
	corners := []float64{alo / blo, alo / bhi, ahi / blo, ahi / bhi}
	return buildInterval(h, minOf(corners), maxOf(corners))
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
