package arith

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// non_numeric hooks: lists (concat/element-wise), texts (concat/ repetition),
// arrays (element-wise or matrix op), units (dimension check + base-unit
// conversion), and infinities (±∞ arithmetic), consulted before any numeric
// promotion.

func nonNumericAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() || y.IsInfinity() {
		return infinityAdd(h, x, y)
	}
	if x.IsUnit() || y.IsUnit() {
		return unitAddSub(h, x, y, false)
	}
	if x.IsList() && y.IsList() {
		return listConcat(h, x, y)
	}
	if x.IsText() && y.IsText() {
		return textConcat(h, x, y)
	}
	if x.IsArray() && y.IsArray() {
		return arrayElementwise(h, nil, Add, x, y)
	}
	return object.Object{}, false, nil
}

func nonNumericSub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() || y.IsInfinity() {
		return infinitySub(h, x, y)
	}
	if x.IsUnit() || y.IsUnit() {
		return unitAddSub(h, x, y, true)
	}
	if x.IsArray() && y.IsArray() {
		return arrayElementwise(h, nil, Sub, x, y)
	}
	return object.Object{}, false, nil
}

func nonNumericMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() || y.IsInfinity() {
		return infinityMul(h, x, y)
	}
	if x.IsUnit() || y.IsUnit() {
		return unitMulDiv(h, x, y, false)
	}
	if x.IsText() && y.Tag() == object.TagInteger {
		return textRepeat(h, x, object.IntegerValue(y))
	}
	if y.IsText() && x.Tag() == object.TagInteger {
		return textRepeat(h, y, object.IntegerValue(x))
	}
	if x.IsArray() && y.IsArray() {
		return arrayMatMul(h, x, y)
	}
	if x.IsArray() && y.IsNumeric() {
		return arrayScale(h, x, y)
	}
	if y.IsArray() && x.IsNumeric() {
		return arrayScale(h, y, x)
	}
	return object.Object{}, false, nil
}

func nonNumericDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() || y.IsInfinity() {
		return infinityDiv(h, x, y)
	}
	if x.IsUnit() || y.IsUnit() {
		return unitMulDiv(h, x, y, true)
	}
	if x.IsArray() && y.IsNumeric() {
		// Divide element-wise by scaling with the reciprocal of y.
		one, err := object.NewInteger(h, 1)
		if err != nil {
			return object.Object{}, false, err
		}
		inv, err := Eval(h, nil, Div, one, y)
		if err != nil {
			return object.Object{}, false, err
		}
		return arrayScale(h, x, inv)
	}
	return object.Object{}, false, nil
}

func nonNumericPow(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsArray() {
		if y.Tag() == object.TagInteger {
			return arrayMatPow(h, x, object.IntegerValue(y))
		}
		return arrayElementwise(h, nil, Pow, x, y)
	}
	if x.IsUnit() {
		return unitPow(h, x, y)
	}
	return object.Object{}, false, nil
}

// --- infinity arithmetic ---

func infinityAdd(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() && y.IsInfinity() {
		if object.InfinityNegative(x) != object.InfinityNegative(y) {
			return object.Object{}, false, rplerr.New(rplerr.Internal, "+", "undefined operation")
		}
		return x, true, nil
	}
	if x.IsInfinity() {
		return x, true, nil
	}
	return y, true, nil
}

func infinitySub(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() && y.IsInfinity() {
		return object.Object{}, false, rplerr.New(rplerr.Internal, "-", "undefined operation")
	}
	if x.IsInfinity() {
		return x, true, nil
	}
	o, err := object.NewInfinity(h, !object.InfinityNegative(y))
	return o, true, err
}

func infinityMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if isZero(x) || isZero(y) {
		return object.Object{}, false, rplerr.New(rplerr.Internal, "*", "undefined operation")
	}
	neg := infSign(x) != infSign(y)
	o, err := object.NewInfinity(h, neg)
	return o, true, err
}

func infinityDiv(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if x.IsInfinity() && y.IsInfinity() {
		return object.Object{}, false, rplerr.New(rplerr.Internal, "/", "undefined operation")
	}
	if y.IsInfinity() {
		o, err := object.NewInteger(h, 0)
		return o, true, err
	}
	neg := infSign(x) != (numericToFloat(y) < 0)
	o, err := object.NewInfinity(h, neg)
	return o, true, err
}

func infSign(o object.Object) bool {
	if o.IsInfinity() {
		return object.InfinityNegative(o)
	}
	return numericToFloat(o) < 0
}

func isZero(o object.Object) bool {
	return o.IsNumeric() && !o.IsInfinity() && numericToFloat(o) == 0
}

// --- containers ---

func listConcat(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	xs, err := object.ListElements(x)
	if err != nil {
		return object.Object{}, false, err
	}
	ys, err := object.ListElements(y)
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewList(h, append(xs, ys...))
	return o, true, err
}

func textConcat(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	o, err := object.NewText(h, object.TextValue(x)+object.TextValue(y))
	return o, true, err
}

func textRepeat(h *heap.Heap, t object.Object, n int64) (object.Object, bool, error) {
	if n < 0 {
		n = 0
	}
	s := object.TextValue(t)
	out := make([]byte, 0, len(s)*int(n))
	for i := int64(0); i < n; i++ {
		out = append(out, s...)
	}
	o, err := object.NewText(h, string(out))
	return o, true, err
}

func arrayElementwise(h *heap.Heap, st Settings, op Op, x, y object.Object) (object.Object, bool, error) {
	rx, cx := object.ArrayShape(x)
	ry, cy := object.ArrayShape(y)
	if rx != ry || cx != cy {
		return object.Object{}, false, rplerr.New(rplerr.Dimension, op.String(), "mismatched array shapes")
	}
	xs, err := object.ArrayElements(x)
	if err != nil {
		return object.Object{}, false, err
	}
	ys, err := object.ArrayElements(y)
	if err != nil {
		return object.Object{}, false, err
	}
	out := make([]object.Object, len(xs))
	for i := range xs {
		out[i], err = Eval(h, st, op, xs[i], ys[i])
		if err != nil {
			return object.Object{}, false, err
		}
	}
	o, err := object.NewArray(h, rx, cx, out)
	return o, true, err
}

func arrayScale(h *heap.Heap, a, scalar object.Object) (object.Object, bool, error) {
	rows, cols := object.ArrayShape(a)
	elems, err := object.ArrayElements(a)
	if err != nil {
		return object.Object{}, false, err
	}
	out := make([]object.Object, len(elems))
	for i, e := range elems {
		out[i], err = Eval(h, nil, Mul, e, scalar)
		if err != nil {
			return object.Object{}, false, err
		}
	}
	o, err := object.NewArray(h, rows, cols, out)
	return o, true, err
}

func arrayMatMul(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	rx, cx := object.ArrayShape(x)
	ry, cy := object.ArrayShape(y)
	if cx != ry {
		return object.Object{}, false, rplerr.New(rplerr.Dimension, "*", "inner matrix dimensions differ")
	}
	xs, err := object.ArrayElements(x)
	if err != nil {
		return object.Object{}, false, err
	}
	ys, err := object.ArrayElements(y)
	if err != nil {
		return object.Object{}, false, err
	}
	out := make([]object.Object, rx*cy)
	for i := 0; i < rx; i++ {
		for j := 0; j < cy; j++ {
			sum, err := object.NewInteger(h, 0)
			if err != nil {
				return object.Object{}, false, err
			}
			for k := 0; k < cx; k++ {
				prod, err := Eval(h, nil, Mul, xs[i*cx+k], ys[k*cy+j])
				if err != nil {
					return object.Object{}, false, err
				}
				sum, err = Eval(h, nil, Add, sum, prod)
				if err != nil {
					return object.Object{}, false, err
				}
			}
			out[i*cy+j] = sum
		}
	}
	o, err := object.NewArray(h, rx, cy, out)
	return o, true, err
}

func arrayMatPow(h *heap.Heap, x object.Object, n int64) (object.Object, bool, error) {
	rows, cols := object.ArrayShape(x)
	if rows != cols || n < 0 {
		return object.Object{}, false, rplerr.New(rplerr.Dimension, "^", "matrix power requires a square matrix and n>=0")
	}
	result := identityMatrix(h, rows)
	base := x
	for n > 0 {
		if n&1 == 1 {
			r, _, e := arrayMatMul(h, result, base)
			if e != nil {
				return object.Object{}, false, e
			}
			result = r
		}
		n >>= 1
		if n > 0 {
			b, _, e := arrayMatMul(h, base, base)
			if e != nil {
				return object.Object{}, false, e
			}
			base = b
		}
	}
	return result, true, nil
}

func identityMatrix(h *heap.Heap, n int) object.Object {
	elems := make([]object.Object, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := int64(0)
			if i == j {
				v = 1
			}
			elems[i*n+j], _ = object.NewInteger(h, v)
		}
	}
	o, _ := object.NewArray(h, n, n, elems)
	return o
}
