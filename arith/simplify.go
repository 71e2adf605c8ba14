package arith

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Auto-simplification table, restricted here to the rules that apply between
// two already-numeric objects. The rules that rewrite a *symbolic* operand
// into a new expression node (`0-x -> neg x`, `x*x -> x²`, `1/x -> x⁻¹` for
// symbolic x) are not reachable from this package: arith.Eval only ever sees
// operands that already passed IsNumeric, so those three belong to expr's own
// simplification pass, which calls back into arith only once both sides are
// concrete numbers (see DESIGN.md).

func isZeroNumeric(o object.Object) bool {
	return o.IsReal() && !o.IsBased() && !o.IsInfinity() && numericToFloat(o) == 0
}

func isOneNumeric(o object.Object) bool {
	return o.IsReal() && !o.IsBased() && numericToFloat(o) == 1
}

func isImaginaryUnit(o object.Object) bool {
	if o.Tag() != object.TagComplexRect {
		return false
	}
	re, im, err := object.ComplexParts(o)
	if err != nil {
		return false
	}
	return isZeroNumeric(re) && isOneNumeric(im)
}

func simplifyAdd(h *heap.Heap, st Settings, x, y object.Object) (object.Object, bool, error) {
	if x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	if isZeroNumeric(x) {
		return y, true, nil
	}
	if isZeroNumeric(y) {
		return x, true, nil
	}
	return object.Object{}, false, nil
}

func simplifySub(h *heap.Heap, st Settings, x, y object.Object) (object.Object, bool, error) {
	if x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	if isZeroNumeric(y) {
		return x, true, nil
	}
	if x.Equal(y) {
		o, err := object.NewInteger(h, 0)
		return o, true, err
	}
	return object.Object{}, false, nil
}

func simplifyMul(h *heap.Heap, st Settings, x, y object.Object) (object.Object, bool, error) {
	if x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	if isImaginaryUnit(x) && isImaginaryUnit(y) {
		o, err := object.NewInteger(h, -1)
		return o, true, err
	}
	if isZeroNumeric(x) || isZeroNumeric(y) {
		o, err := object.NewInteger(h, 0)
		return o, true, err
	}
	if isOneNumeric(x) {
		return y, true, nil
	}
	if isOneNumeric(y) {
		return x, true, nil
	}
	return object.Object{}, false, nil
}

func simplifyDiv(h *heap.Heap, st Settings, x, y object.Object) (object.Object, bool, error) {
	if x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	if isZeroNumeric(x) && !isZeroNumeric(y) {
		o, err := object.NewInteger(h, 0)
		return o, true, err
	}
	if isOneNumeric(y) {
		return x, true, nil
	}
	if x.Equal(y) && !isZeroNumeric(x) {
		o, err := object.NewInteger(h, 1)
		return o, true, err
	}
	return object.Object{}, false, nil
}

// simplifyPow applies x^0->1, x^1->x, and the settings-gated 0^0 rule.
func simplifyPow(h *heap.Heap, st Settings, x, y object.Object) (object.Object, bool, error) {
	if x.IsBased() || y.IsBased() {
		return object.Object{}, false, nil
	}
	if isZeroNumeric(y) {
		if isZeroNumeric(x) {
			if st != nil && st.ZeroToZeroIsOne() {
				o, err := object.NewInteger(h, 1)
				return o, true, err
			}
			return object.Object{}, false, rplerr.New(rplerr.ValueRange, "^", "0^0 is undefined")
		}
		o, err := object.NewInteger(h, 1)
		return o, true, err
	}
	if isOneNumeric(y) {
		return x, true, nil
	}
	return object.Object{}, false, nil
}
