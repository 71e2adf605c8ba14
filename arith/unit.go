package arith

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Unit arithmetic. Unit expressions are stored as a canonical Text
// ("kg*m^2/s^3"-style) rather than a full symbolic product tree; see DESIGN.md
// for why that simplification was made over building out a general unit-
// expression evaluator in expr.

type unitDef struct {
	base  string
	scale float64 // 1 <of this unit> = scale <base units>
}

// unitRegistry maps a surface unit symbol to its SI-family base symbol
// and conversion scale. Only a representative subset is wired, enough
// to exercise dimensional arithmetic end to end.
var unitRegistry = map[string]unitDef{
	"m": {"m", 1}, "cm": {"m", 0.01}, "mm": {"m", 0.001}, "km": {"m", 1000},
	"in": {"m", 0.0254}, "ft": {"m", 0.3048}, "yd": {"m", 0.9144}, "mi": {"m", 1609.344},
	"s": {"s", 1}, "min": {"s", 60}, "hr": {"s", 3600},
	"kg": {"kg", 1}, "g": {"kg", 0.001}, "lb": {"kg", 0.45359237},
	"A": {"A", 1}, "K": {"K", 1}, "mol": {"mol", 1}, "cd": {"cd", 1},
}

// exponents maps a base-SI symbol to its exponent in a unit expression.
type exponents map[string]int

func resolveBase(sym string) (unitDef, bool) {
	d, ok := unitRegistry[sym]
	return d, ok
}

// parseUnitExpr parses "kg*m^2/s^3"-style expressions into the base-SI
// exponent map and the overall scale factor relative to pure SI.
func parseUnitExpr(s string) (exponents, float64, error) {
	exps := exponents{}
	scale := 1.0
	s = strings.TrimSpace(s)
	if s == "" || s == "1" {
		return exps, scale, nil
	}
	for _, term := range splitUnitTerms(s) {
		sym, pow, neg := term.sym, term.pow, term.divide
		d, ok := resolveBase(sym)
		if !ok {
			return nil, 0, rplerr.New(rplerr.Dimension, "", "unknown unit %q", sym)
		}
		p := pow
		if neg {
			p = -p
		}
		exps[d.base] += p
		scale *= pow10(d.scale, p)
	}
	for k, v := range exps {
		if v == 0 {
			delete(exps, k)
		}
	}
	return exps, scale, nil
}

func pow10(base float64, n int) float64 {
	r := 1.0
	neg := n < 0
	if neg {
		n = -n
	}
	for i := 0; i < n; i++ {
		r *= base
	}
	if neg {
		return 1 / r
	}
	return r
}

type unitTerm struct {
	sym    string
	pow    int
	divide bool
}

// splitUnitTerms tokenizes "a*b^2/c" into terms, each optionally
// carrying a "^n" exponent and a divide flag for anything following a
// '/'.
func splitUnitTerms(s string) []unitTerm {
	var terms []unitTerm
	for _, chunk := range tokenizeMulDiv(s) {
		divide := strings.HasPrefix(chunk, "/")
		chunk = strings.TrimPrefix(chunk, "/")
		sym, pow := chunk, 1
		if idx := strings.IndexByte(chunk, '^'); idx >= 0 {
			sym = chunk[:idx]
			if n, err := strconv.Atoi(chunk[idx+1:]); err == nil {
				pow = n
			}
		}
		terms = append(terms, unitTerm{sym: sym, pow: pow, divide: divide})
	}
	return terms
}

// tokenizeMulDiv splits "a*b/c" on '*' and '/', prefixing any token
// that followed a '/' with a marker so splitUnitTerms can tell mul from
// div terms apart after the split.
func tokenizeMulDiv(s string) []string {
	var out []string
	divide := false
	cur := strings.Builder{}
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		tok := cur.String()
		if divide {
			tok = "/" + tok
		}
		out = append(out, tok)
		cur.Reset()
	}
	for _, r := range s {
		switch r {
		case '*':
			flush()
			divide = false
		case '/':
			flush()
			divide = true
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}

func formatUnitExpr(exps exponents) string {
	if len(exps) == 0 {
		return "1"
	}
	keys := make([]string, 0, len(exps))
	for k := range exps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var num, den []string
	for _, k := range keys {
		n := exps[k]
		switch {
		case n == 1:
			num = append(num, k)
		case n > 1:
			num = append(num, fmt.Sprintf("%s^%d", k, n))
		case n == -1:
			den = append(den, k)
		case n < 0:
			den = append(den, fmt.Sprintf("%s^%d", k, -n))
		}
	}
	out := strings.Join(num, "*")
	if out == "" {
		out = "1"
	}
	if len(den) > 0 {
		out += "/" + strings.Join(den, "*")
	}
	return out
}

func sameDimension(a, b exponents) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func unitAddSub(h *heap.Heap, x, y object.Object, subtract bool) (object.Object, bool, error) {
	xv, xu, err := unitOperand(x)
	if err != nil {
		return object.Object{}, false, err
	}
	yv, yu, err := unitOperand(y)
	if err != nil {
		return object.Object{}, false, err
	}
	xe, xs, err := parseUnitExpr(xu)
	if err != nil {
		return object.Object{}, false, err
	}
	ye, ys, err := parseUnitExpr(yu)
	if err != nil {
		return object.Object{}, false, err
	}
	if !sameDimension(xe, ye) {
		return object.Object{}, false, rplerr.New(rplerr.Dimension, "", "incompatible units %q and %q", xu, yu)
	}
	// Convert y's value into x's unit.
	ratio := ys / xs
	yvBase, err := toDecimal(h, yv)
	if err != nil {
		return object.Object{}, false, err
	}
	yScaled, err := floatToDecimal(h, decimalToFloat(yvBase)*ratio)
	if err != nil {
		return object.Object{}, false, err
	}
	op := Add
	if subtract {
		op = Sub
	}
	sum, err := Eval(h, nil, op, xv, yScaled)
	if err != nil {
		return object.Object{}, false, err
	}
	unitExprObj, err := object.NewText(h, xu)
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewUnit(h, sum, unitExprObj)
	return o, true, err
}

func unitMulDiv(h *heap.Heap, x, y object.Object, divide bool) (object.Object, bool, error) {
	xv, xu, err := unitOperand(x)
	if err != nil {
		return object.Object{}, false, err
	}
	yv, yu, err := unitOperand(y)
	if err != nil {
		return object.Object{}, false, err
	}
	xe, _, err := parseUnitExpr(xu)
	if err != nil {
		return object.Object{}, false, err
	}
	ye, _, err := parseUnitExpr(yu)
	if err != nil {
		return object.Object{}, false, err
	}
	combined := exponents{}
	for k, v := range xe {
		combined[k] += v
	}
	for k, v := range ye {
		if divide {
			combined[k] -= v
		} else {
			combined[k] += v
		}
	}
	for k, v := range combined {
		if v == 0 {
			delete(combined, k)
		}
	}
	op := Mul
	if divide {
		op = Div
	}
	val, err := Eval(h, nil, op, xv, yv)
	if err != nil {
		return object.Object{}, false, err
	}
	if len(combined) == 0 {
		return val, true, nil
	}
	unitExprObj, err := object.NewText(h, formatUnitExpr(combined))
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewUnit(h, val, unitExprObj)
	return o, true, err
}

func unitPow(h *heap.Heap, x, y object.Object) (object.Object, bool, error) {
	if y.Tag() != object.TagInteger {
		return object.Object{}, false, nil
	}
	n := int(object.IntegerValue(y))
	xv, xu, err := unitOperand(x)
	if err != nil {
		return object.Object{}, false, err
	}
	xe, _, err := parseUnitExpr(xu)
	if err != nil {
		return object.Object{}, false, err
	}
	for k := range xe {
		xe[k] *= n
	}
	val, err := Eval(h, nil, Pow, xv, y)
	if err != nil {
		return object.Object{}, false, err
	}
	unitExprObj, err := object.NewText(h, formatUnitExpr(xe))
	if err != nil {
		return object.Object{}, false, err
	}
	o, err := object.NewUnit(h, val, unitExprObj)
	return o, true, err
}

// unitOperand returns o's value and unit-expression string, treating a
// bare (non-Unit) numeric operand as dimensionless.
func unitOperand(o object.Object) (value object.Object, unitExpr string, err error) {
	if !o.IsUnit() {
		return o, "1", nil
	}
	v, u, err := object.UnitParts(o)
	if err != nil {
		return object.Object{}, "", err
	}
	return v, object.TextValue(u), nil
}
