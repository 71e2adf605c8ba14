package expr

import (
	"testing"

	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

func newTestExpr(t *testing.T) (*heap.Heap, *settings.Registry) {
	t.Helper()
	return heap.New(1 << 16), settings.New()
}

func TestMakeFlattensNestedExpressions(t *testing.T) {
	h, st := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	y, _ := object.NewSymbol(h, "Y")

	inner, err := Make(h, st, OpAdd, x, y)
	if err != nil {
		t.Fatalf("Make inner: %v", err)
	}
	z, _ := object.NewSymbol(h, "Z")
	outer, err := Make(h, st, OpSub, inner, z)
	if err != nil {
		t.Fatalf("Make outer: %v", err)
	}
	body, err := object.ExpressionBody(outer)
	if err != nil {
		t.Fatalf("ExpressionBody: %v", err)
	}
	// Flattened postfix body: X Y + Z -  -> [X Y + Z -]... but "+" is
	// itself folded into inner's body before outer wraps it, so outer's
	// body is [X Y ADD Z SUB] (5 tokens), not nested.
	if len(body) != 5 {
		t.Fatalf("want a flattened 5-token postfix body, got %d: %v", len(body), body)
	}
}

func TestMakeAutoSimplifiesZeroMinusSymbol(t *testing.T) {
	h, st := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")

	zero, _ := object.NewInteger(h, 0)
	r, err := Make(h, st, OpSub, zero, x)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	// 0 - X should simplify to NEG(X), a one-token-plus-NEG expression,
	// not a literal [0 X SUB] postfix body.
	if !r.IsExpression() {
		t.Fatalf("want an expression result, got tag=%v", r.Tag())
	}
	body, _ := object.ExpressionBody(r)
	if len(body) != 2 || body[1].Tag() != object.TagCommand || object.CommandOpcode(body[1]) != uint16(OpNeg) {
		t.Fatalf("want [X NEG], got %d tokens", len(body))
	}
}

func TestMakeEvaluatesPureNumericPairs(t *testing.T) {
	h, st := newTestExpr(t)
	one, _ := object.NewInteger(h, 1)
	two, _ := object.NewInteger(h, 2)
	r, err := Make(h, st, OpAdd, one, two)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if r.Tag() != object.TagInteger || object.IntegerValue(r) != 3 {
		t.Fatalf("want numeric 3, got tag=%v", r.Tag())
	}
}

func TestDifferentiateSumRule(t *testing.T) {
	h, st := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	y, _ := object.NewSymbol(h, "Y")
	e, err := Make(h, st, OpAdd, x, y)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	d, err := Differentiate(h, st, e, "X")
	if err != nil {
		t.Fatalf("Differentiate: %v", err)
	}
	// d/dX (X+Y) = 1 + 0 = 1 (simplified by arith along the way).
	if d.Tag() != object.TagInteger || object.IntegerValue(d) != 1 {
		t.Fatalf("want 1, got tag=%v val=%v", d.Tag(), object.IntegerValue(d))
	}
}

func TestDifferentiateProductRule(t *testing.T) {
	h, st := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	mul, _ := object.NewCommand(h, uint16(OpMul))
	// Built directly: Make would fold X*X into SQ(X), which has no
	// derivative rule, before the product rule is reached.
	e, err := object.NewExpression(h, []object.Object{x, x, mul})
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	d, err := Differentiate(h, st, e, "X")
	if err != nil {
		t.Fatalf("Differentiate: %v", err)
	}
	// d/dX(X*X) = 1*X + X*1, an Add of two products (expr has no rule
	// that folds 1*X or X*1, and arith only sees numeric pairs).
	if !d.IsSymbolic() {
		t.Fatalf("want a symbolic derivative, got tag=%v", d.Tag())
	}
}

func TestIntegrateVariableGivesHalfSquare(t *testing.T) {
	h, st := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	r, err := Integrate(h, st, x, "X")
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	// integral of x dx = x^2 / 2, a DIV expression.
	if !r.IsExpression() {
		t.Fatalf("want a DIV expression, got tag=%v", r.Tag())
	}
	body, _ := object.ExpressionBody(r)
	last := body[len(body)-1]
	if last.Tag() != object.TagCommand || object.CommandOpcode(last) != uint16(OpDiv) {
		t.Fatalf("want trailing DIV command, got tag=%v", last.Tag())
	}
}

func TestIntegrateConstantGivesConstantTimesX(t *testing.T) {
	h, st := newTestExpr(t)
	c, _ := object.NewSymbol(h, "C")
	r, err := Integrate(h, st, c, "X")
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if !r.IsExpression() {
		t.Fatalf("want a MUL expression, got tag=%v", r.Tag())
	}
	body, _ := object.ExpressionBody(r)
	last := body[len(body)-1]
	if last.Tag() != object.TagCommand || object.CommandOpcode(last) != uint16(OpMul) {
		t.Fatalf("want trailing MUL command, got tag=%v", last.Tag())
	}
}

func TestIntegrateSumRuleRecursesOnBothOperands(t *testing.T) {
	h, st := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	c, _ := object.NewSymbol(h, "C")
	e, err := Make(h, st, OpAdd, x, c)
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	r, err := Integrate(h, st, e, "X")
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if !r.IsExpression() {
		t.Fatalf("want an Add-of-integrals expression, got tag=%v", r.Tag())
	}
	body, _ := object.ExpressionBody(r)
	last := body[len(body)-1]
	if last.Tag() != object.TagCommand || object.CommandOpcode(last) != uint16(OpAdd) {
		t.Fatalf("want trailing ADD command, got tag=%v", last.Tag())
	}
}

func TestSubstituteReplacesSymbolInExpression(t *testing.T) {
	h, _ := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	y, _ := object.NewSymbol(h, "Y")
	five, _ := object.NewInteger(h, 5)
	e, err := object.NewExpression(h, []object.Object{x, y})
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	r, err := Substitute(h, e, Binding{Name: "X", Value: five})
	if err != nil {
		t.Fatalf("Substitute: %v", err)
	}
	body, _ := object.ExpressionBody(r)
	if object.IntegerValue(body[0]) != 5 {
		t.Fatalf("want X replaced by 5, got tag=%v", body[0].Tag())
	}
	if body[1].Tag() != object.TagSymbol || object.SymbolName(body[1]) != "Y" {
		t.Fatalf("want Y left untouched, got tag=%v", body[1].Tag())
	}
}

type fakeEvaluator struct {
	h     *heap.Heap
	stack []object.Object
}

func (f *fakeEvaluator) Eval(obj object.Object) error {
	f.stack = append(f.stack, obj)
	return nil
}

func (f *fakeEvaluator) Pop() (object.Object, bool) {
	if len(f.stack) == 0 {
		return object.Object{}, false
	}
	top := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return top, true
}

func TestWithIndependentSubstitutesAndEvaluates(t *testing.T) {
	h, _ := newTestExpr(t)
	x, _ := object.NewSymbol(h, "X")
	five, _ := object.NewInteger(h, 5)
	ev := &fakeEvaluator{h: h}

	r, err := WithIndependent(h, ev, x, "X", five)
	if err != nil {
		t.Fatalf("WithIndependent: %v", err)
	}
	if object.IntegerValue(r) != 5 {
		t.Fatalf("want 5, got %v", object.IntegerValue(r))
	}
}
