/*
 * rpl48 - Symbolic expression engine.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package expr implements a symbolic expression is a list of tokens in postfix
// order (operands, then the operator that consumes them), which makes
// evaluation trivial (feed object.ExpressionBody to eval) and traversal cheap.
// Construction flattens operand expressions that are already postfix bodies,
// applies arith's auto-simplification table to already-numeric operand pairs,
// and additionally applies the three symbolic identities that arith itself
// cannot reach because arith.Eval only ever sees operands that already passed
// object.IsNumeric (see DESIGN.md).
package expr

import (
	"github.com/hpcalc/rpl48/arith"
	"github.com/hpcalc/rpl48/eval"
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Operator names a symbolic combining operator. Its values are exactly
// eval.Opcode values so that a Command object built for one is
// directly executable by eval.Machine's main loop — an expression's
// trailing Command needs no translation between the two packages.
type Operator = eval.Opcode

const (
	OpAdd    = eval.OpAdd
	OpSub    = eval.OpSub
	OpMul    = eval.OpMul
	OpDiv    = eval.OpDiv
	OpPow    = eval.OpPow
	OpNeg    = eval.OpNeg
	OpInv    = eval.OpInv
	OpSquare = eval.OpSquare
)

func arithOp(op Operator) (arith.Op, bool) {
	switch op {
	case OpAdd:
		return arith.Add, true
	case OpSub:
		return arith.Sub, true
	case OpMul:
		return arith.Mul, true
	case OpDiv:
		return arith.Div, true
	case OpPow:
		return arith.Pow, true
	}
	return 0, false
}

func opcode(op Operator) uint16 {
	return uint16(op)
}

// Make builds a new expression node for op applied to args, flattening any arg
// that is itself an Expression into its postfix body and trying auto-
// simplification first (delegated to arith for numeric operands, and to the
// symbolic rules below for symbolic ones).
func Make(h *heap.Heap, st arith.Settings, op Operator, args ...object.Object) (object.Object, error) {
	if len(args) == 2 {
		if simplified, ok, err := trySimplify(h, st, op, args[0], args[1]); ok || err != nil {
			return simplified, err
		}
	}
	var body []object.Object
	for _, a := range args {
		if a.IsExpression() {
			children, err := object.ExpressionBody(a)
			if err != nil {
				return object.Object{}, err
			}
			body = append(body, children...)
			continue
		}
		body = append(body, a)
	}
	cmd, err := object.NewCommand(h, opcode(op))
	if err != nil {
		return object.Object{}, err
	}
	body = append(body, cmd)
	return object.NewExpression(h, body)
}

// trySimplify applies auto-simplification to a binary (op, x, y) pair: when
// both operands are already numeric it defers entirely to arith.Eval (which
// runs arith's own optimize hook plus, on fall through, the real computation);
// when either operand is symbolic it applies the three rules table gates on "x
// symbolic" that arith itself never sees.
func trySimplify(h *heap.Heap, st arith.Settings, op Operator, x, y object.Object) (object.Object, bool, error) {
	if aop, ok := arithOp(op); ok && x.IsNumeric() && y.IsNumeric() {
		r, err := arith.Eval(h, st, aop, x, y)
		return r, true, err
	}
	if st == nil || !stAutoSimplify(st) {
		return object.Object{}, false, nil
	}
	switch op {
	case OpSub:
		if isZero(x) && y.IsSymbolic() {
			r, err := Make(h, st, OpNeg, y)
			return r, true, err
		}
	case OpMul:
		if x.IsSymbolic() && x.Equal(y) {
			r, err := Make(h, st, OpSquare, x)
			return r, true, err
		}
	case OpDiv:
		if isOne(x) && y.IsSymbolic() {
			r, err := Make(h, st, OpInv, y)
			return r, true, err
		}
	}
	return object.Object{}, false, nil
}

func stAutoSimplify(st arith.Settings) bool { return st.AutoSimplify() }

func isZero(o object.Object) bool {
	return o.Tag() == object.TagInteger && object.IntegerValue(o) == 0
}

func isOne(o object.Object) bool {
	return o.Tag() == object.TagInteger && object.IntegerValue(o) == 1
}

// DerivRule rewrites an operator's contribution to d/dx given the already-
// differentiated operand expressions; nil for operators with no derivative
// rule wired.
type DerivRule func(h *heap.Heap, st arith.Settings, args, dargs []object.Object) (object.Object, error)

// IntegralRule rewrites an operator's contribution to an indefinite
// integral with respect to x; nil for operators with no rule.
type IntegralRule func(h *heap.Heap, st arith.Settings, x string, args []object.Object) (object.Object, error)

var derivRules = map[Operator]DerivRule{
	OpAdd: func(h *heap.Heap, st arith.Settings, args, d []object.Object) (object.Object, error) {
		return Make(h, st, OpAdd, d[0], d[1])
	},
	OpSub: func(h *heap.Heap, st arith.Settings, args, d []object.Object) (object.Object, error) {
		return Make(h, st, OpSub, d[0], d[1])
	},
	// Product rule: d(uv) = u'v + uv'.
	OpMul: func(h *heap.Heap, st arith.Settings, args, d []object.Object) (object.Object, error) {
		t1, err := Make(h, st, OpMul, d[0], args[1])
		if err != nil {
			return object.Object{}, err
		}
		t2, err := Make(h, st, OpMul, args[0], d[1])
		if err != nil {
			return object.Object{}, err
		}
		return Make(h, st, OpAdd, t1, t2)
	},
}

// integralRules is filled in init because its rules call Integrate, which
// reads the table.
var integralRules map[Operator]IntegralRule

func init() {
	integralRules = map[Operator]IntegralRule{
		OpAdd: func(h *heap.Heap, st arith.Settings, x string, args []object.Object) (object.Object, error) {
			t1, err := Integrate(h, st, args[0], x)
			if err != nil {
				return object.Object{}, err
			}
			t2, err := Integrate(h, st, args[1], x)
			if err != nil {
				return object.Object{}, err
			}
			return Make(h, st, OpAdd, t1, t2)
		},
	}
}

// Differentiate walks e's postfix body once, applying the per-operator
// derivative rule; a leaf differentiates to 1 when it is the independent
// variable x and to 0 when it is any other symbol/constant.
func Differentiate(h *heap.Heap, st arith.Settings, e object.Object, x string) (object.Object, error) {
	if e.IsSymbol() {
		if object.SymbolName(e) == x {
			return object.NewInteger(h, 1)
		}
		return object.NewInteger(h, 0)
	}
	if e.IsReal() {
		return object.NewInteger(h, 0)
	}
	if !e.IsExpression() {
		return object.Object{}, rplerr.New(rplerr.Type, "d/dx", "cannot differentiate %s", e.Tag().Name())
	}

	body, err := object.ExpressionBody(e)
	if err != nil {
		return object.Object{}, err
	}
	if len(body) == 0 {
		return object.Object{}, rplerr.New(rplerr.Internal, "d/dx", "empty expression")
	}
	opCmd := body[len(body)-1]
	args := body[:len(body)-1]
	op := Operator(object.CommandOpcode(opCmd))

	rule, ok := derivRules[op]
	if !ok {
		return object.Object{}, rplerr.New(rplerr.ValueRange, "d/dx", "no derivative rule for operator")
	}
	dargs := make([]object.Object, len(args))
	for i, a := range args {
		d, err := Differentiate(h, st, a, x)
		if err != nil {
			return object.Object{}, err
		}
		dargs[i] = d
	}
	return rule(h, st, args, dargs)
}

// Integrate applies the per-operator indefinite-integral rewrite with respect
// to x. Each rule is responsible for its own operand handling and recurses
// back into Integrate where the operator is linear in its arguments (e.g. the
// sum rule integrates each addend separately).
func Integrate(h *heap.Heap, st arith.Settings, e object.Object, x string) (object.Object, error) {
	if e.IsSymbol() || e.IsReal() {
		sym, err := object.NewSymbol(h, x)
		if err != nil {
			return object.Object{}, err
		}
		if e.IsSymbol() && object.SymbolName(e) == x {
			// integral of x dx = x^2 / 2
			sq, err := Make(h, st, OpMul, sym, sym)
			if err != nil {
				return object.Object{}, err
			}
			two, err := object.NewInteger(h, 2)
			if err != nil {
				return object.Object{}, err
			}
			return Make(h, st, OpDiv, sq, two)
		}
		return Make(h, st, OpMul, e, sym)
	}
	if !e.IsExpression() {
		return object.Object{}, rplerr.New(rplerr.Type, "integral", "cannot integrate %s", e.Tag().Name())
	}
	body, err := object.ExpressionBody(e)
	if err != nil {
		return object.Object{}, err
	}
	opCmd := body[len(body)-1]
	args := body[:len(body)-1]
	op := Operator(object.CommandOpcode(opCmd))
	rule, ok := integralRules[op]
	if !ok {
		return object.Object{}, rplerr.New(rplerr.ValueRange, "integral", "no integral rule for operator")
	}
	return rule(h, st, x, args)
}
