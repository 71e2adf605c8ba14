/*
 * rpl48 - Function application and independent-variable substitution.
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

package expr

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Binding is the scoped "independent variable" substitution — one symbol
// name bound to one value for the duration of a nested evaluation, the
// mechanism a solver/integrator hook uses to sweep a trial value through an
// expression without mutating any directory.
type Binding struct {
	Name  string
	Value object.Object
}

// Substitute walks e's tree replacing every symbol named b.Name with
// b.Value, leaving everything else untouched. Used by WithIndependent
// and directly by the solver/integrator commands.
func Substitute(h *heap.Heap, e object.Object, b Binding) (object.Object, error) {
	if e.IsSymbol() {
		if object.SymbolName(e) == b.Name {
			return b.Value, nil
		}
		return e, nil
	}
	if !e.IsExpression() && !e.IsProgram() {
		return e, nil
	}
	var body []object.Object
	var err error
	if e.IsExpression() {
		body, err = object.ExpressionBody(e)
	} else {
		body, err = object.ProgramBody(e)
	}
	if err != nil {
		return object.Object{}, err
	}
	out := make([]object.Object, len(body))
	for i, child := range body {
		out[i], err = Substitute(h, child, b)
		if err != nil {
			return object.Object{}, err
		}
	}
	if e.IsExpression() {
		return object.NewExpression(h, out)
	}
	return object.NewProgram(h, out)
}

// Evaluator is the subset of eval.Machine that function application
// needs: run a program/expression to completion and read back the top
// of its data stack. eval.Machine satisfies this; tests pass a stand-in
// evaluator instead.
type Evaluator interface {
	Eval(obj object.Object) error
	Pop() (object.Object, bool)
}

// Apply calls a user-defined program fn with args bound, in order, to the
// program's declared local names, via a nested Machine.Eval run. The
// simplified local-binding model used here: fn's body is itself substituted
// symbol-for-value before evaluation rather than maintaining a separate locals
// frame, which keeps function application from needing its own heap region.
func Apply(h *heap.Heap, ev Evaluator, fn object.Object, localNames []string, args []object.Object) (object.Object, error) {
	if len(localNames) != len(args) {
		return object.Object{}, rplerr.New(rplerr.ValueRange, "apply", "arity mismatch: want %d got %d", len(localNames), len(args))
	}
	bound := fn
	var err error
	for i, name := range localNames {
		bound, err = Substitute(h, bound, Binding{Name: name, Value: args[i]})
		if err != nil {
			return object.Object{}, err
		}
	}
	if err := ev.Eval(bound); err != nil {
		return object.Object{}, err
	}
	result, ok := ev.Pop()
	if !ok {
		return object.Object{}, rplerr.New(rplerr.Internal, "apply", "function left no result")
	}
	return result, nil
}

// WithIndependent runs body with name bound to value for the duration of the
// call, per "a scoped independent variable binding can substitute a named
// symbol with a provided value (used by solver/integrator)".
func WithIndependent(h *heap.Heap, ev Evaluator, body object.Object, name string, value object.Object) (object.Object, error) {
	bound, err := Substitute(h, body, Binding{Name: name, Value: value})
	if err != nil {
		return object.Object{}, err
	}
	if err := ev.Eval(bound); err != nil {
		return object.Object{}, err
	}
	result, ok := ev.Pop()
	if !ok {
		return object.Object{}, rplerr.New(rplerr.Internal, "independent", "no result produced")
	}
	return result, nil
}
