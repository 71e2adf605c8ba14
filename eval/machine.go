/*
 * rpl48 - RPL evaluator core loop.
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

// Package eval implements the single-threaded cooperative RPL interpreter: a
// data stack, a frame-based return stack, and a main loop that pops the top
// frame's next object and either pushes it (data-only values) or evaluates it
// (symbols, commands, expressions, programs), polling for interrupts once per
// object. The Start/Stop shape (a running flag, a done channel, one
// goroutine's for-select loop) is generalized from a cycle loop driven by a
// channel of packets to an object-execution loop driven directly by method
// calls from the ui package (see schedule.go for the interrupt delta-queue).
package eval

import (
	"github.com/hpcalc/rpl48/arith"
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Environment resolves a symbol name against the current directory chain;
// directory.Stack satisfies this without eval needing to import directory's
// concrete type.
type Environment interface {
	Lookup(name string) (object.Object, bool)
}

// InterruptSource polls the three conditions checks every loop iteration;
// main.go wires a noInterrupt stand-in that reports all three as quiescent.
type InterruptSource interface {
	ExitKeyPending() bool
	PowerSampleDue() bool
	LowBattery() bool
}

// frame is a (program, position) pair on the return stack ( "the return stack
// holds (program, position) pairs for deferred execution"). pos indexes the
// next not-yet-executed child of prog.
type frame struct {
	prog object.Object
	body []object.Object
	pos  int
}

// Machine is the evaluator: stacks, directory environment, and the
// halt/step/cancel control flags.
type Machine struct {
	H    *heap.Heap
	Env  Environment
	Arit arith.Settings
	Irq  InterruptSource

	data   []object.Object
	frames []frame

	halted          bool
	stepping        int
	aborted         bool
	cancelRequested bool

	sched scheduler

	lastErr *rplerr.Error
}

// NewMachine builds a Machine over h and registers it as a GC root
// provider so Compact rewrites every live stack/frame pointer.
func NewMachine(h *heap.Heap, env Environment, arit arith.Settings, irq InterruptSource) *Machine {
	m := &Machine{H: h, Env: env, Arit: arit, Irq: irq}
	h.AddRootProvider(m.roots)
	return m
}

// roots implements heap.RootProvider over the data stack and every
// live return-stack frame's program/body slots.
func (m *Machine) roots() []*heap.Ptr {
	var out []*heap.Ptr
	for i := range m.data {
		out = append(out, &m.data[i].Ptr)
	}
	for i := range m.frames {
		out = append(out, &m.frames[i].prog.Ptr)
		for j := range m.frames[i].body {
			out = append(out, &m.frames[i].body[j].Ptr)
		}
	}
	return out
}

// Push places a value on the data stack.
func (m *Machine) Push(o object.Object) { m.data = append(m.data, o) }

// Pop removes and returns the top of the data stack.
func (m *Machine) Pop() (object.Object, bool) {
	if len(m.data) == 0 {
		return object.Object{}, false
	}
	o := m.data[len(m.data)-1]
	m.data = m.data[:len(m.data)-1]
	return o, true
}

// Peek returns the nth-from-top data stack value (0 = top) without
// removing it.
func (m *Machine) Peek(n int) (object.Object, bool) {
	i := len(m.data) - 1 - n
	if i < 0 {
		return object.Object{}, false
	}
	return m.data[i], true
}

// Depth reports the number of live data stack entries.
func (m *Machine) Depth() int { return len(m.data) }

// Halted reports whether the loop has yielded control to the UI.
func (m *Machine) Halted() bool { return m.halted }

// Aborted reports whether the last run ended via an interrupt rather than
// completing.
func (m *Machine) Aborted() bool { return m.aborted }

// LastError returns the error set by the most recent failed step, if
// any.
func (m *Machine) LastError() *rplerr.Error { return m.lastErr }

// Schedule queues cb to fire after `after` further evaluated objects;
// long-running commands use this for draw_refresh suspension points.
func (m *Machine) Schedule(after int, cb func()) { m.sched.Schedule(after, cb) }

// Eval pushes obj as the program to run: a fresh frame over obj's single-
// element body if obj is not itself a Program/Expression, or over its decoded
// body otherwise.
func (m *Machine) Eval(obj object.Object) error {
	f, err := newFrame(obj)
	if err != nil {
		return err
	}
	m.frames = append(m.frames, f)
	m.aborted = false
	return m.run()
}

func newFrame(obj object.Object) (frame, error) {
	switch obj.Tag() {
	case object.TagProgram:
		body, err := object.ProgramBody(obj)
		if err != nil {
			return frame{}, err
		}
		return frame{prog: obj, body: body}, nil
	case object.TagExpression:
		body, err := object.ExpressionBody(obj)
		if err != nil {
			return frame{}, err
		}
		return frame{prog: obj, body: body}, nil
	default:
		return frame{prog: obj, body: []object.Object{obj}}, nil
	}
}

// Step runs at most n objects then halts, for single-step/step-over
// UI commands.
func (m *Machine) Step(n int) error {
	m.stepping = n
	m.halted = false
	return m.run()
}

// StepOut pops the current innermost frame without finishing it, returning
// control to its caller frame ( "step-out (pop one frame)").
func (m *Machine) StepOut() {
	if len(m.frames) > 0 {
		m.frames = m.frames[:len(m.frames)-1]
	}
}

// Cancel requests the loop stop at the next interrupt poll.
func (m *Machine) Cancel() { m.cancelRequested = true }

// run drives the main loop of pop the top frame's next object; if it is a
// data-only value push it, else evaluate it. Stops when the return stack
// empties or a halt/step/cancel/interrupt condition fires.
func (m *Machine) run() error {
	for len(m.frames) > 0 {
		if m.halted {
			return nil
		}
		if err := m.pollInterrupt(); err != nil {
			m.abort()
			return err
		}

		top := &m.frames[len(m.frames)-1]
		if top.pos >= len(top.body) {
			m.frames = m.frames[:len(m.frames)-1]
			continue
		}
		obj := top.body[top.pos]
		top.pos++

		if err := m.step(obj); err != nil {
			m.lastErr = toRPLErr(err)
			m.abort()
			return err
		}

		m.sched.Advance(1)
		if m.stepping > 0 {
			m.stepping--
			if m.stepping == 0 {
				m.halted = true
			}
		}
	}
	return nil
}

func (m *Machine) abort() {
	m.frames = nil
	m.aborted = true
	m.cancelRequested = false
}

func toRPLErr(err error) *rplerr.Error {
	if e, ok := err.(*rplerr.Error); ok {
		return e
	}
	return rplerr.New(rplerr.Internal, "", "%s", err.Error())
}

// step dispatches a single object per the evaluation rules by type.
func (m *Machine) step(obj object.Object) error {
	switch {
	case obj.Tag() == object.TagSymbol:
		if v, ok := m.Env.Lookup(object.SymbolName(obj)); ok {
			return m.step(v)
		}
		m.Push(obj)
		return nil
	case obj.Tag() == object.TagCommand:
		return m.execCommand(obj)
	case obj.Tag() == object.TagProgram || obj.Tag() == object.TagExpression:
		f, err := newFrame(obj)
		if err != nil {
			return err
		}
		m.frames = append(m.frames, f)
		return nil
	default:
		m.Push(obj)
		return nil
	}
}

func (m *Machine) pollInterrupt() error {
	if m.cancelRequested {
		return rplerr.New(rplerr.Interrupted, "", "cancelled")
	}
	if m.Irq == nil {
		return nil
	}
	if m.Irq.ExitKeyPending() {
		return rplerr.New(rplerr.Interrupted, "", "interrupted by key")
	}
	if m.Irq.PowerSampleDue() {
		return rplerr.New(rplerr.Interrupted, "", "interrupted for power sample")
	}
	if m.Irq.LowBattery() {
		return rplerr.New(rplerr.Interrupted, "", "low battery")
	}
	return nil
}
