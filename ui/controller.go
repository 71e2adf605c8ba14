/*
 * rpl48 - UI controller: keystrokes to editor/stack actions.
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

package ui

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/hostio"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Keys reserved across every plane/mode, matching the fixed HP-48 key matrix
// roles names explicitly.
const (
	KeyShift = iota + 1000
	KeyAlpha
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyOn
)

// Machine is the subset of eval.Machine the controller drives; kept as
// an interface so ui never imports eval (eval already imports nothing
// from ui, avoiding a cycle).
type Machine interface {
	Push(object.Object)
	Eval(object.Object) error
}

// Controller ties the mode tracker, editor buffer, shift planes, key map, and
// menu stack together into the single event handler "UI drains events between
// evaluator steps" describes.
type Controller struct {
	Editor  *Editor
	Shift   ShiftState
	Keys    *KeyMap
	Menus   *MenuStack
	Machine Machine
}

// NewController wires a fresh Editor over h to m, with an empty key
// map and menu stack ready for the host to populate.
func NewController(h *heap.Heap, m Machine) *Controller {
	return &Controller{
		Editor:  NewEditor(h),
		Keys:    NewKeyMap(),
		Menus:   NewMenuStack(4),
		Machine: m,
	}
}

// HandleKey processes one hostio.KeyEvent, the entry point the host
// key queue drains into between evaluator steps.
func (c *Controller) HandleKey(ev hostio.KeyEvent) error {
	if ev.Released {
		c.Shift.EndTransientAlpha()
		return nil
	}

	switch ev.Code {
	case KeyShift:
		c.Shift.PressShift()
		return nil
	case KeyAlpha:
		c.Shift.PressShiftLong()
		return nil
	case KeyUp, KeyDown:
		c.Shift.BeginTransientAlpha()
		if ev.Code == KeyUp {
			c.Editor.MoveCursor(-1)
		} else {
			c.Editor.MoveCursor(1)
		}
		return nil
	case KeyLeft:
		c.Editor.MoveCursor(-1)
		return nil
	case KeyRight:
		c.Editor.MoveCursor(1)
		return nil
	case KeyBackspace:
		c.Editor.Backspace()
		return nil
	case KeyOn:
		c.Editor.Clear()
		rplerr.Clear()
		return nil
	case KeyEnter:
		return c.Commit()
	}

	mode := c.Editor.Mode()
	b, ok := c.Keys.Lookup(ev.Code, c.Shift.Plane(), mode)
	c.Shift.ResetAfterKey()
	if !ok {
		return nil
	}
	if b.IsCommand {
		cmd, err := object.NewCommand(c.Editor.H, b.Opcode)
		if err != nil {
			return err
		}
		return c.Machine.Eval(cmd)
	}
	c.Editor.InsertAtCursor(b.InsertText)
	return nil
}

// Commit runs the command-line's commit-and-parse cycle and, on success, feeds
// the parsed object into the evaluator. A parse failure is recorded in the
// rplerr slot; Commit does not clear an error banner that is already set.
func (c *Controller) Commit() error {
	obj, err := c.Editor.CommitAndParse()
	if err != nil {
		rplerr.Set(toRPLErr(err))
		return err
	}
	return c.Machine.Eval(obj)
}

func toRPLErr(err error) *rplerr.Error {
	if e, ok := err.(*rplerr.Error); ok {
		return e
	}
	return rplerr.New(rplerr.Syntax, "", "%s", err.Error())
}
