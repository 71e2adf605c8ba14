/*
 * rpl48 - Single-slot runtime error state.
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

// Package rplerr implements the error taxonomy of a single process-wide error
// slot that any operation can set, and that the UI clears on the next key.
package rplerr

import "fmt"

// Kind classifies the source of an error, per taxonomy table.
type Kind int

const (
	Syntax Kind = iota
	Type
	ValueRange
	Dimension
	DivideByZero
	Overflow
	OutOfMemory
	Index
	Interrupted
	Internal
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "syntax"
	case Type:
		return "type"
	case ValueRange:
		return "value/range"
	case Dimension:
		return "dimension/units"
	case DivideByZero:
		return "divide-by-zero"
	case Overflow:
		return "overflow/underflow"
	case OutOfMemory:
		return "out-of-memory"
	case Index:
		return "index"
	case Interrupted:
		return "interrupted"
	default:
		return "internal"
	}
}

// Span is a source offset range, set by the parser or the command that
// raised the error.
type Span struct {
	Offset int
	Length int
	Valid  bool
}

// Error is the concrete error type placed in the slot.
type Error struct {
	Kind    Kind
	Command string // Name of the command that raised the error, for the banner.
	Message string
	Span    Span
}

func (e *Error) Error() string {
	if e.Command != "" {
		return e.Command + ": " + e.Message
	}
	return e.Message
}

// New builds an *Error without a source span.
func New(kind Kind, command, format string, a ...any) *Error {
	return &Error{Kind: kind, Command: command, Message: fmt.Sprintf(format, a...)}
}

// NewAt builds an *Error anchored to a source offset.
func NewAt(kind Kind, command string, offset int, format string, a ...any) *Error {
	return &Error{
		Kind:    kind,
		Command: command,
		Message: fmt.Sprintf(format, a...),
		Span:    Span{Offset: offset, Valid: true},
	}
}

// slot is the single process-wide error state.
var slot *Error

// Set records an error in the slot, overwriting any previous one.
func Set(err *Error) {
	slot = err
}

// Clear empties the slot; called on the next key, or automatically,
// depending on the "clear on any key" setting.
func Clear() {
	slot = nil
}

// Current returns the slot's contents, or nil if clear.
func Current() *Error {
	return slot
}

// Pending reports whether an error banner should still be shown.
func Pending() bool {
	return slot != nil
}
