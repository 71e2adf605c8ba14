/*
 * rpl48 - Shift planes and key-to-object table.
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

// Plane selects which of the three shift planes a keystroke is read from.
type Plane int

const (
	PlaneUnshifted Plane = iota
	PlaneShift
	PlaneXShift
)

// AlphaCase selects a lowercase/uppercase alpha subplane, active only
// when alpha is toggled on.
type AlphaCase int

const (
	AlphaOff AlphaCase = iota
	AlphaLower
	AlphaUpper
)

// ShiftState is the small bitfield describes: current plane, alpha case, and
// whether alpha is "transient" (held only while an arrow key is down).
type ShiftState struct {
	plane     Plane
	alpha     AlphaCase
	transient bool
}

// PressShift advances to the next plane on a single press, matching
// the HP-48 convention (unshifted -> shift -> unshifted); a caller
// distinguishes a long press (toggle alpha) and a double press
// (toggle x-shift) at the key-event layer and calls the matching
// method instead.
func (s *ShiftState) PressShift() {
	if s.plane == PlaneShift {
		s.plane = PlaneUnshifted
		return
	}
	s.plane = PlaneShift
}

// PressShiftLong toggles alpha mode (a long press of the shift key).
func (s *ShiftState) PressShiftLong() {
	if s.alpha == AlphaOff {
		s.alpha = AlphaLower
	} else {
		s.alpha = AlphaOff
	}
	s.transient = false
}

// PressShiftDouble toggles the alternate (x-shift) plane.
func (s *ShiftState) PressShiftDouble() {
	if s.plane == PlaneXShift {
		s.plane = PlaneUnshifted
		return
	}
	s.plane = PlaneXShift
}

// BeginTransientAlpha enables alpha for the duration of an arrow-key hold (
// "Transient alpha (arrow keys)...").
func (s *ShiftState) BeginTransientAlpha() {
	if s.alpha == AlphaOff {
		s.alpha = AlphaUpper
		s.transient = true
	}
}

// EndTransientAlpha releases a transient alpha hold.
func (s *ShiftState) EndTransientAlpha() {
	if s.transient {
		s.alpha = AlphaOff
		s.transient = false
	}
}

// Plane reports the active shift plane.
func (s ShiftState) Plane() Plane { return s.plane }

// Alpha reports the active alpha subplane.
func (s ShiftState) Alpha() AlphaCase { return s.alpha }

// ResetAfterKey collapses a non-locked shift plane back to unshifted
// after one keystroke is consumed, mirroring HP-48 "shift once" UX;
// alpha (locked) persists across keys.
func (s *ShiftState) ResetAfterKey() {
	if !s.transient {
		s.plane = PlaneUnshifted
	}
}

// Binding is what a (key, plane, mode) table cell maps to: either literal text
// to insert, or a command opcode to push as an object.Command, never both.
type Binding struct {
	InsertText string
	Opcode     uint16
	IsCommand  bool
}

// KeyMap is the three-dimensional (key, plane, mode) -> Binding table. User-
// mode assignments, when present, take priority over this table ( "User-mode
// (once or locked) gives user-defined bindings priority"); KeyMap itself only
// models the built-in layer.
type KeyMap struct {
	entries map[keyMapKey]Binding
	user    map[int]Binding // per-key user overrides, mode-independent
}

type keyMapKey struct {
	key   int
	plane Plane
	mode  Mode
}

// NewKeyMap returns an empty table; callers populate it with Bind.
func NewKeyMap() *KeyMap {
	return &KeyMap{entries: make(map[keyMapKey]Binding)}
}

// Bind registers the built-in binding for (key, plane, mode).
func (k *KeyMap) Bind(key int, plane Plane, mode Mode, b Binding) {
	k.entries[keyMapKey{key, plane, mode}] = b
}

// BindDefault registers a binding for a key regardless of mode, used
// for keys whose meaning (digits, ENTER, arrows) never changes with
// editor mode.
func (k *KeyMap) BindDefault(key int, plane Plane, b Binding) {
	for m := ModeStack; m <= ModeUnit; m++ {
		k.entries[keyMapKey{key, plane, m}] = b
	}
}

// BindUser installs a once-or-locked user assignment for key, taking
// priority over the built-in table until cleared.
func (k *KeyMap) BindUser(key int, b Binding) {
	if k.user == nil {
		k.user = make(map[int]Binding)
	}
	k.user[key] = b
}

// ClearUser removes a user assignment.
func (k *KeyMap) ClearUser(key int) {
	delete(k.user, key)
}

// Lookup resolves a keystroke to its Binding, consulting user
// assignments first.
func (k *KeyMap) Lookup(key int, plane Plane, mode Mode) (Binding, bool) {
	if k.user != nil {
		if b, ok := k.user[key]; ok {
			return b, true
		}
	}
	b, ok := k.entries[keyMapKey{key, plane, mode}]
	return b, ok
}
