/*
 * rpl48 - Command-line editor buffer.
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
	"strings"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/parser"
	"github.com/hpcalc/rpl48/rplerr"
)

// Editor holds the command-line buffer, its cursor, and the mode tracker that
// classifies it. It provides the programmatic insert/commit entry points
// used by soft-key menus and Enter; because CommitAndParse also returns the
// parsed object, it does not satisfy hostio.CommandLineSurface as declared.
type Editor struct {
	H      *heap.Heap
	Parser *parser.Parser

	buf    []rune
	cursor int
	mode   Mode

	// cosmetic separators stripped on commit and restored if the parse fails, per
	// "Number separators".
	lastSeparatorFree string
}

// NewEditor returns an Editor allocating parsed objects onto h.
func NewEditor(h *heap.Heap) *Editor {
	return &Editor{H: h, Parser: parser.New(h)}
}

// Mode returns the current mode without rescanning.
func (e *Editor) Mode() Mode { return e.mode }

// Buffer returns the current command-line text.
func (e *Editor) Buffer() string { return string(e.buf) }

// Cursor returns the current cursor offset, in runes.
func (e *Editor) Cursor() int { return e.cursor }

// rescan updates e.mode from the buffer and cursor.
func (e *Editor) rescan() {
	e.mode = ModeTracker{}.Scan(e.buf, e.cursor)
}

// InsertAtCursor splices text into the buffer at the cursor and advances
// the cursor past it, auto-pairing opening delimiters (see autoPair).
func (e *Editor) InsertAtCursor(text string) {
	e.rescan()
	pair := autoPair(e.mode, text)
	r := []rune(text + pair)
	buf := make([]rune, 0, len(e.buf)+len(r))
	buf = append(buf, e.buf[:e.cursor]...)
	buf = append(buf, r...)
	buf = append(buf, e.buf[e.cursor:]...)
	e.buf = buf
	e.cursor += len([]rune(text))
	e.rescan()
}

// autoPair returns the closing delimiter to append after an opening
// one, or "" if text is not one of the listed opening delimiters. mode is
// not consulted: every listed delimiter pairs in every mode.
func autoPair(mode Mode, text string) string {
	switch text {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	case "\"":
		return "\""
	case "'":
		return "'"
	case "«":
		return "»"
	}
	return ""
}

// Backspace deletes the rune before the cursor, if any.
func (e *Editor) Backspace() {
	if e.cursor == 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
	e.rescan()
}

// MoveCursor shifts the cursor by delta runes, clamped to the buffer.
func (e *Editor) MoveCursor(delta int) {
	e.cursor += delta
	if e.cursor < 0 {
		e.cursor = 0
	}
	if e.cursor > len(e.buf) {
		e.cursor = len(e.buf)
	}
	e.rescan()
}

// Clear empties the buffer, used after a successful commit or ON/CANCEL.
func (e *Editor) Clear() {
	e.buf = nil
	e.cursor = 0
	e.mode = ModeStack
}

// stripSeparators removes cosmetic thousands separators (',' outside a
// string literal) before parsing, per commit rule.
func stripSeparators(s string) string {
	var sb strings.Builder
	inString := false
	for _, r := range s {
		if r == '"' {
			inString = !inString
		}
		if r == ',' && !inString {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// CommitAndParse strips cosmetic separators and parses the buffer. On
// success it clears the buffer and returns the parsed object; on failure it
// restores the buffer (with separators) and parks the cursor at the
// syntax-error offset for editing.
func (e *Editor) CommitAndParse() (object.Object, error) {
	original := string(e.buf)
	stripped := stripSeparators(original)

	obj, res, offset, err := e.Parser.Parse(stripped)
	if err != nil || res != parser.OK {
		e.buf = []rune(original)
		e.cursor = offset
		e.rescan()
		if err == nil {
			err = rplerr.NewAt(rplerr.Syntax, "", offset, "syntax error")
		}
		return object.Object{}, err
	}

	e.Clear()
	return obj, nil
}
