/*
 * rpl48 - Stack view rendering.
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

// Package stackview implements bottom-up rendering of the data stack within a
// header/menu height budget, a per-level render cache invalidated on settings
// change or value change, multi-line overflow with head...tail ellipsis
// fallback, and an interactive stack mode: one function turning one object
// into one display line, assembled bottom-to-top into a listing.
package stackview

import (
	"strings"

	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/render"
)

// Row is one rendered stack level, top of stack = level 1 (the
// HP-48 convention; level 0 is reserved for the command line).
type Row struct {
	Level int
	Lines []string
}

// cacheEntry remembers the rendering produced for a given object under a given
// settings generation, so unrelated redraws don't re-render every level.
type cacheEntry struct {
	obj  object.Object
	gen  uint64
	rows []string
}

// View renders the data stack and caches per-level results.
type View struct {
	Settings *settings.Registry
	Mode     render.Mode

	// HeaderHeight and MenuHeight subtract from the available region, per
	// "respecting a header height and a menu height".
	HeaderHeight int
	MenuHeight   int
	LineHeight   int
	ScreenHeight int
	Width        int // character columns available per line

	MultiLine bool

	gen   uint64
	cache map[int]cacheEntry

	// Interactive holds the highlighted level when the alternate interactive-
	// stack mode is active; -1 means inactive.
	Interactive int
}

// NewView returns a View with interactive mode off and an empty cache.
func NewView(st *settings.Registry) *View {
	return &View{Settings: st, Interactive: -1, LineHeight: 1, MultiLine: true}
}

// InvalidateAll bumps the generation counter, forcing every level to re-render
// on the next Render call.
func (v *View) InvalidateAll() {
	v.gen++
	v.cache = nil
}

// budget returns how many text lines are available for the stack area.
func (v *View) budget() int {
	h := v.ScreenHeight - v.HeaderHeight - v.MenuHeight
	if v.LineHeight <= 0 {
		v.LineHeight = 1
	}
	n := h / v.LineHeight
	if n < 0 {
		n = 0
	}
	return n
}

// Render produces the visible Rows for stack, bottom-up, within the
// current height budget, consulting and updating the per-level cache.
// stack[0] is the top of the data stack (matching eval.Machine.Peek's
// indexing); level numbers in the output follow HP-48 convention
// (level 1 = top).
func (v *View) Render(stack []object.Object) []Row {
	if v.cache == nil {
		v.cache = make(map[int]cacheEntry)
	}
	budget := v.budget()
	var rows []Row
	used := 0
	for i, obj := range stack {
		level := i + 1
		lines := v.renderLevel(level, obj)
		if used+len(lines) > budget && budget > 0 {
			remaining := budget - used
			if remaining <= 0 {
				break
			}
			lines = ellide(lines, remaining, v.Width)
		}
		rows = append(rows, Row{Level: level, Lines: lines})
		used += len(lines)
		if used >= budget && budget > 0 {
			break
		}
	}
	return rows
}

func (v *View) renderLevel(level int, obj object.Object) []string {
	if e, ok := v.cache[level]; ok && e.gen == v.gen && e.obj.Equal(obj) {
		return e.rows
	}
	text := render.String(v.Settings, v.Mode, obj)
	var lines []string
	if v.MultiLine {
		lines = wrap(text, v.Width)
	} else {
		lines = []string{truncate(text, v.Width)}
	}
	v.cache[level] = cacheEntry{obj: obj, gen: v.gen, rows: lines}
	return lines
}

// wrap splits text at natural breaks (spaces) to fit width columns per line,
// per "split at natural breaks and stack rows... up to a height budget".
func wrap(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var cur strings.Builder
	for _, w := range words {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	if len(lines) == 0 {
		lines = []string{text}
	}
	return lines
}

func truncate(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}
	return text[:width]
}

// ellide collapses lines down to budget rows via a "head... tail" fallback,
// per overflow policy of last resort.
func ellide(lines []string, budget int, width int) []string {
	if budget <= 0 {
		return nil
	}
	if len(lines) <= budget {
		return lines
	}
	if budget == 1 {
		head := lines[0]
		tail := lines[len(lines)-1]
		return []string{truncate(head, width/2) + "…" + truncate(tail, width/2)}
	}
	headCount := budget / 2
	tailCount := budget - headCount - 1
	out := append([]string{}, lines[:headCount]...)
	out = append(out, "…")
	out = append(out, lines[len(lines)-tailCount:]...)
	return out
}

// InteractiveAction is one soft-key command available in interactive stack
// mode.
type InteractiveAction int

const (
	ActionPick InteractiveAction = iota
	ActionEcho
	ActionDupN
	ActionDropN
	ActionRoll
	ActionSort
	ActionEdit
	ActionInfo
)

// EnterInteractive activates interactive mode with level 1 highlighted.
func (v *View) EnterInteractive() { v.Interactive = 1 }

// ExitInteractive deactivates interactive mode.
func (v *View) ExitInteractive() { v.Interactive = -1 }

// MoveHighlight shifts the highlighted level by delta, clamped to
// [1, depth], implementing "UP/DOWN on this mode walks the stack".
func (v *View) MoveHighlight(delta, depth int) {
	if v.Interactive < 0 {
		return
	}
	v.Interactive += delta
	if v.Interactive < 1 {
		v.Interactive = 1
	}
	if depth > 0 && v.Interactive > depth {
		v.Interactive = depth
	}
}
