/*
 * rpl48 - Soft-key menus.
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

// MenuEntriesPerPage is N in the N×3 soft-key grid: entries are organized
// in planes of N entries each — the soft-key row width.
const MenuEntriesPerPage = 6

// MenuEntry is one soft key's label, the binding it fires, and an
// optional marker painted next to the label (e.g. a checkmark for a
// toggled setting) by the menu renderer.
type MenuEntry struct {
	Label   string
	Binding Binding
	Marker  string
}

// Menu is a named, paginated list of entries spread across up to three shift
// planes of MenuEntriesPerPage each.
type Menu struct {
	Name    string
	entries []MenuEntry
	page    int
}

// NewMenu builds a Menu over entries, which may span more than one
// page; pagination reserves the rightmost column for ▶/◀︎ navigation
// once there's more than a screenful.
func NewMenu(name string, entries []MenuEntry) *Menu {
	return &Menu{Name: name, entries: entries}
}

func (m *Menu) pageSize() int {
	if m.pageCount() > 1 {
		return MenuEntriesPerPage - 1
	}
	return MenuEntriesPerPage
}

func (m *Menu) pageCount() int {
	if len(m.entries) <= MenuEntriesPerPage {
		return 1
	}
	// Every non-final page gives up one slot to ▶; the final page
	// doesn't need ◀︎'s slot since NextPage/PrevPage wrap.
	n := (len(m.entries) + MenuEntriesPerPage - 2) / (MenuEntriesPerPage - 1)
	if n < 1 {
		n = 1
	}
	return n
}

// Page returns the entries visible on the current page, with a
// trailing "▶" synthesized on every page when pagination is active. No
// backward entry is added; NextPage and PrevPage both wrap around.
func (m *Menu) Page() []MenuEntry {
	size := m.pageSize()
	start := m.page * size
	if start > len(m.entries) {
		start = len(m.entries)
	}
	end := start + size
	if end > len(m.entries) {
		end = len(m.entries)
	}
	out := append([]MenuEntry(nil), m.entries[start:end]...)
	if m.pageCount() > 1 {
		out = append(out, MenuEntry{Label: "▶"})
	}
	return out
}

// NextPage advances to the next page, wrapping around.
func (m *Menu) NextPage() {
	if m.pageCount() <= 1 {
		return
	}
	m.page = (m.page + 1) % m.pageCount()
}

// PrevPage retreats to the previous page, wrapping around.
func (m *Menu) PrevPage() {
	if m.pageCount() <= 1 {
		return
	}
	m.page = (m.page - 1 + m.pageCount()) % m.pageCount()
}

// MenuStack is the history of depth K mentioned in "Back" pops to the
// previously displayed menu.
type MenuStack struct {
	depth   int
	history []*Menu
}

// NewMenuStack returns a stack that remembers up to depth prior menus.
func NewMenuStack(depth int) *MenuStack {
	return &MenuStack{depth: depth}
}

// Push displays m, remembering the previously current menu for Back.
func (s *MenuStack) Push(m *Menu) {
	s.history = append(s.history, m)
	if len(s.history) > s.depth+1 {
		s.history = s.history[len(s.history)-(s.depth+1):]
	}
}

// Current returns the currently displayed menu, or nil if none.
func (s *MenuStack) Current() *Menu {
	if len(s.history) == 0 {
		return nil
	}
	return s.history[len(s.history)-1]
}

// Back pops to the previous menu; a no-op at the root.
func (s *MenuStack) Back() {
	if len(s.history) > 1 {
		s.history = s.history[:len(s.history)-1]
	}
}
