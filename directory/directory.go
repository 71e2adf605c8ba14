/*
 * rpl48 - Directory / variable environment.
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

// Package directory implements a stack of nested name->value frames with a
// persistent root, top-to-bottom lookup, and the
// Recall/RecallAll/Store/Purge/Enter/Updir operations, generalized from a
// flat name table to a nested directory/variable namespace.
package directory

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// frame is one directory level: a flat name->value map plus the non-symbol
// "numbered-keyed" variables (e.g. per-key user assignments), kept in the
// same store as ordinary names. Values are stored behind a pointer so
// roots can hand Compact an address it can rewrite in place; the map
// entry's pointer never moves even though the Object it points to does.
type frame struct {
	name  string
	vars  map[string]*object.Object
	keyed map[int]*object.Object
}

func newFrame(name string) *frame {
	return &frame{name: name, vars: map[string]*object.Object{}, keyed: map[int]*object.Object{}}
}

// Stack is the directory chain: frames[0] is the persistent root,
// frames[len-1] is the current directory. It satisfies eval.Environment.
type Stack struct {
	frames []*frame
}

// NewStack returns a Stack with only the persistent root directory and
// registers it as a GC root provider so Compact rewrites every bound
// variable's pointer, the same way eval.NewMachine registers the
// data/return stacks.
func NewStack(h *heap.Heap) *Stack {
	s := &Stack{frames: []*frame{newFrame("HOME")}}
	h.AddRootProvider(s.roots)
	return s
}

// roots implements heap.RootProvider over every frame's named and
// keyed variables.
func (s *Stack) roots() []*heap.Ptr {
	var out []*heap.Ptr
	for _, f := range s.frames {
		for _, v := range f.vars {
			out = append(out, &v.Ptr)
		}
		for _, v := range f.keyed {
			out = append(out, &v.Ptr)
		}
	}
	return out
}

// Lookup implements eval.Environment: search the current frame then walk up
// toward the root.
func (s *Stack) Lookup(name string) (object.Object, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].vars[name]; ok {
			return *v, true
		}
	}
	return object.Object{}, false
}

// Recall looks up name in the current frame only, without walking.
func (s *Stack) Recall(name string) (object.Object, bool) {
	v, ok := s.frames[len(s.frames)-1].vars[name]
	if !ok {
		return object.Object{}, false
	}
	return *v, true
}

// RecallAll forces a full top-to-bottom walk, identical to Lookup; it exists
// as a distinct name because local-then-walk vs. forced walk are the same
// algorithm once the current frame fails to resolve locally.
func (s *Stack) RecallAll(name string) (object.Object, bool) {
	return s.Lookup(name)
}

// Store binds name to value in the current frame. Stores at the bottom (root)
// frame are the persistent environment.
func (s *Stack) Store(name string, value object.Object) {
	s.frames[len(s.frames)-1].vars[name] = &value
}

// StoreKeyed binds a numbered (non-symbol) key in the current frame, used for
// per-key user assignments.
func (s *Stack) StoreKeyed(key int, value object.Object) {
	s.frames[len(s.frames)-1].keyed[key] = &value
}

// RecallKeyed looks up a numbered key, walking the chain like Lookup.
func (s *Stack) RecallKeyed(key int) (object.Object, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].keyed[key]; ok {
			return *v, true
		}
	}
	return object.Object{}, false
}

// Purge removes name from the current frame.
func (s *Stack) Purge(name string) {
	delete(s.frames[len(s.frames)-1].vars, name)
}

// Enter pushes a new subdirectory frame.
func (s *Stack) Enter(name string) {
	s.frames = append(s.frames, newFrame(name))
}

// Updir pops back to the parent directory. A no-op at the root, since
// the root is never removed.
func (s *Stack) Updir() {
	if len(s.frames) > 1 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Depth reports how many directory levels deep the stack currently is
// (1 means "at HOME").
func (s *Stack) Depth() int { return len(s.frames) }

// Path returns the slash-joined names from root to current directory,
// e.g. "HOME/FOO/BAR".
func (s *Stack) Path() string {
	out := s.frames[0].name
	for _, f := range s.frames[1:] {
		out += "/" + f.name
	}
	return out
}

// Names lists every symbol bound in the current frame, for the variable soft-
// key menu.
func (s *Stack) Names() []string {
	cur := s.frames[len(s.frames)-1]
	out := make([]string, 0, len(cur.vars))
	for k := range cur.vars {
		out = append(out, k)
	}
	return out
}
