/*
 * rpl48 - Heap and garbage collector.
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

// Package heap is the single contiguous-arena allocator, partitioned
// bottom-up as Globals > Temporaries > Editor > Scratch > (free) <
// Stack < Locals < Directories < Returns. Only the Temporaries region
// is ever compacted; Globals below it never move, and everything above
// the free gap (Stack/Locals/Directories/Returns) is rewritten in place
// by Compact rather than slid.
package heap

import (
	"encoding/binary"
	"errors"
)

// Ptr is a raw offset into the arena. Zero is the reserved null pointer;
// real records never start at offset zero (Globals always occupies at
// least one byte).
type Ptr uint32

const nullPtr Ptr = 0

// ErrOutOfMemory is returned by Allocate when the free gap cannot satisfy a
// request even after a GC pass. Callers must treat this as a recoverable
// error and must not retry blindly.
var ErrOutOfMemory = errors.New("out of memory")

// Handle is a cooperative, scoped pinned pointer. It is registered in the
// heap's pin chain on Pin and removed on Unpin; Compact rewrites every live
// handle's Ptr in place.
type Handle struct {
	ptr  Ptr
	prev *Handle
	next *Handle
}

// Ptr returns the handle's current target, valid until the next
// allocation unless the handle stays pinned.
func (h *Handle) Ptr() Ptr { return h.ptr }

// Heap is the arena plus its region boundaries and the pin chain.
type Heap struct {
	arena []byte

	globalsEnd Ptr // End of the persistent Globals region.
	tempEnd    Ptr // Bump-up boundary of Temporaries: next Allocate lands here.
	editorEnd  Ptr // End of the Editor region.
	scratchEnd Ptr // End of the committed Scratch region.

	scratch []byte // In-progress scratchpad lane, appended to before Commit.

	stackBase Ptr // High end: Stack/Locals/Directories/Returns all live above this downward-growing boundary.

	pinHead *Handle
	pinTail *Handle

	// rootProviders, when set, return every live Ptr slot outside the pin
	// chain (data stack, locals, directories, return stack, editor
	// render cache) so Compact can rewrite them too. Packages that
	// own such slots register themselves via AddRootProvider.
	rootProviders []RootProvider
}

// RootProvider returns pointers to every Ptr-valued slot a subsystem
// currently has live, so Compact can rewrite them after a move.
type RootProvider func() []*Ptr

// New creates a heap over an arena of the given byte capacity. Offset 0
// is burned as the null pointer; Globals starts at offset 1.
func New(capacity int) *Heap {
	h := &Heap{
		arena: make([]byte, capacity),
	}
	h.globalsEnd = 1
	h.tempEnd = 1
	h.editorEnd = 1
	h.scratchEnd = 1
	h.stackBase = Ptr(capacity)
	return h
}

// AddRootProvider registers a callback consulted during Compact and by
// Live. Packages that hold long-lived Ptr slots (the data/return
// stacks, directories, locals, the editor's render cache) call this
// once at construction.
func (h *Heap) AddRootProvider(rp RootProvider) {
	h.rootProviders = append(h.rootProviders, rp)
}

// Pin registers a handle in the chain so Compact will rewrite it.
func (h *Heap) Pin(ptr Ptr) *Handle {
	hd := &Handle{ptr: ptr}
	if h.pinTail == nil {
		h.pinHead = hd
		h.pinTail = hd
	} else {
		hd.prev = h.pinTail
		h.pinTail.next = hd
		h.pinTail = hd
	}
	return hd
}

// Unpin removes a handle from the chain. A caller that pins a pointer
// calls this on every exit path.
func (h *Heap) Unpin(hd *Handle) {
	if hd.prev != nil {
		hd.prev.next = hd.next
	} else {
		h.pinHead = hd.next
	}
	if hd.next != nil {
		hd.next.prev = hd.prev
	} else {
		h.pinTail = hd.prev
	}
	hd.prev = nil
	hd.next = nil
}

// freeBytes is the size of the gap between Temporaries/Scratch at the
// low end and Stack at the high end.
func (h *Heap) freeBytes() int {
	return int(h.stackBase) - int(h.scratchEnd)
}

// record header: uvarint tag, uvarint payload length, then the payload. Sizes
// are self-describing per "Invariants" — no separate length table is kept
// anywhere.
func headerSize(tag uint64, payloadLen int) int {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], tag)
	n += binary.PutUvarint(buf[:], uint64(payloadLen))
	return n
}

// Allocate reserves a new temporary record holding tag+payload and
// returns a pointer to its header. It may trigger a GC; the caller
// must have pinned any pre-existing raw pointers it wants preserved.
func (h *Heap) Allocate(tag uint64, payload []byte) (Ptr, error) {
	need := headerSize(tag, len(payload)) + len(payload)
	if h.freeBytes() < need {
		h.Compact()
		if h.freeBytes() < need {
			return nullPtr, ErrOutOfMemory
		}
	}
	p := h.tempEnd
	h.writeRecord(p, tag, payload)
	h.tempEnd += Ptr(need)
	h.editorEnd = h.tempEnd
	h.scratchEnd = h.editorEnd
	return p, nil
}

func (h *Heap) writeRecord(at Ptr, tag uint64, payload []byte) {
	buf := h.arena[at:]
	n := binary.PutUvarint(buf, tag)
	n += binary.PutUvarint(buf[n:], uint64(len(payload)))
	copy(buf[n:], payload)
}

// Record decodes the tag and payload slice stored at p. The returned
// slice aliases the arena and is only valid until the next Allocate or
// Compact call.
func (h *Heap) Record(p Ptr) (tag uint64, payload []byte, size int) {
	buf := h.arena[p:]
	tag, n1 := binary.Uvarint(buf)
	plen, n2 := binary.Uvarint(buf[n1:])
	start := n1 + n2
	return tag, buf[start : start+int(plen)], start + int(plen)
}

// Scratchpad lane: append bytes to assemble a container in place, then Commit
// turns it into a real Object.
func (h *Heap) ScratchAppend(b []byte) {
	h.scratch = append(h.scratch, b...)
}

// ScratchLen reports how many bytes are pending in the scratch lane.
func (h *Heap) ScratchLen() int {
	return len(h.scratch)
}

// ScratchReset discards the pending scratch bytes without committing.
func (h *Heap) ScratchReset() {
	h.scratch = h.scratch[:0]
}

// ScratchCommit atomically turns the assembled scratch bytes into the
// body of a new Object of the given tag.
func (h *Heap) ScratchCommit(tag uint64) (Ptr, error) {
	p, err := h.Allocate(tag, h.scratch)
	h.scratch = h.scratch[:0]
	return p, err
}

// Compact slides every live Temporaries-region record down past holes left by
// dead ones, then rewrites every pinned handle and every root slot whose value
// pointed into the moved range. Liveness is computed by an exhaustive mark
// pass over the stack/locals/directories/pinned handles/return stack/editor
// cache.
func (h *Heap) Compact() {
	live := h.mark()

	reloc := make(map[Ptr]Ptr, len(live))
	newArena := make([]byte, len(h.arena))
	copy(newArena, h.arena[:h.globalsEnd])
	write := h.globalsEnd

	// Walk Temporaries in address order, copying only live records.
	for p := h.globalsEnd; p < h.tempEnd; {
		_, _, size := h.Record(p)
		if live[p] {
			copy(newArena[write:], h.arena[p:p+Ptr(size)])
			reloc[p] = write
			write += Ptr(size)
		}
		p += Ptr(size)
	}

	h.arena = newArena
	h.tempEnd = write
	h.editorEnd = write
	h.scratchEnd = write

	h.rewrite(reloc)
}

// mark computes the set of live Temporaries-region offsets by scanning every
// pinned handle and every registered root provider. Scan is exhaustive, not
// incremental.
func (h *Heap) mark() map[Ptr]bool {
	live := make(map[Ptr]bool)
	for hd := h.pinHead; hd != nil; hd = hd.next {
		if hd.ptr >= h.globalsEnd && hd.ptr < h.tempEnd {
			live[hd.ptr] = true
		}
	}
	for _, rp := range h.rootProviders {
		for _, slot := range rp() {
			if *slot >= h.globalsEnd && *slot < h.tempEnd {
				live[*slot] = true
			}
		}
	}
	return live
}

func (h *Heap) rewrite(reloc map[Ptr]Ptr) {
	for hd := h.pinHead; hd != nil; hd = hd.next {
		if np, ok := reloc[hd.ptr]; ok {
			hd.ptr = np
		}
	}
	for _, rp := range h.rootProviders {
		for _, slot := range rp() {
			if np, ok := reloc[*slot]; ok {
				*slot = np
			}
		}
	}
}

// StackBase returns the high-water mark below which Stack/Locals/
// Directories/Returns grow; used by eval to size the data/return
// stacks without colliding with Temporaries.
func (h *Heap) StackBase() Ptr { return h.stackBase }

// Cap returns the arena's total byte capacity.
func (h *Heap) Cap() int { return len(h.arena) }

// Used returns the number of bytes currently occupied by Temporaries.
func (h *Heap) Used() int { return int(h.tempEnd - h.globalsEnd) }
