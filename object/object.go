/*
 * rpl48 - Core Object type.
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

package object

import (
	"bytes"
	"encoding/binary"

	"github.com/hpcalc/rpl48/heap"
)

// Object is a handle onto one heap record: a heap plus the pointer to its
// header. Objects are immutable after construction; any "update" allocates a
// new record.
type Object struct {
	H   *heap.Heap
	Ptr heap.Ptr
}

// Nil reports whether the handle names no object (a null pointer).
func (o Object) Nil() bool { return o.H == nil || o.Ptr == 0 }

// Tag returns the object's type tag.
func (o Object) Tag() Tag {
	tag, _, _ := o.H.Record(o.Ptr)
	return Tag(tag)
}

// Payload returns the raw payload bytes. The slice aliases the heap
// arena and is invalidated by the next Allocate/Compact.
func (o Object) Payload() []byte {
	_, payload, _ := o.H.Record(o.Ptr)
	return payload
}

// Size returns the total on-heap byte size of the record, header
// included.
func (o Object) Size() int {
	_, _, size := o.H.Record(o.Ptr)
	return size
}

// Equal reports structural equality: same tag and same payload bytes. Two
// Objects with equal pointers are trivially equal (identity implies equality,
// ); different pointers can still be structurally equal.
func (o Object) Equal(other Object) bool {
	if o.H != other.H {
		return false
	}
	if o.Ptr == other.Ptr {
		return true
	}
	ta, pa, _ := o.H.Record(o.Ptr)
	tb, pb, _ := other.H.Record(other.Ptr)
	return ta == tb && bytes.Equal(pa, pb)
}

// alloc is a small convenience wrapper shared by every constructor
// below.
func alloc(h *heap.Heap, tag Tag, payload []byte) (Object, error) {
	p, err := h.Allocate(uint64(tag), payload)
	if err != nil {
		return Object{}, err
	}
	return Object{H: h, Ptr: p}, nil
}

// putUvarint appends n as a uvarint to buf and returns the result.
func putUvarint(buf []byte, n uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	k := binary.PutUvarint(tmp[:], n)
	return append(buf, tmp[:k]...)
}

// encodeChildren serializes a sequence of child Objects as a length-prefixed
// list of (tag, payload) pairs — the representation shared by list, array,
// expression, and program bodies.
func encodeChildren(children []Object) []byte {
	buf := putUvarint(nil, uint64(len(children)))
	for _, c := range children {
		tag, payload, _ := c.H.Record(c.Ptr)
		buf = putUvarint(buf, uint64(tag))
		buf = putUvarint(buf, uint64(len(payload)))
		buf = append(buf, payload...)
	}
	return buf
}

// decodeChildren parses a body produced by encodeChildren back into
// freshly-allocated child Objects on h (containers own copies of their
// children's bytes, not references, so decoding always allocates).
func decodeChildren(h *heap.Heap, body []byte) ([]Object, error) {
	n, k := binary.Uvarint(body)
	body = body[k:]
	children := make([]Object, 0, n)
	for i := uint64(0); i < n; i++ {
		tag, k1 := binary.Uvarint(body)
		body = body[k1:]
		plen, k2 := binary.Uvarint(body)
		body = body[k2:]
		payload := body[:plen]
		body = body[plen:]
		c, err := alloc(h, Tag(tag), payload)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, nil
}

// childCount reads only the leading count out of an encoded children body,
// without allocating, for Len-style queries.
func childCount(body []byte) int {
	n, _ := binary.Uvarint(body)
	return int(n)
}
