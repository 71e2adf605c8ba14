package object

import (
	"encoding/binary"

	"github.com/hpcalc/rpl48/heap"
)

// List, Array, Expression, and Program all embed their children by value in
// the body. List/Expression/Program share the plain encodeChildren layout;
// Array additionally prefixes row/column dimensions so element-wise and matrix
// ops know its shape.

func NewList(h *heap.Heap, elems []Object) (Object, error) {
	return alloc(h, TagList, encodeChildren(elems))
}

func ListElements(o Object) ([]Object, error) {
	return decodeChildren(o.H, o.Payload())
}

func ListLen(o Object) int {
	return childCount(o.Payload())
}

func NewExpression(h *heap.Heap, postfix []Object) (Object, error) {
	return alloc(h, TagExpression, encodeChildren(postfix))
}

func ExpressionBody(o Object) ([]Object, error) {
	return decodeChildren(o.H, o.Payload())
}

func ExpressionLen(o Object) int {
	return childCount(o.Payload())
}

func NewProgram(h *heap.Heap, body []Object) (Object, error) {
	return alloc(h, TagProgram, encodeChildren(body))
}

func ProgramBody(o Object) ([]Object, error) {
	return decodeChildren(o.H, o.Payload())
}

func ProgramLen(o Object) int {
	return childCount(o.Payload())
}

// NewArray builds a rows×cols matrix (rows==1 for a row vector) in
// row-major order. len(elems) must equal rows*cols.
func NewArray(h *heap.Heap, rows, cols int, elems []Object) (Object, error) {
	buf := putUvarint(nil, uint64(rows))
	buf = putUvarint(buf, uint64(cols))
	buf = append(buf, encodeChildren(elems)...)
	return alloc(h, TagArray, buf)
}

// ArrayShape returns the row and column count of o.
func ArrayShape(o Object) (rows, cols int) {
	p := o.Payload()
	r, n := binary.Uvarint(p)
	c, _ := binary.Uvarint(p[n:])
	return int(r), int(c)
}

// ArrayElements decodes the row-major element sequence.
func ArrayElements(o Object) ([]Object, error) {
	p := o.Payload()
	_, n1 := binary.Uvarint(p)
	_, n2 := binary.Uvarint(p[n1:])
	return decodeChildren(o.H, p[n1+n2:])
}

// IsVector reports whether o is a one-row or one-column array.
func IsVector(o Object) bool {
	rows, cols := ArrayShape(o)
	return rows == 1 || cols == 1
}
