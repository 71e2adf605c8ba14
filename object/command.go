package object

import (
	"encoding/binary"

	"github.com/hpcalc/rpl48/heap"
)

// Command: a primitive operator identified entirely by a numeric
// opcode, no operand payload beyond that opcode (Glossary "Command").
// The opcode is a key into whichever dispatch table (eval, arith,
// expr) needs to act on it; object itself assigns no meaning to it.

func NewCommand(h *heap.Heap, opcode uint16) (Object, error) {
	buf := putUvarint(nil, uint64(opcode))
	return alloc(h, TagCommand, buf)
}

func CommandOpcode(o Object) uint16 {
	v, _ := binary.Uvarint(o.Payload())
	return uint16(v)
}
