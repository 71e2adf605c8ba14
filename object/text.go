package object

import "github.com/hpcalc/rpl48/heap"

// Symbol (identifier) and Text (string) both store raw UTF-8 bytes as their
// entire payload.

func NewSymbol(h *heap.Heap, name string) (Object, error) {
	return alloc(h, TagSymbol, []byte(name))
}

func SymbolName(o Object) string {
	return string(o.Payload())
}

func NewText(h *heap.Heap, s string) (Object, error) {
	return alloc(h, TagText, []byte(s))
}

func TextValue(o Object) string {
	return string(o.Payload())
}
