package object

import (
	"encoding/binary"

	"github.com/hpcalc/rpl48/heap"
)

// Grob (1-bpp bitmap) and Pixmap (its 16-bpp color analog) both store
// width, height, then packed pixel bytes (Glossary "Grob"/"pixmap").

func NewGrob(h *heap.Heap, width, height int, bits []byte) (Object, error) {
	return newRaster(h, TagGrob, width, height, bits)
}

func NewPixmap(h *heap.Heap, width, height int, pixels []byte) (Object, error) {
	return newRaster(h, TagPixmap, width, height, pixels)
}

func newRaster(h *heap.Heap, tag Tag, width, height int, data []byte) (Object, error) {
	buf := putUvarint(nil, uint64(width))
	buf = putUvarint(buf, uint64(height))
	buf = append(buf, data...)
	return alloc(h, tag, buf)
}

// RasterShape returns width, height, and the pixel-data slice.
func RasterShape(o Object) (width, height int, data []byte) {
	p := o.Payload()
	w, n1 := binary.Uvarint(p)
	hgt, n2 := binary.Uvarint(p[n1:])
	return int(w), int(hgt), p[n1+n2:]
}
