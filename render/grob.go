/*
 * rpl48 - Graphical renderer.
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

package render

import (
	"time"

	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

// FontSize is a graphical renderer's font rung; Draw retries at progressively
// smaller sizes when the budget is exhausted before a rung ever fits the
// available width.
type FontSize int

const (
	FontLarge FontSize = iota
	FontMedium
	FontSmall
	fontSizeCount
)

func (f FontSize) glyphWidth() int {
	switch f {
	case FontLarge:
		return 8
	case FontMedium:
		return 6
	default:
		return 4
	}
}

func (f FontSize) glyphHeight() int {
	switch f {
	case FontLarge:
		return 12
	case FontMedium:
		return 9
	default:
		return 6
	}
}

// Budget bounds the graphical renderer's wall-clock cost; Draw returns a null
// (zero-valued, empty) grob rather than a partially rendered one once the
// budget is spent.
type Budget struct {
	Deadline time.Time
}

func (b Budget) expired(now time.Time) bool {
	return !b.Deadline.IsZero() && !now.Before(b.Deadline)
}

// Draw rasterizes the text form of o into a monochrome grob no wider than
// maxWidth pixels, downgrading font size and retrying when the rendered width
// would overflow, and returning the zero Object once budget is exhausted.
func Draw(h *heap.Heap, st *settings.Registry, mode Mode, o object.Object, maxWidth, maxHeight int, budget Budget, now time.Time) (object.Object, error) {
	text := String(st, mode, o)
	for size := FontLarge; size < fontSizeCount; size++ {
		if budget.expired(now) {
			return object.Object{}, nil
		}
		w := len(text) * size.glyphWidth()
		ht := size.glyphHeight()
		if w <= maxWidth && ht <= maxHeight {
			return rasterize(h, text, size, w, ht)
		}
	}
	// Even the smallest font overflows; clip instead of failing.
	size := FontSize(fontSizeCount - 1)
	ht := size.glyphHeight()
	maxChars := maxWidth / size.glyphWidth()
	if maxChars < len(text) && maxChars > 0 {
		text = text[:maxChars]
	}
	return rasterize(h, text, size, len(text)*size.glyphWidth(), ht)
}

// rasterize builds a 1-bit-per-pixel bitmap by stamping each glyph
// cell as a solid block; this is a placeholder font engine — it
// exists to give the grob surface real pixel content with the right
// shape contract, not to render legible glyphs.
func rasterize(h *heap.Heap, text string, size FontSize, width, height int) (object.Object, error) {
	if width <= 0 || height <= 0 {
		return object.NewGrob(h, 0, 0, nil)
	}
	stride := (width + 7) / 8
	data := make([]byte, stride*height)
	gw := size.glyphWidth()
	for i := range text {
		if text[i] == ' ' {
			continue
		}
		x0 := i * gw
		for y := 1; y < height-1; y++ {
			for x := x0 + 1; x < x0+gw-1 && x < width; x++ {
				data[y*stride+x/8] |= 1 << uint(x%8)
			}
		}
	}
	return object.NewGrob(h, width, height, data)
}
