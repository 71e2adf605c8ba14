/*
 * rpl48 - Host collaborator interfaces.
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

// Package hostio declares the collaborator contracts that sit outside the
// core: display, fonts, key queue, clock, filesystem, power, and persisted
// state. The core never imports a concrete implementation of any of these;
// it is handed one at startup and talks to peripherals only through an
// interface.
package hostio

import "time"

// Rect is a pixel rectangle used by Display.Clip.
type Rect struct {
	X, Y, W, H int
}

// Display is the fixed-size framebuffer contract.
type Display interface {
	Fill(r Rect, color int)
	Text(x, y int, utf8 string, font int)
	Glyph(x, y int, codepoint rune, font int)
	Copy(src Grob, x, y int)
	Clip(r Rect)
	Invert(r Rect)
	Width() int
	Height() int
}

// Grob is an opaque raster surface produced by the graphical renderer
// and blitted by Display.Copy. The core never reads pixels back except
// for screenshots, handled by the host.
type Grob interface {
	Width() int
	Height() int
}

// FontLibrary resolves a per-role font ID to glyph metrics.
type FontLibrary interface {
	Width(font int, codepoint rune) int
	Height(font int) int
}

// Font roles selected by ID.
const (
	FontHeader = iota
	FontEditor
	FontStack
	FontResult
	FontHelpTitle
)

// KeyEvent carries one key transition plus the down-set.
type KeyEvent struct {
	Code      int
	Released  bool
	Modifiers uint32
	DownSet   map[int]bool
}

// KeyQueue is the non-blocking/blocking key source.
type KeyQueue interface {
	Poll() (KeyEvent, bool)
	Get(timeout time.Duration) (KeyEvent, bool)
	Flush()
}

// Clock is the real-time clock collaborator.
type Clock interface {
	Read() (t time.Time, dt time.Duration)
	Write(t time.Time, dt time.Duration)
}

// FileSystem is the single-open-file adapter.
type FileSystem interface {
	Open(path string, write bool) (File, error)
	Unlink(path string) error
	Find(pattern string) ([]string, error)
}

// File is the handle returned by FileSystem.Open.
type File interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}

// Power is the battery/voltage collaborator. The evaluator does not poll it
// directly; its interrupt check goes through eval.InterruptSource.
type Power interface {
	VoltageMV() int
	OnUSB() bool
	Off()
}

// StateMagic marks a valid persisted-state header.
const StateMagic uint32 = 0x05121968

// PersistedState is the backup-RAM-or-file key/value table.
type PersistedState interface {
	Load() (map[string]string, error)
	Save(map[string]string) error
}

// CommandLineSurface is the programmatic insert/commit entry point used by
// soft-key menus and Enter.
type CommandLineSurface interface {
	InsertAtCursor(text string)
	CommitAndParse() error
}
