package render

import (
	"testing"

	"github.com/hpcalc/rpl48/arith"
	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

func newHeap(t *testing.T) *heap.Heap {
	t.Helper()
	h := heap.New(1 << 16)
	if h == nil {
		t.Fatalf("heap.New returned nil")
	}
	return h
}

func TestTextInteger(t *testing.T) {
	h := newHeap(t)
	o, err := object.NewInteger(h, -42)
	if err != nil {
		t.Fatalf("NewInteger: %v", err)
	}
	got := String(settings.New(), ModeStack, o)
	if got != "-42" {
		t.Errorf("String(-42) = %q, want %q", got, "-42")
	}
}

func TestTextBased(t *testing.T) {
	h := newHeap(t)
	o, err := object.NewBased(h, 255, 16, 64)
	if err != nil {
		t.Fatalf("NewBased: %v", err)
	}
	got := String(settings.New(), ModeStack, o)
	if got != "#FFh" {
		t.Errorf("String(based) = %q, want %q", got, "#FFh")
	}
}

func TestTextList(t *testing.T) {
	h := newHeap(t)
	a, _ := object.NewInteger(h, 1)
	b, _ := object.NewInteger(h, 2)
	lst, err := object.NewList(h, []object.Object{a, b})
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	got := String(settings.New(), ModeStack, lst)
	if got != "{ 1 2 }" {
		t.Errorf("String(list) = %q, want %q", got, "{ 1 2 }")
	}
}

func TestTextStringEditorModeQuotes(t *testing.T) {
	h := newHeap(t)
	o, err := object.NewText(h, "hi")
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	if got := String(settings.New(), ModeStack, o); got != "hi" {
		t.Errorf("String(text, stack) = %q, want %q", got, "hi")
	}
	if got := String(settings.New(), ModeEditor, o); got != `"hi"` {
		t.Errorf("String(text, editor) = %q, want %q", got, `"hi"`)
	}
}

func TestRenderExpressionNoPanicWithoutCommand(t *testing.T) {
	h := newHeap(t)
	st := settings.New()
	x, _ := object.NewSymbol(h, "X")
	one, _ := object.NewInteger(h, 1)
	sum, err := object.NewExpression(h, []object.Object{x, one})
	if err != nil {
		t.Fatalf("NewExpression: %v", err)
	}
	// A malformed body (no trailing command) must render, not panic.
	_ = String(st, ModeStack, sum)

	if arith.Add.String() == "" {
		t.Errorf("arith.Add.String() empty")
	}
}

func TestDigitsOfNilSettings(t *testing.T) {
	if d := digitsOf(nil); d != 12 {
		t.Errorf("digitsOf(nil) = %d, want 12", d)
	}
}
