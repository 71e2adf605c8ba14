package arith

import (
	"testing"

	"github.com/hpcalc/rpl48/object"
)

func TestLogicalAndOrXorOnBasedIntegers(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewBased(h, 0xF0, 16, 8)
	y, _ := object.NewBased(h, 0x0F, 16, 8)

	and, err := Eval(h, nil, And, x, y)
	if err != nil {
		t.Fatalf("Eval And: %v", err)
	}
	if m, _, _ := object.BasedValue(and); m != 0x00 {
		t.Fatalf("want 0x00, got %#x", m)
	}

	or, err := Eval(h, nil, Or, x, y)
	if err != nil {
		t.Fatalf("Eval Or: %v", err)
	}
	if m, _, _ := object.BasedValue(or); m != 0xFF {
		t.Fatalf("want 0xFF, got %#x", m)
	}

	xor, err := Eval(h, nil, Xor, x, y)
	if err != nil {
		t.Fatalf("Eval Xor: %v", err)
	}
	if m, _, _ := object.BasedValue(xor); m != 0xFF {
		t.Fatalf("want 0xFF, got %#x", m)
	}
}

func TestLogicalNotMasksToWordSize(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewBased(h, 0x0F, 16, 8)

	r, err := Eval(h, nil, Not, x, x)
	if err != nil {
		t.Fatalf("Eval Not: %v", err)
	}
	if m, _, bits := object.BasedValue(r); m != 0xF0 || bits != 8 {
		t.Fatalf("want 0xF0 over 8 bits, got %#x over %d bits", m, bits)
	}
}

func TestLogicalShiftsOnBasedIntegers(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewBased(h, 0x01, 16, 8)
	n, _ := object.NewInteger(h, 4)

	shl, err := Eval(h, nil, Shl, x, n)
	if err != nil {
		t.Fatalf("Eval Shl: %v", err)
	}
	if m, _, _ := object.BasedValue(shl); m != 0x10 {
		t.Fatalf("want 0x10, got %#x", m)
	}

	y, _ := object.NewBased(h, 0x80, 16, 8)
	shr, err := Eval(h, nil, Shr, y, n)
	if err != nil {
		t.Fatalf("Eval Shr: %v", err)
	}
	if m, _, _ := object.BasedValue(shr); m != 0x08 {
		t.Fatalf("want 0x08, got %#x", m)
	}
}

func TestLogicalAndRejectsPlainIntegers(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewInteger(h, 5)
	y, _ := object.NewInteger(h, 3)

	if _, err := Eval(h, nil, And, x, y); err == nil {
		t.Fatalf("want a type error for AND on plain integers")
	}
}
