package directory

import (
	"testing"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

func TestNewStackStartsAtHome(t *testing.T) {
	s := NewStack(heap.New(1 << 16))
	if s.Depth() != 1 {
		t.Fatalf("want depth 1, got %d", s.Depth())
	}
	if s.Path() != "HOME" {
		t.Fatalf("want path HOME, got %q", s.Path())
	}
}

func TestStoreAndLookup(t *testing.T) {
	h := heap.New(1 << 16)
	s := NewStack(h)
	v, err := object.NewInteger(h, 42)
	if err != nil {
		t.Fatalf("NewInteger: %v", err)
	}
	s.Store("X", v)

	got, ok := s.Lookup("X")
	if !ok {
		t.Fatalf("want X to be found")
	}
	if object.IntegerValue(got) != 42 {
		t.Fatalf("want 42, got %v", object.IntegerValue(got))
	}

	if _, ok := s.Lookup("NOPE"); ok {
		t.Fatalf("want NOPE to be unbound")
	}
}

func TestRecallIsLocalFrameOnly(t *testing.T) {
	h := heap.New(1 << 16)
	s := NewStack(h)
	v, _ := object.NewInteger(h, 1)
	s.Store("X", v)
	s.Enter("SUB")

	if _, ok := s.Recall("X"); ok {
		t.Fatalf("Recall should not walk up from a subdirectory")
	}
	if _, ok := s.Lookup("X"); !ok {
		t.Fatalf("Lookup should walk up and find X in HOME")
	}
}

func TestEnterAndUpdir(t *testing.T) {
	s := NewStack(heap.New(1 << 16))
	s.Enter("FOO")
	s.Enter("BAR")
	if s.Depth() != 3 {
		t.Fatalf("want depth 3, got %d", s.Depth())
	}
	if s.Path() != "HOME/FOO/BAR" {
		t.Fatalf("want HOME/FOO/BAR, got %q", s.Path())
	}
	s.Updir()
	if s.Path() != "HOME/FOO" {
		t.Fatalf("want HOME/FOO after Updir, got %q", s.Path())
	}
}

func TestUpdirAtRootIsNoOp(t *testing.T) {
	s := NewStack(heap.New(1 << 16))
	s.Updir()
	if s.Depth() != 1 {
		t.Fatalf("want depth to stay at 1, got %d", s.Depth())
	}
}

func TestPurgeRemovesFromCurrentFrameOnly(t *testing.T) {
	h := heap.New(1 << 16)
	s := NewStack(h)
	v, _ := object.NewInteger(h, 1)
	s.Store("X", v)
	s.Enter("SUB")
	s.Store("X", v)
	s.Purge("X")
	if _, ok := s.Recall("X"); ok {
		t.Fatalf("want X purged from SUB")
	}
	if _, ok := s.Lookup("X"); !ok {
		t.Fatalf("want HOME's X to survive a purge in SUB")
	}
	s.Updir()
	s.Purge("X")
	if _, ok := s.Lookup("X"); ok {
		t.Fatalf("want X purged")
	}
}

func TestStoreKeyedAndRecallKeyedWalksChain(t *testing.T) {
	h := heap.New(1 << 16)
	s := NewStack(h)
	v, _ := object.NewInteger(h, 9)
	s.StoreKeyed(5, v)
	s.Enter("SUB")

	got, ok := s.RecallKeyed(5)
	if !ok {
		t.Fatalf("want keyed value 5 to be found by walking the chain")
	}
	if object.IntegerValue(got) != 9 {
		t.Fatalf("want 9, got %v", object.IntegerValue(got))
	}
}

func TestNamesListsCurrentFrameOnly(t *testing.T) {
	h := heap.New(1 << 16)
	s := NewStack(h)
	v, _ := object.NewInteger(h, 1)
	s.Store("X", v)
	s.Enter("SUB")
	s.Store("Y", v)

	names := s.Names()
	if len(names) != 1 || names[0] != "Y" {
		t.Fatalf("want [Y] for the current frame, got %v", names)
	}
}
