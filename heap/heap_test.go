package heap

import "testing"

func TestAllocateRecord(t *testing.T) {
	h := New(4096)

	p, err := h.Allocate(7, []byte("hello"))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	tag, payload, _ := h.Record(p)
	if tag != 7 {
		t.Fatalf("tag = %d, want 7", tag)
	}
	if string(payload) != "hello" {
		t.Fatalf("payload = %q, want %q", payload, "hello")
	}
}

func TestPinSurvivesCompact(t *testing.T) {
	h := New(4096)

	// Allocate a dead record first so there is a hole to compact away.
	if _, err := h.Allocate(1, []byte("dead")); err != nil {
		t.Fatalf("Allocate dead: %v", err)
	}

	p, err := h.Allocate(2, []byte("alive"))
	if err != nil {
		t.Fatalf("Allocate alive: %v", err)
	}
	hd := h.Pin(p)
	defer h.Unpin(hd)

	h.Compact()

	tag, payload, _ := h.Record(hd.Ptr())
	if tag != 2 || string(payload) != "alive" {
		t.Fatalf("after compact got tag=%d payload=%q, want tag=2 payload=alive", tag, payload)
	}
}

func TestRootProviderSurvivesCompact(t *testing.T) {
	h := New(4096)

	if _, err := h.Allocate(1, []byte("dead")); err != nil {
		t.Fatalf("Allocate dead: %v", err)
	}
	p, err := h.Allocate(2, []byte("root-held"))
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	slot := p
	h.AddRootProvider(func() []*Ptr { return []*Ptr{&slot} })

	h.Compact()

	tag, payload, _ := h.Record(slot)
	if tag != 2 || string(payload) != "root-held" {
		t.Fatalf("after compact got tag=%d payload=%q", tag, payload)
	}
}

func TestOutOfMemory(t *testing.T) {
	h := New(16)
	for i := 0; i < 100; i++ {
		p, err := h.Allocate(1, make([]byte, 8))
		if err != nil {
			if err != ErrOutOfMemory {
				t.Fatalf("unexpected error: %v", err)
			}
			return
		}
		// Keep every record live so compaction cannot reclaim it.
		h.Pin(p)
	}
	t.Fatal("expected ErrOutOfMemory")
}

func TestScratchpadCommit(t *testing.T) {
	h := New(4096)
	h.ScratchAppend([]byte("ab"))
	h.ScratchAppend([]byte("cd"))
	if h.ScratchLen() != 4 {
		t.Fatalf("ScratchLen = %d, want 4", h.ScratchLen())
	}
	p, err := h.ScratchCommit(9)
	if err != nil {
		t.Fatalf("ScratchCommit: %v", err)
	}
	tag, payload, _ := h.Record(p)
	if tag != 9 || string(payload) != "abcd" {
		t.Fatalf("got tag=%d payload=%q", tag, payload)
	}
	if h.ScratchLen() != 0 {
		t.Fatalf("scratch not reset after commit")
	}
}
