package eval

import (
	"testing"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

type testEnv struct{ vars map[string]object.Object }

func (e testEnv) Lookup(name string) (object.Object, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	h := heap.New(1 << 16)
	return NewMachine(h, testEnv{vars: map[string]object.Object{}}, nil, nil)
}

func cmdObj(t *testing.T, m *Machine, op Opcode) object.Object {
	t.Helper()
	o, err := object.NewCommand(m.H, uint16(op))
	if err != nil {
		t.Fatalf("NewCommand: %v", err)
	}
	return o
}

func TestAddTwoIntegers(t *testing.T) {
	m := newTestMachine(t)
	one, _ := object.NewInteger(m.H, 1)
	two, _ := object.NewInteger(m.H, 2)
	add := cmdObj(t, m, OpAdd)

	prog, err := object.NewProgram(m.H, []object.Object{one, two, add})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if err := m.Eval(prog); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	top, ok := m.Pop()
	if !ok {
		t.Fatalf("expected a result on the stack")
	}
	if object.IntegerValue(top) != 3 {
		t.Fatalf("want 3, got %v", object.IntegerValue(top))
	}
	if m.Depth() != 0 {
		t.Fatalf("want empty stack after pop, depth=%d", m.Depth())
	}
}

func TestSymbolLookupPushesUnboundAsIs(t *testing.T) {
	m := newTestMachine(t)
	sym, _ := object.NewSymbol(m.H, "X")
	if err := m.Eval(sym); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	top, ok := m.Pop()
	if !ok || top.Tag() != object.TagSymbol {
		t.Fatalf("want unbound symbol pushed as-is")
	}
}

func TestDupSwapDrop(t *testing.T) {
	m := newTestMachine(t)
	one, _ := object.NewInteger(m.H, 1)
	two, _ := object.NewInteger(m.H, 2)
	dup := cmdObj(t, m, OpDup)
	swap := cmdObj(t, m, OpSwap)
	drop := cmdObj(t, m, OpDrop)

	prog, _ := object.NewProgram(m.H, []object.Object{one, two, swap, dup, drop})
	if err := m.Eval(prog); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	// Stack started [1 2], SWAP -> [2 1], DUP -> [2 1 1], DROP -> [2 1].
	if m.Depth() != 2 {
		t.Fatalf("want depth 2, got %d", m.Depth())
	}
	top, _ := m.Pop()
	if object.IntegerValue(top) != 1 {
		t.Fatalf("want top==1, got %v", object.IntegerValue(top))
	}
	bottom, _ := m.Pop()
	if object.IntegerValue(bottom) != 2 {
		t.Fatalf("want bottom==2, got %v", object.IntegerValue(bottom))
	}
}

type countingIrq struct{ exits int }

func (c *countingIrq) ExitKeyPending() bool {
	c.exits++
	return c.exits > 2
}
func (c *countingIrq) PowerSampleDue() bool { return false }
func (c *countingIrq) LowBattery() bool     { return false }

func TestInterruptAbortsRun(t *testing.T) {
	h := heap.New(1 << 16)
	irq := &countingIrq{}
	m := NewMachine(h, testEnv{vars: map[string]object.Object{}}, nil, irq)

	one, _ := object.NewInteger(m.H, 1)
	body := make([]object.Object, 0, 10)
	for i := 0; i < 10; i++ {
		body = append(body, one)
	}
	prog, _ := object.NewProgram(m.H, body)

	err := m.Eval(prog)
	if err == nil {
		t.Fatalf("want an interrupt error")
	}
	if !m.Aborted() {
		t.Fatalf("want Aborted() true")
	}
}

func TestLogicalAndOnBasedIntegers(t *testing.T) {
	m := newTestMachine(t)
	x, _ := object.NewBased(m.H, 0xF0, 16, 8)
	y, _ := object.NewBased(m.H, 0x3C, 16, 8)
	and := cmdObj(t, m, OpAnd)

	prog, err := object.NewProgram(m.H, []object.Object{x, y, and})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if err := m.Eval(prog); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	top, ok := m.Pop()
	if !ok {
		t.Fatalf("expected a result on the stack")
	}
	if magnitude, _, _ := object.BasedValue(top); magnitude != 0x30 {
		t.Fatalf("want 0x30, got %#x", magnitude)
	}
}

func TestLogicalNotUnaryOpcode(t *testing.T) {
	m := newTestMachine(t)
	x, _ := object.NewBased(m.H, 0x0F, 16, 8)
	not := cmdObj(t, m, OpNot)

	prog, err := object.NewProgram(m.H, []object.Object{x, not})
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}
	if err := m.Eval(prog); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	top, ok := m.Pop()
	if !ok {
		t.Fatalf("expected a result on the stack")
	}
	if magnitude, _, _ := object.BasedValue(top); magnitude != 0xF0 {
		t.Fatalf("want 0xF0, got %#x", magnitude)
	}
}
