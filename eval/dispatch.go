package eval

import (
	"github.com/hpcalc/rpl48/arith"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// CommandFunc implements one primitive operator's declared-arity stack-
// consuming behavior.
type CommandFunc func(m *Machine) error

// Opcode identifies a primitive operator, the payload of a Command
// object (object.CommandOpcode). The registry below is the eval
// package's own opcode-keyed dispatch table, generalized from a fixed
// instruction set to RPL's open primitive set.
type Opcode uint16

const (
	OpAdd Opcode = iota + 1
	OpSub
	OpMul
	OpDiv
	OpMod
	OpRem
	OpPow
	OpNeg
	OpInv
	OpSquare
	OpDup
	OpDrop
	OpSwap
	OpRot
	OpOver
	OpEval
	OpDepth
	OpClearStack
	OpAnd
	OpOr
	OpXor
	OpNot
	OpShl
	OpShr
)

var commands = map[Opcode]CommandFunc{
	OpAdd:        binaryArith(arith.Add),
	OpSub:        binaryArith(arith.Sub),
	OpMul:        binaryArith(arith.Mul),
	OpDiv:        binaryArith(arith.Div),
	OpMod:        binaryArith(arith.Mod),
	OpRem:        binaryArith(arith.Rem),
	OpPow:        binaryArith(arith.Pow),
	OpNeg:        unaryNeg,
	OpInv:        unaryInv,
	OpSquare:     unarySquare,
	OpDup:        cmdDup,
	OpDrop:       cmdDrop,
	OpSwap:       cmdSwap,
	OpRot:        cmdRot,
	OpOver:       cmdOver,
	OpEval:       cmdEval,
	OpDepth:      cmdDepthPush,
	OpClearStack: cmdClearStack,
	OpAnd:        binaryArith(arith.And),
	OpOr:         binaryArith(arith.Or),
	OpXor:        binaryArith(arith.Xor),
	OpNot:        unaryNot,
	OpShl:        binaryArith(arith.Shl),
	OpShr:        binaryArith(arith.Shr),
}

// RegisterCommand lets host code (command, help) extend the primitive
// set without touching eval's own table.
func RegisterCommand(op Opcode, fn CommandFunc) {
	commands[op] = fn
}

func (m *Machine) execCommand(obj object.Object) error {
	op := Opcode(object.CommandOpcode(obj))
	fn, ok := commands[op]
	if !ok {
		return rplerr.New(rplerr.Internal, "", "unknown command opcode %d", op)
	}
	return fn(m)
}

func binaryArith(op arith.Op) CommandFunc {
	return func(m *Machine) error {
		y, ok := m.Pop()
		if !ok {
			return rplerr.New(rplerr.Internal, op.String(), "too few arguments")
		}
		x, ok := m.Pop()
		if !ok {
			m.Push(y)
			return rplerr.New(rplerr.Internal, op.String(), "too few arguments")
		}
		r, err := arith.Eval(m.H, m.Arit, op, x, y)
		if err != nil {
			return err
		}
		m.Push(r)
		return nil
	}
}

func unaryNeg(m *Machine) error {
	x, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "NEG", "too few arguments")
	}
	negOne, err := object.NewInteger(m.H, -1)
	if err != nil {
		return err
	}
	r, err := arith.Eval(m.H, m.Arit, arith.Mul, x, negOne)
	if err != nil {
		return err
	}
	m.Push(r)
	return nil
}

func unaryInv(m *Machine) error {
	x, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "INV", "too few arguments")
	}
	one, err := object.NewInteger(m.H, 1)
	if err != nil {
		return err
	}
	r, err := arith.Eval(m.H, m.Arit, arith.Div, one, x)
	if err != nil {
		return err
	}
	m.Push(r)
	return nil
}

// unarySquare implements expr's "x*x -> x squared" simplification
// rule when it falls through to a real evaluation (the symbol was
// finally bound to a concrete value).
func unarySquare(m *Machine) error {
	x, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "SQ", "too few arguments")
	}
	r, err := arith.Eval(m.H, m.Arit, arith.Mul, x, x)
	if err != nil {
		return err
	}
	m.Push(r)
	return nil
}

// unaryNot complements a based integer's bits in place, calling arith's
// logical bundle with both operands set to x the same way unarySquare
// reuses Mul(x, x).
func unaryNot(m *Machine) error {
	x, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "NOT", "too few arguments")
	}
	r, err := arith.Eval(m.H, m.Arit, arith.Not, x, x)
	if err != nil {
		return err
	}
	m.Push(r)
	return nil
}

func cmdDup(m *Machine) error {
	x, ok := m.Peek(0)
	if !ok {
		return rplerr.New(rplerr.Internal, "DUP", "empty stack")
	}
	m.Push(x)
	return nil
}

func cmdDrop(m *Machine) error {
	if _, ok := m.Pop(); !ok {
		return rplerr.New(rplerr.Internal, "DROP", "empty stack")
	}
	return nil
}

func cmdSwap(m *Machine) error {
	y, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "SWAP", "too few arguments")
	}
	x, ok := m.Pop()
	if !ok {
		m.Push(y)
		return rplerr.New(rplerr.Internal, "SWAP", "too few arguments")
	}
	m.Push(y)
	m.Push(x)
	return nil
}

func cmdRot(m *Machine) error {
	c, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "ROT", "too few arguments")
	}
	b, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "ROT", "too few arguments")
	}
	a, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "ROT", "too few arguments")
	}
	m.Push(b)
	m.Push(c)
	m.Push(a)
	return nil
}

func cmdOver(m *Machine) error {
	x, ok := m.Peek(1)
	if !ok {
		return rplerr.New(rplerr.Internal, "OVER", "too few arguments")
	}
	m.Push(x)
	return nil
}

// cmdEval re-enters evaluation on the popped top of stack — EVAL applied to a
// program runs it; applied to a data value it is a no-op push, matching
// evaluation rules applied recursively.
func cmdEval(m *Machine) error {
	x, ok := m.Pop()
	if !ok {
		return rplerr.New(rplerr.Internal, "EVAL", "empty stack")
	}
	f, err := newFrame(x)
	if err != nil {
		return err
	}
	m.frames = append(m.frames, f)
	return nil
}

func cmdDepthPush(m *Machine) error {
	n, err := object.NewInteger(m.H, int64(m.Depth()))
	if err != nil {
		return err
	}
	m.Push(n)
	return nil
}

func cmdClearStack(m *Machine) error {
	m.data = m.data[:0]
	return nil
}
