package parser

import (
	"testing"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	h := heap.New(1 << 16)
	return New(h)
}

func TestParseInteger(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("42")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagInteger || object.IntegerValue(obj) != 42 {
		t.Fatalf("want integer 42, got tag=%v", obj.Tag())
	}
}

func TestParseWordCommand(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("DUP")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagCommand {
		t.Fatalf("want a Command object for DUP, got tag=%v", obj.Tag())
	}
	if object.CommandOpcode(obj) != wordCommands["DUP"] {
		t.Fatalf("wrong opcode: got %d", object.CommandOpcode(obj))
	}
}

func TestParseLogicalWordCommand(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("AND")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagCommand {
		t.Fatalf("want a Command object for AND, got tag=%v", obj.Tag())
	}
	if object.CommandOpcode(obj) != wordCommands["AND"] {
		t.Fatalf("wrong opcode: got %d", object.CommandOpcode(obj))
	}
}

func TestParsePrimitiveOperator(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("+")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagCommand || object.CommandOpcode(obj) != 1 {
		t.Fatalf("want Command opcode 1 for '+', got tag=%v opcode=%d", obj.Tag(), object.CommandOpcode(obj))
	}
}

func TestParseNegativeNumberNotConfusedWithSubtract(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("-5")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagInteger || object.IntegerValue(obj) != -5 {
		t.Fatalf("want integer -5, got tag=%v", obj.Tag())
	}
}

func TestParseMultiTokenLineBuildsImplicitProgram(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("1 2 +")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagProgram {
		t.Fatalf("want an implicit Program wrapping the three tokens, got tag=%v", obj.Tag())
	}
	body, err := object.ProgramBody(obj)
	if err != nil {
		t.Fatalf("ProgramBody: %v", err)
	}
	if len(body) != 3 {
		t.Fatalf("want 3 body objects, got %d", len(body))
	}
	if object.IntegerValue(body[0]) != 1 || object.IntegerValue(body[1]) != 2 {
		t.Fatalf("want [1 2 +], got %v %v %v", body[0].Tag(), body[1].Tag(), body[2].Tag())
	}
	if body[2].Tag() != object.TagCommand || object.CommandOpcode(body[2]) != 1 {
		t.Fatalf("want trailing Add command, got tag=%v", body[2].Tag())
	}
}

func TestParseSingleTokenIsNotWrapped(t *testing.T) {
	p := newTestParser(t)
	obj, _, _, err := p.Parse("  7  ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if obj.Tag() != object.TagInteger {
		t.Fatalf("a lone token surrounded by whitespace should not become a Program, got tag=%v", obj.Tag())
	}
}

func TestParseSymbolUnboundName(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("XYZ")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagSymbol || object.SymbolName(obj) != "XYZ" {
		t.Fatalf("want symbol XYZ, got tag=%v", obj.Tag())
	}
}

func TestParseString(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse(`"hello"`)
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagText || object.TextValue(obj) != "hello" {
		t.Fatalf("want text %q, got %q", "hello", object.TextValue(obj))
	}
}

func TestParseUnterminatedStringIsWarn(t *testing.T) {
	p := newTestParser(t)
	_, res, _, err := p.Parse(`"hello`)
	if res != Warn || err == nil {
		t.Fatalf("want Warn with an error for an unterminated string, got res=%v err=%v", res, err)
	}
}

func TestParseListAndProgram(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("{ 1 2 3 }")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagList {
		t.Fatalf("want list, got tag=%v", obj.Tag())
	}
	elems, _ := object.ListElements(obj)
	if len(elems) != 3 {
		t.Fatalf("want 3 elements, got %d", len(elems))
	}

	prog, res, _, err := p.Parse("« DUP + »")
	if err != nil || res != OK {
		t.Fatalf("Parse program: res=%v err=%v", res, err)
	}
	if prog.Tag() != object.TagProgram {
		t.Fatalf("want program, got tag=%v", prog.Tag())
	}
	body, _ := object.ProgramBody(prog)
	if len(body) != 2 || body[0].Tag() != object.TagCommand || body[1].Tag() != object.TagCommand {
		t.Fatalf("want [DUP +] as two commands, got %d elems", len(body))
	}
}

func TestParseComplexRectangular(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("3+4i")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagComplexRect {
		t.Fatalf("want rectangular complex, got tag=%v", obj.Tag())
	}
	re, im, err := object.ComplexParts(obj)
	if err != nil {
		t.Fatalf("ComplexParts: %v", err)
	}
	if object.IntegerValue(re) != 3 || object.IntegerValue(im) != 4 {
		t.Fatalf("want 3+4i, got %v+%vi", object.IntegerValue(re), object.IntegerValue(im))
	}
}

func TestParseRangeInterval(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("2…4")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagRangeInterval {
		t.Fatalf("want range interval, got tag=%v", obj.Tag())
	}
}

func TestParseRangeDelta(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("2±0.1")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagRangeDelta {
		t.Fatalf("want range delta, got tag=%v", obj.Tag())
	}
}

func TestParseRangePercent(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("2±10%")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagRangePercent {
		t.Fatalf("want range percent, got tag=%v", obj.Tag())
	}
	center, pct, err := object.RangeParts(obj)
	if err != nil {
		t.Fatalf("RangeParts: %v", err)
	}
	if object.IntegerValue(center) != 2 || object.IntegerValue(pct) != 10 {
		t.Fatalf("want 2±10%%, got %v±%v%%", object.IntegerValue(center), object.IntegerValue(pct))
	}
}

func TestParseAssignment(t *testing.T) {
	p := newTestParser(t)
	obj, res, _, err := p.Parse("X=5")
	if err != nil || res != OK {
		t.Fatalf("Parse: res=%v err=%v", res, err)
	}
	if obj.Tag() != object.TagExpression {
		t.Fatalf("want an expression wrapping the STO, got tag=%v", obj.Tag())
	}
}

func TestParseSyntaxErrorReportsOffset(t *testing.T) {
	p := newTestParser(t)
	_, res, pos, err := p.Parse("@@@")
	if res != Skip || err == nil {
		t.Fatalf("want a Skip result with an error for garbage input, got res=%v err=%v", res, err)
	}
	if pos != 0 {
		t.Fatalf("want the offending offset to be 0, got %d", pos)
	}
}
