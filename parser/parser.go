/*
 * rpl48 - Object parser.
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

// Package parser implements dispatch on the first code point of the remaining
// input, with a precedence context and an optional inherited separator,
// building nested Objects. Generalized from a fixed mnemonic table to an
// open, code-point-keyed dispatch table, with a getWord/skipSpace-style
// cursor tracker reused as the parser's own cursor.
package parser

import (
	"strings"
	"unicode"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Result is a sub-parser's verdict.
type Result int

const (
	OK Result = iota
	Skip
	Warn
	Commented
)

// cursor is the parser's position tracker, the same shape
// the removed command/parser/parser.go's cmdLine gave its command-line scanner:
// a string plus an integer offset, with helper methods instead of
// direct index math at every call site.
type cursor struct {
	src string
	pos int
}

func (c *cursor) eof() bool { return c.pos >= len(c.src) }

func (c *cursor) peek() rune {
	if c.eof() {
		return 0
	}
	r := []rune(c.src[c.pos:])
	return r[0]
}

func (c *cursor) advance() rune {
	r := c.peek()
	c.pos += len(string(r))
	return r
}

func (c *cursor) skipSpace() {
	for !c.eof() && unicode.IsSpace(c.peek()) {
		c.advance()
	}
}

// Parser holds the heap objects are allocated on; precedence and separator are
// carried per-call rather than in the struct since they change at every
// nesting level.
type Parser struct {
	H *heap.Heap
}

// New returns a Parser allocating onto h.
func New(h *heap.Heap) *Parser {
	return &Parser{H: h}
}

// Parse parses one top-level Object out of src, returning the object, the
// Result classification, and the number of bytes consumed. On Skip/Warn the
// caller should treat Parser's cursor position as the offending offset for a
// diagnostic. Parse parses the full command-line buffer. A single object (or a
// single object followed only by whitespace) is returned as-is. When the
// buffer holds more than one whitespace-separated object — typing "1 2 +" and
// pressing Enter, the same way real RPL hardware treats a multi-token command
// line as a one-line program — the tokens are collected and wrapped into an
// implicit Program so the evaluator runs them in sequence.
func (p *Parser) Parse(src string) (object.Object, Result, int, error) {
	c := &cursor{src: src}
	obj, res, err := p.parsePrimary(c, 0)
	if res != OK {
		return object.Object{}, res, c.pos, err
	}
	obj, err = p.parsePostfix(c, obj)
	if err != nil {
		return object.Object{}, Warn, c.pos, err
	}

	objs := []object.Object{obj}
	c.skipSpace()
	for !c.eof() {
		next, res, err := p.parsePrimary(c, 0)
		if res != OK {
			return object.Object{}, res, c.pos, err
		}
		next, err = p.parsePostfix(c, next)
		if err != nil {
			return object.Object{}, Warn, c.pos, err
		}
		objs = append(objs, next)
		c.skipSpace()
	}

	if len(objs) == 1 {
		return objs[0], OK, c.pos, nil
	}
	prog, err := object.NewProgram(p.H, objs)
	if err != nil {
		return object.Object{}, Warn, c.pos, err
	}
	return prog, OK, c.pos, nil
}

// parsePrimary dispatches on the first code point, per ordered candidate list;
// precedence > 0 means "inside an expression awaiting a sub-expression of that
// precedence", <= 0 is top-level/infix-search context (not separately modeled
// beyond the recursive calls below).
func (p *Parser) parsePrimary(c *cursor, precedence int) (object.Object, Result, error) {
	c.skipSpace()
	if c.eof() {
		return object.Object{}, Skip, nil
	}
	r := c.peek()
	switch {
	case r == '"':
		return p.parseText(c)
	case r == '\'':
		return p.parseQuotedExpression(c)
	case r == '{':
		return p.parseList(c)
	case r == '[':
		return p.parseArray(c)
	case r == '«':
		return p.parseProgram(c)
	case r == '#':
		return p.parseBased(c)
	case unicode.IsDigit(r):
		return p.parseNumber(c)
	case r == '-' && len(c.src) > c.pos+1 && unicode.IsDigit([]rune(c.src[c.pos+1:])[0]):
		return p.parseNumber(c)
	case isPrimitiveOp(r):
		return p.parsePrimitiveOp(c)
	case isSymbolStart(r):
		return p.parseSymbolOrCommand(c)
	default:
		return object.Object{}, Skip, rplerr.NewAt(rplerr.Syntax, "", c.pos, "unexpected character %q", r)
	}
}

// primitiveOpcodes names the "primitive" parser variant: single-character
// operator tokens that stand for a Command object rather than a Symbol,
// the way pressing the dedicated +/-/×/÷ keys does on real hardware.
// Opcode numbers here must stay in lockstep with eval.Opcode's encoding
// (Add=1.. Pow=7); render.go's infixSymbol/unaryForm switch on the same
// numbers for the inverse direction.
var primitiveOpcodes = map[rune]uint16{
	'+': 1, // eval.OpAdd
	'-': 2, // eval.OpSub
	'*': 3, // eval.OpMul
	'/': 4, // eval.OpDiv
	'^': 7, // eval.OpPow
}

func isPrimitiveOp(r rune) bool {
	_, ok := primitiveOpcodes[r]
	return ok
}

func (p *Parser) parsePrimitiveOp(c *cursor) (object.Object, Result, error) {
	r := c.advance()
	o, err := object.NewCommand(p.H, primitiveOpcodes[r])
	return o, OK, err
}

// wordCommands names the word-spelled primitives: typing one of these names at
// the command line produces a Command object instead of a Symbol, so
// DUP/SWAP/etc. behave identically whether they arrive as a keypress or as
// typed text. Numbers mirror eval.Opcode's const block exactly.
var wordCommands = map[string]uint16{
	"ADD":   1,
	"SUB":   2,
	"MUL":   3,
	"DIV":   4,
	"MOD":   5,
	"REM":   6,
	"POW":   7,
	"NEG":   8,
	"INV":   9,
	"SQ":    10,
	"DUP":   11,
	"DROP":  12,
	"SWAP":  13,
	"ROT":   14,
	"OVER":  15,
	"EVAL":  16,
	"DEPTH": 17,
	"CLEAR": 18,
	"AND":   19,
	"OR":    20,
	"XOR":   21,
	"NOT":   22,
	"SHL":   23,
	"SHR":   24,
}

func isSymbolStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// parsePostfix implements "post-parse composition": after a primary object is
// built and input remains, stitch on a second part forming a complex, unit,
// range, function call, or assignment.
func (p *Parser) parsePostfix(c *cursor, primary object.Object) (object.Object, error) {
	start := c.pos
	c.skipSpace()
	if c.eof() {
		return primary, nil
	}
	switch c.peek() {
	case '+', '-':
		// A sign only starts an imaginary part when it follows the real part
		// directly; after whitespace it is a token of its own ("1 2 +").
		if !primary.IsReal() || c.pos != start {
			return primary, nil
		}
		return p.parseComplexRect(c, primary)
	case '∠':
		c.advance()
		angle, res, err := p.parsePrimary(c, 0)
		if res != OK {
			return object.Object{}, err
		}
		return object.NewComplexPolar(p.H, primary, angle)
	case '_':
		c.advance()
		unitExpr, res, err := p.parseUnitExpr(c)
		if res != OK {
			return object.Object{}, err
		}
		return object.NewUnit(p.H, primary, unitExpr)
	case '…':
		c.advance()
		high, res, err := p.parsePrimary(c, 0)
		if res != OK {
			return object.Object{}, err
		}
		return object.NewRangeInterval(p.H, primary, high)
	case '±':
		c.advance()
		delta, res, err := p.parsePrimary(c, 0)
		if res != OK {
			return object.Object{}, err
		}
		if !c.eof() && c.peek() == '%' {
			c.advance()
			return object.NewRangePercent(p.H, primary, delta)
		}
		return object.NewRangeDelta(p.H, primary, delta)
	case 'σ':
		c.advance()
		sd, res, err := p.parsePrimary(c, 0)
		if res != OK {
			return object.Object{}, err
		}
		return object.NewUncertain(p.H, primary, sd)
	case '=':
		if !primary.IsSymbol() {
			return primary, nil
		}
		c.advance()
		value, res, err := p.parsePrimary(c, 0)
		if res != OK {
			return object.Object{}, err
		}
		return p.makeAssignment(primary, value)
	}
	return primary, nil
}

func (p *Parser) makeAssignment(name, value object.Object) (object.Object, error) {
	eq, err := object.NewSymbol(p.H, "STO")
	if err != nil {
		return object.Object{}, err
	}
	return object.NewExpression(p.H, []object.Object{value, name, eq})
}

func (p *Parser) parseComplexRect(c *cursor, re object.Object) (object.Object, error) {
	if c.peek() == '+' {
		c.advance()
	}
	imag, res, err := p.parsePrimary(c, 0)
	if res != OK {
		return object.Object{}, err
	}
	if !c.eof() && (c.peek() == 'i' || c.peek() == 'I') {
		c.advance()
	}
	return object.NewComplexRect(p.H, re, imag)
}

func (p *Parser) parseText(c *cursor) (object.Object, Result, error) {
	start := c.pos
	c.advance() // opening quote
	var sb strings.Builder
	for !c.eof() && c.peek() != '"' {
		sb.WriteRune(c.advance())
	}
	if c.eof() {
		return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "unterminated string")
	}
	c.advance() // closing quote
	o, err := object.NewText(p.H, sb.String())
	return o, OK, err
}

func (p *Parser) parseList(c *cursor) (object.Object, Result, error) {
	elems, err := p.parseDelimited(c, '{', '}')
	if err != nil {
		return object.Object{}, Warn, err
	}
	o, err := object.NewList(p.H, elems)
	return o, OK, err
}

func (p *Parser) parseProgram(c *cursor) (object.Object, Result, error) {
	elems, err := p.parseDelimited(c, '«', '»')
	if err != nil {
		return object.Object{}, Warn, err
	}
	o, err := object.NewProgram(p.H, elems)
	return o, OK, err
}

func (p *Parser) parseArray(c *cursor) (object.Object, Result, error) {
	start := c.pos
	elems, err := p.parseDelimited(c, '[', ']')
	if err != nil {
		return object.Object{}, Warn, err
	}
	o, err := object.NewArray(p.H, 1, len(elems), elems)
	if err != nil {
		return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "%s", err)
	}
	return o, OK, nil
}

func (p *Parser) parseDelimited(c *cursor, open, close rune) ([]object.Object, error) {
	start := c.pos
	c.advance() // opening delimiter
	var elems []object.Object
	for {
		c.skipSpace()
		if c.eof() {
			return nil, rplerr.NewAt(rplerr.Syntax, "", start, "unterminated %q", open)
		}
		if c.peek() == close {
			c.advance()
			return elems, nil
		}
		obj, res, err := p.parsePrimary(c, 1)
		if res != OK {
			return nil, err
		}
		obj, err = p.parsePostfix(c, obj)
		if err != nil {
			return nil, err
		}
		elems = append(elems, obj)
	}
}

func (p *Parser) parseQuotedExpression(c *cursor) (object.Object, Result, error) {
	start := c.pos
	c.advance() // opening quote
	var tokens []object.Object
	for {
		c.skipSpace()
		if c.eof() {
			return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "unterminated expression")
		}
		if c.peek() == '\'' {
			c.advance()
			break
		}
		obj, res, err := p.parsePrimary(c, 1)
		if res != OK {
			return object.Object{}, res, err
		}
		tokens = append(tokens, obj)
	}
	o, err := object.NewExpression(p.H, tokens)
	return o, OK, err
}

func (p *Parser) parseSymbolOrCommand(c *cursor) (object.Object, Result, error) {
	start := c.pos
	var sb strings.Builder
	for !c.eof() && (unicode.IsLetter(c.peek()) || unicode.IsDigit(c.peek()) || c.peek() == '_') {
		sb.WriteRune(c.advance())
	}
	name := sb.String()
	if name == "" {
		return object.Object{}, Skip, rplerr.NewAt(rplerr.Syntax, "", start, "empty identifier")
	}
	if opcode, ok := wordCommands[strings.ToUpper(name)]; ok {
		o, err := object.NewCommand(p.H, opcode)
		return o, OK, err
	}
	o, err := object.NewSymbol(p.H, name)
	return o, OK, err
}

func (p *Parser) parseUnitExpr(c *cursor) (object.Object, Result, error) {
	start := c.pos
	var sb strings.Builder
	for !c.eof() && !unicode.IsSpace(c.peek()) {
		sb.WriteRune(c.advance())
	}
	if sb.Len() == 0 {
		return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "empty unit expression")
	}
	o, err := object.NewText(p.H, sb.String())
	return o, OK, err
}
