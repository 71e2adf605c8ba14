/*
 * rpl48 - Textual and graphical renderer.
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

// Package render implements a textual renderer (single-line and multi-line,
// editor-mode aware) and a graphical renderer (bounded grob surface, soft
// time budget, font-downgrade-and-retry, null on budget exhaustion), using
// *strings.Builder accumulation instead of repeated fmt.Sprintf
// concatenation, with one formatter per object Tag.
package render

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/hpcalc/rpl48/config/settings"
	"github.com/hpcalc/rpl48/object"
)

// Mode is the editor mode the renderer is aware of: it affects quoting,
// unit markers, and time formats.
type Mode int

const (
	ModeStack Mode = iota
	ModeEditor
)

// Text renders o into sb using st's digit/angle/complex-mode settings and the
// given editor mode, recursing into every compositional construct.
func Text(sb *strings.Builder, st *settings.Registry, mode Mode, o object.Object) {
	switch o.Tag() {
	case object.TagInteger:
		sb.WriteString(strconv.FormatInt(object.IntegerValue(o), 10))
	case object.TagBased:
		mag, base, _ := object.BasedValue(o)
		sb.WriteByte('#')
		sb.WriteString(strings.ToUpper(strconv.FormatUint(mag, int(base))))
		sb.WriteString(baseSuffix(base))
	case object.TagBignum:
		sb.WriteString(object.BignumValue(o).String())
	case object.TagFraction:
		r := object.FractionValue(o)
		sb.WriteString(r.Num().String())
		sb.WriteByte('/')
		sb.WriteString(r.Denom().String())
	case object.TagDecimal:
		renderDecimal(sb, o, digitsOf(st))
	case object.TagHWFloat32:
		fmt.Fprintf(sb, "%g", object.HWFloat32Value(o))
	case object.TagHWFloat64:
		fmt.Fprintf(sb, "%g", object.HWFloat64Value(o))
	case object.TagInfinity:
		if object.InfinityNegative(o) {
			sb.WriteString("-∞")
		} else {
			sb.WriteString("∞")
		}
	case object.TagComplexRect:
		re, im, err := object.ComplexParts(o)
		if err != nil {
			return
		}
		sb.WriteByte('(')
		Text(sb, st, mode, re)
		sb.WriteByte(',')
		Text(sb, st, mode, im)
		sb.WriteByte(')')
	case object.TagComplexPolar:
		mod, ang, err := object.ComplexParts(o)
		if err != nil {
			return
		}
		Text(sb, st, mode, mod)
		sb.WriteString("∠")
		Text(sb, st, mode, ang)
	case object.TagRangeInterval:
		lo, hi, err := object.RangeParts(o)
		if err != nil {
			return
		}
		Text(sb, st, mode, lo)
		sb.WriteString("…")
		Text(sb, st, mode, hi)
	case object.TagRangeDelta:
		center, delta, err := object.RangeParts(o)
		if err != nil {
			return
		}
		Text(sb, st, mode, center)
		sb.WriteString("±")
		Text(sb, st, mode, delta)
	case object.TagRangePercent:
		center, pct, err := object.RangeParts(o)
		if err != nil {
			return
		}
		Text(sb, st, mode, center)
		sb.WriteString("±")
		Text(sb, st, mode, pct)
		sb.WriteByte('%')
	case object.TagUncertain:
		mean, sd, err := object.RangeParts(o)
		if err != nil {
			return
		}
		Text(sb, st, mode, mean)
		sb.WriteString("σ")
		Text(sb, st, mode, sd)
	case object.TagUnit:
		value, unitExpr, err := object.UnitParts(o)
		if err != nil {
			return
		}
		Text(sb, st, mode, value)
		sb.WriteByte('_')
		Text(sb, st, mode, unitExpr)
	case object.TagSymbol:
		sb.WriteString(object.SymbolName(o))
	case object.TagText:
		if mode == ModeEditor {
			sb.WriteByte('"')
			sb.WriteString(object.TextValue(o))
			sb.WriteByte('"')
		} else {
			sb.WriteString(object.TextValue(o))
		}
	case object.TagList:
		renderSeq(sb, st, mode, o, "{ ", " }", listElems)
	case object.TagArray:
		renderArray(sb, st, mode, o)
	case object.TagExpression:
		renderExpression(sb, st, mode, o)
	case object.TagProgram:
		renderSeq(sb, st, mode, o, "« ", " »", programElems)
	case object.TagTagged:
		label, value, err := object.TaggedParts(o)
		if err != nil {
			return
		}
		sb.WriteByte(':')
		sb.WriteString(label)
		sb.WriteByte(':')
		Text(sb, st, mode, value)
	case object.TagGrob:
		w, h, _ := object.RasterShape(o)
		fmt.Fprintf(sb, "Grob %d×%d", w, h)
	case object.TagPixmap:
		w, h, _ := object.RasterShape(o)
		fmt.Fprintf(sb, "Pixmap %d×%d", w, h)
	case object.TagCommand:
		sb.WriteString(commandName(object.CommandOpcode(o)))
	default:
		sb.WriteString("?")
	}
}

// String is a convenience wrapper over Text returning a fresh string.
func String(st *settings.Registry, mode Mode, o object.Object) string {
	var sb strings.Builder
	Text(&sb, st, mode, o)
	return sb.String()
}

func digitsOf(st *settings.Registry) int {
	if st == nil {
		return 12
	}
	return st.Digits()
}

func baseSuffix(base uint8) string {
	switch base {
	case 16:
		return "h"
	case 8:
		return "o"
	case 2:
		return "b"
	case 10:
		return "d"
	default:
		return ""
	}
}

// renderDecimal prints mantissa*10^exp in plain or scientific notation
// depending on magnitude, trimmed to `digits` significant figures.
func renderDecimal(sb *strings.Builder, o object.Object, digits int) {
	m, exp := object.DecimalValue(o)
	if m.Sign() == 0 {
		sb.WriteByte('0')
		return
	}
	s := new(big.Int).Abs(m).String()
	if len(s) > digits {
		s, exp = roundDigits(s, exp, digits)
	}
	neg := m.Sign() < 0
	point := len(s) + int(exp)

	if neg {
		sb.WriteByte('-')
	}
	switch {
	case point <= 0:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -point))
		sb.WriteString(s)
	case point >= len(s):
		sb.WriteString(s)
		sb.WriteString(strings.Repeat("0", point-len(s)))
	default:
		sb.WriteString(s[:point])
		sb.WriteByte('.')
		sb.WriteString(s[point:])
	}
}

func roundDigits(s string, exp int32, digits int) (string, int32) {
	drop := len(s) - digits
	kept := s[:digits]
	exp += int32(drop)
	if s[digits] >= '5' {
		v, _ := new(big.Int).SetString(kept, 10)
		v.Add(v, big.NewInt(1))
		kept = v.String()
		if len(kept) > digits {
			kept = kept[:digits]
			exp++
		}
	}
	return kept, exp
}

type elemFunc func(object.Object) ([]object.Object, error)

func listElems(o object.Object) ([]object.Object, error)    { return object.ListElements(o) }
func programElems(o object.Object) ([]object.Object, error) { return object.ProgramBody(o) }

func renderSeq(sb *strings.Builder, st *settings.Registry, mode Mode, o object.Object, open, closeStr string, get elemFunc) {
	elems, err := get(o)
	if err != nil {
		return
	}
	sb.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		Text(sb, st, mode, e)
	}
	sb.WriteString(closeStr)
}

func renderArray(sb *strings.Builder, st *settings.Registry, mode Mode, o object.Object) {
	rows, cols := object.ArrayShape(o)
	elems, err := object.ArrayElements(o)
	if err != nil {
		return
	}
	sb.WriteString("[ ")
	for r := 0; r < rows; r++ {
		if rows > 1 {
			sb.WriteByte('[')
		}
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			Text(sb, st, mode, elems[r*cols+c])
		}
		if rows > 1 {
			sb.WriteString("] ")
		}
	}
	sb.WriteString("]")
}

// renderExpression prints a postfix body back in infix form for the common
// binary-operator commands, falling back to raw postfix for anything else.
func renderExpression(sb *strings.Builder, st *settings.Registry, mode Mode, o object.Object) {
	body, err := object.ExpressionBody(o)
	if err != nil || len(body) == 0 {
		return
	}
	sb.WriteByte('\'')
	stack := make([]string, 0, len(body))
	for _, tok := range body {
		if tok.Tag() == object.TagCommand {
			sym := infixSymbol(object.CommandOpcode(tok))
			if sym != "" && len(stack) >= 2 {
				b := stack[len(stack)-1]
				a := stack[len(stack)-2]
				stack = stack[:len(stack)-2]
				stack = append(stack, "("+a+sym+b+")")
				continue
			}
			if len(stack) >= 1 {
				a := stack[len(stack)-1]
				stack[len(stack)-1] = unaryForm(object.CommandOpcode(tok), a)
				continue
			}
		}
		stack = append(stack, String(st, mode, tok))
	}
	for _, s := range stack {
		sb.WriteString(s)
	}
	sb.WriteByte('\'')
}

func infixSymbol(opcode uint16) string {
	switch opcode {
	case 1:
		return "+"
	case 2:
		return "-"
	case 3:
		return "*"
	case 4:
		return "/"
	case 7:
		return "^"
	}
	return ""
}

func unaryForm(opcode uint16, a string) string {
	switch opcode {
	case 8:
		return "-" + a
	case 9:
		return "INV(" + a + ")"
	case 10:
		return a + "²"
	}
	return a
}

// commandName renders a standalone Command object back to the word or symbol
// parser.wordCommands/primitiveOpcodes accepts as input, so parse(render(cmd))
// reproduces the same opcode. Opcode numbers mirror eval.Opcode's const block.
func commandName(opcode uint16) string {
	switch opcode {
	case 1:
		return "+"
	case 2:
		return "-"
	case 3:
		return "*"
	case 4:
		return "/"
	case 5:
		return "MOD"
	case 6:
		return "REM"
	case 7:
		return "^"
	case 8:
		return "NEG"
	case 9:
		return "INV"
	case 10:
		return "SQ"
	case 11:
		return "DUP"
	case 12:
		return "DROP"
	case 13:
		return "SWAP"
	case 14:
		return "ROT"
	case 15:
		return "OVER"
	case 16:
		return "EVAL"
	case 17:
		return "DEPTH"
	case 18:
		return "CLEAR"
	case 19:
		return "AND"
	case 20:
		return "OR"
	case 21:
		return "XOR"
	case 22:
		return "NOT"
	case 23:
		return "SHL"
	case 24:
		return "SHR"
	default:
		return fmt.Sprintf("<cmd %d>", opcode)
	}
}
