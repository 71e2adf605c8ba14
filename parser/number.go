/*
 * rpl48 - Numeric literal parsing.
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

package parser

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// parseNumber scans an integer or decimal literal and a trailing f/d marker.
// An overflowing integer literal is auto-promoted to a bignum rather than
// reported as an error.
func (p *Parser) parseNumber(c *cursor) (object.Object, Result, error) {
	start := c.pos
	var sb strings.Builder
	if c.peek() == '-' {
		sb.WriteRune(c.advance())
	}
	isDecimal := false
	for !c.eof() {
		r := c.peek()
		switch {
		case unicode.IsDigit(r):
			sb.WriteRune(c.advance())
		case r == '.' && !isDecimal:
			isDecimal = true
			sb.WriteRune(c.advance())
		default:
			goto scanned
		}
	}
scanned:
	suffix := rune(0)
	if !c.eof() && (c.peek() == 'f' || c.peek() == 'd') {
		suffix = c.advance()
	}

	text := sb.String()
	if text == "" || text == "-" {
		return object.Object{}, Skip, rplerr.NewAt(rplerr.Syntax, "", start, "empty numeric literal")
	}

	if suffix == 'f' {
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "bad real32 literal %q", text)
		}
		o, err := object.NewHWFloat32(p.H, float32(f))
		return o, OK, err
	}
	if suffix == 'd' {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "bad real64 literal %q", text)
		}
		o, err := object.NewHWFloat64(p.H, f)
		return o, OK, err
	}

	if isDecimal {
		return p.parseDecimalLiteral(text, start)
	}

	if v, ok := new(big.Int).SetString(text, 10); ok {
		if v.IsInt64() {
			o, err := object.NewInteger(p.H, v.Int64())
			return o, OK, err
		}
		o, err := object.NewBignum(p.H, v)
		return o, OK, err
	}
	return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "bad integer literal %q", text)
}

// parseDecimalLiteral splits "123.456" into a mantissa big.Int and a
// negative decimal exponent, matching object.NewDecimal's
// mantissa*10^exp representation.
func (p *Parser) parseDecimalLiteral(text string, start int) (object.Object, Result, error) {
	neg := strings.HasPrefix(text, "-")
	if neg {
		text = text[1:]
	}
	dot := strings.IndexByte(text, '.')
	intPart, fracPart := text, ""
	if dot >= 0 {
		intPart, fracPart = text[:dot], text[dot+1:]
	}
	digits := intPart + fracPart
	if digits == "" {
		digits = "0"
	}
	m, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "bad decimal literal")
	}
	if neg {
		m.Neg(m)
	}
	o, err := object.NewDecimal(p.H, m, -int32(len(fracPart)))
	return o, OK, err
}

// parseBased scans "#1Ah", "#101b", "#777o"-style based-integer
// literals: '#' magnitude in the given radix, followed by a base
// letter (h=16, o=8, b=2, d=10; default hex).
func (p *Parser) parseBased(c *cursor) (object.Object, Result, error) {
	start := c.pos
	c.advance() // '#'
	var sb strings.Builder
	for !c.eof() && isBaseDigit(c.peek()) {
		sb.WriteRune(c.advance())
	}
	digits := sb.String()
	base := uint8(16)
	suffixed := false
	if !c.eof() {
		suffixed = true
		switch c.peek() {
		case 'h', 'H':
			base, _ = 16, c.advance()
		case 'o', 'O':
			base, _ = 8, c.advance()
		case 'b', 'B':
			base, _ = 2, c.advance()
		case 'd', 'D':
			base, _ = 10, c.advance()
		default:
			suffixed = false
		}
	}
	// 'b' and 'd' are also hex digits, so the scan above takes them in; a
	// trailing one with no other suffix is the base letter.
	if !suffixed && len(digits) > 1 {
		switch digits[len(digits)-1] {
		case 'b', 'B':
			base, digits = 2, digits[:len(digits)-1]
		case 'd', 'D':
			base, digits = 10, digits[:len(digits)-1]
		}
	}
	v, err := strconv.ParseUint(digits, int(base), 64)
	if err != nil {
		return object.Object{}, Warn, rplerr.NewAt(rplerr.Syntax, "", start, "bad based literal: %s", err)
	}
	o, nerr := object.NewBased(p.H, v, base, 64)
	return o, OK, nerr
}

func isBaseDigit(r rune) bool {
	return unicode.IsDigit(r) || (r >= 'A' && r <= 'F') || (r >= 'a' && r <= 'f')
}
