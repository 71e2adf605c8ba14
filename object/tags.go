/*
 * rpl48 - Object type tags.
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

// Package object implements the tagged union: every live value is a self-
// describing, variable-length, immutable record in the
// heap. The polymorphism is closed: the set of tags below is fixed, and every
// cross-cutting concern (rendering, evaluation, arithmetic promotion) is
// dispatched by a flat table indexed by Tag, owned by the consuming package.
package object

// Tag identifies an Object's family and variant: a compact integer
// type tag.
type Tag uint64

const (
	TagInteger Tag = 1 + iota
	TagBased
	TagBignum
	TagFraction
	TagDecimal
	TagHWFloat32
	TagHWFloat64
	TagInfinity
	TagComplexRect
	TagComplexPolar
	TagRangeInterval
	TagRangeDelta
	TagRangePercent
	TagUncertain
	TagUnit
	TagSymbol
	TagText
	TagList
	TagArray
	TagExpression
	TagProgram
	TagTagged
	TagGrob
	TagPixmap
	TagCommand
	tagCount
)

// Name returns the family name used in error banners and the help
// browser's type index.
func (t Tag) Name() string {
	switch t {
	case TagInteger:
		return "integer"
	case TagBased:
		return "based integer"
	case TagBignum:
		return "bignum"
	case TagFraction:
		return "fraction"
	case TagDecimal:
		return "decimal"
	case TagHWFloat32:
		return "real32"
	case TagHWFloat64:
		return "real64"
	case TagInfinity:
		return "infinity"
	case TagComplexRect, TagComplexPolar:
		return "complex"
	case TagRangeInterval, TagRangeDelta, TagRangePercent:
		return "range"
	case TagUncertain:
		return "uncertain"
	case TagUnit:
		return "unit"
	case TagSymbol:
		return "symbol"
	case TagText:
		return "text"
	case TagList:
		return "list"
	case TagArray:
		return "array"
	case TagExpression:
		return "expression"
	case TagProgram:
		return "program"
	case TagTagged:
		return "tagged"
	case TagGrob:
		return "grob"
	case TagPixmap:
		return "pixmap"
	case TagCommand:
		return "command"
	default:
		return "unknown"
	}
}
