/*
 * rpl48 - Arithmetic dispatcher.
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

// Package arith implements the promotion-lattice dispatcher: one generic
// binary-op driver parameterized, per operation, by an opsBundle of family
// fast paths, generalized from a fixed instruction set to an open family
// lattice.
package arith

import (
	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
	"github.com/hpcalc/rpl48/rplerr"
)

// Op names a dispatchable binary operation.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	Rem
	Pow
	Hypot
	Atan2
	And
	Or
	Xor
	Not
	Shl
	Shr
)

func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	case Mod:
		return "MOD"
	case Rem:
		return "REM"
	case Pow:
		return "^"
	case Hypot:
		return "HYPOT"
	case Atan2:
		return "ATAN2"
	case And:
		return "AND"
	case Or:
		return "OR"
	case Xor:
		return "XOR"
	case Not:
		return "NOT"
	case Shl:
		return "SHL"
	case Shr:
		return "SHR"
	default:
		return "?"
	}
}

// Settings is the subset of the global settings registry arithmetic
// consults; config/settings.Registry satisfies it.
type Settings interface {
	AutoSimplify() bool
	ZeroToZeroIsOne() bool
}

// family ranks a position in the promotion lattice of. Higher values are
// reached by promoting lower ones.
type family int

const (
	famNone family = iota
	famBased
	famInteger
	famBignum
	famFraction
	famDecimal
	famHWFloat
	famComplex
	famRange
)

// opsBundle collects the per-operation fast paths dispatched over: one
// non_numeric/optimize/*_ok/leaf function set per operator.
type opsBundle struct {
	nonNumeric func(h *heap.Heap, x, y object.Object) (object.Object, bool, error)
	optimize   func(h *heap.Heap, st Settings, x, y object.Object) (object.Object, bool, error)
	integerOK  func(h *heap.Heap, x, y object.Object) (object.Object, bool, error)
	bignumOK   func(h *heap.Heap, x, y object.Object) (object.Object, bool, error)
	fractionOK func(h *heap.Heap, x, y object.Object) (object.Object, bool, error)
	complexOK  func(h *heap.Heap, x, y object.Object) (object.Object, bool, error)
	rangeOK    func(h *heap.Heap, x, y object.Object) (object.Object, bool, error)
	decimal    func(h *heap.Heap, x, y object.Object) (object.Object, error)
	hwfloat    func(h *heap.Heap, x, y object.Object) (object.Object, error)
	hwdouble   func(h *heap.Heap, x, y object.Object) (object.Object, error)
}

// bundles is filled in init rather than by a package-level initializer:
// several bundle functions call back into Eval, which reads bundles, and
// Go rejects that as an initialization cycle.
var bundles map[Op]opsBundle

func init() {
	bundles = map[Op]opsBundle{
	Add: {nonNumeric: nonNumericAdd, optimize: simplifyAdd, integerOK: integerAdd, bignumOK: bignumAdd, fractionOK: fractionAdd, complexOK: complexAdd, rangeOK: rangeAdd, decimal: decimalAdd, hwfloat: hwfloat32Add, hwdouble: hwfloat64Add},
	Sub: {nonNumeric: nonNumericSub, optimize: simplifySub, integerOK: integerSub, bignumOK: bignumSub, fractionOK: fractionSub, complexOK: complexSub, rangeOK: rangeSub, decimal: decimalSub, hwfloat: hwfloat32Sub, hwdouble: hwfloat64Sub},
	Mul: {nonNumeric: nonNumericMul, optimize: simplifyMul, integerOK: integerMul, bignumOK: bignumMul, fractionOK: fractionMul, complexOK: complexMul, rangeOK: rangeMul, decimal: decimalMul, hwfloat: hwfloat32Mul, hwdouble: hwfloat64Mul},
	Div: {nonNumeric: nonNumericDiv, optimize: simplifyDiv, integerOK: integerDiv, bignumOK: bignumDiv, fractionOK: fractionDiv, complexOK: complexDiv, rangeOK: rangeDiv, decimal: decimalDiv, hwfloat: hwfloat32Div, hwdouble: hwfloat64Div},
	Mod: {nonNumeric: nonNumericNone, integerOK: integerMod, bignumOK: bignumMod, decimal: decimalMod, hwfloat: hwfloat32Mod, hwdouble: hwfloat64Mod},
	Rem: {nonNumeric: nonNumericNone, integerOK: integerRem, bignumOK: bignumRem, decimal: decimalRem, hwfloat: hwfloat32Rem, hwdouble: hwfloat64Rem},
	Pow: {nonNumeric: nonNumericPow, optimize: simplifyPow, integerOK: integerPow, bignumOK: bignumPow, fractionOK: fractionPow, complexOK: complexPow, decimal: decimalPow, hwfloat: hwfloat32Pow, hwdouble: hwfloat64Pow},
	Hypot: {nonNumeric: nonNumericNone, decimal: decimalHypot, hwfloat: hwfloat32Hypot, hwdouble: hwfloat64Hypot},
	Atan2: {nonNumeric: nonNumericNone, decimal: decimalAtan2, hwfloat: hwfloat32Atan2, hwdouble: hwfloat64Atan2},
	And: {nonNumeric: logicalAnd},
	Or:  {nonNumeric: logicalOr},
	Xor: {nonNumeric: logicalXor},
	Not: {nonNumeric: logicalNot},
	Shl: {nonNumeric: logicalShl},
	Shr: {nonNumeric: logicalShr},
	}
}

func nonNumericNone(*heap.Heap, object.Object, object.Object) (object.Object, bool, error) {
	return object.Object{}, false, nil
}

// Eval dispatches op over x and y following the five-step algorithm of non-
// numeric hook, auto-simplification, family join, family fast path with
// promotion-on-false, and finally the decimal/hwfp leaf.
func Eval(h *heap.Heap, st Settings, op Op, x, y object.Object) (object.Object, error) {
	b, ok := bundles[op]
	if !ok {
		return object.Object{}, rplerr.New(rplerr.Internal, op.String(), "no arithmetic bundle")
	}

	if b.nonNumeric != nil {
		if r, done, err := b.nonNumeric(h, x, y); done || err != nil {
			return r, err
		}
	}
	if !x.IsNumeric() || !y.IsNumeric() {
		return object.Object{}, rplerr.New(rplerr.Type, op.String(), "bad argument type")
	}

	if st != nil && st.AutoSimplify() && b.optimize != nil {
		if r, done, err := b.optimize(h, st, x, y); done || err != nil {
			return r, err
		}
	}

	fam := join(familyOf(x), familyOf(y))

	for {
		switch fam {
		case famBased, famInteger:
			if b.integerOK == nil {
				fam = famBignum
				continue
			}
			r, ok, err := b.integerOK(h, x, y)
			if err != nil {
				return object.Object{}, err
			}
			if ok {
				return r, nil
			}
			fam = famBignum
		case famBignum:
			if b.bignumOK == nil {
				fam = famFraction
				continue
			}
			r, ok, err := b.bignumOK(h, x, y)
			if err != nil {
				return object.Object{}, err
			}
			if ok {
				return r, nil
			}
			fam = famFraction
		case famFraction:
			if b.fractionOK == nil {
				fam = famDecimal
				continue
			}
			r, ok, err := b.fractionOK(h, x, y)
			if err != nil {
				return object.Object{}, err
			}
			if ok {
				return r, nil
			}
			fam = famDecimal
		case famComplex:
			if b.complexOK == nil {
				return object.Object{}, rplerr.New(rplerr.Type, op.String(), "undefined on complex operands")
			}
			r, ok, err := b.complexOK(h, x, y)
			if err != nil {
				return object.Object{}, err
			}
			if ok {
				return r, nil
			}
			return object.Object{}, rplerr.New(rplerr.Type, op.String(), "undefined on complex operands")
		case famRange:
			if b.rangeOK == nil {
				return object.Object{}, rplerr.New(rplerr.Type, op.String(), "undefined on range operands")
			}
			r, ok, err := b.rangeOK(h, x, y)
			if err != nil {
				return object.Object{}, err
			}
			if ok {
				return r, nil
			}
			return object.Object{}, rplerr.New(rplerr.Type, op.String(), "undefined on range operands")
		case famDecimal:
			if b.decimal == nil {
				return object.Object{}, rplerr.New(rplerr.Type, op.String(), "undefined on decimal operands")
			}
			dx, err := toDecimal(h, x)
			if err != nil {
				return object.Object{}, err
			}
			dy, err := toDecimal(h, y)
			if err != nil {
				return object.Object{}, err
			}
			return b.decimal(h, dx, dy)
		case famHWFloat:
			if hwWidth(x, y) == 32 {
				fx, err := toHWFloat32(h, x)
				if err != nil {
					return object.Object{}, err
				}
				fy, err := toHWFloat32(h, y)
				if err != nil {
					return object.Object{}, err
				}
				return b.hwfloat(h, fx, fy)
			}
			fx, err := toHWFloat64(h, x)
			if err != nil {
				return object.Object{}, err
			}
			fy, err := toHWFloat64(h, y)
			if err != nil {
				return object.Object{}, err
			}
			return b.hwdouble(h, fx, fy)
		default:
			return object.Object{}, rplerr.New(rplerr.Type, op.String(), "bad argument type")
		}
	}
}

func hwWidth(x, y object.Object) int {
	if x.Tag() == object.TagHWFloat32 && y.Tag() != object.TagHWFloat64 {
		return 32
	}
	if y.Tag() == object.TagHWFloat32 && x.Tag() != object.TagHWFloat64 {
		return 32
	}
	return 64
}

func join(a, b family) family {
	if a > b {
		return a
	}
	return b
}

func familyOf(o object.Object) family {
	switch o.Tag() {
	case object.TagBased:
		return famBased
	case object.TagInteger:
		return famInteger
	case object.TagBignum:
		return famBignum
	case object.TagFraction:
		return famFraction
	case object.TagDecimal:
		return famDecimal
	case object.TagHWFloat32, object.TagHWFloat64:
		return famHWFloat
	case object.TagComplexRect, object.TagComplexPolar:
		return famComplex
	case object.TagRangeInterval, object.TagRangeDelta, object.TagRangePercent, object.TagUncertain:
		return famRange
	default:
		return famNone
	}
}
