package object

// Identity predicates: each family answers a handful of these so that mixed-
// family operations (arith, render) can pick the right behavior without a type
// switch at every call site.

func (o Object) IsInteger() bool { return o.Tag() == TagInteger || o.Tag() == TagBased }
func (o Object) IsBased() bool   { return o.Tag() == TagBased }
func (o Object) IsBignum() bool  { return o.Tag() == TagBignum }
func (o Object) IsFraction() bool { return o.Tag() == TagFraction }
func (o Object) IsDecimal() bool { return o.Tag() == TagDecimal }

func (o Object) IsHWFloat() bool {
	return o.Tag() == TagHWFloat32 || o.Tag() == TagHWFloat64
}

func (o Object) IsInfinity() bool { return o.Tag() == TagInfinity }

// IsReal reports whether o is one of the exact/approximate real
// families (integer, bignum, fraction, decimal, hardware float).
func (o Object) IsReal() bool {
	switch o.Tag() {
	case TagInteger, TagBased, TagBignum, TagFraction, TagDecimal, TagHWFloat32, TagHWFloat64:
		return true
	}
	return false
}

func (o Object) IsComplex() bool {
	return o.Tag() == TagComplexRect || o.Tag() == TagComplexPolar
}

func (o Object) IsRange() bool {
	switch o.Tag() {
	case TagRangeInterval, TagRangeDelta, TagRangePercent, TagUncertain:
		return true
	}
	return false
}

// IsNumeric reports whether o participates directly in the promotion
// lattice (real, complex, or range family).
func (o Object) IsNumeric() bool {
	return o.IsReal() || o.IsComplex() || o.IsRange()
}

func (o Object) IsUnit() bool   { return o.Tag() == TagUnit }
func (o Object) IsSymbol() bool { return o.Tag() == TagSymbol }
func (o Object) IsText() bool   { return o.Tag() == TagText }
func (o Object) IsList() bool   { return o.Tag() == TagList }
func (o Object) IsArray() bool  { return o.Tag() == TagArray }

func (o Object) IsSymbolic() bool {
	return o.Tag() == TagExpression || o.Tag() == TagSymbol
}

func (o Object) IsExpression() bool { return o.Tag() == TagExpression }
func (o Object) IsProgram() bool    { return o.Tag() == TagProgram }
func (o Object) IsTagged() bool     { return o.Tag() == TagTagged }
func (o Object) IsCommand() bool    { return o.Tag() == TagCommand }
func (o Object) IsGrob() bool       { return o.Tag() == TagGrob || o.Tag() == TagPixmap }

// IsAlgebraic reports whether o may appear as an argument inside an
// expression (Glossary "Algebraic").
func (o Object) IsAlgebraic() bool {
	return o.IsNumeric() || o.IsSymbol() || o.IsExpression() || o.IsUnit()
}

// IsSimplifiable reports whether o is eligible for the auto-simplification
// table: any non-based numeric or symbolic value.
func (o Object) IsSimplifiable() bool {
	if o.IsBased() {
		return false
	}
	return o.IsNumeric() || o.IsSymbolic()
}

// Data-only values push themselves during evaluation; Programs, Expressions,
// Symbols and Commands are evaluated instead.
func (o Object) IsDataOnly() bool {
	switch o.Tag() {
	case TagProgram, TagExpression, TagSymbol, TagCommand:
		return false
	}
	return true
}
