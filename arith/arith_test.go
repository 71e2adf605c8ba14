package arith

import (
	"math/big"
	"testing"

	"github.com/hpcalc/rpl48/heap"
	"github.com/hpcalc/rpl48/object"
)

type fakeSettings struct {
	autoSimplify bool
	zeroIsOne    bool
}

func (s fakeSettings) AutoSimplify() bool    { return s.autoSimplify }
func (s fakeSettings) ZeroToZeroIsOne() bool { return s.zeroIsOne }

func newTestHeap(t *testing.T) *heap.Heap {
	t.Helper()
	return heap.New(1 << 16)
}

func TestIntegerAddPromotesOnOverflow(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewInteger(h, 1<<62)
	y, _ := object.NewInteger(h, 1<<62)
	r, err := Eval(h, nil, Add, x, y)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if r.Tag() != object.TagBignum {
		t.Fatalf("want promotion to bignum, got %s", r.Tag().Name())
	}
	if object.BignumValue(r).Uint64() != 1<<63 {
		t.Fatalf("wrong sum: %v", object.BignumValue(r))
	}
}

func TestFractionReducesToInteger(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewInteger(h, 1)
	y, _ := object.NewInteger(h, 3)
	half, err := Eval(h, nil, Div, x, y)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if half.Tag() != object.TagFraction {
		t.Fatalf("want fraction, got %s", half.Tag().Name())
	}
	doubled, err := Eval(h, nil, Mul, half, y)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if doubled.Tag() != object.TagInteger || object.IntegerValue(doubled) != 1 {
		t.Fatalf("want reduced integer 1, got tag=%s", doubled.Tag().Name())
	}
}

func TestDivideByZeroReturnsInfinity(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewInteger(h, 5)
	zero, _ := object.NewInteger(h, 0)
	r, err := Eval(h, nil, Div, x, zero)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !r.IsInfinity() || object.InfinityNegative(r) {
		t.Fatalf("want +infinity, got %v", r)
	}
}

func TestAutoSimplifyIdentities(t *testing.T) {
	h := newTestHeap(t)
	st := fakeSettings{autoSimplify: true}
	x, _ := object.NewDecimal(h, big.NewInt(7), 0)
	zero, _ := object.NewInteger(h, 0)
	r, err := Eval(h, st, Add, x, zero)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !r.Equal(x) {
		t.Fatalf("want x+0==x")
	}
	one, _ := object.NewInteger(h, 1)
	r2, err := Eval(h, st, Mul, x, one)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !r2.Equal(x) {
		t.Fatalf("want x*1==x")
	}
}

func TestZeroToZeroPowSetting(t *testing.T) {
	h := newTestHeap(t)
	zero, _ := object.NewInteger(h, 0)
	st := fakeSettings{autoSimplify: true, zeroIsOne: true}
	r, err := Eval(h, st, Pow, zero, zero)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if object.IntegerValue(r) != 1 {
		t.Fatalf("want 0^0==1 under setting, got %v", r)
	}

	st2 := fakeSettings{autoSimplify: true, zeroIsOne: false}
	if _, err := Eval(h, st2, Pow, zero, zero); err == nil {
		t.Fatalf("want error for 0^0 when setting disabled")
	}
}

func TestBasedIntegerWraps(t *testing.T) {
	h := newTestHeap(t)
	x, _ := object.NewBased(h, 0xFF, 16, 8)
	one, _ := object.NewBased(h, 1, 16, 8)
	r, err := Eval(h, nil, Add, x, one)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	mag, _, _ := object.BasedValue(r)
	if mag != 0 {
		t.Fatalf("want wraparound to 0, got %d", mag)
	}
}

func TestUnitAdditionConverts(t *testing.T) {
	h := newTestHeap(t)
	m, _ := object.NewInteger(h, 1)
	mExpr, _ := object.NewText(h, "m")
	meter, _ := object.NewUnit(h, m, mExpr)

	cm, _ := object.NewInteger(h, 100)
	cmExpr, _ := object.NewText(h, "cm")
	centimeters, _ := object.NewUnit(h, cm, cmExpr)

	r, err := Eval(h, nil, Add, meter, centimeters)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	val, unitExpr, err := object.UnitParts(r)
	if err != nil {
		t.Fatalf("UnitParts: %v", err)
	}
	if object.TextValue(unitExpr) != "m" {
		t.Fatalf("want result unit m, got %s", object.TextValue(unitExpr))
	}
	if decimalToFloat(mustDecimalOf(h, val)) != 2 {
		t.Fatalf("want 1m+100cm==2m, got %v", val)
	}
}

func mustDecimalOf(h *heap.Heap, o object.Object) object.Object {
	d, err := toDecimal(h, o)
	if err != nil {
		panic(err)
	}
	return d
}
