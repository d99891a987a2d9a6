package heap

import (
	"math"
	"testing"
)

// ---------------------------------------------------------------------------
// Float tests
// ---------------------------------------------------------------------------

func TestFloatRoundTrip(t *testing.T) {
	tests := []float64{
		0.0,
		-0.0,
		1.0,
		-1.0,
		3.14159265358979,
		-3.14159265358979,
		math.MaxFloat64,
		math.SmallestNonzeroFloat64,
		math.Inf(1),
		math.Inf(-1),
	}

	for _, f := range tests {
		v := FromFloat64(f)
		if !v.IsFloat() {
			t.Errorf("FromFloat64(%v).IsFloat() = false, want true", f)
			continue
		}
		got := v.Float64()
		if got != f {
			t.Errorf("FromFloat64(%v).Float64() = %v, want %v", f, got, f)
		}
	}
}

func TestFloatNaN(t *testing.T) {
	// Real NaN should be treated as a float
	v := FromFloat64(math.NaN())
	if !v.IsFloat() {
		t.Error("NaN should be treated as float")
	}
	if !math.IsNaN(v.Float64()) {
		t.Error("NaN roundtrip failed")
	}
}

// ---------------------------------------------------------------------------
// SmallInt tests
// ---------------------------------------------------------------------------

func TestSmallIntRoundTrip(t *testing.T) {
	tests := []int64{
		0, 1, -1, 42, -42,
		MaxSmallInt, MinSmallInt,
		MaxSmallInt - 1, MinSmallInt + 1,
	}

	for _, n := range tests {
		v := FromSmallInt(n)
		if !v.IsSmallInt() {
			t.Errorf("FromSmallInt(%d).IsSmallInt() = false, want true", n)
			continue
		}
		if got := v.SmallInt(); got != n {
			t.Errorf("FromSmallInt(%d).SmallInt() = %d, want %d", n, got, n)
		}
	}
}

func TestSmallIntOutOfRange(t *testing.T) {
	if _, ok := TryFromSmallInt(MaxSmallInt + 1); ok {
		t.Error("TryFromSmallInt should reject MaxSmallInt+1")
	}
	if _, ok := TryFromSmallInt(MinSmallInt - 1); ok {
		t.Error("TryFromSmallInt should reject MinSmallInt-1")
	}
}

// ---------------------------------------------------------------------------
// Special values
// ---------------------------------------------------------------------------

func TestSpecialValues(t *testing.T) {
	if !Nil.IsNil() || !Nil.IsSpecial() {
		t.Error("Nil should be nil and special")
	}
	if !True.Bool() || False.Bool() {
		t.Error("boolean values broken")
	}
	if !True.IsBool() || !False.IsBool() || Nil.IsBool() {
		t.Error("IsBool misclassifies")
	}
	if FromBool(true) != True || FromBool(false) != False {
		t.Error("FromBool misencodes")
	}
}

// ---------------------------------------------------------------------------
// Hole marker: the checkable sentinel
// ---------------------------------------------------------------------------

func TestHoleMarkerDistinguishable(t *testing.T) {
	if !HoleMarker.IsHoleMarker() || !HoleMarker.IsSpecial() {
		t.Fatal("HoleMarker misencoded")
	}
	// The sentinel must be distinguishable from every legitimate value:
	// floats (including NaN and infinities), small ints, specials, and
	// block pointers.
	if HoleMarker.IsFloat() {
		t.Error("HoleMarker must not read as a float")
	}
	if HoleMarker.IsSmallInt() {
		t.Error("HoleMarker must not read as a small int")
	}
	if HoleMarker.IsBlock() {
		t.Error("HoleMarker must not read as a block")
	}
	for _, v := range []Value{Nil, True, False, FromSmallInt(0), FromFloat64(0), FromFloat64(math.NaN())} {
		if v == HoleMarker {
			t.Errorf("legitimate value %v collides with HoleMarker", uint64(v))
		}
	}
	if b := NewBlock(0, 1).ToValue(); b == HoleMarker {
		t.Error("block value collides with HoleMarker")
	}
}

// ---------------------------------------------------------------------------
// Block pointers
// ---------------------------------------------------------------------------

func TestBlockPtrRoundTrip(t *testing.T) {
	b := NewBlock(7, 2)
	v := b.ToValue()
	if !v.IsBlock() {
		t.Fatal("ToValue should produce a block value")
	}
	if v.IsFloat() || v.IsSmallInt() || v.IsSpecial() {
		t.Error("block value misclassified")
	}
	if got := v.BlockPtr(); got != b {
		t.Errorf("BlockPtr = %p, want %p", got, b)
	}
}

func TestAccessorPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Float64 on int", func() { FromSmallInt(1).Float64() }},
		{"SmallInt on float", func() { FromFloat64(1).SmallInt() }},
		{"BlockPtr on nil", func() { Nil.BlockPtr() }},
		{"Bool on nil", func() { Nil.Bool() }},
		{"FromSmallInt out of range", func() { FromSmallInt(MaxSmallInt + 1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}
