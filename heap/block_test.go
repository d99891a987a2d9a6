package heap

import "testing"

// ---------------------------------------------------------------------------
// Slot storage
// ---------------------------------------------------------------------------

func TestBlockSlots(t *testing.T) {
	// Cover both the inline slots and the overflow slice.
	for _, n := range []int{0, 1, 4, 5, 9} {
		b := NewBlock(3, n)
		if b.Tag() != 3 {
			t.Errorf("Tag = %d, want 3", b.Tag())
		}
		if b.NumSlots() != n {
			t.Errorf("NumSlots = %d, want %d", b.NumSlots(), n)
		}
		for i := 0; i < n; i++ {
			if got := b.GetSlot(i); got != Nil {
				t.Errorf("fresh slot %d = %v, want Nil", i, uint64(got))
			}
		}
		for i := 0; i < n; i++ {
			b.SetSlot(i, FromSmallInt(int64(i)))
		}
		for i := 0; i < n; i++ {
			if got := b.GetSlot(i); got.SmallInt() != int64(i) {
				t.Errorf("slot %d = %d, want %d", i, got.SmallInt(), i)
			}
		}
	}
}

func TestBlockSlotRange(t *testing.T) {
	b := NewBlock(0, 2)
	for _, idx := range []int{-1, 2, 100} {
		idx := idx
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("GetSlot(%d) should panic", idx)
				}
			}()
			b.GetSlot(idx)
		}()
	}
}

// ---------------------------------------------------------------------------
// Flat float blocks
// ---------------------------------------------------------------------------

func TestFloatBlock(t *testing.T) {
	b := NewFloatBlock(-1, 3)
	if !b.IsFlat() {
		t.Fatal("IsFlat should be true")
	}
	if b.NumSlots() != 3 {
		t.Errorf("NumSlots = %d, want 3", b.NumSlots())
	}
	for i := 0; i < 3; i++ {
		if b.FloatAt(i) != 0 {
			t.Errorf("fresh element %d = %v, want 0", i, b.FloatAt(i))
		}
	}
	b.SetFloatAt(1, 2.5)
	if b.FloatAt(1) != 2.5 {
		t.Errorf("FloatAt(1) = %v, want 2.5", b.FloatAt(1))
	}

	// Slot access on a flat block is a contract violation.
	defer func() {
		if recover() == nil {
			t.Error("GetSlot on flat block should panic")
		}
	}()
	b.GetSlot(0)
}

// ---------------------------------------------------------------------------
// Iteration
// ---------------------------------------------------------------------------

func TestAllSlots(t *testing.T) {
	b := NewBlock(0, 6)
	for i := 0; i < 6; i++ {
		b.SetSlot(i, FromSmallInt(int64(10+i)))
	}
	slots := b.AllSlots()
	if len(slots) != 6 {
		t.Fatalf("len(AllSlots) = %d, want 6", len(slots))
	}
	for i, v := range slots {
		if v.SmallInt() != int64(10+i) {
			t.Errorf("AllSlots[%d] = %d, want %d", i, v.SmallInt(), 10+i)
		}
	}

	fb := NewFloatBlock(-1, 2)
	fb.SetFloatAt(0, 1.5)
	fb.SetFloatAt(1, -2.5)
	fslots := fb.AllSlots()
	if len(fslots) != 2 || fslots[0].Float64() != 1.5 || fslots[1].Float64() != -2.5 {
		t.Errorf("flat AllSlots = %v", fslots)
	}
}

// ---------------------------------------------------------------------------
// Structural equality
// ---------------------------------------------------------------------------

func TestEqual(t *testing.T) {
	mk := func(tag int, vals ...Value) Value {
		b := NewBlock(tag, len(vals))
		for i, v := range vals {
			b.SetSlot(i, v)
		}
		return b.ToValue()
	}

	a := mk(1, FromSmallInt(7), mk(2, FromFloat64(3.5)))
	b := mk(1, FromSmallInt(7), mk(2, FromFloat64(3.5)))
	c := mk(1, FromSmallInt(7), mk(2, FromFloat64(4.5)))
	d := mk(9, FromSmallInt(7), mk(2, FromFloat64(3.5)))

	if !Equal(a, b) {
		t.Error("structurally identical blocks should be Equal")
	}
	if Equal(a, c) {
		t.Error("different nested slot values should not be Equal")
	}
	if Equal(a, d) {
		t.Error("different tags should not be Equal")
	}
	if !Equal(Nil, Nil) || Equal(Nil, False) {
		t.Error("special equality broken")
	}

	f1 := NewFloatBlock(-1, 2)
	f1.SetFloatAt(0, 1)
	f1.SetFloatAt(1, 2)
	f2 := NewFloatBlock(-1, 2)
	f2.SetFloatAt(0, 1)
	f2.SetFloatAt(1, 2)
	if !Equal(f1.ToValue(), f2.ToValue()) {
		t.Error("identical flat blocks should be Equal")
	}
	f2.SetFloatAt(1, 3)
	if Equal(f1.ToValue(), f2.ToValue()) {
		t.Error("different flat elements should not be Equal")
	}
	if Equal(f1.ToValue(), mk(-1, FromFloat64(1), FromFloat64(2))) {
		t.Error("flat and boxed encodings are observationally distinct blocks")
	}
}
