package heap

// Equal reports whether two values are observationally identical: equal
// floats, ints, and specials, or blocks with the same tag, encoding, and
// pairwise-equal slots. This is the equality the allocate-then-fill
// mechanism is measured against: a filled block must compare Equal to one
// built directly.
//
// Float comparison is bitwise (via the NaN-boxed representation), so NaN
// payloads and signed zeroes must match exactly — a deliberate choice:
// "observationally identical" includes the bit pattern a reader would see.
func Equal(a, b Value) bool {
	if a == b {
		return true
	}
	if !a.IsBlock() || !b.IsBlock() {
		return false
	}
	ba, bb := a.BlockPtr(), b.BlockPtr()
	if ba.Tag() != bb.Tag() || ba.NumSlots() != bb.NumSlots() || ba.IsFlat() != bb.IsFlat() {
		return false
	}
	if ba.IsFlat() {
		for i := 0; i < ba.NumSlots(); i++ {
			if FromFloat64(ba.FloatAt(i)) != FromFloat64(bb.FloatAt(i)) {
				return false
			}
		}
		return true
	}
	for i := 0; i < ba.NumSlots(); i++ {
		if !Equal(ba.GetSlot(i), bb.GetSlot(i)) {
			return false
		}
	}
	return true
}
