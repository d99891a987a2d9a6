package heap

import "errors"

// ---------------------------------------------------------------------------
// Destination: write-once handle to a single hole slot
// ---------------------------------------------------------------------------

// ErrAlreadyFilled is returned by Fill under the checked policy when the
// destination's slot no longer holds the sentinel. The slot's value is left
// unchanged.
var ErrAlreadyFilled = errors.New("heap: destination already filled")

// Policy selects how hole slots are sentineled and whether fills are
// validated. Both policies share the same Destination type, so callers can
// switch policy without changing call sites.
type Policy int

const (
	// PolicyUnchecked writes a static dummy (Nil, 0, or 0.0 depending on
	// the slot kind) into hole slots. Fill is a plain write: a double fill
	// silently overwrites, and reading an unfilled slot yields the dummy.
	// Zero overhead.
	PolicyUnchecked Policy = iota

	// PolicyChecked writes the reserved HoleMarker sentinel into hole
	// slots. Fill compares before writing and fails with ErrAlreadyFilled
	// on a double fill; IsSet reports whether the slot is still empty.
	// Flat float slots have no spare bit pattern and stay unchecked even
	// under this policy.
	PolicyChecked
)

// Destination names exactly one hole slot inside one allocated block and is
// the unique authorized way to write that slot. Destinations are created
// only by Allocate; there is no way to forge one for an arbitrary slot.
//
// The write-once contract is the caller's responsibility under
// PolicyUnchecked; PolicyChecked upgrades a violation into ErrAlreadyFilled.
// A destination exposes no read: reading happens through the owning value's
// ordinary slot access.
type Destination struct {
	block  *Block
	index  int
	flat   bool
	policy Policy
}

// Checkable reports whether this destination supports IsSet and double-fill
// detection. Only destinations allocated under PolicyChecked into non-flat
// slots are checkable.
func (d *Destination) Checkable() bool {
	return d.policy == PolicyChecked && !d.flat
}

// Fill writes v into the slot named by d, replacing the sentinel.
//
// Under PolicyChecked (on a checkable slot) a second fill returns
// ErrAlreadyFilled and leaves the slot unchanged. Under PolicyUnchecked the
// write is unconditional. Filling a flat float slot requires a float value.
// The hole sentinel itself is not a storable value; passing it panics.
func (d *Destination) Fill(v Value) error {
	if v == HoleMarker {
		panic("Destination.Fill: hole marker is not a storable value")
	}
	if d.flat {
		if !v.IsFloat() {
			panic("Destination.Fill: flat float slot requires a float value")
		}
		d.block.SetFloatAt(d.index, v.Float64())
		return nil
	}
	if d.policy == PolicyChecked {
		if d.block.GetSlot(d.index) != HoleMarker {
			return ErrAlreadyFilled
		}
	}
	d.block.SetSlot(d.index, v)
	return nil
}

// IsSet reports whether the slot has been filled.
// Panics unless the destination is checkable (see Checkable): under the
// unchecked policy, and for flat float slots, the slot content carries no
// emptiness information.
func (d *Destination) IsSet() bool {
	if !d.Checkable() {
		panic("Destination.IsSet: destination is not checkable")
	}
	return d.block.GetSlot(d.index) != HoleMarker
}
