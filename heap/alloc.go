package heap

import (
	"fmt"

	"github.com/chazu/hollow/shape"
)

// ---------------------------------------------------------------------------
// Hole-aware allocation
// ---------------------------------------------------------------------------

// Allocator allocates blocks from resolved layouts, leaving hole slots
// sentineled for later fills. The fill policy is fixed per allocator;
// destinations inherit it.
type Allocator struct {
	policy Policy
}

// NewAllocator creates an allocator using the given fill policy.
func NewAllocator(p Policy) *Allocator {
	return &Allocator{policy: p}
}

// Policy returns the allocator's fill policy.
func (a *Allocator) Policy() Policy {
	return a.policy
}

// Allocate builds a value from a resolved layout. Known slots are written
// from the supplied values, in the same left-to-right pre-order the resolver
// used; hole slots are written with the policy's sentinel. Nested
// constructor slots allocate their child blocks recursively.
//
// The returned destinations are ordered by the holes' left-to-right
// appearance in the source shape. Callers rely on this positional
// correspondence.
//
// Allocation from a layout produced by shape.Resolve cannot fail; a
// mismatch between the layout and the known-value count is a caller bug and
// panics.
func (a *Allocator) Allocate(l *shape.Layout, known []Value) (Value, []*Destination) {
	if want := l.NumKnown(); len(known) != want {
		panic(fmt.Sprintf("Allocator.Allocate: layout wants %d known values, got %d", want, len(known)))
	}
	dests := make([]*Destination, 0, l.NumHoles())
	v := a.allocBlock(l, &known, &dests)
	return v, dests
}

// allocBlock allocates one block for l, consuming known values from the
// front of *known and appending destinations in discovery order.
func (a *Allocator) allocBlock(l *shape.Layout, known *[]Value, dests *[]*Destination) Value {
	if l.Flat {
		return a.allocFlat(l, known, dests)
	}

	b := NewBlock(l.Tag, len(l.Slots))
	for i, s := range l.Slots {
		switch {
		case s.Child != nil:
			b.SetSlot(i, a.allocBlock(s.Child, known, dests))
		case s.Hole:
			b.SetSlot(i, a.sentinel(s.Kind))
			*dests = append(*dests, &Destination{block: b, index: i, policy: a.policy})
		default:
			b.SetSlot(i, takeKnown(known))
		}
	}
	return b.ToValue()
}

// allocFlat allocates a flat float-array block. Flat slots hold raw
// float64s: the static dummy is 0.0 regardless of policy, since no spare
// bit pattern exists for a checkable sentinel.
func (a *Allocator) allocFlat(l *shape.Layout, known *[]Value, dests *[]*Destination) Value {
	b := NewFloatBlock(l.Tag, len(l.Slots))
	for i, s := range l.Slots {
		if s.Hole {
			*dests = append(*dests, &Destination{block: b, index: i, flat: true, policy: a.policy})
			continue
		}
		v := takeKnown(known)
		if !v.IsFloat() {
			panic("Allocator.Allocate: flat float slot requires a float value")
		}
		b.SetFloatAt(i, v.Float64())
	}
	return b.ToValue()
}

// sentinel returns the placeholder written into a hole slot of the given
// kind at allocation time.
func (a *Allocator) sentinel(k shape.Kind) Value {
	if a.policy == PolicyChecked {
		return HoleMarker
	}
	switch k {
	case shape.KindScalar:
		return FromSmallInt(0)
	case shape.KindFloat:
		return FromFloat64(0)
	default:
		return Nil
	}
}

func takeKnown(known *[]Value) Value {
	v := (*known)[0]
	*known = (*known)[1:]
	return v
}
