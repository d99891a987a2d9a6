package heap

import (
	"fmt"

	"github.com/chazu/hollow/shape"
)

// Construct builds a value from a layout all at once: ordinary
// construction, with one value per leaf slot (holes included) in
// left-to-right pre-order. It is the reference the hole-based path is
// measured against — allocate-then-fill must produce a value Equal to the
// one Construct produces from the same per-slot values.
func Construct(l *shape.Layout, values []Value) Value {
	if want := l.NumKnown() + l.NumHoles(); len(values) != want {
		panic(fmt.Sprintf("heap.Construct: layout has %d leaf slots, got %d values", want, len(values)))
	}
	return constructBlock(l, &values)
}

func constructBlock(l *shape.Layout, values *[]Value) Value {
	if l.Flat {
		b := NewFloatBlock(l.Tag, len(l.Slots))
		for i := range l.Slots {
			v := takeKnown(values)
			if !v.IsFloat() {
				panic("heap.Construct: flat float slot requires a float value")
			}
			b.SetFloatAt(i, v.Float64())
		}
		return b.ToValue()
	}
	b := NewBlock(l.Tag, len(l.Slots))
	for i, s := range l.Slots {
		if s.Child != nil {
			b.SetSlot(i, constructBlock(s.Child, values))
			continue
		}
		b.SetSlot(i, takeKnown(values))
	}
	return b.ToValue()
}
