package heap

// Block represents a heap-allocated tagged block: a constructor tag plus N
// slots. A block is allocated in one step and never resized; after
// hole-aware allocation, hole slots transition independently from sentinel
// to filled.
//
// Blocks use a hybrid slot layout optimized for common cases:
//   - 4 inline slots for constructors with ≤4 fields (most constructors)
//   - Overflow slice for blocks with >4 slots
//
// This avoids slice allocation overhead for the common case while still
// supporting blocks of arbitrary size.
//
// A block holding a flat float array stores its elements unboxed in a
// separate []float64 and leaves the slot storage unused; see NewFloatBlock.
type Block struct {
	tag      int
	numSlots int

	// Inline slots for the first 4 fields.
	slot0 Value
	slot1 Value
	slot2 Value
	slot3 Value

	// Overflow for blocks with >4 slots.
	// Only allocated when needed.
	overflow []Value

	// Flat unboxed storage for float arrays. Non-nil iff the block uses
	// the flat encoding; slot storage is unused then.
	floats []float64
}

// NumInlineSlots is the number of slots stored directly in the Block struct.
const NumInlineSlots = 4

// ---------------------------------------------------------------------------
// Block creation
// ---------------------------------------------------------------------------

// NewBlock creates a new block with the given tag and slot count.
// All slots are initialized to Nil.
func NewBlock(tag, numSlots int) *Block {
	b := &Block{tag: tag, numSlots: numSlots}

	b.slot0 = Nil
	b.slot1 = Nil
	b.slot2 = Nil
	b.slot3 = Nil

	if numSlots > NumInlineSlots {
		b.overflow = make([]Value, numSlots-NumInlineSlots)
		for i := range b.overflow {
			b.overflow[i] = Nil
		}
	}
	return b
}

// NewFloatBlock creates a new flat float-array block with the given element
// count. All elements are initialized to 0.
func NewFloatBlock(tag, numElems int) *Block {
	return &Block{tag: tag, numSlots: numElems, floats: make([]float64, numElems)}
}

// ---------------------------------------------------------------------------
// Slot access
// ---------------------------------------------------------------------------

// Tag returns the block's constructor tag.
func (b *Block) Tag() int {
	return b.tag
}

// NumSlots returns the number of slots (or flat elements) in the block.
func (b *Block) NumSlots() int {
	return b.numSlots
}

// IsFlat reports whether the block uses the flat unboxed float encoding.
func (b *Block) IsFlat() bool {
	return b.floats != nil
}

// GetSlot returns the value at the given slot index.
// Panics if index is out of range or the block is flat.
func (b *Block) GetSlot(index int) Value {
	if b.floats != nil {
		panic("Block.GetSlot: flat float block")
	}
	if index < 0 || index >= b.numSlots {
		panic("Block.GetSlot: index out of range")
	}
	switch index {
	case 0:
		return b.slot0
	case 1:
		return b.slot1
	case 2:
		return b.slot2
	case 3:
		return b.slot3
	default:
		return b.overflow[index-NumInlineSlots]
	}
}

// SetSlot sets the value at the given slot index.
// Panics if index is out of range or the block is flat.
func (b *Block) SetSlot(index int, value Value) {
	if b.floats != nil {
		panic("Block.SetSlot: flat float block")
	}
	if index < 0 || index >= b.numSlots {
		panic("Block.SetSlot: index out of range")
	}
	switch index {
	case 0:
		b.slot0 = value
	case 1:
		b.slot1 = value
	case 2:
		b.slot2 = value
	case 3:
		b.slot3 = value
	default:
		b.overflow[index-NumInlineSlots] = value
	}
}

// FloatAt returns the flat element at the given index.
// Panics if the block is not flat or index is out of range.
func (b *Block) FloatAt(index int) float64 {
	if b.floats == nil {
		panic("Block.FloatAt: not a flat float block")
	}
	return b.floats[index]
}

// SetFloatAt sets the flat element at the given index.
// Panics if the block is not flat or index is out of range.
func (b *Block) SetFloatAt(index int, f float64) {
	if b.floats == nil {
		panic("Block.SetFloatAt: not a flat float block")
	}
	b.floats[index] = f
}

// ---------------------------------------------------------------------------
// Value conversion helpers
// ---------------------------------------------------------------------------

// ToValue converts a Block pointer to a NaN-boxed Value.
func (b *Block) ToValue() Value {
	return FromBlockPtr(b)
}

// BlockFromValue extracts a Block pointer from a NaN-boxed Value.
// Returns nil if the value is not a block.
func BlockFromValue(v Value) *Block {
	if !v.IsBlock() {
		return nil
	}
	return v.BlockPtr()
}

// MustBlockFromValue extracts a Block pointer from a NaN-boxed Value.
// Panics if the value is not a block.
func MustBlockFromValue(v Value) *Block {
	if !v.IsBlock() {
		panic("MustBlockFromValue: not a block")
	}
	return v.BlockPtr()
}

// ---------------------------------------------------------------------------
// Slot iteration
// ---------------------------------------------------------------------------

// ForEachSlot calls fn for each slot in the block. Flat elements are
// presented as boxed float Values.
func (b *Block) ForEachSlot(fn func(index int, value Value)) {
	if b.floats != nil {
		for i, f := range b.floats {
			fn(i, FromFloat64(f))
		}
		return
	}
	for i := 0; i < b.numSlots; i++ {
		fn(i, b.GetSlot(i))
	}
}

// AllSlots returns all slot values as a slice.
// This allocates; use ForEachSlot for allocation-free iteration.
func (b *Block) AllSlots() []Value {
	slots := make([]Value, 0, b.numSlots)
	b.ForEachSlot(func(_ int, v Value) {
		slots = append(slots, v)
	})
	return slots
}
