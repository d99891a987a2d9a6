package heap

import (
	"math"
	"unsafe"
)

// Value represents a runtime value using NaN-boxing.
//
// All values are represented as 64-bit IEEE 754 doubles. Non-float values
// are encoded in the NaN (Not-a-Number) space using the quiet NaN prefix
// and tag bits to distinguish types.
//
// Encoding scheme:
//   - Float: Native IEEE 754 double (if not a NaN, it's a float)
//   - SmallInt: Quiet NaN + tagInt + 48-bit signed payload
//   - Block: Quiet NaN + tagBlock + 48-bit pointer to a heap block
//   - Special: Quiet NaN + tagSpecial + special value ID (nil/true/false/hole)
//
// The hole special is the checkable sentinel: its bit pattern is not a
// legal float, not a legal small int, and not a legal block pointer, so a
// slot holding it is distinguishable from a slot holding any real value.
type Value uint64

// NaN-boxing constants
const (
	// Quiet NaN prefix: exponent all 1s, quiet bit set, sign bit 0
	// 0x7FF8_0000_0000_0000
	nanBits uint64 = 0x7FF8000000000000

	// Tag mask: 3 bits within the NaN mantissa space
	// 0x0007_0000_0000_0000
	tagMask uint64 = 0x0007000000000000

	// Payload mask: 48 bits for pointer/int/id
	// 0x0000_FFFF_FFFF_FFFF
	payloadMask uint64 = 0x0000FFFFFFFFFFFF

	// Tag values (shifted into position)
	tagBlock   uint64 = 0x0001000000000000 // Heap block pointer
	tagInt     uint64 = 0x0002000000000000 // 48-bit signed integer
	tagSpecial uint64 = 0x0003000000000000 // nil, true, false, hole

	// Sign bit for 48-bit integer sign extension
	intSignBit uint64 = 0x0000800000000000

	// Mask for sign extension
	intSignExtend uint64 = 0xFFFF000000000000
)

// Special value payloads
const (
	specialNil   uint64 = 0
	specialTrue  uint64 = 1
	specialFalse uint64 = 2
	specialHole  uint64 = 3
)

// Pre-defined special values
const (
	Nil   Value = Value(nanBits | tagSpecial | specialNil)
	True  Value = Value(nanBits | tagSpecial | specialTrue)
	False Value = Value(nanBits | tagSpecial | specialFalse)

	// HoleMarker is the reserved sentinel stored in unfilled hole slots
	// under the checked fill policy. It is never a legitimate field value;
	// Fill refuses to store it.
	HoleMarker Value = Value(nanBits | tagSpecial | specialHole)
)

// SmallInt range (48-bit signed)
const (
	MaxSmallInt int64 = (1 << 47) - 1
	MinSmallInt int64 = -(1 << 47)
)

// ---------------------------------------------------------------------------
// Type checking
// ---------------------------------------------------------------------------

// IsFloat returns true if v represents a float64 value.
// A value is a float if it's not one of our tagged NaN values.
// This includes regular numbers, infinities, and "real" NaN values.
func (v Value) IsFloat() bool {
	bits := uint64(v)

	// Check if it's a NaN or Infinity (exponent all 1s)
	if (bits & 0x7FF0000000000000) != 0x7FF0000000000000 {
		// Exponent is not all 1s, so it's a regular float
		return true
	}

	// Exponent is all 1s. Could be Infinity or NaN.
	// Infinity has mantissa == 0 (ignoring sign bit)
	mantissa := bits & 0x000FFFFFFFFFFFFF
	if mantissa == 0 {
		return true
	}

	// It's a NaN. A signaling NaN or an untagged quiet NaN is still a
	// float; only our tagged values are not.
	if (bits & nanBits) != nanBits {
		return true
	}
	return (bits & tagMask) == 0
}

// IsSmallInt returns true if v represents a small integer.
func (v Value) IsSmallInt() bool {
	return (uint64(v) & (nanBits | tagMask)) == (nanBits | tagInt)
}

// IsBlock returns true if v represents a heap block pointer.
func (v Value) IsBlock() bool {
	return (uint64(v) & (nanBits | tagMask)) == (nanBits | tagBlock)
}

// IsSpecial returns true if v is nil, true, false, or the hole marker.
func (v Value) IsSpecial() bool {
	return (uint64(v) & (nanBits | tagMask)) == (nanBits | tagSpecial)
}

// IsNil returns true if v is the nil value.
func (v Value) IsNil() bool {
	return v == Nil
}

// IsBool returns true if v is true or false.
func (v Value) IsBool() bool {
	return v == True || v == False
}

// IsHoleMarker returns true if v is the reserved hole sentinel.
func (v Value) IsHoleMarker() bool {
	return v == HoleMarker
}

// ---------------------------------------------------------------------------
// Float operations
// ---------------------------------------------------------------------------

// Float64 returns v as a float64.
// Panics if v is not a float.
func (v Value) Float64() float64 {
	if !v.IsFloat() {
		panic("Value.Float64: not a float")
	}
	return math.Float64frombits(uint64(v))
}

// FromFloat64 creates a Value from a float64.
func FromFloat64(f float64) Value {
	return Value(math.Float64bits(f))
}

// ---------------------------------------------------------------------------
// SmallInt operations
// ---------------------------------------------------------------------------

// SmallInt returns v as an int64.
// Panics if v is not a small integer.
func (v Value) SmallInt() int64 {
	if !v.IsSmallInt() {
		panic("Value.SmallInt: not a small integer")
	}
	payload := uint64(v) & payloadMask

	// Sign extend from 48 bits to 64 bits
	if (payload & intSignBit) != 0 {
		payload |= intSignExtend
	}
	return int64(payload)
}

// FromSmallInt creates a Value from an int64.
// Panics if n is outside the SmallInt range.
func FromSmallInt(n int64) Value {
	if n > MaxSmallInt || n < MinSmallInt {
		panic("FromSmallInt: value out of range")
	}
	return Value(nanBits | tagInt | (uint64(n) & payloadMask))
}

// TryFromSmallInt creates a Value from an int64, returning false if out of range.
func TryFromSmallInt(n int64) (Value, bool) {
	if n > MaxSmallInt || n < MinSmallInt {
		return Nil, false
	}
	return Value(nanBits | tagInt | (uint64(n) & payloadMask)), true
}

// ---------------------------------------------------------------------------
// Block pointer operations
// ---------------------------------------------------------------------------

// blockRegistry keeps blocks alive to prevent Go's GC from collecting them.
// When we convert a Block pointer to an integer (for NaN-boxing), Go can't
// track the reference anymore. This registry maintains a Go-visible
// reference for every live block.
var blockRegistry = make(map[*Block]struct{})

// BlockPtr returns the Block pointed to by v.
// Panics if v is not a block.
func (v Value) BlockPtr() *Block {
	if !v.IsBlock() {
		panic("Value.BlockPtr: not a block")
	}
	ptr := uintptr(uint64(v) & payloadMask)
	return (*Block)(unsafe.Pointer(ptr))
}

// FromBlockPtr creates a Value from a Block pointer and registers the block
// so the GC keeps it alive. The pointer must fit in 48 bits (true for all
// current architectures).
func FromBlockPtr(b *Block) Value {
	blockRegistry[b] = struct{}{} // Keep alive
	ptr := uint64(uintptr(unsafe.Pointer(b)))
	return Value(nanBits | tagBlock | (ptr & payloadMask))
}

// ---------------------------------------------------------------------------
// Boolean operations
// ---------------------------------------------------------------------------

// Bool returns v as a bool.
// Panics if v is not true or false.
func (v Value) Bool() bool {
	switch v {
	case True:
		return true
	case False:
		return false
	default:
		panic("Value.Bool: not a boolean")
	}
}

// FromBool creates a Value from a bool.
func FromBool(b bool) Value {
	if b {
		return True
	}
	return False
}
