package shape

// ---------------------------------------------------------------------------
// Element kinds: the per-slot representation lattice
// ---------------------------------------------------------------------------

// Kind describes the machine representation of a single slot.
//
// Kinds form a flat lattice with KindUnresolved as the bottom element: a
// hole whose eventual representation is not pinned down by its static type
// starts out unresolved, and only sibling information (static, never a
// runtime value) may resolve it. A shape that reaches layout time with an
// unresolved kind in a representation-sensitive position is not a valid
// multi-holed context and must be rejected.
type Kind int

const (
	// KindUnresolved is the lattice bottom: no static information yet.
	KindUnresolved Kind = iota

	// KindBoxed is a pointer-sized reference slot (heap block or uniform
	// tagged word).
	KindBoxed

	// KindScalar is an unboxed integer slot.
	KindScalar

	// KindFloat is an unboxed floating-point slot.
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindUnresolved:
		return "?"
	case KindBoxed:
		return "box"
	case KindScalar:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Resolved reports whether k carries enough information to fix a slot's
// representation at allocation time.
func (k Kind) Resolved() bool {
	return k != KindUnresolved
}
