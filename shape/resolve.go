package shape

import (
	"fmt"
	"strconv"
)

// ---------------------------------------------------------------------------
// Resolver: static shape -> block layout
// ---------------------------------------------------------------------------

// ArrayTag is the constructor tag carried by array blocks. User constructor
// tags are non-negative, so the value cannot collide.
const ArrayTag = -1

// Layout is a resolved block layout: a tag plus an ordered slot list, with
// hole positions marked. Layouts are produced only by Resolve and are safe
// to share and cache: nothing mutates them after resolution.
type Layout struct {
	Tag  int
	Flat bool // flat unboxed float storage (arrays only)

	Slots []SlotLayout
}

// SlotLayout describes one slot of a block.
type SlotLayout struct {
	Kind Kind
	Hole bool

	// Child is the layout of a nested constructor or array occupying this
	// slot, nil for leaf and hole slots.
	Child *Layout
}

// NumHoles returns the number of hole slots in the layout, including holes
// inside nested child layouts.
func (l *Layout) NumHoles() int {
	n := 0
	for _, s := range l.Slots {
		if s.Hole {
			n++
		}
		if s.Child != nil {
			n += s.Child.NumHoles()
		}
	}
	return n
}

// NumKnown returns the number of known leaf slots, including nested ones.
// This is the length of the value list Allocate expects.
func (l *Layout) NumKnown() int {
	n := 0
	for _, s := range l.Slots {
		if !s.Hole && s.Child == nil {
			n++
		}
		if s.Child != nil {
			n += s.Child.NumKnown()
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Rejection
// ---------------------------------------------------------------------------

// Reason classifies why a shape cannot use hole-based allocation.
type Reason int

const (
	// ReasonUndecidableLayout means some slot's representation depends on
	// a value that will only exist once a hole is filled. The caller must
	// fall back to ordinary all-at-once construction.
	ReasonUndecidableLayout Reason = iota
)

func (r Reason) String() string {
	switch r {
	case ReasonUndecidableLayout:
		return "undecidable-layout"
	default:
		return "unknown"
	}
}

// Rejected reports that a shape is not a valid multi-holed context. It is a
// compile-time-visible signal, not a runtime fault.
type Rejected struct {
	Reason Reason

	// Path locates the offending node: dot-separated field indices from
	// the root, empty for the root itself.
	Path string
}

func (r *Rejected) Error() string {
	if r.Path == "" {
		return fmt.Sprintf("shape rejected: %s", r.Reason)
	}
	return fmt.Sprintf("shape rejected at %s: %s", r.Path, r.Reason)
}

// ---------------------------------------------------------------------------
// Resolution
// ---------------------------------------------------------------------------

// Resolve computes the block layout for a constructor expression, or rejects
// it when the layout is statically undecidable.
//
// Every representation decision is made from the static shape alone. The
// load-bearing case is the homogeneous array: its flat-vs-boxed encoding is
// chosen once for all elements, so an array whose elements are all floats or
// unresolved holes — with at least one unresolved hole — cannot be laid out
// until the holes are filled, which is exactly backwards from what
// allocation needs. Such shapes are rejected with undecidable-layout.
//
// Resolve is pure: the same expression always yields the same layout or the
// same rejection.
func Resolve(e Expr) (*Layout, *Rejected) {
	return resolveNode(e, "")
}

func resolveNode(e Expr, path string) (*Layout, *Rejected) {
	switch n := e.(type) {
	case *Ctor:
		return resolveCtor(n, path)
	case *Array:
		return resolveArray(n, path)
	default:
		panic(fmt.Sprintf("shape.Resolve: unknown expression node %T", e))
	}
}

func resolveCtor(c *Ctor, path string) (*Layout, *Rejected) {
	l := &Layout{Tag: c.Tag, Slots: make([]SlotLayout, len(c.Fields))}
	for i, f := range c.Fields {
		switch fld := f.(type) {
		case *Leaf:
			if !fld.Kind.Resolved() {
				return nil, &Rejected{Reason: ReasonUndecidableLayout, Path: childPath(path, i)}
			}
			l.Slots[i] = SlotLayout{Kind: fld.Kind}
		case *Hole:
			// Constructor fields occupy one uniform word each, so an
			// unconstrained hole resolves to a boxed word.
			k := fld.Kind
			if !k.Resolved() {
				k = KindBoxed
			}
			l.Slots[i] = SlotLayout{Kind: k, Hole: true}
		case Expr:
			child, rej := resolveNode(fld, childPath(path, i))
			if rej != nil {
				return nil, rej
			}
			l.Slots[i] = SlotLayout{Kind: KindBoxed, Child: child}
		default:
			panic(fmt.Sprintf("shape.Resolve: unknown field node %T", f))
		}
	}
	return l, nil
}

func resolveArray(a *Array, path string) (*Layout, *Rejected) {
	// First pass: the statically known kind of every element. Nested
	// constructors and arrays are themselves boxed blocks.
	kinds := make([]Kind, len(a.Elems))
	sawNonFloat := false
	sawUnresolved := false
	for i, f := range a.Elems {
		switch fld := f.(type) {
		case *Leaf:
			if !fld.Kind.Resolved() {
				return nil, &Rejected{Reason: ReasonUndecidableLayout, Path: childPath(path, i)}
			}
			kinds[i] = fld.Kind
		case *Hole:
			kinds[i] = fld.Kind
		case Expr:
			kinds[i] = KindBoxed
		default:
			panic(fmt.Sprintf("shape.Resolve: unknown field node %T", f))
		}
		switch kinds[i] {
		case KindUnresolved:
			sawUnresolved = true
		case KindBoxed, KindScalar:
			sawNonFloat = true
		}
	}

	// Encoding decision. A non-float element pins the boxed encoding and
	// every unresolved hole with it. All-float pins the flat encoding.
	// All-float-or-unresolved with at least one unresolved hole is the
	// undecidable case: the encoding would be chosen by runtime values.
	if sawUnresolved && !sawNonFloat {
		return nil, &Rejected{Reason: ReasonUndecidableLayout, Path: path}
	}
	flat := !sawNonFloat && len(a.Elems) > 0

	l := &Layout{Tag: ArrayTag, Flat: flat, Slots: make([]SlotLayout, len(a.Elems))}
	for i, f := range a.Elems {
		switch fld := f.(type) {
		case *Leaf:
			l.Slots[i] = SlotLayout{Kind: fld.Kind}
		case *Hole:
			k := kinds[i]
			if !k.Resolved() {
				k = KindBoxed
			}
			l.Slots[i] = SlotLayout{Kind: k, Hole: true}
		case Expr:
			child, rej := resolveNode(fld, childPath(path, i))
			if rej != nil {
				return nil, rej
			}
			l.Slots[i] = SlotLayout{Kind: KindBoxed, Child: child}
		}
	}
	return l, nil
}

func childPath(path string, i int) string {
	if path == "" {
		return strconv.Itoa(i)
	}
	return path + "." + strconv.Itoa(i)
}
