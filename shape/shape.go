// Package shape describes constructor expressions with hole positions and
// resolves them into block layouts. Resolution is the static half of
// hole-aware allocation: it decides, from declared shapes alone, whether a
// constructor can be allocated with some fields left as holes.
package shape

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Shape descriptors: static constructor expressions with hole positions
// ---------------------------------------------------------------------------

// Expr is a node in a constructor expression. The tree is purely static:
// it describes the declared shape of a value to be built, never the value
// itself. Leaf positions may be marked as holes to be filled after
// allocation.
type Expr interface {
	Field
	exprNode()
}

// Field is one field position inside a constructor or array. A field is
// either a known leaf of some kind, a hole, or a nested constructor/array
// (which may itself contain further holes).
type Field interface {
	fmt.Stringer
	fieldNode()
}

// Ctor is a tagged constructor application with an ordered field list.
// Fields occupy one uniform slot each; an unconstrained hole in a
// constructor therefore resolves to a boxed word.
type Ctor struct {
	Tag    int
	Fields []Field
}

// Array is a homogeneous array. Its encoding is representation-sensitive:
// if every element is statically a float the array is stored flat
// (unboxed), otherwise it is a block of boxed words. The choice must be
// decidable from the element kinds alone — see Resolve.
type Array struct {
	Elems []Field
}

// Leaf is a known field: a fully-specified sub-value of the given kind
// whose concrete value will be supplied at allocation time.
type Leaf struct {
	Kind Kind
}

// Hole marks a field whose value is not known at allocation time. Kind is
// the statically declared element kind, or KindUnresolved when the hosting
// type places no constraint on it.
type Hole struct {
	Kind Kind
}

func (*Ctor) exprNode()  {}
func (*Array) exprNode() {}

func (*Ctor) fieldNode()  {}
func (*Array) fieldNode() {}
func (*Leaf) fieldNode()  {}
func (*Hole) fieldNode()  {}

// ---------------------------------------------------------------------------
// Canonical printing
// ---------------------------------------------------------------------------
//
// The textual form below is the canonical rendering: Parse(e.String()) is
// the identity, and shape digests are computed over this rendering, so the
// output must stay deterministic.

func (c *Ctor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "(C%d", c.Tag)
	for _, f := range c.Fields {
		b.WriteByte(' ')
		b.WriteString(f.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (a *Array) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range a.Elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.String())
	}
	b.WriteByte(']')
	return b.String()
}

func (l *Leaf) String() string {
	return l.Kind.String()
}

func (h *Hole) String() string {
	if h.Kind == KindUnresolved {
		return "?"
	}
	return "?" + h.Kind.String()
}

// ---------------------------------------------------------------------------
// Counting helpers
// ---------------------------------------------------------------------------

// NumHoles returns the number of holes in the expression, counted in
// left-to-right pre-order. This is the number of destinations allocation
// will return.
func NumHoles(e Expr) int {
	n := 0
	walkFields(e, func(f Field) {
		if _, ok := f.(*Hole); ok {
			n++
		}
	})
	return n
}

// NumKnown returns the number of known leaves in the expression, counted
// in the same pre-order. This is the number of values the caller must
// supply at allocation time.
func NumKnown(e Expr) int {
	n := 0
	walkFields(e, func(f Field) {
		if _, ok := f.(*Leaf); ok {
			n++
		}
	})
	return n
}

// walkFields visits every field of the expression in left-to-right
// pre-order, recursing into nested constructors and arrays.
func walkFields(e Expr, fn func(Field)) {
	switch n := e.(type) {
	case *Ctor:
		for _, f := range n.Fields {
			fn(f)
			if sub, ok := f.(Expr); ok {
				walkFields(sub, fn)
			}
		}
	case *Array:
		for _, f := range n.Elems {
			fn(f)
			if sub, ok := f.(Expr); ok {
				walkFields(sub, fn)
			}
		}
	}
}
