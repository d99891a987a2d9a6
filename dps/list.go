// Package dps builds linked lists in destination-passing style: each loop
// iteration allocates a cons cell whose tail is still a hole and hands the
// tail's destination to the next iteration. This is the tail-modulo-cons
// pattern the hole-aware allocator exists for — list construction runs in
// constant stack space and each cell is written exactly once.
package dps

import (
	"fmt"

	"github.com/chazu/hollow/heap"
	"github.com/chazu/hollow/shape"
)

// ConsTag is the constructor tag of cons cells. A list is either heap.Nil
// or a ConsTag block with slots [head, tail].
const ConsTag = 1

const (
	headSlot = 0
	tailSlot = 1
)

// consLayout is the resolved layout of a cons cell with a known head and a
// hole tail: (C1 box ?box).
var consLayout *shape.Layout

func init() {
	l, rej := shape.Resolve(&shape.Ctor{Tag: ConsTag, Fields: []shape.Field{
		&shape.Leaf{Kind: shape.KindBoxed},
		&shape.Hole{Kind: shape.KindBoxed},
	}})
	if rej != nil {
		panic(fmt.Sprintf("dps: cons layout rejected: %v", rej))
	}
	consLayout = l
}

// Cons allocates a cons cell with the given head and a hole tail, returning
// the cell and the tail's destination.
func Cons(a *heap.Allocator, head heap.Value) (heap.Value, *heap.Destination) {
	v, dests := a.Allocate(consLayout, []heap.Value{head})
	return v, dests[0]
}

// Head returns the head of a cons cell.
// Panics if list is not a cons cell.
func Head(list heap.Value) heap.Value {
	return mustCons(list).GetSlot(headSlot)
}

// Tail returns the tail of a cons cell.
// Panics if list is not a cons cell.
func Tail(list heap.Value) heap.Value {
	return mustCons(list).GetSlot(tailSlot)
}

// IsList reports whether v is a well-formed list spine: heap.Nil terminated
// cons cells.
func IsList(v heap.Value) bool {
	for v != heap.Nil {
		b := heap.BlockFromValue(v)
		if b == nil || b.Tag() != ConsTag || b.NumSlots() != 2 {
			return false
		}
		v = b.GetSlot(tailSlot)
	}
	return true
}

// FromSlice builds a list of the given values front to back: one pass, one
// cell per element, the previous cell's tail destination filled with the
// next cell.
func FromSlice(a *heap.Allocator, xs []heap.Value) heap.Value {
	result := heap.Nil
	var prev *heap.Destination
	for _, x := range xs {
		cell, d := Cons(a, x)
		if prev == nil {
			result = cell
		} else {
			mustFill(prev, cell)
		}
		prev = d
	}
	if prev != nil {
		mustFill(prev, heap.Nil)
	}
	return result
}

// ToSlice returns the list's elements in order.
// Panics if list is not a well-formed list.
func ToSlice(list heap.Value) []heap.Value {
	var xs []heap.Value
	for list != heap.Nil {
		xs = append(xs, Head(list))
		list = Tail(list)
	}
	return xs
}

// Length returns the number of cells in the list.
func Length(list heap.Value) int {
	n := 0
	for list != heap.Nil {
		n++
		list = Tail(list)
	}
	return n
}

// MapList returns a new list with f applied to every element. The output
// spine is built in destination-passing style: the classic non-tail
// recursive map becomes a loop that carries the pending tail destination.
func MapList(a *heap.Allocator, list heap.Value, f func(heap.Value) heap.Value) heap.Value {
	result := heap.Nil
	var prev *heap.Destination
	for list != heap.Nil {
		cell, d := Cons(a, f(Head(list)))
		if prev == nil {
			result = cell
		} else {
			mustFill(prev, cell)
		}
		prev = d
		list = Tail(list)
	}
	if prev != nil {
		mustFill(prev, heap.Nil)
	}
	return result
}

// Append returns x ++ y, copying x's spine and filling the final tail
// destination with y. y is shared, not copied.
func Append(a *heap.Allocator, x, y heap.Value) heap.Value {
	if x == heap.Nil {
		return y
	}
	result := heap.Nil
	var prev *heap.Destination
	for x != heap.Nil {
		cell, d := Cons(a, Head(x))
		if prev == nil {
			result = cell
		} else {
			mustFill(prev, cell)
		}
		prev = d
		x = Tail(x)
	}
	mustFill(prev, y)
	return result
}

// mustFill fills a destination that is known to be unfilled. Each
// destination above is filled exactly once, so a fill error here is a bug
// in this package, not in the caller.
func mustFill(d *heap.Destination, v heap.Value) {
	if err := d.Fill(v); err != nil {
		panic(fmt.Sprintf("dps: %v", err))
	}
}

func mustCons(list heap.Value) *heap.Block {
	b := heap.BlockFromValue(list)
	if b == nil || b.Tag() != ConsTag {
		panic("dps: not a cons cell")
	}
	return b
}
