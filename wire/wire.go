// Package wire serializes resolved layouts for the layout cache and
// computes content digests of shape expressions.
package wire

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/chazu/hollow/shape"
)

// cborEncMode holds CBOR encoding options with canonical mode for
// deterministic encoding: the same layout always marshals to the same
// bytes, so encoded layouts are safe to content-address.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// layoutRec mirrors shape.Layout for encoding. Kept separate so the wire
// format does not drift silently when the in-memory type changes.
type layoutRec struct {
	Tag   int       `cbor:"1,keyasint"`
	Flat  bool      `cbor:"2,keyasint,omitempty"`
	Slots []slotRec `cbor:"3,keyasint,omitempty"`
}

type slotRec struct {
	Kind  uint8      `cbor:"1,keyasint"`
	Hole  bool       `cbor:"2,keyasint,omitempty"`
	Child *layoutRec `cbor:"3,keyasint,omitempty"`
}

// MarshalLayout serializes a Layout to canonical CBOR bytes.
func MarshalLayout(l *shape.Layout) ([]byte, error) {
	return cborEncMode.Marshal(toRec(l))
}

// UnmarshalLayout deserializes a Layout from CBOR bytes.
func UnmarshalLayout(data []byte) (*shape.Layout, error) {
	var rec layoutRec
	if err := cbor.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("wire: unmarshal layout: %w", err)
	}
	return fromRec(&rec), nil
}

func toRec(l *shape.Layout) *layoutRec {
	rec := &layoutRec{Tag: l.Tag, Flat: l.Flat}
	if len(l.Slots) > 0 {
		rec.Slots = make([]slotRec, len(l.Slots))
		for i, s := range l.Slots {
			rec.Slots[i] = slotRec{Kind: uint8(s.Kind), Hole: s.Hole}
			if s.Child != nil {
				rec.Slots[i].Child = toRec(s.Child)
			}
		}
	}
	return rec
}

func fromRec(rec *layoutRec) *shape.Layout {
	// Slots is always non-nil, matching what shape.Resolve produces.
	l := &shape.Layout{Tag: rec.Tag, Flat: rec.Flat, Slots: make([]shape.SlotLayout, len(rec.Slots))}
	for i, s := range rec.Slots {
		l.Slots[i] = shape.SlotLayout{Kind: shape.Kind(s.Kind), Hole: s.Hole}
		if s.Child != nil {
			l.Slots[i].Child = fromRec(s.Child)
		}
	}
	return l
}

// ShapeDigest returns the sha256 digest of a shape expression, computed
// over its canonical textual rendering. Digests key the layout cache:
// resolution is deterministic, so equal digests imply equal layouts.
func ShapeDigest(e shape.Expr) [32]byte {
	return sha256.Sum256([]byte(e.String()))
}
