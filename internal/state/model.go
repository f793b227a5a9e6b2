package state

import (
	"VectorBoard/internal/stroke"
)

// OpType names a mutation of the stroke set.
type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpDeleteStroke OpType = "delete_stroke"
)

// Op is one mutation as seen by mirrors of the board. Splits, undos and
// redos all reduce to inserts and deletes.
type Op struct {
	Type    OpType         `json:"type"`
	Stroke  *stroke.Stroke `json:"stroke,omitempty"`
	Target  string         `json:"target,omitempty"` // ID of stroke to delete
	Lamport uint64         `json:"lamport"`
	Site    string         `json:"site"`
}

// Handle addresses a stroke in a Collection. Handles are generational: once
// the stroke is removed its handle never resolves again, even after the slot
// is reused.
type Handle struct {
	Index uint32
	Gen   uint32
}

// Valid reports whether h was ever issued. The zero Handle is never valid.
func (h Handle) Valid() bool { return h.Gen != 0 }
