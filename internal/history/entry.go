package history

import (
	"VectorBoard/internal/stroke"
)

// Target is the stroke set history entries are replayed against. Both
// methods match strokes by identity and report whether anything changed.
type Target interface {
	AddStroke(s *stroke.Stroke) bool
	RemoveStroke(s *stroke.Stroke) bool
}

// Entry is a reversible record of one mutation. The set of entries is closed:
// AddStroke, RemoveStroke and SplitStroke.
type Entry interface {
	// undo applies the inverse of the mutation.
	undo(t Target)
	// redo applies the mutation again.
	redo(t Target)
	// Kind names the entry for logs.
	Kind() string
}

// AddStroke records that Stroke was added.
type AddStroke struct {
	Stroke *stroke.Stroke
}

func (e AddStroke) undo(t Target) { t.RemoveStroke(e.Stroke) }
func (e AddStroke) redo(t Target) { t.AddStroke(e.Stroke) }
func (AddStroke) Kind() string    { return "add" }

// RemoveStroke records that Stroke was removed. Undo puts it back on top of
// the z-order, not at its old position.
type RemoveStroke struct {
	Stroke *stroke.Stroke
}

func (e RemoveStroke) undo(t Target) { t.AddStroke(e.Stroke) }
func (e RemoveStroke) redo(t Target) { t.RemoveStroke(e.Stroke) }
func (RemoveStroke) Kind() string    { return "remove" }

// SplitStroke records that Original was replaced by Parts.
type SplitStroke struct {
	Original *stroke.Stroke
	Parts    []*stroke.Stroke
}

func (e SplitStroke) undo(t Target) {
	for _, p := range e.Parts {
		t.RemoveStroke(p)
	}
	t.AddStroke(e.Original)
}

func (e SplitStroke) redo(t Target) {
	t.RemoveStroke(e.Original)
	for _, p := range e.Parts {
		t.AddStroke(p)
	}
}

func (SplitStroke) Kind() string { return "split" }
