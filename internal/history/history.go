// Package history keeps bounded undo and redo stacks of stroke mutations.
package history

import (
	"VectorBoard/internal/logging"
)

// DefaultDepth is the stack capacity used when New is given a non-positive
// depth.
const DefaultDepth = 50

// ring is a bounded stack; pushing onto a full ring drops the oldest entry.
type ring struct {
	buf   []Entry
	start int
	n     int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]Entry, capacity)}
}

func (r *ring) push(e Entry) (evicted bool) {
	if r.n == len(r.buf) {
		r.buf[r.start] = e
		r.start = (r.start + 1) % len(r.buf)
		return true
	}
	r.buf[(r.start+r.n)%len(r.buf)] = e
	r.n++
	return false
}

func (r *ring) pop() (Entry, bool) {
	if r.n == 0 {
		return nil, false
	}
	r.n--
	i := (r.start + r.n) % len(r.buf)
	e := r.buf[i]
	r.buf[i] = nil
	return e, true
}

func (r *ring) clear() {
	clear(r.buf)
	r.start, r.n = 0, 0
}

// entries returns the stack oldest first.
func (r *ring) entries() []Entry {
	out := make([]Entry, 0, r.n)
	for i := 0; i < r.n; i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}

// History is a linear undo/redo history. Recording a new entry discards
// everything that could have been redone.
//
// A History is not safe for concurrent use.
type History struct {
	undo *ring
	redo *ring
}

// New returns an empty history holding at most depth entries per stack.
func New(depth int) *History {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &History{undo: newRing(depth), redo: newRing(depth)}
}

// Record pushes e after its mutation has been applied.
func (h *History) Record(e Entry) {
	if e == nil {
		return
	}
	if h.undo.push(e) {
		logging.Logger().Debug("history full, dropped oldest entry")
	}
	h.redo.clear()
	logging.Logger().Debug("history recorded", "kind", e.Kind(), "undo", h.undo.n)
}

// Undo reverts the most recent entry against t. It reports false when there
// is nothing to undo.
func (h *History) Undo(t Target) bool {
	e, ok := h.undo.pop()
	if !ok {
		return false
	}
	e.undo(t)
	h.redo.push(e)
	logging.Logger().Debug("undo", "kind", e.Kind())
	return true
}

// Redo re-applies the most recently undone entry against t. It reports false
// when there is nothing to redo.
func (h *History) Redo(t Target) bool {
	e, ok := h.redo.pop()
	if !ok {
		return false
	}
	e.redo(t)
	h.undo.push(e)
	logging.Logger().Debug("redo", "kind", e.Kind())
	return true
}

func (h *History) CanUndo() bool { return h.undo.n > 0 }
func (h *History) CanRedo() bool { return h.redo.n > 0 }
func (h *History) UndoLen() int  { return h.undo.n }
func (h *History) RedoLen() int  { return h.redo.n }

// UndoEntries returns the undo stack oldest first.
func (h *History) UndoEntries() []Entry { return h.undo.entries() }

// Clear empties both stacks.
func (h *History) Clear() {
	h.undo.clear()
	h.redo.clear()
}
