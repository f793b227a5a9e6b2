// Package state owns the live stroke set and its spatial index.
package state

import (
	"slices"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/stroke"
)

// Hit is one sample point returned by a proximity query.
type Hit = quadtree.Entry[Handle]

type slot struct {
	stroke *stroke.Stroke
	gen    uint32
}

// Collection is the set of live strokes in z-order.
//
// Strokes live in a slot map addressed by generational handles, so removing
// one stroke never invalidates the handle of another. The quadtree over all
// sample points is cached and dropped whenever the set changes structurally;
// the next query rebuilds it.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	slots []slot
	free  []uint32
	order []Handle

	canvas   quadtree.Rect
	capacity int
	index    *quadtree.Node[Handle]
	rebuilds int

	clock *Clock

	// OnLocalOp, when set, receives every insert and delete.
	OnLocalOp func(Op)
}

// NewCollection returns an empty collection whose index always covers
// canvas, growing to cover strokes drawn outside it.
func NewCollection(canvas quadtree.Rect, capacity int) *Collection {
	if capacity < 1 {
		capacity = quadtree.DefaultCapacity
	}
	return &Collection{
		canvas:   canvas,
		capacity: capacity,
		clock:    NewClock(),
	}
}

// Clock returns the clock stamping emitted ops.
func (c *Collection) Clock() *Clock { return c.clock }

// Len returns the number of live strokes.
func (c *Collection) Len() int { return len(c.order) }

// Get resolves h.
func (c *Collection) Get(h Handle) (*stroke.Stroke, bool) {
	if !h.Valid() || int(h.Index) >= len(c.slots) {
		return nil, false
	}
	sl := c.slots[h.Index]
	if sl.gen != h.Gen || sl.stroke == nil {
		return nil, false
	}
	return sl.stroke, true
}

// HandleOf finds the handle of s by identity.
func (c *Collection) HandleOf(s *stroke.Stroke) (Handle, bool) {
	if s == nil {
		return Handle{}, false
	}
	for _, h := range c.order {
		if c.slots[h.Index].stroke == s {
			return h, true
		}
	}
	return Handle{}, false
}

// FindByID finds the handle of the stroke carrying id.
func (c *Collection) FindByID(id string) (Handle, bool) {
	for _, h := range c.order {
		if c.slots[h.Index].stroke.ID == id {
			return h, true
		}
	}
	return Handle{}, false
}

// Rank returns the z-order position of h, or -1 when h is stale. Higher ranks
// are drawn later.
func (c *Collection) Rank(h Handle) int {
	return slices.Index(c.order, h)
}

// Handles returns the live handles in z-order.
func (c *Collection) Handles() []Handle {
	return slices.Clone(c.order)
}

// Strokes returns the live strokes in z-order.
func (c *Collection) Strokes() []*stroke.Stroke {
	out := make([]*stroke.Stroke, 0, len(c.order))
	for _, h := range c.order {
		out = append(out, c.slots[h.Index].stroke)
	}
	return out
}

// Add appends s on top of the z-order. Nil, empty and already stored strokes
// are rejected. If the index is built, s's points are inserted into it in
// place; a point outside the index's bounds drops the index instead.
func (c *Collection) Add(s *stroke.Stroke) (Handle, bool) {
	h, ok := c.add(s)
	if ok {
		c.emit(Op{Type: OpInsertStroke, Stroke: s})
	}
	return h, ok
}

func (c *Collection) add(s *stroke.Stroke) (Handle, bool) {
	if s == nil || s.Empty() {
		return Handle{}, false
	}
	if _, dup := c.HandleOf(s); dup {
		return Handle{}, false
	}

	var h Handle
	if n := len(c.free); n > 0 {
		idx := c.free[n-1]
		c.free = c.free[:n-1]
		h = Handle{Index: idx, Gen: c.slots[idx].gen}
		c.slots[idx].stroke = s
	} else {
		h = Handle{Index: uint32(len(c.slots)), Gen: 1}
		c.slots = append(c.slots, slot{stroke: s, gen: 1})
	}
	c.order = append(c.order, h)

	if c.index != nil {
		for i, p := range s.Points {
			if !c.index.Insert(h, i, p.X, p.Y) {
				logging.Logger().Debug("stroke leaves index bounds, dropping index", "stroke", s.ID)
				c.index = nil
				break
			}
		}
	}
	return h, true
}

// AddStroke is Add without the handle.
func (c *Collection) AddStroke(s *stroke.Stroke) bool {
	_, ok := c.Add(s)
	return ok
}

// Remove takes the stroke at h out of the collection. Stale handles are a
// no-op.
func (c *Collection) Remove(h Handle) (*stroke.Stroke, bool) {
	s, ok := c.remove(h)
	if ok {
		c.emit(Op{Type: OpDeleteStroke, Target: s.ID})
	}
	return s, ok
}

func (c *Collection) remove(h Handle) (*stroke.Stroke, bool) {
	s, ok := c.Get(h)
	if !ok {
		return nil, false
	}
	c.slots[h.Index].stroke = nil
	c.slots[h.Index].gen++
	if c.slots[h.Index].gen == 0 {
		c.slots[h.Index].gen = 1
	}
	c.free = append(c.free, h.Index)
	if i := slices.Index(c.order, h); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	c.index = nil
	return s, true
}

// RemoveStroke removes s by identity.
func (c *Collection) RemoveStroke(s *stroke.Stroke) bool {
	h, ok := c.HandleOf(s)
	if !ok {
		return false
	}
	_, ok = c.Remove(h)
	return ok
}

// SplitAndReplace cuts the stroke at h at the erased sample indices, removes
// it and appends the surviving parts on top of the z-order. It returns the
// parts, which may be empty when every sample was erased. With no erased
// indices nothing changes and the stroke itself is returned.
func (c *Collection) SplitAndReplace(h Handle, erased []int) []*stroke.Stroke {
	s, ok := c.Get(h)
	if !ok {
		return nil
	}
	if len(erased) == 0 {
		return []*stroke.Stroke{s}
	}

	parts := stroke.Split(s, erased)
	c.Remove(h)
	for _, p := range parts {
		c.Add(p)
	}
	return parts
}

// Clear removes every stroke.
func (c *Collection) Clear() {
	for len(c.order) > 0 {
		c.Remove(c.order[len(c.order)-1])
	}
}

func (c *Collection) emit(op Op) {
	op = c.clock.stamp(op)
	if c.OnLocalOp != nil {
		c.OnLocalOp(op)
	}
}
