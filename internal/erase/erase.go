// Package erase removes strokes, or parts of strokes, near a point.
package erase

import (
	"cmp"
	"slices"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/state"
	"VectorBoard/internal/stroke"
)

// Mode selects how an erase gesture treats the strokes it touches.
type Mode int

const (
	// Whole removes every touched stroke entirely.
	Whole Mode = iota
	// Partial removes only the touched samples of the topmost stroke.
	Partial
)

func (m Mode) String() string {
	switch m {
	case Whole:
		return "whole"
	case Partial:
		return "partial"
	}
	return "unknown"
}

// Engine erases from a collection through its spatial index.
type Engine struct {
	strokes *state.Collection
}

// New returns an engine mutating strokes.
func New(strokes *state.Collection) *Engine {
	return &Engine{strokes: strokes}
}

// touched groups the sample indices within radius by stroke, and returns the
// touched handles topmost first.
func (e *Engine) touched(x, y, radius float64) ([]state.Handle, map[state.Handle][]int) {
	if radius <= 0 {
		return nil, nil
	}
	hits := e.strokes.Query(x, y, radius)
	if len(hits) == 0 {
		return nil, nil
	}

	points := make(map[state.Handle][]int)
	for _, hit := range hits {
		points[hit.Key] = append(points[hit.Key], hit.Point)
	}
	handles := make([]state.Handle, 0, len(points))
	for h := range points {
		handles = append(handles, h)
	}
	slices.SortFunc(handles, func(a, b state.Handle) int {
		return cmp.Compare(e.strokes.Rank(b), e.strokes.Rank(a))
	})
	return handles, points
}

// EraseNear removes every stroke with a sample within radius of (x, y) and
// returns them topmost first. The first element is the primary stroke of the
// gesture; callers recording history only record that one.
func (e *Engine) EraseNear(x, y, radius float64) []*stroke.Stroke {
	handles, _ := e.touched(x, y, radius)
	if len(handles) == 0 {
		return nil
	}

	removed := make([]*stroke.Stroke, 0, len(handles))
	for _, h := range handles {
		if s, ok := e.strokes.Remove(h); ok {
			removed = append(removed, s)
		}
	}
	logging.Logger().Debug("erased strokes", "x", x, "y", y, "radius", radius, "count", len(removed))
	return removed
}

// PartialErase cuts the samples within radius of (x, y) out of the topmost
// touched stroke and puts the surviving runs back on top of the z-order.
// Other strokes inside the radius are left alone until a later call. It
// returns the original stroke and its replacements, or ok == false when
// nothing was touched.
func (e *Engine) PartialErase(x, y, radius float64) (original *stroke.Stroke, parts []*stroke.Stroke, ok bool) {
	handles, points := e.touched(x, y, radius)
	if len(handles) == 0 {
		return nil, nil, false
	}

	h := handles[0]
	original, ok = e.strokes.Get(h)
	if !ok {
		return nil, nil, false
	}
	erased := points[h]
	slices.Sort(erased)
	parts = e.strokes.SplitAndReplace(h, erased)

	logging.Logger().Debug("split stroke", "stroke", original.ID, "erased", len(erased), "parts", len(parts))
	return original, parts, true
}
