// Package board is the drawing session: it turns gesture-level input into
// stroke-set mutations and records each one so it can be undone.
package board

import (
	"VectorBoard/internal/config"
	"VectorBoard/internal/erase"
	"VectorBoard/internal/history"
	"VectorBoard/internal/logging"
	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
	"VectorBoard/internal/stroke"
)

// Board owns the strokes, their index and the history of one session.
//
// A Board is not safe for concurrent use; every call must come from the
// same goroutine, normally the UI event loop.
type Board struct {
	cfg     config.Config
	strokes *state.Collection
	eraser  *erase.Engine
	history *history.History
	current *stroke.Stroke
}

// New returns an empty board.
func New(cfg config.Config) *Board {
	strokes := state.NewCollection(quadtree.Rect{W: cfg.CanvasWidth, H: cfg.CanvasHeight}, cfg.Capacity)
	return &Board{
		cfg:     cfg,
		strokes: strokes,
		eraser:  erase.New(strokes),
		history: history.New(cfg.HistoryDepth),
	}
}

// Config returns the configuration the board was built with.
func (b *Board) Config() config.Config { return b.cfg }

// Collection exposes the live stroke set, e.g. to attach an op listener.
func (b *Board) Collection() *state.Collection { return b.strokes }

// Strokes returns the finished strokes in drawing order.
func (b *Board) Strokes() []*stroke.Stroke { return b.strokes.Strokes() }

// Quadrants returns the spatial index's node rectangles.
func (b *Board) Quadrants() []quadtree.Rect { return b.strokes.Quadrants() }

// Current returns the stroke being drawn, or nil.
func (b *Board) Current() *stroke.Stroke { return b.current }

// BeginStroke starts a gesture with the given pen. A gesture already in
// progress is finished first.
func (b *Board) BeginStroke(style stroke.Style) {
	if b.current != nil {
		b.EndStroke()
	}
	if style.Width < 1 {
		style.Width = 1
	}
	b.current = stroke.NewWithThreshold(style, b.cfg.Threshold)
}

// ExtendStroke adds a sample to the gesture in progress. Without one it is a
// no-op.
func (b *Board) ExtendStroke(p stroke.Point) {
	if b.current == nil {
		return
	}
	b.current.AddPoint(p)
}

// EndStroke stores the gesture in progress and records it. A gesture with no
// points is dropped.
func (b *Board) EndStroke() (*stroke.Stroke, bool) {
	s := b.current
	b.current = nil
	if s == nil || s.Empty() {
		return nil, false
	}
	if !b.strokes.AddStroke(s) {
		return nil, false
	}
	b.history.Record(history.AddStroke{Stroke: s})
	logging.Logger().Debug("stroke finished", "stroke", s.ID, "points", s.Len())
	return s, true
}

// CancelStroke drops the gesture in progress.
func (b *Board) CancelStroke() { b.current = nil }

// Erase applies an eraser of the given radius at p. The radius is clamped to
// the configured bounds. Whole mode removes every touched stroke but records
// only the topmost one, so undo restores that stroke alone. Partial mode
// splits the topmost touched stroke. It reports whether anything changed.
func (b *Board) Erase(p stroke.Point, radius float64, mode erase.Mode) bool {
	if radius <= 0 {
		return false
	}
	radius = b.cfg.ClampRadius(radius)

	switch mode {
	case erase.Whole:
		removed := b.eraser.EraseNear(p.X, p.Y, radius)
		if len(removed) == 0 {
			return false
		}
		b.history.Record(history.RemoveStroke{Stroke: removed[0]})
		if len(removed) > 1 {
			logging.Logger().Debug("erased strokes without history", "count", len(removed)-1)
		}
		return true
	case erase.Partial:
		original, parts, ok := b.eraser.PartialErase(p.X, p.Y, radius)
		if !ok {
			return false
		}
		b.history.Record(history.SplitStroke{Original: original, Parts: parts})
		return true
	}
	return false
}

// Undo reverts the most recent recorded mutation.
func (b *Board) Undo() bool { return b.history.Undo(b.strokes) }

// Redo re-applies the most recently undone mutation.
func (b *Board) Redo() bool { return b.history.Redo(b.strokes) }

func (b *Board) CanUndo() bool { return b.history.CanUndo() }
func (b *Board) CanRedo() bool { return b.history.CanRedo() }

// History exposes the undo/redo stacks for inspection.
func (b *Board) History() *history.History { return b.history }

// Load replaces the board's contents with strokes and forgets all history.
func (b *Board) Load(strokes []*stroke.Stroke) int {
	b.current = nil
	b.strokes.Clear()
	b.history.Clear()
	n := 0
	for _, s := range strokes {
		if b.strokes.AddStroke(s) {
			n++
		}
	}
	logging.Logger().Info("board loaded", "strokes", n)
	return n
}
