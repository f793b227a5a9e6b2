package board

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/config"
	"VectorBoard/internal/erase"
	"VectorBoard/internal/stroke"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	pen2 = stroke.Style{Color: red, Width: 2}
)

func draw(b *Board, style stroke.Style, pts ...stroke.Point) *stroke.Stroke {
	b.BeginStroke(style)
	for _, p := range pts {
		b.ExtendStroke(p)
	}
	s, _ := b.EndStroke()
	return s
}

func TestGesture_Densifies(t *testing.T) {
	b := New(config.Default())
	s := draw(b, stroke.Style{Color: red, Width: 10}, stroke.Pt(0, 0), stroke.Pt(0, 10))

	require.NotNil(t, s)
	assert.Len(t, s.Points, 7)
	assert.Equal(t, []*stroke.Stroke{s}, b.Strokes())
}

func TestGesture_EmptyDropped(t *testing.T) {
	assert := assert.New(t)
	b := New(config.Default())

	b.BeginStroke(pen2)
	assert.NotNil(b.Current())
	_, ok := b.EndStroke()
	assert.False(ok)
	assert.False(b.CanUndo())

	_, ok = b.EndStroke()
	assert.False(ok, "no gesture in progress")
	b.ExtendStroke(stroke.Pt(1, 1))
	assert.Nil(b.Current())
}

func TestGesture_BeginFinishesPrevious(t *testing.T) {
	b := New(config.Default())
	b.BeginStroke(pen2)
	b.ExtendStroke(stroke.Pt(3, 3))
	b.BeginStroke(pen2)

	assert.Equal(t, 1, len(b.Strokes()))
	assert.Equal(t, 1, b.History().UndoLen())
}

func TestCancelStroke(t *testing.T) {
	b := New(config.Default())
	b.BeginStroke(pen2)
	b.ExtendStroke(stroke.Pt(3, 3))
	b.CancelStroke()

	assert.Nil(t, b.Current())
	assert.Empty(t, b.Strokes())
}

func TestErase_PartialThenUndo(t *testing.T) {
	assert := assert.New(t)
	cfg := config.Default()
	cfg.Threshold = 100
	b := New(cfg)
	s := draw(b, pen2, stroke.Pt(0, 0), stroke.Pt(10, 0), stroke.Pt(20, 0))
	require.Len(t, s.Points, 3)

	require.True(t, b.Erase(stroke.Pt(10, 0), 1, erase.Partial))
	strokes := b.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal([]stroke.Point{{X: 0, Y: 0}}, strokes[0].Points)
	assert.Equal([]stroke.Point{{X: 20, Y: 0}}, strokes[1].Points)

	require.True(t, b.Undo())
	assert.Equal([]*stroke.Stroke{s}, b.Strokes())
	require.True(t, b.Redo())
	assert.Equal(strokes, b.Strokes())
}

// A whole-stroke erase touching two strokes removes both but records only
// the topmost; undo brings back that one alone.
func TestErase_WholeUndoRestoresOnlyPrimary(t *testing.T) {
	assert := assert.New(t)
	b := New(config.Default())
	lower := draw(b, pen2, stroke.Pt(0, 0), stroke.Pt(2, 0))
	upper := draw(b, pen2, stroke.Pt(0, 4), stroke.Pt(2, 4))

	require.True(t, b.Erase(stroke.Pt(1, 2), 5, erase.Whole))
	assert.Empty(b.Strokes())

	require.True(t, b.Undo())
	assert.Equal([]*stroke.Stroke{upper}, b.Strokes())
	assert.NotContains(b.Strokes(), lower)

	// The remaining entry is the add of upper; lower is gone for good.
	require.True(t, b.Undo())
	require.True(t, b.Undo())
	assert.Empty(b.Strokes())
	assert.False(b.Undo())
}

func TestErase_Misses(t *testing.T) {
	b := New(config.Default())
	draw(b, pen2, stroke.Pt(0, 0))

	assert.False(t, b.Erase(stroke.Pt(100, 100), 5, erase.Whole))
	assert.False(t, b.Erase(stroke.Pt(100, 100), 5, erase.Partial))
	assert.False(t, b.Erase(stroke.Pt(0, 0), 0, erase.Whole))
	assert.False(t, b.Erase(stroke.Pt(0, 0), 5, erase.Mode(7)))
	assert.Equal(t, 1, b.History().UndoLen())
}

func TestErase_RadiusClamped(t *testing.T) {
	cfg := config.Default()
	cfg.MaxRadius = 5
	b := New(cfg)
	draw(b, pen2, stroke.Pt(0, 0))

	assert.False(t, b.Erase(stroke.Pt(10, 0), 100, erase.Whole), "radius clamps to 5")
	assert.True(t, b.Erase(stroke.Pt(5, 0), 100, erase.Whole))
}

func TestHistoryDepthFromConfig(t *testing.T) {
	b := New(config.Default())
	for i := 0; i < 60; i++ {
		draw(b, pen2, stroke.Pt(float64(i), 0))
	}

	assert.Equal(t, 50, b.History().UndoLen())
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	b := New(config.Default())
	draw(b, pen2, stroke.Pt(1, 1))
	b.BeginStroke(pen2)

	n := b.Load([]*stroke.Stroke{
		stroke.FromPoints(pen2, []stroke.Point{{X: 5, Y: 5}}),
		stroke.New(pen2),
	})

	assert.Equal(1, n)
	assert.Len(b.Strokes(), 1)
	assert.Nil(b.Current())
	assert.False(b.CanUndo())
	assert.Len(b.Quadrants(), 1)
}
