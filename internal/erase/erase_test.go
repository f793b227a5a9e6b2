package erase

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
	"VectorBoard/internal/stroke"
)

var red = stroke.Style{Color: color.NRGBA{R: 255, A: 255}, Width: 2}

func setup(strokes ...*stroke.Stroke) (*state.Collection, *Engine) {
	c := state.NewCollection(quadtree.Rect{W: 256, H: 256}, 4)
	for _, s := range strokes {
		c.Add(s)
	}
	return c, New(c)
}

func horizontal(y float64, xs ...float64) *stroke.Stroke {
	pts := make([]stroke.Point, 0, len(xs))
	for _, x := range xs {
		pts = append(pts, stroke.Pt(x, y))
	}
	return stroke.FromPoints(red, pts)
}

func TestPartialErase_MiddlePoint(t *testing.T) {
	assert := assert.New(t)
	s := horizontal(0, 0, 10, 20)
	c, e := setup(s)

	original, parts, ok := e.PartialErase(10, 0, 1)
	require.True(t, ok)
	assert.Same(s, original)
	require.Len(t, parts, 2)
	assert.Equal([]stroke.Point{{X: 0, Y: 0}}, parts[0].Points)
	assert.Equal([]stroke.Point{{X: 20, Y: 0}}, parts[1].Points)
	assert.Equal(red, parts[0].Style)
	assert.Equal(parts, c.Strokes())
}

func TestPartialErase_OnlyTopmostStroke(t *testing.T) {
	assert := assert.New(t)
	bottom := horizontal(0, 0, 5, 10)
	top := horizontal(2, 0, 5, 10)
	c, e := setup(bottom, top)

	original, parts, ok := e.PartialErase(5, 1, 3)
	require.True(t, ok)
	assert.Same(top, original)
	assert.Len(parts, 2)

	_, stillThere := c.HandleOf(bottom)
	assert.True(stillThere, "lower strokes wait for the next call")
	assert.Len(c.Query(5, 0, 0), 1)
}

func TestPartialErase_AllPointsErased(t *testing.T) {
	s := horizontal(0, 0, 1, 2)
	c, e := setup(s)

	original, parts, ok := e.PartialErase(1, 0, 5)
	require.True(t, ok)
	assert.Same(t, s, original)
	assert.Empty(t, parts)
	assert.Equal(t, 0, c.Len())
}

func TestPartialErase_Miss(t *testing.T) {
	_, e := setup(horizontal(0, 0, 10))

	_, _, ok := e.PartialErase(100, 100, 5)
	assert.False(t, ok)
}

func TestEraseNear_RemovesEveryTouchedStroke(t *testing.T) {
	assert := assert.New(t)
	a := horizontal(0, 0, 10, 20)
	b := horizontal(4, 0, 10, 20)
	far := horizontal(100, 0, 10)
	c, e := setup(a, b, far)

	removed := e.EraseNear(10, 2, 3)
	require.Len(t, removed, 2)
	assert.Same(b, removed[0], "topmost stroke is primary")
	assert.Same(a, removed[1])
	assert.Equal([]*stroke.Stroke{far}, c.Strokes())
}

func TestEraseNear_Miss(t *testing.T) {
	c, e := setup(horizontal(0, 0, 10))

	assert.Empty(t, e.EraseNear(50, 50, 3))
	assert.Equal(t, 1, c.Len())
}

func TestErase_NonPositiveRadius(t *testing.T) {
	c, e := setup(horizontal(0, 0, 10))

	assert.Empty(t, e.EraseNear(0, 0, 0))
	assert.Empty(t, e.EraseNear(0, 0, -2))
	_, _, ok := e.PartialErase(0, 0, 0)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "whole", Whole.String())
	assert.Equal(t, "partial", Partial.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
