package history

import (
	"fmt"
	"image/color"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
	"VectorBoard/internal/stroke"
)

var style = stroke.Style{Color: color.NRGBA{G: 128, A: 255}, Width: 3}

func newCollection() *state.Collection {
	return state.NewCollection(quadtree.Rect{W: 200, H: 200}, 4)
}

func dot(x, y float64) *stroke.Stroke {
	return stroke.FromPoints(style, []stroke.Point{{X: x, Y: y}})
}

// fingerprint is the multiset of stroke contents, ignoring order and
// identity.
func fingerprint(c *state.Collection) []string {
	var out []string
	for _, s := range c.Strokes() {
		out = append(out, fmt.Sprint(s.Style, s.Points))
	}
	slices.Sort(out)
	return out
}

func TestUndoRedo_EmptyStacks(t *testing.T) {
	h := New(5)
	c := newCollection()

	assert.False(t, h.Undo(c))
	assert.False(t, h.Redo(c))
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestUndoRedo_AddStroke(t *testing.T) {
	assert := assert.New(t)
	h := New(5)
	c := newCollection()

	s := dot(1, 1)
	c.Add(s)
	h.Record(AddStroke{Stroke: s})

	require.True(t, h.Undo(c))
	assert.Equal(0, c.Len())
	assert.True(h.CanRedo())

	require.True(t, h.Redo(c))
	assert.Equal([]*stroke.Stroke{s}, c.Strokes())
	assert.Equal(1, h.UndoLen())
	assert.Equal(0, h.RedoLen())
}

func TestUndo_RemoveStrokeGoesOnTop(t *testing.T) {
	h := New(5)
	c := newCollection()
	a, b := dot(1, 1), dot(2, 2)
	c.Add(a)
	c.Add(b)

	c.RemoveStroke(a)
	h.Record(RemoveStroke{Stroke: a})
	h.Undo(c)

	assert.Equal(t, []*stroke.Stroke{b, a}, c.Strokes())
}

func TestUndoRedo_SplitStroke(t *testing.T) {
	assert := assert.New(t)
	h := New(5)
	c := newCollection()

	s := stroke.FromPoints(style, []stroke.Point{{X: 0}, {X: 10}, {X: 20}})
	hs, _ := c.Add(s)
	parts := c.SplitAndReplace(hs, []int{1})
	h.Record(SplitStroke{Original: s, Parts: parts})

	h.Undo(c)
	assert.Equal([]*stroke.Stroke{s}, c.Strokes())

	h.Redo(c)
	assert.Equal(parts, c.Strokes())
}

func TestRecord_ClearsRedo(t *testing.T) {
	h := New(5)
	c := newCollection()

	a := dot(1, 1)
	c.Add(a)
	h.Record(AddStroke{Stroke: a})
	h.Undo(c)
	require.True(t, h.CanRedo())

	b := dot(2, 2)
	c.Add(b)
	h.Record(AddStroke{Stroke: b})

	assert.False(t, h.CanRedo())
	assert.False(t, h.Redo(c))
}

func TestRecord_BoundedDepth(t *testing.T) {
	assert := assert.New(t)
	h := New(50)
	c := newCollection()

	var strokes []*stroke.Stroke
	for i := 0; i < 57; i++ {
		s := dot(float64(i), 0)
		c.Add(s)
		h.Record(AddStroke{Stroke: s})
		strokes = append(strokes, s)
	}

	assert.Equal(50, h.UndoLen())
	entries := h.UndoEntries()
	assert.Same(strokes[7], entries[0].(AddStroke).Stroke, "oldest seven dropped")
	assert.Same(strokes[56], entries[49].(AddStroke).Stroke)

	for h.Undo(c) {
	}
	assert.Equal(7, c.Len(), "dropped entries can no longer be undone")
	assert.Equal(50, h.RedoLen())
}

// Undo must remove the exact stroke recorded, not an equal-looking one.
func TestUndo_MatchesByIdentity(t *testing.T) {
	h := New(5)
	c := newCollection()

	twin := dot(5, 5)
	c.Add(twin)
	s := dot(5, 5)
	c.Add(s)
	h.Record(AddStroke{Stroke: s})

	h.Undo(c)

	assert.Equal(t, []*stroke.Stroke{twin}, c.Strokes())
}

func TestUndoRedo_InverseLaw(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for round := 0; round < 50; round++ {
		c := newCollection()
		h := New(100)
		for i := 0; i < 4; i++ {
			c.Add(stroke.FromPoints(style, []stroke.Point{{X: float64(i)}, {X: float64(i), Y: 1}, {X: float64(i), Y: 2}}))
		}
		before := fingerprint(c)

		n := 0
		for n < 20 {
			live := c.Strokes()
			switch op := rng.Intn(3); {
			case op == 0 || len(live) == 0:
				s := stroke.FromPoints(style, []stroke.Point{{X: rng.Float64() * 100, Y: rng.Float64() * 100}, {X: 1, Y: 1}})
				c.Add(s)
				h.Record(AddStroke{Stroke: s})
			case op == 1:
				s := live[rng.Intn(len(live))]
				c.RemoveStroke(s)
				h.Record(RemoveStroke{Stroke: s})
			default:
				s := live[rng.Intn(len(live))]
				hs, _ := c.HandleOf(s)
				parts := c.SplitAndReplace(hs, []int{rng.Intn(s.Len())})
				h.Record(SplitStroke{Original: s, Parts: parts})
			}
			n++
		}
		after := fingerprint(c)

		for i := 0; i < n; i++ {
			require.True(t, h.Undo(c))
		}
		assert.Equal(t, before, fingerprint(c))

		for i := 0; i < n; i++ {
			require.True(t, h.Redo(c))
		}
		assert.Equal(t, after, fingerprint(c))
	}
}

func TestClear(t *testing.T) {
	h := New(3)
	h.Record(AddStroke{Stroke: dot(0, 0)})
	h.Clear()

	assert.Equal(t, 0, h.UndoLen())
	assert.Empty(t, h.UndoEntries())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "add", AddStroke{}.Kind())
	assert.Equal(t, "remove", RemoveStroke{}.Kind())
	assert.Equal(t, "split", SplitStroke{}.Kind())
}
