package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"VectorBoard/internal/stroke"
)

func TestApplyRemote_MirrorsLocalOps(t *testing.T) {
	assert := assert.New(t)

	host := NewCollection(canvas, 4)
	viewer := NewCollection(canvas, 4)
	host.OnLocalOp = func(op Op) { viewer.ApplyRemote(op) }

	a := mk(stroke.Pt(0, 0), stroke.Pt(5, 0), stroke.Pt(10, 0))
	h, _ := host.Add(a)
	host.Add(mk(stroke.Pt(50, 50)))
	host.SplitAndReplace(h, []int{1})

	ids := func(c *Collection) []string {
		var out []string
		for _, s := range c.Strokes() {
			out = append(out, s.ID)
		}
		return out
	}
	assert.Equal(ids(host), ids(viewer))
	assert.GreaterOrEqual(viewer.Clock().Now(), host.Clock().Now())
}

func TestApplyRemote_Ignored(t *testing.T) {
	assert := assert.New(t)
	c := NewCollection(canvas, 4)
	s := mk(stroke.Pt(1, 1))

	assert.True(c.ApplyRemote(Op{Type: OpInsertStroke, Stroke: s}))
	assert.False(c.ApplyRemote(Op{Type: OpInsertStroke, Stroke: s}), "duplicate insert")
	assert.False(c.ApplyRemote(Op{Type: OpInsertStroke}), "insert without stroke")
	assert.False(c.ApplyRemote(Op{Type: OpDeleteStroke, Target: "nope"}))
	assert.False(c.ApplyRemote(Op{Type: "rename"}))
	assert.True(c.ApplyRemote(Op{Type: OpDeleteStroke, Target: s.ID, Lamport: 40}))
	assert.Equal(0, c.Len())
	assert.Equal(uint64(40), c.Clock().Now())
}
