package state

import (
	"math"

	"VectorBoard/internal/logging"
	"VectorBoard/internal/quadtree"
)

// Index returns the quadtree over every live sample point, building it if
// the cached one was dropped.
func (c *Collection) Index() *quadtree.Node[Handle] {
	if c.index == nil {
		c.index = c.build()
	}
	return c.index
}

// Rebuild discards the cached index and builds a fresh one.
func (c *Collection) Rebuild() *quadtree.Node[Handle] {
	c.index = nil
	return c.Index()
}

// Invalidate drops the cached index.
func (c *Collection) Invalidate() { c.index = nil }

// Rebuilds returns how many times the index was built from scratch.
func (c *Collection) Rebuilds() int { return c.rebuilds }

// Query returns every sample within radius of (x, y).
func (c *Collection) Query(x, y, radius float64) []Hit {
	return c.Index().QueryCircle(x, y, radius)
}

// Quadrants returns the index's node rectangles for debug drawing.
func (c *Collection) Quadrants() []quadtree.Rect {
	return c.Index().Quadrants()
}

// Entries returns one index entry per live sample point.
func (c *Collection) Entries() []Hit {
	var entries []Hit
	for _, h := range c.order {
		for i, p := range c.slots[h.Index].stroke.Points {
			entries = append(entries, Hit{Key: h, Point: i, X: p.X, Y: p.Y})
		}
	}
	return entries
}

// bounds covers the canvas and every live sample point.
func (c *Collection) bounds() quadtree.Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, h := range c.order {
		lo, hi, ok := c.slots[h.Index].stroke.Bounds()
		if !ok {
			continue
		}
		minX, minY = math.Min(minX, lo.X), math.Min(minY, lo.Y)
		maxX, maxY = math.Max(maxX, hi.X), math.Max(maxY, hi.Y)
	}
	if math.IsInf(minX, 1) {
		return c.canvas
	}
	return quadtree.Union(c.canvas, quadtree.Cover(minX, minY, maxX, maxY))
}

func (c *Collection) build() *quadtree.Node[Handle] {
	entries := c.Entries()
	tree := quadtree.Build(c.bounds(), c.capacity, entries)
	c.rebuilds++
	logging.Logger().Debug("index rebuilt", "strokes", len(c.order), "points", len(entries))
	return tree
}
