// Package quadtree indexes stroke sample points for circular proximity
// queries.
//
// A tree is a derived value: it is built from a point set and discarded when
// that set changes structurally. Insert is the only growth path; nothing is
// ever removed from a built tree.
package quadtree

import "math"

// DefaultCapacity is the number of entries a node holds before subdividing.
const DefaultCapacity = 4

// maxDepth stops subdivision for clusters of coincident points.
const maxDepth = 24

// Rect is a half-open integer rectangle [X, X+W) x [Y, Y+H).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= float64(r.X) && x < float64(r.X+r.W) &&
		y >= float64(r.Y) && y < float64(r.Y+r.H)
}

// IntersectsCircle reports whether any point of r is within radius of
// (cx, cy).
func (r Rect) IntersectsCircle(cx, cy, radius float64) bool {
	nx := math.Max(float64(r.X), math.Min(cx, float64(r.X+r.W)))
	ny := math.Max(float64(r.Y), math.Min(cy, float64(r.Y+r.H)))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy <= radius*radius
}

// Entry is one indexed sample: the owning stroke's key, the sample's index
// within that stroke and its coordinates.
type Entry[K comparable] struct {
	Key   K
	Point int
	X, Y  float64
}

// Node is a quadtree node. The zero value is not usable; call New.
type Node[K comparable] struct {
	bounds   Rect
	capacity int
	depth    int
	entries  []Entry[K]

	// nw, ne, sw, se are nil until the node subdivides.
	nw, ne, sw, se *Node[K]
}

// New returns an empty root covering bounds. A capacity below 1 falls back
// to DefaultCapacity.
func New[K comparable](bounds Rect, capacity int) *Node[K] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Node[K]{bounds: bounds, capacity: capacity}
}

// Build returns a tree holding every entry that falls inside bounds.
func Build[K comparable](bounds Rect, capacity int, entries []Entry[K]) *Node[K] {
	n := New[K](bounds, capacity)
	for _, e := range entries {
		n.Insert(e.Key, e.Point, e.X, e.Y)
	}
	return n
}

// Bounds returns the node's rectangle.
func (n *Node[K]) Bounds() Rect { return n.bounds }

// Divided reports whether the node has children.
func (n *Node[K]) Divided() bool { return n.nw != nil }

// Insert stores the sample and reports true, or reports false when (x, y) is
// outside the node. A full node subdivides first and passes the sample to
// the first child, in NW, NE, SW, SE order, that contains it. Nodes too small
// or too deep to subdivide keep accepting samples past capacity.
func (n *Node[K]) Insert(key K, point int, x, y float64) bool {
	if !n.bounds.Contains(x, y) {
		return false
	}

	if n.nw == nil {
		if len(n.entries) < n.capacity || !n.canSubdivide() {
			n.entries = append(n.entries, Entry[K]{Key: key, Point: point, X: x, Y: y})
			return true
		}
		n.subdivide()
	}

	return n.nw.Insert(key, point, x, y) ||
		n.ne.Insert(key, point, x, y) ||
		n.sw.Insert(key, point, x, y) ||
		n.se.Insert(key, point, x, y)
}

func (n *Node[K]) canSubdivide() bool {
	return n.depth < maxDepth && n.bounds.W >= 2 && n.bounds.H >= 2
}

// subdivide splits the node with floor division; with odd sizes the east and
// south children get the extra unit so the children tile the parent exactly.
func (n *Node[K]) subdivide() {
	b := n.bounds
	hw, hh := b.W/2, b.H/2
	child := func(r Rect) *Node[K] {
		return &Node[K]{bounds: r, capacity: n.capacity, depth: n.depth + 1}
	}
	n.nw = child(Rect{X: b.X, Y: b.Y, W: hw, H: hh})
	n.ne = child(Rect{X: b.X + hw, Y: b.Y, W: b.W - hw, H: hh})
	n.sw = child(Rect{X: b.X, Y: b.Y + hh, W: hw, H: b.H - hh})
	n.se = child(Rect{X: b.X + hw, Y: b.Y + hh, W: b.W - hw, H: b.H - hh})
}

// QueryCircle returns every entry within radius of (cx, cy), boundary
// included. Order is unspecified. A negative radius matches nothing.
func (n *Node[K]) QueryCircle(cx, cy, radius float64) []Entry[K] {
	if radius < 0 || math.IsNaN(radius) {
		return nil
	}
	var found []Entry[K]
	n.queryCircle(cx, cy, radius, &found)
	return found
}

func (n *Node[K]) queryCircle(cx, cy, radius float64, found *[]Entry[K]) {
	if !n.bounds.IntersectsCircle(cx, cy, radius) {
		return
	}
	r2 := radius * radius
	for _, e := range n.entries {
		dx, dy := e.X-cx, e.Y-cy
		if dx*dx+dy*dy <= r2 {
			*found = append(*found, e)
		}
	}
	if n.nw == nil {
		return
	}
	n.nw.queryCircle(cx, cy, radius, found)
	n.ne.queryCircle(cx, cy, radius, found)
	n.sw.queryCircle(cx, cy, radius, found)
	n.se.queryCircle(cx, cy, radius, found)
}

// Len returns the number of entries in the subtree.
func (n *Node[K]) Len() int {
	total := len(n.entries)
	if n.nw != nil {
		total += n.nw.Len() + n.ne.Len() + n.sw.Len() + n.se.Len()
	}
	return total
}

// Quadrants returns the rectangle of every node, parents before children,
// for debug overlays.
func (n *Node[K]) Quadrants() []Rect {
	var out []Rect
	n.walk(func(c *Node[K]) { out = append(out, c.bounds) })
	return out
}

// Entries returns every entry in the subtree.
func (n *Node[K]) Entries() []Entry[K] {
	out := make([]Entry[K], 0, n.Len())
	n.walk(func(c *Node[K]) { out = append(out, c.entries...) })
	return out
}

func (n *Node[K]) walk(fn func(*Node[K])) {
	fn(n)
	if n.nw == nil {
		return
	}
	n.nw.walk(fn)
	n.ne.walk(fn)
	n.sw.walk(fn)
	n.se.walk(fn)
}

// Cover returns the smallest integer rectangle whose half-open extent
// contains both corners.
func Cover(minX, minY, maxX, maxY float64) Rect {
	x, y := int(math.Floor(minX)), int(math.Floor(minY))
	return Rect{
		X: x,
		Y: y,
		W: int(math.Floor(maxX)) - x + 1,
		H: int(math.Floor(maxY)) - y + 1,
	}
}

// Union returns the smallest rectangle containing a and b.
func Union(a, b Rect) Rect {
	x0, y0 := min(a.X, b.X), min(a.Y, b.Y)
	x1, y1 := max(a.X+a.W, b.X+b.W), max(a.Y+a.H, b.Y+b.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
