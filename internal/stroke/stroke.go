// Package stroke models a single freehand gesture as vector geometry.
package stroke

import (
	"image/color"
	"math"

	"github.com/google/uuid"
)

// SpeedThreshold is the default distance above which AddPoint densifies the
// gap to the previous sample.
const SpeedThreshold = 3.0

// Point is a sample in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Style is the pen a stroke was drawn with.
type Style struct {
	Color color.NRGBA `json:"color"`
	Width int         `json:"width"`
}

// Stroke is an ordered run of sample points sharing one style.
//
// Identity matters: history and the collection match strokes by pointer, so
// two strokes with equal points and style are still distinct.
type Stroke struct {
	ID     string  `json:"id"`
	Style  Style   `json:"style"`
	Points []Point `json:"points"`

	threshold float64
}

// New starts an empty stroke using SpeedThreshold.
func New(style Style) *Stroke {
	return NewWithThreshold(style, SpeedThreshold)
}

// NewWithThreshold starts an empty stroke that densifies any gap longer than
// threshold.
func NewWithThreshold(style Style, threshold float64) *Stroke {
	return &Stroke{
		ID:        uuid.NewString(),
		Style:     style,
		threshold: threshold,
	}
}

// FromPoints builds a finished stroke from already densified points.
func FromPoints(style Style, points []Point) *Stroke {
	s := New(style)
	s.Points = points
	return s
}

// Len returns the number of sample points.
func (s *Stroke) Len() int { return len(s.Points) }

// Empty reports whether the stroke has no points.
func (s *Stroke) Empty() bool { return len(s.Points) == 0 }

// Last returns the most recent sample.
func (s *Stroke) Last() (Point, bool) {
	if len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// AddPoint appends p. When p is farther than the threshold from the previous
// sample, the gap is filled with evenly spaced samples so that erase queries,
// which only look at samples, still see the line during fast movement.
// Interpolated coordinates are truncated toward zero onto the pixel grid; the
// final step lands on p truncated as well.
func (s *Stroke) AddPoint(p Point) {
	last, ok := s.Last()
	if !ok {
		s.Points = append(s.Points, p)
		return
	}

	dx, dy := p.X-last.X, p.Y-last.Y
	dist := math.Hypot(dx, dy)
	if dist <= s.threshold {
		s.Points = append(s.Points, p)
		return
	}

	spacing := math.Max(1, float64(s.Style.Width)*0.15)
	steps := int(math.Floor(dist / spacing))
	if steps == 0 {
		s.Points = append(s.Points, p)
		return
	}
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.Points = append(s.Points, Point{
			X: math.Trunc(last.X + t*dx),
			Y: math.Trunc(last.Y + t*dy),
		})
	}
}

// Clone returns a deep copy under a new identity.
func (s *Stroke) Clone() *Stroke {
	c := NewWithThreshold(s.Style, s.threshold)
	c.Points = append([]Point(nil), s.Points...)
	return c
}

// Bounds returns the axis-aligned box of the samples.
func (s *Stroke) Bounds() (minPt, maxPt Point, ok bool) {
	if len(s.Points) == 0 {
		return Point{}, Point{}, false
	}
	minPt, maxPt = s.Points[0], s.Points[0]
	for _, p := range s.Points[1:] {
		minPt.X = math.Min(minPt.X, p.X)
		minPt.Y = math.Min(minPt.Y, p.Y)
		maxPt.X = math.Max(maxPt.X, p.X)
		maxPt.Y = math.Max(maxPt.Y, p.Y)
	}
	return minPt, maxPt, true
}
