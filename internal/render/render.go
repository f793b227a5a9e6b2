// Package render rasterises a stroke set into an image for export.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"VectorBoard/internal/stroke"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Snapshot draws strokes in order onto a width x height canvas filled with
// bg. Strokes are stroked with round caps and joins; single-point strokes
// become dots of the stroke's width.
func Snapshot(strokes []*stroke.Stroke, width, height int, bg color.Color) (*image.RGBA, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d", width, height)
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	r := vector.NewRasterizer(width, height)
	for _, s := range strokes {
		if s == nil || s.Empty() {
			continue
		}
		r.Reset(width, height)
		outline(r, s)
		r.Draw(dst, dst.Bounds(), image.NewUniform(s.Style.Color), image.Point{})
	}
	return dst, nil
}

// EncodePNG writes a snapshot of strokes on white as PNG.
func EncodePNG(w io.Writer, strokes []*stroke.Stroke, width, height int) error {
	img, err := Snapshot(strokes, width, height, color.White)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return nil
}

// outline adds the filled outline of s: a disc at every sample and a
// rectangle along every segment. All subpaths wind the same way so overlaps
// saturate instead of cancelling.
func outline(r *vector.Rasterizer, s *stroke.Stroke) {
	hw := math.Max(0.5, float64(s.Style.Width)/2)
	for i, p := range s.Points {
		disc(r, float32(p.X), float32(p.Y), float32(hw))
		if i == 0 {
			continue
		}
		segment(r, s.Points[i-1], p, hw)
	}
}

func disc(r *vector.Rasterizer, cx, cy, radius float32) {
	kr := kappa * radius
	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}

func segment(r *vector.Rasterizer, a, b stroke.Point, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*hw, dx/length*hw
	r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.ClosePath()
}
