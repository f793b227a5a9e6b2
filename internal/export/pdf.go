package export

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/jung-kurt/gofpdf"

	"VectorBoard/internal/stroke"
)

// pageMargin is the border left around the drawing, in mm.
const pageMargin = 10.0

// PDF writes strokes as vector lines on a single landscape A4 page, scaled
// to fit a canvas of width x height.
func PDF(w io.Writer, strokes []*stroke.Stroke, width, height int) error {
	if len(strokes) == 0 {
		return ErrEmpty
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("export: invalid canvas %dx%d", width, height)
	}

	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	pageW, pageH := p.GetPageSize()
	scale := math.Min((pageW-2*pageMargin)/float64(width), (pageH-2*pageMargin)/float64(height))
	at := func(pt stroke.Point) (float64, float64) {
		return pageMargin + pt.X*scale, pageMargin + pt.Y*scale
	}

	for _, st := range strokes {
		c := st.Style.Color
		lw := math.Max(0.1, float64(st.Style.Width)*scale)
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetFillColor(int(c.R), int(c.G), int(c.B))
		p.SetLineWidth(lw)

		if len(st.Points) == 1 {
			x, y := at(st.Points[0])
			p.Circle(x, y, lw/2, "F")
			continue
		}
		for i := 1; i < len(st.Points); i++ {
			x1, y1 := at(st.Points[i-1])
			x2, y2 := at(st.Points[i])
			p.Line(x1, y1, x2, y2)
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}

// PDFFile writes the PDF to path.
func PDFFile(path string, strokes []*stroke.Stroke, width, height int) error {
	if len(strokes) == 0 {
		return ErrEmpty
	}
	return toFile(path, func(w io.Writer) error { return PDF(w, strokes, width, height) })
}

func toFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}
