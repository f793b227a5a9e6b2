// Package export writes the board to files: PNG snapshots, PDF vector pages
// and a JSON document that can be loaded back.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"VectorBoard/internal/render"
	"VectorBoard/internal/stroke"
)

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("export: no strokes")

// documentVersion is bumped whenever Document changes incompatibly.
const documentVersion = 1

// Document is the JSON save format.
type Document struct {
	Version int              `json:"version"`
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Strokes []*stroke.Stroke `json:"strokes"`
}

// PNG writes a raster snapshot of strokes.
func PNG(w io.Writer, strokes []*stroke.Stroke, width, height int) error {
	if len(strokes) == 0 {
		return ErrEmpty
	}
	return render.EncodePNG(w, strokes, width, height)
}

// PNGFile writes the PNG snapshot to path.
func PNGFile(path string, strokes []*stroke.Stroke, width, height int) error {
	if len(strokes) == 0 {
		return ErrEmpty
	}
	return toFile(path, func(w io.Writer) error { return PNG(w, strokes, width, height) })
}

// SaveJSON writes strokes as an indented Document.
func SaveJSON(w io.Writer, strokes []*stroke.Stroke, width, height int) error {
	doc := Document{Version: documentVersion, Width: width, Height: height, Strokes: strokes}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode document: %w", err)
	}
	return nil
}

// LoadJSON reads a Document. Strokes without points are skipped and widths
// below 1 are raised to 1.
func LoadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("export: decode document: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("export: unsupported document version %d", doc.Version)
	}

	kept := doc.Strokes[:0]
	for _, s := range doc.Strokes {
		if s == nil || s.Empty() {
			continue
		}
		if s.Style.Width < 1 {
			s.Style.Width = 1
		}
		loaded := stroke.FromPoints(s.Style, s.Points)
		if s.ID != "" {
			loaded.ID = s.ID
		}
		kept = append(kept, loaded)
	}
	doc.Strokes = kept
	return &doc, nil
}
