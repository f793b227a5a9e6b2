package ui

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/board"
	"VectorBoard/internal/erase"
	"VectorBoard/internal/quadtree"
	"VectorBoard/internal/state"
	"VectorBoard/internal/stroke"
)

// Tool is what the primary button does on the canvas.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraseWhole
	ToolErasePartial
)

func (t Tool) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraseWhole:
		return "eraser"
	case ToolErasePartial:
		return "partial eraser"
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

func (t Tool) eraseMode() (erase.Mode, bool) {
	switch t {
	case ToolEraseWhole:
		return erase.Whole, true
	case ToolErasePartial:
		return erase.Partial, true
	}
	return 0, false
}

var (
	cursorColor   = color.Gray{Y: 120}
	quadrantColor = color.NRGBA{R: 0, G: 160, B: 255, A: 120}
)

// BoardWidget draws a board and feeds it pointer input. A widget built with
// NewViewerWidget only renders a mirrored collection and ignores input.
type BoardWidget struct {
	widget.BaseWidget

	board  *board.Board
	mirror *state.Collection

	tool         Tool
	style        stroke.Style
	eraserRadius float64
	debug        bool
	erasing      bool

	cursor  fyne.Position
	hovered bool

	statusBar *widget.Label

	// OnChanged is called after every change to the stroke set made
	// through the widget.
	OnChanged func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

// NewBoardWidget returns an editable widget over b.
func NewBoardWidget(b *board.Board) *BoardWidget {
	cfg := b.Config()
	w := &BoardWidget{
		board:        b,
		style:        stroke.Style{Color: color.NRGBA{A: 255}, Width: cfg.BrushWidth},
		eraserRadius: cfg.ClampRadius(cfg.EraserRadius),
		debug:        cfg.Debug,
		statusBar:    widget.NewLabel("Ready"),
	}
	w.ExtendBaseWidget(w)
	return w
}

// NewViewerWidget returns a read-only widget over a mirrored collection.
func NewViewerWidget(c *state.Collection) *BoardWidget {
	w := &BoardWidget{
		mirror:    c,
		statusBar: widget.NewLabel("Connecting..."),
	}
	w.ExtendBaseWidget(w)
	return w
}

// ReadOnly reports whether the widget ignores input.
func (w *BoardWidget) ReadOnly() bool { return w.board == nil }

// Board returns the edited board, or nil for a viewer.
func (w *BoardWidget) Board() *board.Board { return w.board }

// Status returns the label the widget reports to.
func (w *BoardWidget) Status() *widget.Label { return w.statusBar }

// SetStatus updates the status line. Safe to call from any goroutine.
func (w *BoardWidget) SetStatus(text string) {
	fyne.Do(func() { w.statusBar.SetText(text) })
}

func (w *BoardWidget) Tool() Tool { return w.tool }

// SetTool switches the active tool. A stroke in progress is kept until the
// button is released.
func (w *BoardWidget) SetTool(t Tool) {
	w.tool = t
	w.Refresh()
}

func (w *BoardWidget) Style() stroke.Style { return w.style }

func (w *BoardWidget) SetColor(c color.Color) {
	w.style.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
}

// SetWidth sets the brush width, never below 1.
func (w *BoardWidget) SetWidth(width int) {
	w.style.Width = max(1, width)
}

func (w *BoardWidget) EraserRadius() float64 { return w.eraserRadius }

// SetEraserRadius sets the eraser radius within the board's bounds.
func (w *BoardWidget) SetEraserRadius(r float64) {
	if w.board == nil {
		return
	}
	w.eraserRadius = w.board.Config().ClampRadius(math.Max(1, r))
	w.Refresh()
}

func (w *BoardWidget) Debug() bool { return w.debug }

// ToggleDebug shows or hides the index quadrants.
func (w *BoardWidget) ToggleDebug() {
	w.debug = !w.debug
	w.Refresh()
}

// Undo reverts the last change.
func (w *BoardWidget) Undo() {
	if w.board == nil || !w.board.Undo() {
		return
	}
	w.changed()
}

// Redo re-applies the last undone change.
func (w *BoardWidget) Redo() {
	if w.board == nil || !w.board.Redo() {
		return
	}
	w.changed()
}

// Load replaces the board's strokes.
func (w *BoardWidget) Load(strokes []*stroke.Stroke) int {
	if w.board == nil {
		return 0
	}
	n := w.board.Load(strokes)
	w.changed()
	return n
}

// ApplyRemote merges an op from the host into a viewer's collection. Safe to
// call from any goroutine.
func (w *BoardWidget) ApplyRemote(op state.Op) {
	if w.mirror == nil {
		return
	}
	fyne.Do(func() {
		if w.mirror.ApplyRemote(op) {
			w.Refresh()
		}
	})
}

// Strokes returns what the widget shows, bottom first.
func (w *BoardWidget) Strokes() []*stroke.Stroke {
	if w.board != nil {
		return w.board.Strokes()
	}
	return w.mirror.Strokes()
}

func (w *BoardWidget) quadrants() []quadtree.Rect {
	if w.board != nil {
		return w.board.Quadrants()
	}
	return w.mirror.Quadrants()
}

func (w *BoardWidget) changed() {
	w.Refresh()
	if w.OnChanged != nil {
		w.OnChanged()
	}
}

func toPoint(p fyne.Position) stroke.Point {
	return stroke.Pt(float64(p.X), float64(p.Y))
}

func (w *BoardWidget) eraseAt(p fyne.Position) {
	mode, ok := w.tool.eraseMode()
	if !ok {
		return
	}
	if w.board.Erase(toPoint(p), w.eraserRadius, mode) {
		w.changed()
	}
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if w.board == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.cursor = e.Position
	if w.tool == ToolPen {
		w.board.BeginStroke(w.style)
		w.board.ExtendStroke(toPoint(e.Position))
		w.Refresh()
		return
	}
	w.erasing = true
	w.eraseAt(e.Position)
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if w.board == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.finish()
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	if w.board == nil {
		return
	}
	w.cursor = e.Position
	switch {
	case w.board.Current() != nil:
		w.board.ExtendStroke(toPoint(e.Position))
		w.Refresh()
	case w.erasing:
		w.eraseAt(e.Position)
		w.Refresh()
	}
}

func (w *BoardWidget) DragEnd() {
	if w.board == nil {
		return
	}
	w.finish()
}

func (w *BoardWidget) finish() {
	w.erasing = false
	if _, ok := w.board.EndStroke(); ok {
		w.changed()
		return
	}
	w.Refresh()
}

func (w *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	w.hovered = true
	w.cursor = e.Position
	w.Refresh()
}

func (w *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	w.cursor = e.Position
	if w.board != nil && w.tool != ToolPen {
		w.Refresh()
	}
}

func (w *BoardWidget) MouseOut() {
	w.hovered = false
	w.Refresh()
}

// Scrolled grows or shrinks the eraser radius, or the brush width for the
// pen.
func (w *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	if w.board == nil || e.Scrolled.DY == 0 {
		return
	}
	step := 1
	if e.Scrolled.DY < 0 {
		step = -1
	}
	if w.tool == ToolPen {
		w.SetWidth(w.style.Width + step)
		w.SetStatus(fmt.Sprintf("Brush width %d", w.style.Width))
		return
	}
	w.SetEraserRadius(w.eraserRadius + float64(step))
	w.SetStatus(fmt.Sprintf("Eraser radius %.0f", w.eraserRadius))
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: w}
	r.background = canvas.NewRectangle(color.White)
	r.rebuild()
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *boardWidgetRenderer) rebuild() {
	w := r.board
	objects := []fyne.CanvasObject{r.background}

	strokes := w.Strokes()
	if w.board != nil && w.board.Current() != nil {
		strokes = append(strokes, w.board.Current())
	}
	for _, s := range strokes {
		objects = appendStroke(objects, s)
	}

	if w.debug {
		for _, q := range w.quadrants() {
			rect := canvas.NewRectangle(color.Transparent)
			rect.StrokeColor = quadrantColor
			rect.StrokeWidth = 1
			rect.Move(fyne.NewPos(float32(q.X), float32(q.Y)))
			rect.Resize(fyne.NewSize(float32(q.W), float32(q.H)))
			objects = append(objects, rect)
		}
	}

	if w.board != nil && w.tool != ToolPen && w.hovered {
		rad := float32(w.eraserRadius)
		cursor := canvas.NewCircle(color.Transparent)
		cursor.StrokeColor = cursorColor
		cursor.StrokeWidth = 1
		cursor.Position1 = fyne.NewPos(w.cursor.X-rad, w.cursor.Y-rad)
		cursor.Position2 = fyne.NewPos(w.cursor.X+rad, w.cursor.Y+rad)
		objects = append(objects, cursor)
	}
	r.objects = objects
}

func appendStroke(objects []fyne.CanvasObject, s *stroke.Stroke) []fyne.CanvasObject {
	width := float32(s.Style.Width)
	if len(s.Points) == 1 {
		p := s.Points[0]
		half := width / 2
		dot := canvas.NewCircle(s.Style.Color)
		dot.Position1 = fyne.NewPos(float32(p.X)-half, float32(p.Y)-half)
		dot.Position2 = fyne.NewPos(float32(p.X)+half, float32(p.Y)+half)
		return append(objects, dot)
	}
	for i := 0; i < len(s.Points)-1; i++ {
		segment := canvas.NewLine(s.Style.Color)
		segment.StrokeWidth = width
		segment.Position1 = fyne.NewPos(float32(s.Points[i].X), float32(s.Points[i].Y))
		segment.Position2 = fyne.NewPos(float32(s.Points[i+1].X), float32(s.Points[i+1].Y))
		objects = append(objects, segment)
	}
	return objects
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *boardWidgetRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Destroy() {}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
