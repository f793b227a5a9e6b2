package ui

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"VectorBoard/internal/export"
)

// palette is offered as swatches next to the tools.
var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	selectTool := func(t Tool) func() {
		return func() {
			board.SetTool(t)
			board.SetStatus("Tool: " + t.String())
		}
	}
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), selectTool(ToolPen)),
		widget.NewToolbarAction(theme.DeleteIcon(), selectTool(ToolEraseWhole)),
		widget.NewToolbarAction(theme.ContentCutIcon(), selectTool(ToolErasePartial)),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), board.Redo),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.VisibilityIcon(), board.ToggleDebug),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { openJSON(board, win) }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			saveAs(board, win, "board.json", func(w io.Writer) error {
				width, height := canvasSize(board)
				return export.SaveJSON(w, board.Strokes(), width, height)
			})
		}),
		widget.NewToolbarAction(theme.FileImageIcon(), func() {
			saveAs(board, win, "board.png", func(w io.Writer) error {
				width, height := canvasSize(board)
				return export.PNG(w, board.Strokes(), width, height)
			})
		}),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() {
			saveAs(board, win, "board.pdf", func(w io.Writer) error {
				width, height := canvasSize(board)
				return export.PDF(w, board.Strokes(), width, height)
			})
		}),
	)

	// --- Color Palette ---
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, func(c color.Color) {
			board.SetColor(c)
			board.SetTool(ToolPen)
		}))
	}

	// --- Stroke Width Slider ---
	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(float64(board.Style().Width))
	strokeSlider.OnChanged = func(val float64) {
		board.SetWidth(int(val))
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		layout.NewSpacer(),
	)
}

// AddShortcuts binds undo and redo on c.
func AddShortcuts(c fyne.Canvas, board *BoardWidget) {
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { board.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { board.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift},
		func(fyne.Shortcut) { board.Redo() })
}

func canvasSize(board *BoardWidget) (int, int) {
	cfg := board.Board().Config()
	return cfg.CanvasWidth, cfg.CanvasHeight
}

func saveAs(board *BoardWidget, win fyne.Window, name string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer func() {
			if err := writer.Close(); err != nil {
				log.Printf("Error closing writer: %v", err)
			}
		}()

		if err := write(writer); err != nil {
			log.Printf("Save %s: %v", writer.URI().Name(), err)
			board.SetStatus("Error saving " + writer.URI().Name())
			dialog.ShowError(err, win)
			return
		}
		board.SetStatus("Saved " + writer.URI().Name())
	}, win)
	d.SetFileName(name)
	d.Show()
}

func openJSON(board *BoardWidget, win fyne.Window) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if reader == nil {
			return
		}
		defer func() {
			if err := reader.Close(); err != nil {
				log.Printf("Error closing reader: %v", err)
			}
		}()

		doc, err := export.LoadJSON(reader)
		if err != nil {
			log.Printf("Load %s: %v", reader.URI().Name(), err)
			board.SetStatus("Error parsing file - invalid format")
			dialog.ShowError(err, win)
			return
		}
		n := board.Load(doc.Strokes)
		board.SetStatus(fmt.Sprintf("Loaded %d strokes", n))
	}, win)
}
