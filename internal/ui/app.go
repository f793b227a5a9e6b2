package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// RunApp opens the main window around board and blocks until it closes. A
// non-empty shareLink is shown so viewers can be invited.
func RunApp(shareLink string, board *BoardWidget) {
	myApp := app.New()
	myWindow := myApp.NewWindow("VectorBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	footer := container.NewHBox(board.Status())
	if shareLink != "" {
		link := widget.NewEntry()
		link.SetText(shareLink)
		footer = container.NewBorder(nil, nil, board.Status(), nil, link)
	}

	var toolbar fyne.CanvasObject
	if board.ReadOnly() {
		myWindow.SetTitle("VectorBoard (viewer)")
	} else {
		toolbar = NewToolbar(board, myWindow)
		AddShortcuts(myWindow.Canvas(), board)
	}

	// Set up the main layout
	content := container.NewBorder(toolbar, footer, nil, nil, board)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
