package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"SageDraw/internal/pad"
)

const AppName = "Sage Draw"

// RunApp opens the desktop window and blocks until it is closed.
func RunApp(width, height int, opts pad.Options, shareLink string) {
	myApp := app.NewWithID("sagedraw")
	myWindow := myApp.NewWindow(AppName)

	board := NewBoardWidget(width, height, opts)
	toolbar := NewToolbar(board, myWindow)
	bindShortcuts(myWindow, board)

	if shareLink != "" {
		board.SetStatus("Browser pad at " + shareLink)
	}

	content := container.NewBorder(toolbar, board.statusBar, nil, nil, container.NewCenter(board))
	myWindow.SetContent(content)
	myWindow.Resize(fyne.NewSize(float32(width)+400, float32(height)+200))
	myWindow.ShowAndRun()
}

func bindShortcuts(win fyne.Window, board *BoardWidget) {
	p := board.Pad()
	c := win.Canvas()
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { p.Undo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { p.Redo() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault},
		func(fyne.Shortcut) { board.ShowExportPNG(win) })
}
