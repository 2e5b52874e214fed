package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"SageDraw/internal/render"
	"SageDraw/internal/state"
)

var paletteColors = []string{"black", "red", "green", "blue", "orange", "purple"}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Name     string
	OnTapped func(name string)
}

func newColorSwatch(name string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{Name: name, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(render.ResolveColor(s.Name))
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Name)
	}
}

func labeledSlider(label string, lo, hi, value float64, changed func(float64)) fyne.CanvasObject {
	s := widget.NewSlider(lo, hi)
	s.SetValue(value)
	s.OnChanged = changed
	return container.NewHBox(
		widget.NewLabel(label),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), s),
	)
}

// NewToolbar builds the tool, color, size and history controls for board.
// The sticker row is rebuilt whenever the pad's tool list changes.
func NewToolbar(board *BoardWidget, win fyne.Window) fyne.CanvasObject {
	p := board.Pad()
	tools := p.Tools()

	stickerRow := container.NewHBox()
	rebuildStickers := func() {
		stickerRow.Objects = nil
		pen := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() { p.SetTool(state.ToolStroke) })
		if tools.Tool == state.ToolStroke {
			pen.Importance = widget.HighImportance
		}
		stickerRow.Add(pen)
		for _, glyph := range tools.Stickers() {
			btn := widget.NewButton(glyph, func() { p.SetTool(glyph) })
			if glyph == tools.Tool {
				btn.Importance = widget.HighImportance
			}
			stickerRow.Add(btn)
		}
		stickerRow.Refresh()
	}
	rebuildStickers()
	p.OnToolsChanged(rebuildStickers)

	custom := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("🧽")
		dialog.ShowForm("Custom sticker", "Add", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Text", entry)},
			func(ok bool) {
				if ok {
					glyph := p.AddCustomStamp(entry.Text)
					board.SetStatus("Added sticker " + glyph)
				}
			}, win)
	})

	palette := container.NewHBox()
	for _, name := range paletteColors {
		palette.Add(newColorSwatch(name, func(n string) { p.SetColor(n) }))
	}

	history := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			if !p.Undo() {
				board.SetStatus("Nothing to undo")
			}
		}),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			if !p.Redo() {
				board.SetStatus("Nothing to redo")
			}
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { p.Clear() }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { board.ShowExportPNG(win) }),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), func() { board.ShowExportPDF(win) }),
	)

	return container.NewVBox(
		container.NewHBox(stickerRow, custom, widget.NewSeparator(), palette, layout.NewSpacer(), history),
		container.NewHBox(
			labeledSlider("Size:", 1, 50, tools.Thickness, p.SetThickness),
			labeledSlider("Sticker:", 8, 96, tools.StampSize, p.SetStampSize),
			labeledSlider("Rotate:", 0, 359, tools.Rotation, p.SetRotation),
		),
	)
}
