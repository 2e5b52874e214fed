package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"SageDraw/internal/pad"
	"SageDraw/internal/render"
)

// BoardWidget shows a Pad's raster surface and feeds it pointer input.
// Fyne delivers all events on its main goroutine, which makes it the pad's
// single owner.
type BoardWidget struct {
	widget.BaseWidget
	pad           *pad.Pad
	raster        *render.Raster
	img           *canvas.Image
	size          fyne.Size
	cursorVisible bool
	statusBar     *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

func NewBoardWidget(width, height int, opts pad.Options) *BoardWidget {
	b := &BoardWidget{
		raster:        render.NewRaster(width, height),
		size:          fyne.NewSize(float32(width), float32(height)),
		cursorVisible: true,
		statusBar:     widget.NewLabel("Ready"),
	}
	b.img = canvas.NewImageFromImage(nil)
	b.img.FillMode = canvas.ImageFillStretch
	b.img.ScaleMode = canvas.ImageScalePixels
	b.img.SetMinSize(b.size)

	b.pad = pad.New(nil, opts)
	b.pad.Engine().OnFrame(b.present)
	b.pad.OnCursor(func(visible bool) { b.cursorVisible = visible })
	b.pad.SetSurface(b.raster)

	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Pad() *pad.Pad { return b.pad }

// present copies the freshly painted raster into the canvas image.
func (b *BoardWidget) present() {
	b.img.Image = b.raster.Image()
	b.img.Refresh()
}

func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.img)
}

func (b *BoardWidget) MinSize() fyne.Size {
	return b.size
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	if b.cursorVisible {
		return desktop.DefaultCursor
	}
	return desktop.HiddenCursor
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pad.Down(float64(e.Position.X), float64(e.Position.Y))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pad.Up(float64(e.Position.X), float64(e.Position.Y))
	}
}

// Dragged carries the pointer while the button is held.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.pad.Move(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	b.cursorVisible = false
	b.pad.Enter(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.pad.Move(float64(e.Position.X), float64(e.Position.Y))
}

func (b *BoardWidget) MouseOut() {
	b.pad.Leave()
}
