package ui

import (
	"fmt"
	"io"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"SageDraw/internal/logging"
)

// ShowExportPNG asks for a destination and writes the upscaled PNG there.
func (b *BoardWidget) ShowExportPNG(win fyne.Window) {
	b.showSave(win, "sage-draw.png", ".png", b.pad.Export)
}

// ShowExportPDF asks for a destination and writes the drawing as PDF.
func (b *BoardWidget) ShowExportPDF(win fyne.Window) {
	b.showSave(win, "sage-draw.pdf", ".pdf", b.pad.ExportPDF)
}

func (b *BoardWidget) showSave(win fyne.Window, name, ext string, write func(io.Writer) error) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			b.SetStatus("Save failed")
			logging.L().Error("[UI] save dialog", "err", err)
			return
		}
		if writer == nil {
			return
		}
		b.SaveToFile(writer, write)
	}, win)
	d.SetFileName(name)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

// SaveToFile runs write against writer and reports the outcome in the
// status bar.
func (b *BoardWidget) SaveToFile(writer fyne.URIWriteCloser, write func(io.Writer) error) {
	defer func() {
		if err := writer.Close(); err != nil {
			logging.L().Error("[UI] closing writer", "err", err)
		}
	}()

	uri := writer.URI().String()
	if err := write(writer); err != nil {
		logging.L().Error("[UI] export failed", "uri", uri, "err", err)
		b.SetStatus("Error writing file")
		return
	}
	b.SetStatus(fmt.Sprintf("Saved %d drawings to %s", b.pad.History().Len(), writer.URI().Name()))
	logging.L().Info("[UI] export saved", "uri", uri)
}
