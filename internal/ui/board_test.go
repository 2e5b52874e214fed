package ui

import (
	"bytes"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SageDraw/internal/pad"
	"SageDraw/internal/state"
)

type bufferWriter struct {
	bytes.Buffer
	closed bool
}

func (w *bufferWriter) Close() error {
	w.closed = true
	return nil
}

func (w *bufferWriter) URI() fyne.URI { return storage.NewFileURI("/tmp/sage-draw.png") }

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func TestBoardGestureDrawsStroke(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(64, 64, pad.Options{})

	b.MouseDown(mouse(10, 10))
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 10)}})
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(20, 20)}})
	b.MouseUp(mouse(20, 20))

	done := b.Pad().History().Done()
	require.Len(t, done, 1)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}, done[0].Points)
	assert.NotNil(t, b.img.Image)
	assert.Equal(t, fyne.NewSize(64, 64), b.MinSize())
}

func TestBoardCursorFollowsPreview(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(32, 32, pad.Options{})

	b.MouseIn(mouse(4, 4))
	assert.Equal(t, desktop.HiddenCursor, b.Cursor())
	assert.NotNil(t, b.Pad().Preview())

	b.MouseOut()
	assert.Equal(t, desktop.DefaultCursor, b.Cursor())
	assert.Nil(t, b.Pad().Preview())
}

func TestSaveToFileWritesAndCloses(t *testing.T) {
	test.NewTempApp(t)
	b := NewBoardWidget(32, 32, pad.Options{})
	b.MouseDown(mouse(1, 1))
	b.MouseMoved(mouse(8, 8))
	b.MouseUp(mouse(8, 8))

	w := &bufferWriter{}
	b.SaveToFile(w, b.Pad().Export)

	assert.True(t, w.closed)
	assert.True(t, bytes.HasPrefix(w.Bytes(), []byte("\x89PNG")))
	assert.Contains(t, b.statusBar.Text, "Saved 1 drawings")
}
