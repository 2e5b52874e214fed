package pad

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SageDraw/internal/render"
	"SageDraw/internal/state"
)

func newPad(t *testing.T, opts Options) (*Pad, *render.Recorder) {
	t.Helper()
	rec := render.NewRecorder(256, 256)
	return New(rec, opts), rec
}

func TestStrokeGesture(t *testing.T) {
	p, rec := newPad(t, Options{})
	p.Down(10, 10)
	p.Move(20, 10)
	p.Move(20, 20)
	p.Up(20, 20)

	done := p.History().Done()
	require.Len(t, done, 1)
	assert.Equal(t, []state.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}}, done[0].Points)
	assert.Equal(t, []render.Segment{{X1: 10, Y1: 10, X2: 20, Y2: 10}, {X1: 20, Y1: 10, X2: 20, Y2: 20}}, render.Segments(rec.Ops()))
	assert.False(t, p.Drawing())
}

func TestStampGestureResetsTool(t *testing.T) {
	p, _ := newPad(t, Options{})
	toolChanges := 0
	p.OnToolsChanged(func() { toolChanges++ })

	p.SetTool("😂")
	p.SetStampSize(20)
	p.SetRotation(90)
	p.Down(40, 40)
	p.Move(50, 50)
	p.Up(50, 50)

	done := p.History().Done()
	require.Len(t, done, 1)
	assert.Equal(t, state.KindStamp, done[0].Kind)
	assert.Equal(t, state.Point{X: 50, Y: 50}, done[0].Pos)
	assert.Equal(t, 90.0, done[0].Rotation)
	assert.Equal(t, state.ToolStroke, p.Tools().Tool)
	assert.Equal(t, 4, toolChanges)
}

func TestStampToolKeptWhenConfigured(t *testing.T) {
	p, _ := newPad(t, Options{KeepStampTool: true})
	p.SetTool("🌮")
	p.Down(1, 1)
	p.Up(1, 1)
	assert.Equal(t, "🌮", p.Tools().Tool)
}

func TestRotationIsFrozenAtPlacement(t *testing.T) {
	p, _ := newPad(t, Options{KeepStampTool: true})
	p.SetTool("🎉")
	p.SetRotation(30)
	p.Down(1, 1)
	p.Up(1, 1)
	p.SetRotation(200)

	assert.Equal(t, 30.0, p.History().Done()[0].Rotation)
}

func TestPreviewLifecycle(t *testing.T) {
	p, rec := newPad(t, Options{})
	previews := 0
	p.OnPreviewChanged(func() { previews++ })
	var cursor []bool
	p.OnCursor(func(v bool) { cursor = append(cursor, v) })

	p.Enter(5, 5)
	require.NotNil(t, p.Preview())
	p.Move(6, 7)
	assert.Equal(t, state.Point{X: 6, Y: 7}, p.Preview().Pos)
	ops := rec.Ops()
	assert.Equal(t, "fillCircle", ops[len(ops)-1].Name)

	p.Down(6, 7)
	assert.Nil(t, p.Preview(), "preview hidden while drawing")
	p.Enter(8, 8)
	assert.Nil(t, p.Preview(), "enter during a gesture shows no preview")

	p.Leave()
	assert.Nil(t, p.Preview())
	assert.Equal(t, []bool{true}, cursor)
	assert.True(t, p.Drawing(), "leave does not cancel the gesture")

	p.Move(9, 9)
	assert.Len(t, p.History().Done()[0].Points, 2)
	p.Up(9, 9)
	assert.NotNil(t, p.Preview())
	assert.Empty(t, p.History().Undone())
	assert.GreaterOrEqual(t, previews, 4)
}

func TestPreviewNeverEntersHistory(t *testing.T) {
	p, _ := newPad(t, Options{})
	p.Enter(1, 1)
	p.Move(2, 2)
	p.SetThickness(9)
	assert.Equal(t, 9.0, p.Preview().Size)
	assert.Zero(t, p.History().Len())
}

func TestDownWhileDrawingClosesPreviousGesture(t *testing.T) {
	p, _ := newPad(t, Options{})
	p.Down(0, 0)
	p.Down(5, 5)
	p.Move(6, 6)

	done := p.History().Done()
	require.Len(t, done, 2)
	assert.Len(t, done[0].Points, 1)
	assert.Len(t, done[1].Points, 2)
}

func TestUpWithoutGestureIsIgnored(t *testing.T) {
	p, _ := newPad(t, Options{})
	p.Up(1, 1)
	assert.Nil(t, p.Preview())
	assert.Zero(t, p.History().Len())
}

func TestUndoRedoClearRepaint(t *testing.T) {
	p, rec := newPad(t, Options{})
	changes := 0
	p.OnHistoryChanged(func() { changes++ })

	p.Down(0, 0)
	p.Move(10, 0)
	p.Up(10, 0)
	require.True(t, p.Undo())
	assert.Empty(t, render.Segments(rec.Ops()))
	require.True(t, p.Redo())
	assert.Len(t, render.Segments(rec.Ops()), 1)
	assert.False(t, p.Redo())

	p.Clear()
	assert.Equal(t, []render.Op{{Name: "clear", Args: []float64{256, 256}}}, rec.Ops()[:1])
	assert.Empty(t, render.Segments(rec.Ops()))
	assert.Equal(t, 5, changes)
}

func TestAddCustomStampSelectsIt(t *testing.T) {
	p, _ := newPad(t, Options{})
	assert.Equal(t, state.PlaceholderGlyph, p.AddCustomStamp("stroke"))
	assert.Equal(t, state.PlaceholderGlyph, p.Tools().Tool)
	assert.Equal(t, "🦆", p.AddCustomStamp("🦆"))
	assert.Contains(t, p.Tools().Stickers(), "🦆")
}

func TestWithoutSurfaceStateStillUpdates(t *testing.T) {
	p := New(nil, Options{})
	p.Down(1, 1)
	p.Move(2, 2)
	p.Up(2, 2)
	assert.Equal(t, 1, p.History().Len())
	assert.Zero(t, p.Engine().Frames())
	assert.ErrorIs(t, p.Export(&bytes.Buffer{}), ErrNoSurface)
}

func TestExportExcludesPreview(t *testing.T) {
	p, _ := newPad(t, Options{})
	p.SetThickness(10)
	p.SetColor("red")
	p.Down(20, 128)
	p.Move(236, 128)
	p.Up(236, 128)
	p.SetThickness(40)
	p.Move(128, 40)
	require.NotNil(t, p.Preview())

	var buf bytes.Buffer
	require.NoError(t, p.Export(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())

	r, g, b, _ := img.At(512, 160).RGBA()
	assert.Equal(t, []uint32{255, 255, 255}, []uint32{r >> 8, g >> 8, b >> 8})
	r, _, _, _ = img.At(512, 512).RGBA()
	assert.Greater(t, r>>8, uint32(200))

	assert.Equal(t, 1, p.History().Len())
	assert.NotNil(t, p.Preview())
}

func TestExportPDF(t *testing.T) {
	p, _ := newPad(t, Options{})
	p.Down(1, 1)
	p.Move(5, 5)
	p.Up(5, 5)
	var buf bytes.Buffer
	require.NoError(t, p.ExportPDF(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}
