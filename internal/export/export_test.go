package export

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SageDraw/internal/state"
)

func redBar() *state.Action {
	a := state.NewStroke(state.Point{X: 20, Y: 128}, 10, "red")
	a.ExtendOrReposition(state.Point{X: 236, Y: 128})
	return a
}

func TestPNGIsUpscaled(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, []*state.Action{redBar()}, 256, 256, DefaultScale))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1024, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())

	r, g, b, _ := img.At(512, 512).RGBA()
	assert.Greater(t, r>>8, uint32(200), "bar center should be red")
	assert.Less(t, g>>8, uint32(80))
	assert.Less(t, b>>8, uint32(80))

	r, g, b, _ = img.At(512, 100).RGBA()
	assert.Equal(t, []uint32{255, 255, 255}, []uint32{r >> 8, g >> 8, b >> 8}, "background is white")
}

// inkBounds is the bounding box of the dark pixels of img.
func inkBounds(img image.Image) image.Rectangle {
	var box image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 < 128 && g>>8 < 128 && bl>>8 < 128 {
				box = box.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return box
}

func TestPNGRotatedStampStaysOnItsPosition(t *testing.T) {
	const size = 20.0
	center := image.Pt(50*DefaultScale, 50*DefaultScale)
	tolerance := int(size * DefaultScale / 4)

	boxes := map[float64]image.Rectangle{}
	for _, deg := range []float64{0, 90, 180, 270} {
		stamp := state.NewStamp(state.Point{X: 50, Y: 50}, "W", size, deg, "black")
		var buf bytes.Buffer
		require.NoError(t, PNG(&buf, []*state.Action{stamp}, 100, 100, DefaultScale))
		img, err := png.Decode(&buf)
		require.NoError(t, err)

		box := inkBounds(img)
		require.False(t, box.Empty(), "rotation %v drew nothing", deg)
		mid := image.Pt((box.Min.X+box.Max.X)/2, (box.Min.Y+box.Max.Y)/2)
		assert.InDelta(t, center.X, mid.X, float64(tolerance), "rotation %v: ink %v", deg, box)
		assert.InDelta(t, center.Y, mid.Y, float64(tolerance), "rotation %v: ink %v", deg, box)
		boxes[deg] = box
	}

	// W is wider than tall, so a quarter turn swaps the box's proportions.
	assert.Greater(t, boxes[0].Dx(), boxes[0].Dy())
	assert.Greater(t, boxes[90].Dy(), boxes[90].Dx())
	assert.Greater(t, boxes[270].Dy(), boxes[270].Dx())
}

func TestPNGDoesNotMutateActions(t *testing.T) {
	a := redBar()
	before := *a
	require.NoError(t, PNG(&bytes.Buffer{}, []*state.Action{a}, 64, 64, 2))
	assert.Equal(t, before, *a)
}

func TestRenderRejectsEmptySurface(t *testing.T) {
	_, err := Render(nil, 0, 10, 4)
	assert.ErrorIs(t, err, ErrBadSize)
	assert.ErrorIs(t, PNG(&bytes.Buffer{}, nil, 10, 10, 0), ErrBadSize)
}

func TestPDF(t *testing.T) {
	stamp := state.NewStamp(state.Point{X: 50, Y: 50}, "A", 20, 90, "blue")
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, []*state.Action{redBar(), stamp}, 256, 256))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	assert.ErrorIs(t, PDF(&bytes.Buffer{}, nil, 0, 0), ErrBadSize)
}
