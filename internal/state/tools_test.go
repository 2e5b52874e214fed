package state

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddStickerRemapsReservedText(t *testing.T) {
	tools := DefaultTools()

	for _, in := range []string{"stroke", " Stroke ", "", "   "} {
		assert.Equal(t, PlaceholderGlyph, tools.AddSticker(in), "input %q", in)
	}
	assert.Equal(t, "🦆", tools.AddSticker("🦆"))

	stickers := tools.Stickers()
	assert.Equal(t, []string{"😂", "🌮", "🎉", PlaceholderGlyph, "🦆"}, stickers)
}

func TestSelect(t *testing.T) {
	tools := DefaultTools()

	assert.Equal(t, "🌮", tools.Select("🌮"))
	assert.True(t, tools.IsStamp())
	assert.Equal(t, KindStamp, tools.Kind())

	assert.Equal(t, ToolStroke, tools.Select("not-a-sticker"))
	assert.False(t, tools.IsStamp())
	assert.Equal(t, KindStroke, tools.Kind())
}

func TestEffectiveSize(t *testing.T) {
	tools := DefaultTools()
	tools.SetThickness(4)
	tools.SetStampSize(30)
	assert.Equal(t, 4.0, tools.EffectiveSize())

	tools.Select("🎉")
	assert.Equal(t, 30.0, tools.EffectiveSize())
}

func TestSizesAreClamped(t *testing.T) {
	tools := DefaultTools()
	tools.SetThickness(0)
	tools.SetStampSize(math.NaN())
	assert.Equal(t, 1.0, tools.Thickness)
	assert.Equal(t, 1.0, tools.StampSize)

	tools.SetThickness(math.Inf(1))
	tools.SetStampSize(math.Inf(1))
	assert.Equal(t, 1.0, tools.Thickness)
	assert.Equal(t, 1.0, tools.StampSize)
}

func TestSetColor(t *testing.T) {
	tools := DefaultTools()
	assert.Equal(t, "red", tools.SetColor(" Red"))
	assert.Equal(t, DefaultColor, tools.SetColor("octarine"))
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		90:   90,
		360:  0,
		450:  90,
		-90:  270,
		-720: 0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, NormalizeDegrees(in), 1e-9, "input %v", in)
	}
	assert.Zero(t, NormalizeDegrees(math.Inf(1)))
}

func TestNewPreview(t *testing.T) {
	tools := DefaultTools()
	tools.SetThickness(5)
	p := NewPreview(tools, Point{3, 4})
	assert.False(t, p.IsStamp())
	assert.Equal(t, 5.0, p.Size)

	tools.Select("😂")
	tools.SetRotation(45)
	p = NewPreview(tools, Point{3, 4})
	assert.True(t, p.IsStamp())
	assert.Equal(t, tools.StampSize, p.Size)
	assert.Equal(t, 45.0, p.Rotation)
	assert.Equal(t, Point{3, 4}, p.Pos)
}
