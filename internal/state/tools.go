package state

import (
	"math"
	"slices"
	"strings"

	"golang.org/x/image/colornames"

	"SageDraw/internal/logging"
)

const (
	// ToolStroke is the reserved id of the freehand tool. Any other tool id
	// is a registered sticker glyph.
	ToolStroke = "stroke"

	// PlaceholderGlyph replaces custom sticker text that collides with the
	// reserved tool id or is blank.
	PlaceholderGlyph = "❓"

	DefaultColor = "black"
	minSize      = 1.0
)

// Tools is the cursor state read when a new action is created.
type Tools struct {
	Active    bool // a pointer-down gesture is in progress
	Tool      string
	Thickness float64
	StampSize float64
	Rotation  float64
	Color     string

	stickers []string
}

func DefaultTools() *Tools {
	return &Tools{
		Tool:      ToolStroke,
		Thickness: 3,
		StampSize: 24,
		Color:     DefaultColor,
		stickers:  []string{"😂", "🌮", "🎉"},
	}
}

// Stickers returns the registered glyphs in registration order.
func (t *Tools) Stickers() []string {
	return slices.Clone(t.stickers)
}

func (t *Tools) IsSticker(id string) bool {
	return slices.Contains(t.stickers, id)
}

// IsStamp reports whether the current tool places stamps.
func (t *Tools) IsStamp() bool {
	return t.Tool != ToolStroke && t.IsSticker(t.Tool)
}

func (t *Tools) Kind() Kind {
	if t.IsStamp() {
		return KindStamp
	}
	return KindStroke
}

// EffectiveSize is the stamp size for sticker tools and the thickness
// otherwise.
func (t *Tools) EffectiveSize() float64 {
	if t.IsStamp() {
		return t.StampSize
	}
	return t.Thickness
}

// Select switches to tool id. Unknown ids fall back to the stroke tool.
// The selected id is returned.
func (t *Tools) Select(id string) string {
	if id != ToolStroke && !t.IsSticker(id) {
		logging.L().Warn("[TOOLS] unknown tool, using stroke", "tool", id)
		id = ToolStroke
	}
	t.Tool = id
	return id
}

func (t *Tools) SetThickness(n float64) {
	t.Thickness = clampSize(n, "thickness")
}

func (t *Tools) SetStampSize(n float64) {
	t.StampSize = clampSize(n, "stampSize")
}

func (t *Tools) SetRotation(deg float64) {
	t.Rotation = NormalizeDegrees(deg)
}

// SetColor accepts SVG 1.1 color names. Unknown names fall back to black.
func (t *Tools) SetColor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := colornames.Map[name]; !ok {
		logging.L().Warn("[TOOLS] unknown color, using default", "color", name)
		name = DefaultColor
	}
	t.Color = name
	return name
}

// AddSticker registers glyph as a sticker tool and returns the glyph that
// was actually registered. Text equal to the reserved stroke id, or blank
// text, is remapped to PlaceholderGlyph. Registering an existing glyph is
// a no-op.
func (t *Tools) AddSticker(glyph string) string {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" || strings.EqualFold(glyph, ToolStroke) {
		glyph = PlaceholderGlyph
	}
	if !t.IsSticker(glyph) {
		t.stickers = append(t.stickers, glyph)
	}
	return glyph
}

func clampSize(n float64, what string) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < minSize {
		logging.L().Warn("[TOOLS] size out of range, clamping", "field", what, "value", n)
		return minSize
	}
	return n
}
