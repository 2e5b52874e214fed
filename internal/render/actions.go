package render

import (
	"math"

	"SageDraw/internal/state"
)

// Draw renders one action onto s. A nil surface draws nothing.
func Draw(s Surface, a *state.Action) {
	if s == nil || a == nil {
		return
	}
	switch a.Kind {
	case state.KindStroke:
		drawStroke(s, a)
	case state.KindStamp:
		drawGlyph(s, a.Glyph, a.Pos, a.Size, a.Rotation, a.Color)
	}
}

// DrawPreview renders the idle tool indicator: the glyph itself for
// sticker tools, a dot the width of the pen for the stroke tool.
func DrawPreview(s Surface, p *state.Preview) {
	if s == nil || p == nil {
		return
	}
	if p.IsStamp() {
		drawGlyph(s, p.Tool, p.Pos, p.Size, p.Rotation, p.Color)
		return
	}
	s.SetFillColor(p.Color)
	s.FillCircle(p.Pos.X, p.Pos.Y, p.Size/2)
}

func drawStroke(s Surface, a *state.Action) {
	if a.Segments() == 0 {
		return
	}
	pts := a.Points
	s.SetLineWidth(a.Thickness)
	s.SetStrokeColor(a.Color)
	s.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()
}

// drawGlyph places glyph with its visual center on pos. The baseline is
// shifted by half the size in both directions.
func drawGlyph(s Surface, glyph string, pos state.Point, size, deg float64, color string) {
	s.Save()
	s.Translate(pos.X, pos.Y)
	s.Rotate(deg * math.Pi / 180)
	s.SetFontSize(size)
	s.SetFillColor(color)
	s.FillText(glyph, -size/2, size/2)
	s.Restore()
}
