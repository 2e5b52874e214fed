// Package render turns history actions and the tool preview into calls
// against an immediate-mode 2D surface, and repaints that surface whenever
// the drawing changes.
package render

import (
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
)

// Surface is the drawing capability the core renders against. It mirrors a
// canvas 2D context: a current path, a transform stack, and separate stroke
// and fill colors named with SVG color keywords.
type Surface interface {
	Size() (w, h float64)
	Clear(w, h float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	FillCircle(x, y, r float64)
	FillText(text string, x, y float64)

	Save()
	Restore()
	Translate(x, y float64)
	Rotate(rad float64)
	Scale(sx, sy float64)

	SetLineWidth(w float64)
	SetStrokeColor(name string)
	SetFillColor(name string)
	SetFontSize(px float64)
}

// ResolveColor maps a color keyword to RGBA, falling back to black.
func ResolveColor(name string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(name)]; ok {
		return c
	}
	return colornames.Black
}
