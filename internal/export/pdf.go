package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/goregular"

	"SageDraw/internal/logging"
	"SageDraw/internal/render"
	"SageDraw/internal/state"
)

const pdfFont = "goregular"

// PDF writes actions to a single page the size of the drawing surface, one
// PDF point per surface pixel. Strokes become line segments and stamps text.
func PDF(out io.Writer, actions []*state.Action, w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrBadSize, w, h)
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	p.AddPage()

	for _, a := range actions {
		switch a.Kind {
		case state.KindStroke:
			c := render.ResolveColor(a.Color)
			p.SetDrawColor(int(c.R), int(c.G), int(c.B))
			p.SetLineWidth(a.Thickness)
			for i := 1; i < len(a.Points); i++ {
				p.Line(a.Points[i-1].X, a.Points[i-1].Y, a.Points[i].X, a.Points[i].Y)
			}
		case state.KindStamp:
			c := render.ResolveColor(a.Color)
			p.SetTextColor(int(c.R), int(c.G), int(c.B))
			p.SetFont(pdfFont, "", a.Size)
			p.TransformBegin()
			// PDF rotates counter-clockwise, the surface clockwise.
			p.TransformRotate(-a.Rotation, a.Pos.X, a.Pos.Y)
			p.Text(a.Pos.X-a.Size/2, a.Pos.Y+a.Size/2, a.Glyph)
			p.TransformEnd()
		}
	}

	if err := p.Output(out); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	logging.L().Info("[EXPORT] pdf written", "actions", len(actions))
	return nil
}
