package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"os"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/f64"

	"SageDraw/internal/logging"
)

// EmojiFontPaths lists system color or outline emoji fonts tried, in
// order, for runes the Go fonts do not cover.
var EmojiFontPaths = []string{
	"/usr/share/fonts/truetype/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/noto/NotoColorEmoji.ttf",
	"/usr/share/fonts/google-noto-emoji/NotoColorEmoji.ttf",
	"/usr/share/fonts/truetype/noto/NotoEmoji-Regular.ttf",
	"/usr/share/fonts/TTF/Symbola.ttf",
	"/System/Library/Fonts/Apple Color Emoji.ttc",
	"C:\\Windows\\Fonts\\seguiemj.ttf",
}

// PreferEmojiFont puts path ahead of EmojiFontPaths. It must be called
// before anything is rendered.
func PreferEmojiFont(path string) {
	if path != "" {
		EmojiFontPaths = append([]string{path}, EmojiFontPaths...)
	}
}

type fontSet struct {
	base  *text.FontSource
	emoji *text.FontSource // nil when no emoji font was found
}

// sourceFor picks the first font that maps r to a glyph. Runes nobody
// covers come from the base font so they draw as its missing-glyph box.
func (f *fontSet) sourceFor(r rune) (*text.FontSource, uint16) {
	if gid := f.base.Parsed().GlyphIndex(r); gid != 0 {
		return f.base, gid
	}
	if f.emoji != nil {
		if gid := f.emoji.Parsed().GlyphIndex(r); gid != 0 {
			return f.emoji, gid
		}
	}
	return f.base, 0
}

var (
	fontOnce sync.Once
	fonts    *fontSet
	fontErr  error
)

func loadFonts() (*fontSet, error) {
	fontOnce.Do(func() {
		base, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			fontErr = fmt.Errorf("load go font: %w", err)
			logging.L().Error("[RENDER] font unavailable, text will not be drawn", "err", err)
			return
		}
		fonts = &fontSet{base: base}
		for _, path := range EmojiFontPaths {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			src, err := text.NewFontSourceFromFile(path)
			if err != nil {
				logging.L().Warn("[RENDER] emoji font unusable", "path", path, "err", err)
				continue
			}
			fonts.emoji = src
			logging.L().Debug("[RENDER] emoji font loaded", "path", path)
			return
		}
		logging.L().Warn("[RENDER] no emoji font found, stickers fall back to the Go font")
	})
	return fonts, fontErr
}

// Raster is a Surface backed by a gg software context. Pixels are read
// back with Image or EncodePNG.
type Raster struct {
	dc       *gg.Context
	w, h     int
	fontSize float64
	fill     string
	sizes    []float64
	outlines *text.OutlineExtractor
}

var _ Surface = (*Raster)(nil)

// NewRaster allocates a w x h transparent raster.
func NewRaster(w, h int) *Raster {
	r := &Raster{
		dc:       gg.NewContext(w, h),
		w:        w,
		h:        h,
		fontSize: 16,
		fill:     "black",
	}
	r.dc.SetLineCap(gg.LineCapRound)
	r.dc.SetLineJoin(gg.LineJoinRound)
	return r
}

func (r *Raster) Size() (float64, float64) { return float64(r.w), float64(r.h) }

// Clear paints the whole raster white. The arguments are accepted for
// interface symmetry; a raster always clears everything.
func (r *Raster) Clear(w, h float64) {
	r.dc.ClearWithColor(gg.White)
}

func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) Stroke() {
	if err := r.dc.Stroke(); err != nil {
		logging.L().Warn("[RENDER] stroke failed", "err", err)
	}
}

func (r *Raster) FillCircle(x, y, rad float64) {
	r.dc.SetColor(ResolveColor(r.fill))
	r.dc.DrawCircle(x, y, rad)
	if err := r.dc.Fill(); err != nil {
		logging.L().Warn("[RENDER] fill failed", "err", err)
	}
}

// FillText draws s with its baseline origin at (x, y). Glyph outlines
// are added to the path in user space, so the whole transform applies to
// them, rotation included. Color bitmap glyphs are resampled through the
// same transform.
func (r *Raster) FillText(s string, x, y float64) {
	set, err := loadFonts()
	if err != nil {
		return
	}
	col := ResolveColor(r.fill)
	r.dc.SetColor(col)
	pen := x
	for _, ru := range s {
		if isJoiner(ru) {
			continue
		}
		src, gid := set.sourceFor(ru)
		parsed := src.Parsed()
		if text.DetectGlyphType(parsed, gid) == text.GlyphTypeBitmap {
			r.drawBitmapGlyph(src, string(ru), pen, y, col)
		} else {
			r.fillOutline(parsed, gid, pen, y)
		}
		pen += parsed.GlyphAdvance(gid, r.fontSize)
	}
}

// isJoiner reports zero-width emoji modifiers, which have no glyph of
// their own in the fonts used here.
func isJoiner(r rune) bool {
	return r == 0x200d || (r >= 0xfe00 && r <= 0xfe0f)
}

func (r *Raster) fillOutline(font text.ParsedFont, gid uint16, x, y float64) {
	if r.outlines == nil {
		r.outlines = text.NewOutlineExtractor()
	}
	o, err := r.outlines.ExtractOutline(font, text.GlyphID(gid), r.fontSize)
	if err != nil {
		logging.L().Debug("[RENDER] no outline for glyph", "gid", gid, "err", err)
		return
	}
	if o == nil || o.IsEmpty() {
		return
	}
	open := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case text.OutlineOpMoveTo:
			if open {
				r.dc.ClosePath()
			}
			r.dc.MoveTo(x+float64(p[0].X), y+float64(p[0].Y))
			open = true
		case text.OutlineOpLineTo:
			r.dc.LineTo(x+float64(p[0].X), y+float64(p[0].Y))
		case text.OutlineOpQuadTo:
			r.dc.QuadraticTo(x+float64(p[0].X), y+float64(p[0].Y),
				x+float64(p[1].X), y+float64(p[1].Y))
		case text.OutlineOpCubicTo:
			r.dc.CubicTo(x+float64(p[0].X), y+float64(p[0].Y),
				x+float64(p[1].X), y+float64(p[1].Y),
				x+float64(p[2].X), y+float64(p[2].Y))
		}
	}
	if open {
		r.dc.ClosePath()
	}
	if err := r.dc.Fill(); err != nil {
		logging.L().Warn("[RENDER] glyph fill failed", "err", err)
	}
}

// drawBitmapGlyph renders glyph upright at device resolution, then maps
// that image through the current transform onto the raster.
func (r *Raster) drawBitmapGlyph(src *text.FontSource, glyph string, x, y float64, col color.Color) {
	m := r.dc.GetTransform()
	scale := math.Sqrt(math.Abs(m.A*m.E - m.B*m.D))
	if scale == 0 {
		return
	}
	face := src.Face(r.fontSize * scale)
	met := face.Metrics()
	w := int(math.Ceil(face.Advance(glyph)))
	h := int(math.Ceil(met.Ascent + met.Descent))
	if w <= 0 || h <= 0 {
		return
	}
	upright := image.NewRGBA(image.Rect(0, 0, w, h))
	text.DrawWithEmoji(upright, glyph, face, 0, met.Ascent, col)

	// upright pixel (u, v) sits at user point (x + u/scale, y - ascent/scale + v/scale)
	ox, oy := x, y-met.Ascent/scale
	s2d := f64.Aff3{
		m.A / scale, m.B / scale, m.A*ox + m.B*oy + m.C,
		m.D / scale, m.E / scale, m.D*ox + m.E*oy + m.F,
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [][2]float64{{0, 0}, {float64(w), 0}, {0, float64(h)}, {float64(w), float64(h)}} {
		px := s2d[0]*c[0] + s2d[1]*c[1] + s2d[2]
		py := s2d[3]*c[0] + s2d[4]*c[1] + s2d[5]
		minX, maxX = math.Min(minX, px), math.Max(maxX, px)
		minY, maxY = math.Min(minY, py), math.Max(maxY, py)
	}
	bx, by := math.Floor(minX), math.Floor(minY)
	tw, th := int(math.Ceil(maxX-bx)), int(math.Ceil(maxY-by))
	if tw <= 0 || th <= 0 {
		return
	}
	tile := image.NewRGBA(image.Rect(0, 0, tw, th))
	s2d[2] -= bx
	s2d[5] -= by
	xdraw.CatmullRom.Transform(tile, s2d, upright, upright.Bounds(), xdraw.Over, nil)

	r.dc.Push()
	r.dc.Identity()
	r.dc.DrawImage(gg.ImageBufFromImage(tile), bx, by)
	r.dc.Pop()
}

// Save pushes the transform together with the font size, which gg does
// not track for us.
func (r *Raster) Save() {
	r.dc.Push()
	r.sizes = append(r.sizes, r.fontSize)
}

func (r *Raster) Restore() {
	r.dc.Pop()
	if n := len(r.sizes); n > 0 {
		r.fontSize = r.sizes[n-1]
		r.sizes = r.sizes[:n-1]
	}
}

func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(rad float64)     { r.dc.Rotate(rad) }
func (r *Raster) Scale(sx, sy float64)   { r.dc.Scale(sx, sy) }

func (r *Raster) SetLineWidth(w float64) { r.dc.SetLineWidth(w) }

func (r *Raster) SetStrokeColor(name string) {
	r.dc.SetColor(ResolveColor(name))
}

func (r *Raster) SetFillColor(name string) { r.fill = name }
func (r *Raster) SetFontSize(px float64)   { r.fontSize = px }

func (r *Raster) Image() image.Image {
	return r.dc.Image()
}

func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Close releases the gg context.
func (r *Raster) Close() error {
	return r.dc.Close()
}
