// Package pad is the drawing core: it owns the history, the tool state and
// the preview, runs the pointer gesture protocol, and repaints its surface
// after every change. A Pad is driven from a single goroutine.
package pad

import (
	"errors"
	"fmt"
	"io"

	"SageDraw/internal/export"
	"SageDraw/internal/logging"
	"SageDraw/internal/render"
	"SageDraw/internal/state"
)

// Options tune the gesture behaviour.
type Options struct {
	// KeepStampTool leaves a sticker tool selected after a stamp is placed.
	// By default the tool goes back to stroke on pointer-up.
	KeepStampTool bool
	// ExportScale is the upscale factor of Export. Zero means export.DefaultScale.
	ExportScale int
}

type Pad struct {
	opts    Options
	history *state.History
	tools   *state.Tools
	preview *state.Preview
	current *state.Action
	engine  *render.Engine

	onHistory []func()
	onPreview []func()
	onTools   []func()
	onCursor  []func(visible bool)
}

// New builds a pad that paints onto s. s may be nil, in which case state is
// still tracked but nothing is drawn.
func New(s render.Surface, opts Options) *Pad {
	p := &Pad{
		opts:    opts,
		history: state.NewHistory(),
		tools:   state.DefaultTools(),
	}
	p.engine = render.NewEngine(p, s)
	p.history.OnChange(func() {
		p.engine.Repaint()
		for _, fn := range p.onHistory {
			fn()
		}
	})
	return p
}

// Done implements render.Source.
func (p *Pad) Done() []*state.Action { return p.history.Done() }

// Preview implements render.Source.
func (p *Pad) Preview() *state.Preview { return p.preview }

func (p *Pad) History() *state.History { return p.history }
func (p *Pad) Tools() *state.Tools     { return p.tools }
func (p *Pad) Engine() *render.Engine  { return p.engine }
func (p *Pad) Drawing() bool           { return p.tools.Active }

// SetSurface retargets painting and repaints once.
func (p *Pad) SetSurface(s render.Surface) {
	p.engine.SetSurface(s)
	p.engine.Repaint()
}

// OnHistoryChanged registers fn to run after each history mutation, once the
// surface has been repainted.
func (p *Pad) OnHistoryChanged(fn func()) { p.onHistory = append(p.onHistory, fn) }

// OnPreviewChanged registers fn to run after the preview changes.
func (p *Pad) OnPreviewChanged(fn func()) { p.onPreview = append(p.onPreview, fn) }

// OnToolsChanged registers fn to run after any tool setting changes.
func (p *Pad) OnToolsChanged(fn func()) { p.onTools = append(p.onTools, fn) }

// OnCursor registers fn to receive host cursor visibility requests.
func (p *Pad) OnCursor(fn func(visible bool)) { p.onCursor = append(p.onCursor, fn) }

func (p *Pad) previewChanged() {
	p.engine.Repaint()
	for _, fn := range p.onPreview {
		fn()
	}
}

func (p *Pad) toolsChanged() {
	for _, fn := range p.onTools {
		fn()
	}
}

func (p *Pad) setCursorVisible(v bool) {
	for _, fn := range p.onCursor {
		fn(v)
	}
}

// Down starts a gesture: one new action is created at (x, y). A Down that
// arrives mid-gesture closes the previous gesture first.
func (p *Pad) Down(x, y float64) {
	if p.tools.Active {
		p.Up(x, y)
	}
	p.tools.Active = true
	// The preview disappears for the first frame of the gesture.
	p.preview = nil
	p.current = p.history.Begin(p.tools.Kind(), state.Point{X: x, Y: y}, p.tools)
}

// Move extends the gesture in progress, or moves the preview when idle.
func (p *Pad) Move(x, y float64) {
	if !p.tools.Active {
		p.preview = state.NewPreview(p.tools, state.Point{X: x, Y: y})
		p.previewChanged()
		return
	}
	if err := p.history.Extend(p.current, state.Point{X: x, Y: y}); err != nil {
		logging.L().Warn("[PAD] move outside of a live gesture", "err", err)
	}
}

// Up ends the gesture. After a stamp the tool returns to stroke unless
// Options.KeepStampTool is set.
func (p *Pad) Up(x, y float64) {
	if !p.tools.Active {
		return
	}
	p.tools.Active = false
	placedStamp := p.current != nil && p.current.Kind == state.KindStamp
	p.current = nil
	if placedStamp && !p.opts.KeepStampTool {
		p.tools.Select(state.ToolStroke)
		p.toolsChanged()
	}
	p.preview = state.NewPreview(p.tools, state.Point{X: x, Y: y})
	p.previewChanged()
}

// Enter shows the preview when the pointer comes back over an idle surface.
func (p *Pad) Enter(x, y float64) {
	if p.tools.Active {
		return
	}
	p.preview = state.NewPreview(p.tools, state.Point{X: x, Y: y})
	p.previewChanged()
}

// Leave hides the preview and asks the host to show its cursor again. A
// gesture in progress is not cancelled.
func (p *Pad) Leave() {
	p.preview = nil
	p.setCursorVisible(true)
	p.previewChanged()
}

func (p *Pad) SetTool(id string) {
	p.tools.Select(id)
	p.refreshPreview()
	p.toolsChanged()
}

func (p *Pad) SetThickness(n float64) {
	p.tools.SetThickness(n)
	p.refreshPreview()
	p.toolsChanged()
}

func (p *Pad) SetStampSize(n float64) {
	p.tools.SetStampSize(n)
	p.refreshPreview()
	p.toolsChanged()
}

func (p *Pad) SetRotation(deg float64) {
	p.tools.SetRotation(deg)
	p.refreshPreview()
	p.toolsChanged()
}

func (p *Pad) SetColor(name string) {
	p.tools.SetColor(name)
	p.refreshPreview()
	p.toolsChanged()
}

// AddCustomStamp registers glyph as a sticker and selects it. The glyph
// actually registered is returned.
func (p *Pad) AddCustomStamp(glyph string) string {
	g := p.tools.AddSticker(glyph)
	p.tools.Select(g)
	p.refreshPreview()
	p.toolsChanged()
	return g
}

// refreshPreview rebuilds a visible preview so it reflects new tool
// settings at the same position.
func (p *Pad) refreshPreview() {
	if p.preview == nil || p.tools.Active {
		return
	}
	p.preview = state.NewPreview(p.tools, p.preview.Pos)
	p.previewChanged()
}

func (p *Pad) Undo() bool { return p.history.Undo() }
func (p *Pad) Redo() bool { return p.history.Redo() }
func (p *Pad) Clear()     { p.history.Clear() }

// Export writes the done actions as a PNG upscaled by the export scale. The
// surface size is taken from the pad's surface; without one, there is
// nothing to size the image by and ErrNoSurface is returned.
func (p *Pad) Export(w io.Writer) error {
	s := p.engine.Surface()
	if s == nil {
		return ErrNoSurface
	}
	width, height := s.Size()
	scale := p.opts.ExportScale
	if scale <= 0 {
		scale = export.DefaultScale
	}
	if err := export.PNG(w, p.history.Done(), int(width), int(height), scale); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// ExportPDF writes the done actions as a vector PDF page.
func (p *Pad) ExportPDF(w io.Writer) error {
	s := p.engine.Surface()
	if s == nil {
		return ErrNoSurface
	}
	width, height := s.Size()
	if err := export.PDF(w, p.history.Done(), width, height); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

var ErrNoSurface = errors.New("pad: no surface attached")
