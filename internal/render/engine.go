package render

import (
	"SageDraw/internal/logging"
	"SageDraw/internal/state"
)

// Source is what the engine paints: the done actions in z-order and the
// optional preview on top.
type Source interface {
	Done() []*state.Action
	Preview() *state.Preview
}

// Engine repaints a surface from scratch on every change signal. Repaints
// run synchronously on the caller's goroutine.
type Engine struct {
	src        Source
	surface    Surface
	repainting bool
	frames     int
	onFrame    []func()
}

func NewEngine(src Source, s Surface) *Engine {
	return &Engine{src: src, surface: s}
}

// SetSurface swaps the target surface. nil disables painting.
func (e *Engine) SetSurface(s Surface) {
	e.surface = s
}

func (e *Engine) Surface() Surface { return e.surface }

// OnFrame registers fn to run after each completed repaint.
func (e *Engine) OnFrame(fn func()) {
	e.onFrame = append(e.onFrame, fn)
}

// Frames counts completed repaints.
func (e *Engine) Frames() int { return e.frames }

// Repaint clears the surface, draws every done action in order and then the
// preview. It does nothing without a surface, and ignores a signal raised
// while a repaint is already running.
func (e *Engine) Repaint() {
	if e.surface == nil {
		return
	}
	if e.repainting {
		logging.L().Warn("[ENGINE] change signalled during repaint, ignored")
		return
	}
	e.repainting = true
	defer func() { e.repainting = false }()

	Paint(e.surface, e.src.Done(), e.src.Preview())
	e.frames++
	for _, fn := range e.onFrame {
		fn()
	}
}

// Paint draws a full frame onto s.
func Paint(s Surface, done []*state.Action, preview *state.Preview) {
	if s == nil {
		return
	}
	s.Clear(s.Size())
	for _, a := range done {
		Draw(s, a)
	}
	DrawPreview(s, preview)
}
