package state

import (
	"errors"

	"SageDraw/internal/logging"
)

var (
	ErrNoAction    = errors.New("history: no action has been created")
	ErrStaleHandle = errors.New("history: handle is not the most recent action")
)

// History is the single-timeline action log: the done sequence is what gets
// drawn, the undone sequence is what Redo can bring back. It is owned by one
// goroutine and does no locking.
type History struct {
	done      []*Action
	undone    []*Action // most recently undone last
	observers []func()
}

func NewHistory() *History {
	return &History{
		done:   make([]*Action, 0),
		undone: make([]*Action, 0),
	}
}

// OnChange registers fn to run after every mutation, in registration order.
func (h *History) OnChange(fn func()) {
	h.observers = append(h.observers, fn)
}

func (h *History) notify() {
	for _, fn := range h.observers {
		fn()
	}
}

// Begin creates a stroke or stamp at origin from the current tool state and
// appends it. Any undone actions are discarded.
func (h *History) Begin(kind Kind, origin Point, t *Tools) *Action {
	var a *Action
	switch kind {
	case KindStamp:
		a = NewStamp(origin, t.Tool, t.StampSize, t.Rotation, t.Color)
	default:
		a = NewStroke(origin, t.Thickness, t.Color)
	}
	h.done = append(h.done, a)
	if len(h.undone) > 0 {
		logging.L().Debug("[HISTORY] new action drops redo entries", "dropped", len(h.undone))
	}
	h.undone = h.undone[:0]
	logging.L().Debug("[HISTORY] begin", "id", a.ID, "kind", a.Kind.String(), "at", a.Time)
	h.notify()
	return a
}

// Extend feeds p to the action returned by the latest Begin.
func (h *History) Extend(a *Action, p Point) error {
	if len(h.done) == 0 && len(h.undone) == 0 {
		return ErrNoAction
	}
	if a == nil || len(h.done) == 0 || h.done[len(h.done)-1] != a {
		return ErrStaleHandle
	}
	a.ExtendOrReposition(p)
	h.notify()
	return nil
}

// Undo moves the last done action onto the undone sequence. It reports
// false, and changes nothing, when there is nothing to undo.
func (h *History) Undo() bool {
	if len(h.done) == 0 {
		logging.L().Debug("[HISTORY] undo with empty history ignored")
		return false
	}
	last := h.done[len(h.done)-1]
	h.done = h.done[:len(h.done)-1]
	h.undone = append(h.undone, last)
	h.notify()
	return true
}

// Redo restores the most recently undone action.
func (h *History) Redo() bool {
	if len(h.undone) == 0 {
		logging.L().Debug("[HISTORY] redo with nothing undone ignored")
		return false
	}
	last := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.done = append(h.done, last)
	h.notify()
	return true
}

func (h *History) Clear() {
	h.done = h.done[:0]
	h.undone = h.undone[:0]
	logging.L().Debug("[HISTORY] cleared")
	h.notify()
}

// Done returns the drawn actions in z-order.
func (h *History) Done() []*Action {
	out := make([]*Action, len(h.done))
	copy(out, h.done)
	return out
}

// Undone returns the redo buffer, most recently undone last.
func (h *History) Undone() []*Action {
	out := make([]*Action, len(h.undone))
	copy(out, h.undone)
	return out
}

func (h *History) Len() int      { return len(h.done) }
func (h *History) CanUndo() bool { return len(h.done) > 0 }
func (h *History) CanRedo() bool { return len(h.undone) > 0 }
