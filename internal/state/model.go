package state

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type Point struct{ X, Y float64 }

// Kind tags the variant carried by an Action.
type Kind int

const (
	KindStroke Kind = iota
	KindStamp
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindStamp:
		return "stamp"
	default:
		return "unknown"
	}
}

// Action is one drawable entry of the history: either a freehand stroke or
// a stamped glyph. Only the fields of its Kind are meaningful.
type Action struct {
	ID   string
	Kind Kind
	Time time.Time

	// Stroke
	Points    []Point
	Thickness float64

	// Stamp
	Pos      Point
	Glyph    string
	Size     float64
	Rotation float64 // degrees in [0, 360)

	Color string
}

func NewStroke(origin Point, thickness float64, color string) *Action {
	return &Action{
		ID:        uuid.NewString(),
		Kind:      KindStroke,
		Time:      time.Now(),
		Points:    []Point{origin},
		Thickness: thickness,
		Color:     color,
	}
}

func NewStamp(origin Point, glyph string, size, rotation float64, color string) *Action {
	return &Action{
		ID:       uuid.NewString(),
		Kind:     KindStamp,
		Time:     time.Now(),
		Pos:      origin,
		Glyph:    glyph,
		Size:     size,
		Rotation: NormalizeDegrees(rotation),
		Color:    color,
	}
}

// ExtendOrReposition appends p to a stroke, or moves a stamp to p.
func (a *Action) ExtendOrReposition(p Point) {
	switch a.Kind {
	case KindStroke:
		a.Points = append(a.Points, p)
	case KindStamp:
		a.Pos = p
	}
}

// Segments is the number of straight segments a stroke renders.
func (a *Action) Segments() int {
	if a.Kind != KindStroke || len(a.Points) == 0 {
		return 0
	}
	return len(a.Points) - 1
}

// NormalizeDegrees wraps d into [0, 360).
func NormalizeDegrees(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
