package state

// Preview is the live tool indicator drawn under an idle pointer. It is
// never stored in the History.
type Preview struct {
	Pos      Point
	Size     float64
	Tool     string
	Color    string
	Rotation float64
}

// NewPreview snapshots t at pointer position p.
func NewPreview(t *Tools, p Point) *Preview {
	return &Preview{
		Pos:      p,
		Size:     t.EffectiveSize(),
		Tool:     t.Tool,
		Color:    t.Color,
		Rotation: t.Rotation,
	}
}

func (p *Preview) IsStamp() bool {
	return p.Tool != ToolStroke
}
