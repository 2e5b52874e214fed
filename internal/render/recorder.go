package render

// Op is one recorded surface call. The JSON form is what the browser page
// replays onto its canvas.
type Op struct {
	Name string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
}

// Recorder is a Surface that keeps the calls made against it instead of
// drawing pixels.
type Recorder struct {
	W, H float64
	ops  []Op
}

var _ Surface = (*Recorder)(nil)

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Ops returns the calls recorded since the last Reset.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

func (r *Recorder) Reset() { r.ops = r.ops[:0] }

func (r *Recorder) add(name string, args ...float64) {
	r.ops = append(r.ops, Op{Name: name, Args: args})
}

func (r *Recorder) addText(name, text string, args ...float64) {
	r.ops = append(r.ops, Op{Name: name, Text: text, Args: args})
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Clear starts a new frame: earlier calls are dropped.
func (r *Recorder) Clear(w, h float64) {
	r.Reset()
	r.add("clear", w, h)
}

func (r *Recorder) MoveTo(x, y float64)          { r.add("moveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)          { r.add("lineTo", x, y) }
func (r *Recorder) Stroke()                      { r.add("stroke") }
func (r *Recorder) FillCircle(x, y, rad float64) { r.add("fillCircle", x, y, rad) }
func (r *Recorder) FillText(text string, x, y float64) {
	r.addText("fillText", text, x, y)
}
func (r *Recorder) Save()                      { r.add("save") }
func (r *Recorder) Restore()                   { r.add("restore") }
func (r *Recorder) Translate(x, y float64)     { r.add("translate", x, y) }
func (r *Recorder) Rotate(rad float64)         { r.add("rotate", rad) }
func (r *Recorder) Scale(sx, sy float64)       { r.add("scale", sx, sy) }
func (r *Recorder) SetLineWidth(w float64)     { r.add("lineWidth", w) }
func (r *Recorder) SetStrokeColor(name string) { r.addText("strokeStyle", name) }
func (r *Recorder) SetFillColor(name string)   { r.addText("fillStyle", name) }
func (r *Recorder) SetFontSize(px float64)     { r.add("fontSize", px) }

// Segment is a straight line drawn by a stroke.
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// Segments replays the moveTo/lineTo calls in ops and returns the line
// segments they describe.
func Segments(ops []Op) []Segment {
	var (
		segs   []Segment
		cx, cy float64
		open   bool
	)
	for _, op := range ops {
		switch op.Name {
		case "moveTo":
			cx, cy, open = op.Args[0], op.Args[1], true
		case "lineTo":
			if open {
				segs = append(segs, Segment{cx, cy, op.Args[0], op.Args[1]})
			}
			cx, cy, open = op.Args[0], op.Args[1], true
		case "stroke", "clear":
			open = false
		}
	}
	return segs
}
