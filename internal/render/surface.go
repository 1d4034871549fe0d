package render

// Vec is a point in surface coordinates: origin top-left, y down.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Color is an opaque RGB value; transparency travels in Style.Alpha.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Style describes how a primitive is painted.
type Style struct {
	Color Color   `json:"color"`
	Alpha float64 `json:"alpha"`
	Width float64 `json:"width,omitempty"`
	Fill  bool    `json:"fill,omitempty"`
}

// Surface is a 2D drawing target. Angles are in radians, measured
// from +x towards +y in surface coordinates.
type Surface interface {
	Size() (w, h float64)
	Circle(c Vec, r float64, st Style)
	Line(a, b Vec, st Style)
	Polyline(pts []Vec, st Style)
	Wedge(c Vec, r, from, to float64, st Style)
	Text(at Vec, s string, st Style)
}

// OpKind names a recorded primitive.
type OpKind string

const (
	OpCircle   OpKind = "circle"
	OpLine     OpKind = "line"
	OpPolyline OpKind = "polyline"
	OpWedge    OpKind = "wedge"
	OpText     OpKind = "text"
)

// Op is one recorded drawing primitive.
type Op struct {
	Kind   OpKind  `json:"kind"`
	Points []Vec   `json:"points"`
	Radius float64 `json:"radius,omitempty"`
	From   float64 `json:"from,omitempty"`
	To     float64 `json:"to,omitempty"`
	Text   string  `json:"text,omitempty"`
	Style  Style   `json:"style"`
}

// DisplayList is a Surface that records primitives in draw order.
type DisplayList struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// NewDisplayList returns an empty list for a w x h area.
func NewDisplayList(w, h float64) *DisplayList {
	return &DisplayList{Width: w, Height: h}
}

func (d *DisplayList) Size() (float64, float64) { return d.Width, d.Height }

func (d *DisplayList) Circle(c Vec, r float64, st Style) {
	d.Ops = append(d.Ops, Op{Kind: OpCircle, Points: []Vec{c}, Radius: r, Style: st})
}

func (d *DisplayList) Line(a, b Vec, st Style) {
	d.Ops = append(d.Ops, Op{Kind: OpLine, Points: []Vec{a, b}, Style: st})
}

func (d *DisplayList) Polyline(pts []Vec, st Style) {
	cp := make([]Vec, len(pts))
	copy(cp, pts)
	d.Ops = append(d.Ops, Op{Kind: OpPolyline, Points: cp, Style: st})
}

func (d *DisplayList) Wedge(c Vec, r, from, to float64, st Style) {
	d.Ops = append(d.Ops, Op{Kind: OpWedge, Points: []Vec{c}, Radius: r, From: from, To: to, Style: st})
}

func (d *DisplayList) Text(at Vec, s string, st Style) {
	d.Ops = append(d.Ops, Op{Kind: OpText, Points: []Vec{at}, Text: s, Style: st})
}

// Filter returns the ops of the given kind.
func (d *DisplayList) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range d.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Replay draws the recorded ops onto s.
func (d *DisplayList) Replay(s Surface) {
	for _, op := range d.Ops {
		switch op.Kind {
		case OpCircle:
			s.Circle(op.Points[0], op.Radius, op.Style)
		case OpLine:
			s.Line(op.Points[0], op.Points[1], op.Style)
		case OpPolyline:
			s.Polyline(op.Points, op.Style)
		case OpWedge:
			s.Wedge(op.Points[0], op.Radius, op.From, op.To, op.Style)
		case OpText:
			s.Text(op.Points[0], op.Text, op.Style)
		}
	}
}
