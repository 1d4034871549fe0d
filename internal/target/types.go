package target

// Type classifies a tracked object.
type Type string

const (
	TypeCivilian Type = "Civilian"
	TypeMilitary Type = "Military"
	TypeUAV      Type = "UAV"
	TypeUnknown  Type = "Unknown"
)

// Types lists every classification in generation order.
var Types = []Type{TypeCivilian, TypeMilitary, TypeUAV, TypeUnknown}

// ThreatLevel is assigned at creation and never changes.
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "Low"
	ThreatMedium ThreatLevel = "Medium"
	ThreatHigh   ThreatLevel = "High"
)

// Point is a position in the normalized disk.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Target represents one tracked aerial object.
type Target struct {
	ID          string      `json:"id"`
	X           float64     `json:"x"`
	Y           float64     `json:"y"`
	Velocity    float64     `json:"velocity"`
	Angle       float64     `json:"angle"`
	Altitude    int         `json:"altitude"`
	Speed       int         `json:"speed"`
	Type        Type        `json:"type"`
	History     []Point     `json:"history"`
	Detected    bool        `json:"detected"`
	ThreatLevel ThreatLevel `json:"threat_level"`
}

// Position returns the current position.
func (t Target) Position() Point {
	return Point{X: t.X, Y: t.Y}
}

// Clone returns a copy that shares no memory with t.
func (t Target) Clone() Target {
	c := t
	if t.History != nil {
		c.History = make([]Point, len(t.History))
		copy(c.History, t.History)
	}
	return c
}
