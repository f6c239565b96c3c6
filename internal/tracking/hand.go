// Package tracking provides the hand tracking collaborator: simplified hand
// snapshots, the per-axis coordinate mapping, and Tracker implementations.
package tracking

import "gonum.org/v1/gonum/spatial/r3"

// FingerType indexes the five anatomical fingers of a Hand.
type FingerType int

// Finger types in the order the sensor reports them.
const (
	Thumb FingerType = iota
	Index
	Middle
	Ring
	Pinky
	NumFingers
)

// FingerTypes lists every finger type from thumb to pinky.
var FingerTypes = [NumFingers]FingerType{Thumb, Index, Middle, Ring, Pinky}

var fingerNames = [NumFingers]string{"thumb", "index", "middle", "ring", "pinky"}

func (f FingerType) String() string {
	if f < 0 || f >= NumFingers {
		return "unknown"
	}
	return fingerNames[f]
}

// Handedness tells a left hand from a right one.
type Handedness int

const (
	Left Handedness = iota
	Right
)

func (h Handedness) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// Finger holds the four joint positions of one finger, from knuckle to tip.
type Finger struct {
	ID   int        `json:"id"`
	Type FingerType `json:"type"`
	MCP  r3.Vec     `json:"mcp"` // metacarpophalangeal
	PIP  r3.Vec     `json:"pip"` // proximal interphalangeal
	DIP  r3.Vec     `json:"dip"` // distal interphalangeal
	Tip  r3.Vec     `json:"tip"`
}

// Joints returns the joint positions in bone order: MCP, PIP, DIP, Tip.
func (f Finger) Joints() [4]r3.Vec {
	return [4]r3.Vec{f.MCP, f.PIP, f.DIP, f.Tip}
}

// Bones returns the three segments MCP->PIP, PIP->DIP and DIP->Tip.
func (f Finger) Bones() [3][2]r3.Vec {
	return [3][2]r3.Vec{
		{f.MCP, f.PIP},
		{f.PIP, f.DIP},
		{f.DIP, f.Tip},
	}
}

// Hand is the simple hand representation: palm pose plus five fingers
// indexed by FingerType.
type Hand struct {
	ID           int                `json:"id"`
	Handedness   Handedness         `json:"handedness"`
	PalmPosition r3.Vec             `json:"palm_position"`
	PalmNormal   r3.Vec             `json:"palm_normal"`
	Fingers      [NumFingers]Finger `json:"fingers"`
}

// IsLeft reports whether the hand is a left hand.
func (h *Hand) IsLeft() bool {
	return h.Handedness == Left
}

// mapped returns a copy of the hand with every position run through m.
// The palm normal is a direction and stays in sensor space.
func (h Hand) mapped(m Mapping) Hand {
	out := h
	out.PalmPosition = m.Map(h.PalmPosition)
	for i := range out.Fingers {
		f := &out.Fingers[i]
		f.MCP = m.Map(f.MCP)
		f.PIP = m.Map(f.PIP)
		f.DIP = m.Map(f.DIP)
		f.Tip = m.Map(f.Tip)
	}
	return out
}
