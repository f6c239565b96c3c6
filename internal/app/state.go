package app

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/lace/internal/tracking"
)

// LastKnown is the most recent palm position seen for one side.
type LastKnown struct {
	Pos r3.Vec
	// Seen is true once the side has been observed at all.
	Seen bool
	// Current is true when the side was observed in the latest frame.
	Current bool
}

// Toggles switch optional parts of the scene.
type Toggles struct {
	Grid bool
	Box  bool
}

// State is everything the sampler and renderer share between ticks.
// Sample writes Hands, FingersFound and Fresh; Render reads them and writes
// Left, Right and the trails.
type State struct {
	Hands        []tracking.Hand
	FingersFound []int
	// Fresh is true when Hands came from a frame sampled on this tick.
	Fresh bool

	Left  LastKnown
	Right LastKnown

	LeftTrail  *Trail
	RightTrail *Trail

	Toggles Toggles
	Frame   uint64
}

// NewState creates an empty state whose trails hold at most trailCapacity
// points each (0 for unbounded).
func NewState(toggles Toggles, trailCapacity int) *State {
	return &State{
		LeftTrail:  NewTrail(trailCapacity),
		RightTrail: NewTrail(trailCapacity),
		Toggles:    toggles,
	}
}

// side returns the last-known slot and trail for a handedness.
func (s *State) side(h tracking.Handedness) (*LastKnown, *Trail) {
	if h == tracking.Left {
		return &s.Left, s.LeftTrail
	}
	return &s.Right, s.RightTrail
}
