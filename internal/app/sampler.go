package app

import "github.com/ayusman/lace/internal/tracking"

// Sample pulls the latest frame from the tracker into st.
//
// The mapping is re-established from the viewport size first, so the hands
// read afterwards are already in scene units. st.Hands is replaced wholesale
// when a new frame is available and kept as is otherwise, so the last snapshot
// stays on screen between tracker frames. A disconnected tracker clears it.
// st.Fresh reports whether this tick consumed a new frame, which is then
// marked old so the next tick does not process it again.
func Sample(t tracking.Tracker, bounds tracking.SensorBounds, width, height int, st *State) {
	st.Fresh = false

	if !t.IsConnected() {
		st.Hands = nil
		st.FingersFound = st.FingersFound[:0]
		return
	}

	bounds.ForViewport(width, height).Apply(t)

	if !t.IsFrameNew() {
		return
	}

	hands := t.SimpleHands()
	t.MarkFrameAsOld()

	st.Fresh = true
	st.Hands = nil
	st.FingersFound = st.FingersFound[:0]
	if len(hands) == 0 {
		return
	}

	st.Hands = hands
	for i := range hands {
		for _, ft := range tracking.FingerTypes {
			st.FingersFound = append(st.FingersFound, hands[i].Fingers[ft].ID)
		}
	}
}
