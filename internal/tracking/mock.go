package tracking

import "gonum.org/v1/gonum/spatial/r3"

// MockTracker is a test implementation of the Tracker interface.
// It allows tests to control which frames are delivered and when.
type MockTracker struct {
	snapshot
	openErr error
	opened  bool
	closed  int
	nextID  int64
}

// NewMockTracker creates a new MockTracker instance.
func NewMockTracker() *MockTracker {
	return &MockTracker{snapshot: newSnapshot()}
}

// SetOpenError sets the error that will be returned by Open.
func (m *MockTracker) SetOpenError(err error) {
	m.openErr = err
}

// Open marks the tracker connected unless an open error was configured.
func (m *MockTracker) Open() error {
	if m.openErr != nil {
		return m.openErr
	}
	m.opened = true
	m.setConnected(true)
	return nil
}

// Close disconnects the tracker and counts the call.
func (m *MockTracker) Close() error {
	m.opened = false
	m.closed++
	m.setConnected(false)
	return nil
}

// Closed returns how many times Close was called.
func (m *MockTracker) Closed() int {
	return m.closed
}

// SetConnected overrides the connection state.
func (m *MockTracker) SetConnected(connected bool) {
	m.setConnected(connected)
}

// SetReceiveBackgroundFrames records the requested setting.
func (m *MockTracker) SetReceiveBackgroundFrames(enabled bool) {
	m.setReceiveBackground(enabled)
}

// ReceiveBackgroundFrames returns the last value passed to SetReceiveBackgroundFrames.
func (m *MockTracker) ReceiveBackgroundFrames() bool {
	return m.receiveBackground()
}

// Push delivers a new frame holding the given sensor-space hands.
func (m *MockTracker) Push(hands ...Hand) {
	m.nextID++
	m.publish(m.nextID, hands)
}

// Mapping returns the mapping currently applied to SimpleHands.
func (m *MockTracker) Mapping() Mapping {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mapping
}

// fingerOffsets are the joint offsets in millimeters from the palm of a
// relaxed right hand with the palm facing down.
var fingerOffsets = [NumFingers][4]r3.Vec{
	Thumb:  {{X: -30, Y: -5, Z: 10}, {X: -55, Y: -5, Z: -5}, {X: -70, Y: -3, Z: -20}, {X: -80, Y: 0, Z: -35}},
	Index:  {{X: -20, Y: 0, Z: -35}, {X: -25, Y: 0, Z: -75}, {X: -27, Y: 0, Z: -98}, {X: -28, Y: 0, Z: -115}},
	Middle: {{X: 0, Y: 0, Z: -38}, {X: 0, Y: 0, Z: -82}, {X: 0, Y: 0, Z: -108}, {X: 0, Y: 0, Z: -126}},
	Ring:   {{X: 18, Y: 0, Z: -35}, {X: 22, Y: 0, Z: -76}, {X: 24, Y: 0, Z: -100}, {X: 25, Y: 0, Z: -117}},
	Pinky:  {{X: 34, Y: 0, Z: -30}, {X: 42, Y: 0, Z: -62}, {X: 46, Y: 0, Z: -80}, {X: 48, Y: 0, Z: -95}},
}

// OpenPalmHand returns a preset open hand of the given side with its palm at
// palm (sensor millimeters) and the palm facing down. Finger ids are derived
// from the hand id the way the sensor service numbers them.
func OpenPalmHand(id int, side Handedness, palm r3.Vec) Hand {
	hand := Hand{
		ID:           id,
		Handedness:   side,
		PalmPosition: palm,
		PalmNormal:   r3.Vec{X: 0, Y: -1, Z: 0},
	}

	mirror := 1.0
	if side == Left {
		mirror = -1
	}

	for _, ft := range FingerTypes {
		off := fingerOffsets[ft]
		joint := func(i int) r3.Vec {
			return r3.Add(palm, r3.Vec{X: mirror * off[i].X, Y: off[i].Y, Z: off[i].Z})
		}
		hand.Fingers[ft] = Finger{
			ID:   id*10 + int(ft),
			Type: ft,
			MCP:  joint(0),
			PIP:  joint(1),
			DIP:  joint(2),
			Tip:  joint(3),
		}
	}

	return hand
}
