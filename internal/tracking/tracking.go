package tracking

import (
	"errors"
	"sync"
)

// ErrNotOpen is returned when a tracker is used before Open.
var ErrNotOpen = errors.New("tracker is not open")

// ErrNoFrames is returned when a recording holds no tracking frames.
var ErrNoFrames = errors.New("no tracking frames")

// Tracker defines the interface for hand tracking sources. Frames arrive on
// the tracker's own goroutine; every method is safe to call from the render
// loop and none of them block on the sensor.
type Tracker interface {
	// Open connects to the sensor and starts delivering frames.
	Open() error

	// Close releases the connection to the sensor.
	Close() error

	// SetReceiveBackgroundFrames asks the sensor to keep delivering frames
	// while the application is not focused.
	SetReceiveBackgroundFrames(enabled bool)

	// IsConnected reports whether a sensor is currently delivering data.
	IsConnected() bool

	// IsFrameNew reports whether a frame arrived since MarkFrameAsOld.
	IsFrameNew() bool

	// SimpleHands returns the hands of the latest frame in tracker order,
	// with positions run through the current mapping.
	// Returns an empty slice if no hands are tracked.
	SimpleHands() []Hand

	SetMappingX(srcMin, srcMax, dstMin, dstMax float64)
	SetMappingY(srcMin, srcMax, dstMin, dstMax float64)
	SetMappingZ(srcMin, srcMax, dstMin, dstMax float64)

	// MarkFrameAsOld acknowledges the latest frame so IsFrameNew returns
	// false until another one arrives.
	MarkFrameAsOld()
}

// snapshot is the latest-frame buffer shared by all trackers. Producers call
// publish from their own goroutine; the render loop polls the rest.
type snapshot struct {
	mu         sync.Mutex
	hands      []Hand
	frameID    int64
	frameNew   bool
	connected  bool
	background bool
	mapping    Mapping
}

func newSnapshot() snapshot {
	return snapshot{mapping: Identity()}
}

// publish replaces the current hands wholesale and flags the frame as new.
func (s *snapshot) publish(id int64, hands []Hand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hands = hands
	s.frameID = id
	s.frameNew = true
	s.connected = true
}

func (s *snapshot) setConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
	if !connected {
		s.hands = nil
	}
}

func (s *snapshot) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *snapshot) IsFrameNew() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameNew
}

func (s *snapshot) MarkFrameAsOld() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frameNew = false
}

func (s *snapshot) SimpleHands() []Hand {
	s.mu.Lock()
	defer s.mu.Unlock()

	hands := make([]Hand, len(s.hands))
	for i, h := range s.hands {
		hands[i] = h.mapped(s.mapping)
	}
	return hands
}

func (s *snapshot) SetMappingX(srcMin, srcMax, dstMin, dstMax float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping.X = AxisMapping{SrcMin: srcMin, SrcMax: srcMax, DstMin: dstMin, DstMax: dstMax}
}

func (s *snapshot) SetMappingY(srcMin, srcMax, dstMin, dstMax float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping.Y = AxisMapping{SrcMin: srcMin, SrcMax: srcMax, DstMin: dstMin, DstMax: dstMax}
}

func (s *snapshot) SetMappingZ(srcMin, srcMax, dstMin, dstMax float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapping.Z = AxisMapping{SrcMin: srcMin, SrcMax: srcMax, DstMin: dstMin, DstMax: dstMax}
}

func (s *snapshot) receiveBackground() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *snapshot) setReceiveBackground(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = enabled
}
