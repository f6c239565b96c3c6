package app

import "gonum.org/v1/gonum/spatial/r3"

// Trail is the append-only history of one hand's palm position.
// A capacity of zero keeps every point; otherwise the trail is a ring buffer
// holding the newest points in append order.
type Trail struct {
	points   []r3.Vec
	capacity int
	start    int
	appended int
}

// NewTrail creates a trail holding at most capacity points (0 for unbounded).
func NewTrail(capacity int) *Trail {
	if capacity < 0 {
		capacity = 0
	}
	return &Trail{capacity: capacity}
}

// Append adds p as the newest point.
func (t *Trail) Append(p r3.Vec) {
	t.appended++

	if t.capacity == 0 || len(t.points) < t.capacity {
		t.points = append(t.points, p)
		return
	}

	// Full: overwrite the oldest point.
	t.points[t.start] = p
	t.start = (t.start + 1) % t.capacity
}

// Len returns the number of points currently held.
func (t *Trail) Len() int {
	return len(t.points)
}

// Cap returns the configured capacity, 0 meaning unbounded.
func (t *Trail) Cap() int {
	return t.capacity
}

// Appended returns how many points were ever appended.
func (t *Trail) Appended() int {
	return t.appended
}

// Points returns the held points from oldest to newest.
func (t *Trail) Points() []r3.Vec {
	out := make([]r3.Vec, 0, len(t.points))
	out = append(out, t.points[t.start:]...)
	out = append(out, t.points[:t.start]...)
	return out
}
