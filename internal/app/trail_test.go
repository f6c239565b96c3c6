package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

func pts(xs ...float64) []r3.Vec {
	out := make([]r3.Vec, len(xs))
	for i, x := range xs {
		out[i] = r3.Vec{X: x}
	}
	return out
}

func TestTrail_Unbounded(t *testing.T) {
	trail := NewTrail(0)

	for i := 0; i < 1000; i++ {
		trail.Append(r3.Vec{X: float64(i)})
		if trail.Len() != i+1 {
			t.Fatalf("after %d appends Len() = %d", i+1, trail.Len())
		}
	}

	points := trail.Points()
	for i, p := range points {
		if p.X != float64(i) {
			t.Fatalf("point %d = %v, want append order", i, p)
		}
	}
	if trail.Appended() != 1000 {
		t.Errorf("Appended() = %d, want 1000", trail.Appended())
	}
}

func TestTrail_Bounded(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		appends  int
		want     []r3.Vec
	}{
		{"below capacity", 4, 3, pts(0, 1, 2)},
		{"exactly full", 4, 4, pts(0, 1, 2, 3)},
		{"wraps once", 4, 6, pts(2, 3, 4, 5)},
		{"wraps many times", 3, 11, pts(8, 9, 10)},
		{"capacity one", 1, 5, pts(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trail := NewTrail(tt.capacity)
			for i := 0; i < tt.appends; i++ {
				trail.Append(r3.Vec{X: float64(i)})
			}

			if diff := cmp.Diff(tt.want, trail.Points()); diff != "" {
				t.Errorf("Points() mismatch (-want +got):\n%s", diff)
			}
			if trail.Appended() != tt.appends {
				t.Errorf("Appended() = %d, want %d", trail.Appended(), tt.appends)
			}
			if trail.Cap() != tt.capacity {
				t.Errorf("Cap() = %d, want %d", trail.Cap(), tt.capacity)
			}
		})
	}
}

func TestTrail_NegativeCapacityIsUnbounded(t *testing.T) {
	trail := NewTrail(-5)
	for i := 0; i < 10; i++ {
		trail.Append(r3.Vec{})
	}
	if trail.Len() != 10 || trail.Cap() != 0 {
		t.Errorf("Len() = %d, Cap() = %d; want 10, 0", trail.Len(), trail.Cap())
	}
}

func TestTrail_PointsIsACopy(t *testing.T) {
	trail := NewTrail(0)
	trail.Append(r3.Vec{X: 1})

	points := trail.Points()
	points[0] = r3.Vec{X: 99}

	if trail.Points()[0].X != 1 {
		t.Error("mutating Points() result changed the trail")
	}
}
