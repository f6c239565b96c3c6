package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/lace/internal/tracking"
)

func newOpenTracker(t *testing.T) *tracking.MockTracker {
	t.Helper()
	m := tracking.NewMockTracker()
	if err := m.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return m
}

func TestSample(t *testing.T) {
	bounds := tracking.DefaultSensorBounds()

	t.Run("disconnected tracker yields no hands", func(t *testing.T) {
		m := tracking.NewMockTracker()
		m.Push(tracking.OpenPalmHand(1, tracking.Left, r3.Vec{Y: 200}))
		m.SetConnected(false)

		st := NewState(Toggles{}, 0)
		st.Hands = []tracking.Hand{{}}
		Sample(m, bounds, 800, 600, st)

		if len(st.Hands) != 0 || len(st.FingersFound) != 0 || st.Fresh {
			t.Errorf("got %d hands, %d fingers, fresh %t; want none", len(st.Hands), len(st.FingersFound), st.Fresh)
		}
	})

	t.Run("new frame replaces hands and collects finger ids", func(t *testing.T) {
		m := newOpenTracker(t)
		m.Push(
			tracking.OpenPalmHand(1, tracking.Left, r3.Vec{X: -50, Y: 200}),
			tracking.OpenPalmHand(2, tracking.Right, r3.Vec{X: 50, Y: 200}),
		)

		st := NewState(Toggles{}, 0)
		Sample(m, bounds, 800, 600, st)

		if len(st.Hands) != 2 {
			t.Fatalf("got %d hands, want 2", len(st.Hands))
		}
		want := []int{10, 11, 12, 13, 14, 20, 21, 22, 23, 24}
		if diff := cmp.Diff(want, st.FingersFound); diff != "" {
			t.Errorf("FingersFound mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("mapping follows the viewport", func(t *testing.T) {
		m := newOpenTracker(t)
		m.Push(tracking.OpenPalmHand(1, tracking.Right, r3.Vec{X: 230, Y: 490, Z: 150}))

		st := NewState(Toggles{}, 0)
		Sample(m, bounds, 1000, 500, st)

		if got, want := st.Hands[0].PalmPosition, (r3.Vec{X: 500, Y: 250, Z: 200}); got != want {
			t.Errorf("palm = %v, want %v", got, want)
		}
		if got := m.Mapping().X; got.DstMax != 500 {
			t.Errorf("X mapping = %+v, want DstMax 500", got)
		}

		// Resized window: same frame source, new mapping.
		m.Push(tracking.OpenPalmHand(1, tracking.Right, r3.Vec{X: 230, Y: 490, Z: 150}))
		Sample(m, bounds, 400, 300, st)
		if got, want := st.Hands[0].PalmPosition, (r3.Vec{X: 200, Y: 150, Z: 200}); got != want {
			t.Errorf("palm after resize = %v, want %v", got, want)
		}
	})

	t.Run("frame is marked old after sampling", func(t *testing.T) {
		m := newOpenTracker(t)
		m.Push(tracking.OpenPalmHand(1, tracking.Left, r3.Vec{Y: 200}))

		st := NewState(Toggles{}, 0)
		Sample(m, bounds, 800, 600, st)
		if m.IsFrameNew() {
			t.Fatal("expected frame to be marked old")
		}
		if len(st.Hands) != 1 {
			t.Fatalf("got %d hands, want 1", len(st.Hands))
		}

		if !st.Fresh {
			t.Error("expected a fresh snapshot")
		}

		// No new frame: the snapshot stays for drawing but is not fresh.
		Sample(m, bounds, 800, 600, st)
		if len(st.Hands) != 1 || len(st.FingersFound) != 5 {
			t.Errorf("got %d hands, %d fingers; want the previous snapshot", len(st.Hands), len(st.FingersFound))
		}
		if st.Fresh {
			t.Error("stale tick reported a fresh snapshot")
		}
	})

	t.Run("new empty frame clears the snapshot", func(t *testing.T) {
		m := newOpenTracker(t)
		m.Push(tracking.OpenPalmHand(1, tracking.Left, r3.Vec{Y: 200}))

		st := NewState(Toggles{}, 0)
		Sample(m, bounds, 800, 600, st)
		m.Push()
		Sample(m, bounds, 800, 600, st)

		if len(st.Hands) != 0 || len(st.FingersFound) != 0 || !st.Fresh {
			t.Errorf("got %d hands, fresh %t; want none from a fresh frame", len(st.Hands), st.Fresh)
		}
	})

	t.Run("new frame without hands", func(t *testing.T) {
		m := newOpenTracker(t)
		m.Push()

		st := NewState(Toggles{}, 0)
		Sample(m, bounds, 800, 600, st)

		if len(st.Hands) != 0 {
			t.Errorf("got %d hands, want 0", len(st.Hands))
		}
		if m.IsFrameNew() {
			t.Error("expected empty frame to be marked old")
		}
	})

	t.Run("supports more than two hands", func(t *testing.T) {
		m := newOpenTracker(t)
		m.Push(
			tracking.OpenPalmHand(1, tracking.Left, r3.Vec{Y: 200}),
			tracking.OpenPalmHand(2, tracking.Right, r3.Vec{Y: 200}),
			tracking.OpenPalmHand(3, tracking.Left, r3.Vec{Y: 300}),
		)

		st := NewState(Toggles{}, 0)
		Sample(m, bounds, 800, 600, st)

		if len(st.Hands) != 3 || len(st.FingersFound) != 15 {
			t.Errorf("got %d hands, %d fingers; want 3, 15", len(st.Hands), len(st.FingersFound))
		}
	})
}
