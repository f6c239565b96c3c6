package app

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/lace/internal/scene"
	"github.com/ayusman/lace/internal/tracking"
)

func newTestApp(t *testing.T, toggles Toggles) (*App, *tracking.MockTracker) {
	t.Helper()
	m := tracking.NewMockTracker()
	a := New(Config{
		Tracker: m,
		Bounds:  tracking.DefaultSensorBounds(),
		Style:   DefaultStyle(),
		Toggles: toggles,
	})
	if err := a.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return a, m
}

func TestApp_Tick(t *testing.T) {
	a, m := newTestApp(t, Toggles{Grid: true})
	rec := scene.NewRecorder(800, 600)

	m.Push(
		tracking.OpenPalmHand(1, tracking.Left, r3.Vec{X: -100, Y: 250}),
		tracking.OpenPalmHand(2, tracking.Right, r3.Vec{X: 100, Y: 250}),
	)
	a.Tick(rec)

	st := a.State()
	if st.Frame != 1 {
		t.Errorf("Frame = %d, want 1", st.Frame)
	}
	if st.LeftTrail.Len() != 1 || st.RightTrail.Len() != 1 {
		t.Errorf("trails = %d/%d, want 1/1", st.LeftTrail.Len(), st.RightTrail.Len())
	}
	if n := rec.Count(scene.OpSphere); n != 42 {
		t.Errorf("drew %d spheres, want 42", n)
	}

	// No new frame on the next refresh: the hands are redrawn, nothing is
	// appended.
	rec.Reset()
	a.Tick(rec)
	if st.LeftTrail.Len() != 1 || st.RightTrail.Len() != 1 {
		t.Errorf("trails after stale tick = %d/%d, want 1/1", st.LeftTrail.Len(), st.RightTrail.Len())
	}
	if n := rec.Count(scene.OpSphere); n != 42 {
		t.Errorf("stale tick drew %d spheres, want 42", n)
	}
	if st.Frame != 2 {
		t.Errorf("Frame = %d, want 2", st.Frame)
	}
}

func TestApp_TickFasterThanTracker(t *testing.T) {
	a, m := newTestApp(t, Toggles{Box: true})
	rec := scene.NewRecorder(800, 600)

	// Three display ticks per tracker frame.
	drawn := 0
	for frame := 0; frame < 4; frame++ {
		m.Push(tracking.OpenPalmHand(1, tracking.Left, r3.Vec{X: float64(frame), Y: 250}))
		for i := 0; i < 3; i++ {
			rec.Reset()
			a.Tick(rec)
			if rec.Count(scene.OpSphere) == 21 && rec.Count(scene.OpBox) == 1 {
				drawn++
			}
		}
	}

	if drawn != 12 {
		t.Errorf("hand drawn on %d of 12 ticks", drawn)
	}
	if got := a.State().LeftTrail.Len(); got != 4 {
		t.Errorf("left trail = %d, want one point per tracker frame", got)
	}
}

func TestApp_TickUsesCanvasSize(t *testing.T) {
	a, m := newTestApp(t, Toggles{})
	rec := scene.NewRecorder(1000, 500)

	m.Push(tracking.OpenPalmHand(1, tracking.Right, r3.Vec{X: -230, Y: 90, Z: -150}))
	a.Tick(rec)

	if got, want := a.State().Right.Pos, (r3.Vec{X: -500, Y: -250, Z: -200}); got != want {
		t.Errorf("right palm = %v, want %v", got, want)
	}
}

func TestApp_Open(t *testing.T) {
	t.Run("forwards background frames", func(t *testing.T) {
		m := tracking.NewMockTracker()
		a := New(Config{Tracker: m, Style: DefaultStyle(), BackgroundFrames: true})
		if err := a.Open(); err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if !m.ReceiveBackgroundFrames() {
			t.Error("background frames not enabled")
		}
	})

	t.Run("returns tracker error", func(t *testing.T) {
		m := tracking.NewMockTracker()
		wantErr := errors.New("no device")
		m.SetOpenError(wantErr)

		a := New(Config{Tracker: m, Style: DefaultStyle()})
		if err := a.Open(); !errors.Is(err, wantErr) {
			t.Errorf("Open() error = %v, want %v", err, wantErr)
		}

		// Still renders, just without hands.
		rec := scene.NewRecorder(800, 600)
		a.Tick(rec)
		if rec.Count(scene.OpSphere) != 0 || rec.Count(scene.OpText) != 1 {
			t.Error("expected an empty scene with status text")
		}
	})
}

func TestApp_Close(t *testing.T) {
	a, m := newTestApp(t, Toggles{})

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if m.Closed() != 1 {
		t.Errorf("tracker closed %d times, want 1", m.Closed())
	}
}

func TestApp_Messages(t *testing.T) {
	a, _ := newTestApp(t, Toggles{})

	var got []string
	a.Handlers().GotMessage = func(msg string) { got = append(got, msg) }

	a.Post("first")
	a.Post("second")
	if len(got) != 0 {
		t.Fatal("messages delivered before the next tick")
	}

	a.Tick(scene.NewRecorder(800, 600))
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("got messages %v", got)
	}
}

func TestApp_PostDropsWhenFull(t *testing.T) {
	a, _ := newTestApp(t, Toggles{})

	count := 0
	a.Handlers().GotMessage = func(string) { count++ }

	for i := 0; i < MessageQueueSize+5; i++ {
		a.Post("msg")
	}
	a.Tick(scene.NewRecorder(800, 600))

	if count != MessageQueueSize {
		t.Errorf("delivered %d messages, want %d", count, MessageQueueSize)
	}
}

func TestApp_Handlers(t *testing.T) {
	t.Run("unset handlers are ignored", func(t *testing.T) {
		a, _ := newTestApp(t, Toggles{})

		a.KeyPressed('g')
		a.KeyReleased('g')
		a.MouseMoved(1, 2)
		a.MouseDragged(1, 2, MouseLeft)
		a.MousePressed(1, 2, MouseRight)
		a.MouseReleased(1, 2, MouseMiddle)
		a.WindowResized(640, 480)
		a.DragEvent([]string{"a.jsonl"}, 3, 4)
		a.Post("hello")
		a.Tick(scene.NewRecorder(800, 600))
	})

	t.Run("registered handlers receive events", func(t *testing.T) {
		a, _ := newTestApp(t, Toggles{})

		var events []string
		h := a.Handlers()
		h.KeyPressed = func(key int) { events = append(events, "press "+string(rune(key))) }
		h.KeyReleased = func(key int) { events = append(events, "release "+string(rune(key))) }
		h.MousePressed = func(x, y, button int) {
			if button == MouseRight {
				events = append(events, "right")
			}
		}
		h.WindowResized = func(width, height int) {
			if width == 640 && height == 480 {
				events = append(events, "resize")
			}
		}
		h.DragEvent = func(files []string, x, y int) { events = append(events, files...) }

		a.KeyPressed('g')
		a.KeyReleased('b')
		a.MousePressed(0, 0, MouseRight)
		a.WindowResized(640, 480)
		a.DragEvent([]string{"take.jsonl"}, 0, 0)

		want := []string{"press g", "release b", "right", "resize", "take.jsonl"}
		if len(events) != len(want) {
			t.Fatalf("events = %v, want %v", events, want)
		}
		for i := range want {
			if events[i] != want[i] {
				t.Errorf("event %d = %q, want %q", i, events[i], want[i])
			}
		}
	})
}

func TestApp_Toggles(t *testing.T) {
	a, m := newTestApp(t, Toggles{Grid: false, Box: false})
	a.Handlers().KeyPressed = func(key int) {
		switch key {
		case 'g':
			a.ToggleGrid()
		case 'b':
			a.ToggleBox()
		}
	}

	a.KeyPressed('g')
	a.KeyPressed('b')

	m.Push(
		tracking.OpenPalmHand(1, tracking.Left, r3.Vec{X: -100, Y: 250}),
		tracking.OpenPalmHand(2, tracking.Right, r3.Vec{X: 100, Y: 250}),
	)
	rec := scene.NewRecorder(800, 600)
	a.Tick(rec)

	if rec.Count(scene.OpGridPlane) != 1 || rec.Count(scene.OpBox) != 1 {
		t.Errorf("grid %d, box %d; want both drawn", rec.Count(scene.OpGridPlane), rec.Count(scene.OpBox))
	}

	a.KeyPressed('g')
	rec.Reset()
	a.Tick(rec)
	if rec.Count(scene.OpGridPlane) != 0 || rec.Count(scene.OpBackground) != 1 {
		t.Error("grid still drawn after toggling off")
	}
}

func TestApp_SessionID(t *testing.T) {
	a1 := New(Config{Tracker: tracking.NewMockTracker()})
	a2 := New(Config{Tracker: tracking.NewMockTracker()})

	if a1.SessionID() == "" || a1.SessionID() == a2.SessionID() {
		t.Errorf("session ids %q and %q should be unique", a1.SessionID(), a2.SessionID())
	}
}
