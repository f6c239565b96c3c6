package ebitenview

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ayusman/lace/internal/app"
	"github.com/ayusman/lace/internal/tracking"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		key    ebiten.Key
		want   int
		wantOK bool
	}{
		{ebiten.KeyG, 'g', true},
		{ebiten.KeyB, 'b', true},
		{ebiten.Key7, '7', true},
		{ebiten.KeySpace, ' ', true},
		{ebiten.KeyEscape, KeyEscape, true},
		{ebiten.KeyArrowLeft, KeyLeft, true},
		{ebiten.KeyShiftLeft, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			got, ok := KeyCode(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("KeyCode(%v) = %d, %t; want %d, %t", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTextSize(t *testing.T) {
	tests := []struct {
		str  string
		w, h int
	}{
		{"", 0, 0},
		{"\n", 0, 0},
		{"abc", 19, 17},
		{"Lace\nNum vertices: 3 left", 121, 33},
		{"héllo", 31, 17},
	}

	for _, tt := range tests {
		w, h := textSize(tt.str)
		if w != tt.w || h != tt.h {
			t.Errorf("textSize(%q) = %d, %d; want %d, %d", tt.str, w, h, tt.w, tt.h)
		}
	}
}

func TestGame_LayoutReportsResize(t *testing.T) {
	a := app.New(app.Config{Tracker: tracking.NewMockTracker(), Style: app.DefaultStyle()})

	var sizes [][2]int
	a.Handlers().WindowResized = func(w, h int) { sizes = append(sizes, [2]int{w, h}) }

	g := NewGame(context.Background(), a)
	g.Layout(800, 600)
	g.Layout(800, 600)
	w, h := g.Layout(1024, 768)

	if w != 1024 || h != 768 {
		t.Errorf("Layout() = %dx%d, want the outside size", w, h)
	}
	want := [][2]int{{800, 600}, {1024, 768}}
	if diff := cmp.Diff(want, sizes); diff != "" {
		t.Errorf("resize events mismatch (-want +got):\n%s", diff)
	}
}

func TestDroppedNames(t *testing.T) {
	files := fstest.MapFS{
		"take1.jsonl": {Data: []byte("{}")},
		"take2.jsonl": {Data: []byte("{}")},
	}
	if diff := cmp.Diff([]string{"take1.jsonl", "take2.jsonl"}, droppedNames(files)); diff != "" {
		t.Errorf("droppedNames mismatch (-want +got):\n%s", diff)
	}
}
