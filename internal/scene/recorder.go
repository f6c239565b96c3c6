package scene

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Op names a recorded draw call.
type Op string

const (
	OpBackground         Op = "background"
	OpBackgroundGradient Op = "background-gradient"
	OpText               Op = "text"
	OpBeginCamera        Op = "begin-camera"
	OpEndCamera          Op = "end-camera"
	OpSphere             Op = "sphere"
	OpLine               Op = "line"
	OpArrow              Op = "arrow"
	OpBox                Op = "box"
	OpGridPlane          Op = "grid-plane"
	OpPolyline           Op = "polyline"
)

// Command is one recorded draw call. Only the fields relevant to Op are set:
// Points holds centers, endpoints or polyline vertices; Size holds a
// sphere's radius, a line's width, a box's extents or a grid's step and steps.
type Command struct {
	Op     Op
	Points []r3.Vec
	Size   []float64
	Color  color.RGBA
	Text   string
}

// Recorder is a Canvas that records draw calls instead of rendering them.
// It backs the headless loop and tests.
type Recorder struct {
	width, height int
	commands      []Command
}

// NewRecorder creates a Recorder with the given viewport size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

// SetSize changes the reported viewport size.
func (r *Recorder) SetSize(width, height int) {
	r.width, r.height = width, height
}

// Commands returns the calls recorded since the last Reset.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Count returns how many calls of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Filter returns the recorded calls of op in order.
func (r *Recorder) Filter(op Op) []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

func (r *Recorder) Background(c color.RGBA) {
	r.record(Command{Op: OpBackground, Color: c})
}

func (r *Recorder) BackgroundGradient(inner, outer color.RGBA) {
	r.record(Command{Op: OpBackgroundGradient, Color: inner})
}

func (r *Recorder) Text(s string, x, y int, c color.RGBA) {
	r.record(Command{Op: OpText, Text: s, Size: []float64{float64(x), float64(y)}, Color: c})
}

func (r *Recorder) BeginCamera(cam Camera) {
	r.record(Command{Op: OpBeginCamera, Points: []r3.Vec{cam.Orientation}})
}

func (r *Recorder) EndCamera() {
	r.record(Command{Op: OpEndCamera})
}

func (r *Recorder) Sphere(center r3.Vec, radius float64, c color.RGBA) {
	r.record(Command{Op: OpSphere, Points: []r3.Vec{center}, Size: []float64{radius}, Color: c})
}

func (r *Recorder) Line(a, b r3.Vec, width float64, c color.RGBA) {
	r.record(Command{Op: OpLine, Points: []r3.Vec{a, b}, Size: []float64{width}, Color: c})
}

func (r *Recorder) Arrow(from, to r3.Vec, c color.RGBA) {
	r.record(Command{Op: OpArrow, Points: []r3.Vec{from, to}, Color: c})
}

func (r *Recorder) Box(center r3.Vec, width, height, depth float64, c color.RGBA) {
	r.record(Command{Op: OpBox, Points: []r3.Vec{center}, Size: []float64{width, height, depth}, Color: c})
}

func (r *Recorder) GridPlane(step float64, steps int, c color.RGBA) {
	r.record(Command{Op: OpGridPlane, Size: []float64{step, float64(steps)}, Color: c})
}

func (r *Recorder) Polyline(points []r3.Vec, c color.RGBA) {
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	r.record(Command{Op: OpPolyline, Points: pts, Color: c})
}
