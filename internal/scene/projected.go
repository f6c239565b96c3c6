package scene

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is the 2D drawing target a window backend provides.
type Surface interface {
	Size() (width, height int)
	Clear(c color.RGBA)
	FillCircle(x, y, r float64, c color.RGBA)
	Line(x0, y0, x1, y1, width float64, c color.RGBA)
	// Text draws a single line of text with its top-left corner at (x, y).
	Text(s string, x, y int, c color.RGBA)
}

// LineHeight is the vertical advance between lines of Text.
const LineHeight = 16

// arrowHead is the length of an arrow's head relative to the shaft.
const arrowHead = 0.2

// Projected implements Canvas on top of a Surface by projecting every 3D
// call through the active camera.
type Projected struct {
	surface Surface
	proj    Projection
	active  bool
}

// NewProjected wraps a surface.
func NewProjected(s Surface) *Projected {
	return &Projected{surface: s}
}

func (p *Projected) Size() (int, int) {
	return p.surface.Size()
}

func (p *Projected) Background(c color.RGBA) {
	p.surface.Clear(c)
}

// BackgroundGradient fills the surface with a horizontal bar: inner at the
// vertical center fading to outer at the top and bottom edges.
func (p *Projected) BackgroundGradient(inner, outer color.RGBA) {
	w, h := p.surface.Size()
	p.surface.Clear(outer)
	if h <= 0 {
		return
	}
	mid := float64(h) / 2
	for y := 0; y < h; y++ {
		t := math.Abs(float64(y)+0.5-mid) / mid
		p.surface.Line(0, float64(y)+0.5, float64(w), float64(y)+0.5, 1, Lerp(inner, outer, t))
	}
}

func (p *Projected) Text(s string, x, y int, c color.RGBA) {
	for i, line := range strings.Split(s, "\n") {
		p.surface.Text(line, x, y+i*LineHeight, c)
	}
}

func (p *Projected) BeginCamera(cam Camera) {
	w, h := p.surface.Size()
	p.proj = cam.Projection(w, h)
	p.active = true
}

func (p *Projected) EndCamera() {
	p.active = false
}

func (p *Projected) Sphere(center r3.Vec, radius float64, c color.RGBA) {
	if !p.active {
		return
	}
	x, y, scale, ok := p.proj.Project(center)
	if !ok {
		return
	}
	p.surface.FillCircle(x, y, math.Max(radius*scale, 1), c)
}

func (p *Projected) Line(a, b r3.Vec, width float64, c color.RGBA) {
	if !p.active {
		return
	}
	va, vb, ok := p.proj.ClipSegment(p.proj.View(a), p.proj.View(b))
	if !ok {
		return
	}
	x0, y0, _, ok0 := p.proj.Screen(va)
	x1, y1, _, ok1 := p.proj.Screen(vb)
	if !ok0 || !ok1 {
		return
	}
	p.surface.Line(x0, y0, x1, y1, width, c)
}

// Arrow draws a shaft and a two-stroke head in the plane of the screen.
func (p *Projected) Arrow(from, to r3.Vec, c color.RGBA) {
	if !p.active {
		return
	}
	x0, y0, _, ok0 := p.proj.Project(from)
	x1, y1, _, ok1 := p.proj.Project(to)
	if !ok0 || !ok1 {
		p.Line(from, to, 1, c)
		return
	}
	p.surface.Line(x0, y0, x1, y1, 1, c)

	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	head := length * arrowHead
	ux, uy := dx/length, dy/length
	for _, side := range []float64{-1, 1} {
		hx := x1 - head*(ux*math.Cos(math.Pi/6)-side*uy*math.Sin(math.Pi/6))
		hy := y1 - head*(uy*math.Cos(math.Pi/6)+side*ux*math.Sin(math.Pi/6))
		p.surface.Line(x1, y1, hx, hy, 1, c)
	}
}

// boxEdges index pairs of boxCorners.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Box draws the twelve edges of the box.
func (p *Projected) Box(center r3.Vec, width, height, depth float64, c color.RGBA) {
	if !p.active {
		return
	}
	var corners [8]r3.Vec
	for i := range corners {
		sx, sy, sz := -0.5, -0.5, -0.5
		if i&1 != 0 {
			sx = 0.5
		}
		if i&2 != 0 {
			sy = 0.5
		}
		if i&4 != 0 {
			sz = 0.5
		}
		corners[i] = r3.Add(center, r3.Vec{X: sx * width, Y: sy * height, Z: sz * depth})
	}
	for _, e := range boxEdges {
		p.Line(corners[e[0]], corners[e[1]], 1, c)
	}
}

func (p *Projected) GridPlane(step float64, steps int, c color.RGBA) {
	if !p.active || step <= 0 || steps <= 0 {
		return
	}
	extent := step * float64(steps)
	for i := -steps; i <= steps; i++ {
		v := float64(i) * step
		p.Line(r3.Vec{X: v, Z: -extent}, r3.Vec{X: v, Z: extent}, 1, c)
		p.Line(r3.Vec{X: -extent, Z: v}, r3.Vec{X: extent, Z: v}, 1, c)
	}
}

func (p *Projected) Polyline(points []r3.Vec, c color.RGBA) {
	for i := 1; i < len(points); i++ {
		p.Line(points[i-1], points[i], 1, c)
	}
}
