// Package scene provides the graphics collaborator: a 3D Canvas of draw
// calls, a perspective camera, and a Projected canvas that flattens 3D calls
// onto any 2D Surface a window backend provides.
package scene

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// Canvas receives the draw calls of one rendered frame.
// 3D calls are only valid between BeginCamera and EndCamera.
type Canvas interface {
	// Size returns the current viewport size in pixels.
	Size() (width, height int)

	Background(c color.RGBA)
	BackgroundGradient(inner, outer color.RGBA)

	// Text draws a bitmap string in screen space. Lines split on '\n'.
	Text(s string, x, y int, c color.RGBA)

	BeginCamera(cam Camera)
	EndCamera()

	Sphere(center r3.Vec, radius float64, c color.RGBA)
	Line(a, b r3.Vec, width float64, c color.RGBA)
	Arrow(from, to r3.Vec, c color.RGBA)
	// Box draws an axis-aligned box centered on center.
	Box(center r3.Vec, width, height, depth float64, c color.RGBA)
	// GridPlane draws a ground grid in the XZ plane with lines every step
	// units out to steps*step from the origin.
	GridPlane(step float64, steps int, c color.RGBA)
	Polyline(points []r3.Vec, c color.RGBA)
}

// Gray returns an opaque gray of the given level.
func Gray(level uint8) color.RGBA {
	return color.RGBA{R: level, G: level, B: level, A: 0xff}
}

// Hex returns the opaque color 0xRRGGBB.
func Hex(rgb uint32) color.RGBA {
	return color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff}
}

// Common colors.
var (
	Black  = Gray(0)
	White  = Gray(255)
	Red    = color.RGBA{R: 255, A: 0xff}
	Blue   = color.RGBA{B: 255, A: 0xff}
	Yellow = color.RGBA{R: 255, G: 255, A: 0xff}
)

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
