package scene

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultFOV is the vertical field of view in degrees.
const DefaultFOV = 60

// nearPlane is the closest view depth that still gets drawn.
const nearPlane = 1.0

// Camera is a perspective camera orbiting the origin. Orientation holds Euler
// angles in degrees applied X, then Y, then Z. The camera sits Distance units
// from the origin along its own +Z axis and looks back at it.
type Camera struct {
	Orientation r3.Vec
	FOV         float64
	// Distance of zero picks the distance at which one unit on the z=0
	// plane covers one pixel.
	Distance float64
}

// NewCamera returns a camera with the given orientation and default lens.
func NewCamera(orientation r3.Vec) Camera {
	return Camera{Orientation: orientation, FOV: DefaultFOV}
}

// Projection flattens points for one viewport size.
type Projection struct {
	rot      r3.Rotation
	focal    float64
	distance float64
	cx, cy   float64
}

// Projection prepares the camera for a viewport.
func (c Camera) Projection(width, height int) Projection {
	fov := c.FOV
	if fov <= 0 || fov >= 180 {
		fov = DefaultFOV
	}
	focal := float64(height) / 2 / math.Tan(fov*math.Pi/360)

	distance := c.Distance
	if distance <= 0 {
		distance = focal
	}

	return Projection{
		rot:      inverseRotation(c.Orientation),
		focal:    focal,
		distance: distance,
		cx:       float64(width) / 2,
		cy:       float64(height) / 2,
	}
}

// inverseRotation returns the world-to-camera rotation for the given Euler
// angles: the inverse of X, then Y, then Z.
func inverseRotation(deg r3.Vec) r3.Rotation {
	rad := func(d float64) float64 { return -d * math.Pi / 180 }
	rz := r3.NewRotation(rad(deg.Z), r3.Vec{Z: 1})
	ry := r3.NewRotation(rad(deg.Y), r3.Vec{Y: 1})
	rx := r3.NewRotation(rad(deg.X), r3.Vec{X: 1})
	return compose(compose(rx, ry), rz)
}

// compose returns the rotation applying b first, then a.
func compose(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// View returns p in camera space, where the camera looks down -Z.
func (p Projection) View(v r3.Vec) r3.Vec {
	view := p.rot.Rotate(v)
	view.Z -= p.distance
	return view
}

// Screen projects a camera-space point. ok is false when the point lies
// behind the near plane. scale converts world lengths at that depth to pixels.
func (p Projection) Screen(view r3.Vec) (x, y, scale float64, ok bool) {
	depth := -view.Z
	if depth < nearPlane {
		return 0, 0, 0, false
	}
	scale = p.focal / depth
	return p.cx + view.X*scale, p.cy - view.Y*scale, scale, true
}

// Project maps a world point straight to screen space.
func (p Projection) Project(v r3.Vec) (x, y, scale float64, ok bool) {
	return p.Screen(p.View(v))
}

// ClipSegment clips a camera-space segment against the near plane.
func (p Projection) ClipSegment(a, b r3.Vec) (r3.Vec, r3.Vec, bool) {
	da, db := -a.Z, -b.Z
	switch {
	case da < nearPlane && db < nearPlane:
		return a, b, false
	case da < nearPlane:
		t := (nearPlane - da) / (db - da)
		a = r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
	case db < nearPlane:
		t := (nearPlane - db) / (da - db)
		b = r3.Add(b, r3.Scale(t, r3.Sub(a, b)))
	}
	return a, b, true
}
