// Package gocvview shows the scene in an OpenCV HighGUI window.
package gocvview

import (
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

// textBaseline offsets PutText's baseline origin so Text positions the top
// of the glyphs at y.
const textBaseline = 12

// MatSurface implements scene.Surface on an 8-bit BGR Mat.
// OpenCV does not blend, so color alpha is ignored.
type MatSurface struct {
	mat gocv.Mat
}

// NewMatSurface allocates a surface of the given size.
func NewMatSurface(width, height int) *MatSurface {
	return &MatSurface{mat: gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)}
}

// Mat returns the backing image. It stays owned by the surface.
func (s *MatSurface) Mat() *gocv.Mat {
	return &s.mat
}

// Close releases the backing image.
func (s *MatSurface) Close() error {
	return s.mat.Close()
}

func (s *MatSurface) Size() (int, int) {
	return s.mat.Cols(), s.mat.Rows()
}

func (s *MatSurface) Clear(c color.RGBA) {
	s.mat.SetTo(gocv.NewScalar(float64(c.B), float64(c.G), float64(c.R), 0))
}

func (s *MatSurface) FillCircle(x, y, r float64, c color.RGBA) {
	radius := int(math.Round(r))
	if radius < 1 {
		radius = 1
	}
	gocv.Circle(&s.mat, point(x, y), radius, c, -1)
}

func (s *MatSurface) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	thickness := int(math.Round(width))
	if thickness < 1 {
		thickness = 1
	}
	gocv.Line(&s.mat, point(x0, y0), point(x1, y1), c, thickness)
}

func (s *MatSurface) Text(str string, x, y int, c color.RGBA) {
	gocv.PutText(&s.mat, str, image.Pt(x, y+textBaseline), gocv.FontHersheyPlain, 1, c, 1)
}

func point(x, y float64) image.Point {
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}
