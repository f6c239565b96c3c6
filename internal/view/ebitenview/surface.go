// Package ebitenview shows the scene in an Ebitengine window.
package ebitenview

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font cell size in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// ImageSurface implements scene.Surface on an ebiten image. Scene colors are
// straight alpha and are converted before drawing. Text uses the debug font,
// which only prints white, so it is printed to a scratch image and tinted
// when copied onto the target.
type ImageSurface struct {
	img     *ebiten.Image
	scratch *ebiten.Image
}

// NewImageSurface wraps img.
func NewImageSurface(img *ebiten.Image) *ImageSurface {
	return &ImageSurface{img: img}
}

// SetImage retargets the surface, keeping its text scratch image.
func (s *ImageSurface) SetImage(img *ebiten.Image) {
	s.img = img
}

func (s *ImageSurface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ImageSurface) Clear(c color.RGBA) {
	s.img.Fill(nrgba(c))
}

func (s *ImageSurface) FillCircle(x, y, r float64, c color.RGBA) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), nrgba(c), true)
}

func (s *ImageSurface) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), nrgba(c), true)
}

func (s *ImageSurface) Text(str string, x, y int, c color.RGBA) {
	w, h := textSize(str)
	if w == 0 {
		return
	}
	s.growScratch(w, h)
	s.scratch.Clear()
	ebitenutil.DebugPrint(s.scratch, str)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(nrgba(c))
	s.img.DrawImage(s.scratch.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image), op)
}

func (s *ImageSurface) growScratch(w, h int) {
	if s.scratch != nil {
		b := s.scratch.Bounds()
		if b.Dx() >= w && b.Dy() >= h {
			return
		}
		w, h = max(w, b.Dx()), max(h, b.Dy())
		s.scratch.Deallocate()
	}
	s.scratch = ebiten.NewImage(w, h)
}

// textSize returns the pixel size of str in the debug font, with one extra
// pixel for the glyph shadow.
func textSize(str string) (int, int) {
	if str == "" {
		return 0, 0
	}
	cols := 0
	lines := strings.Split(str, "\n")
	for _, line := range lines {
		cols = max(cols, utf8.RuneCountInString(line))
	}
	if cols == 0 {
		return 0, 0
	}
	return cols*glyphWidth + 1, len(lines)*glyphHeight + 1
}

func nrgba(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
