package app

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ayusman/lace/internal/scene"
	"github.com/ayusman/lace/internal/tracking"
)

// BoxPolicy decides which palm positions the box between the hands uses.
type BoxPolicy string

const (
	// BoxLastKnown draws while at least one hand is in the frame and reuses
	// the last position of a hand that left it, or the origin if it was
	// never seen.
	BoxLastKnown BoxPolicy = "last_known"
	// BoxCurrentOnly draws the box only while both hands are in the frame.
	BoxCurrentOnly BoxPolicy = "current_only"
)

// Style holds the colors and sizes of the scene.
type Style struct {
	Title string

	GradientInner color.RGBA
	GradientOuter color.RGBA
	Flat          color.RGBA
	TextColor     color.RGBA
	TextX, TextY  int

	Camera scene.Camera

	GridColor color.RGBA
	GridStep  float64
	GridSteps int

	PalmColor   color.RGBA
	PalmRadius  float64
	NormalColor color.RGBA
	NormalScale float64

	Accent      color.RGBA
	JointRadius float64
	BoneColor   color.RGBA
	BoneWidth   float64

	TrailColor color.RGBA
	BoxPolicy  BoxPolicy
}

// DefaultStyle returns the stock look of the visualizer.
func DefaultStyle() Style {
	accent := scene.Hex(0x2EAFAC)
	accent.A = 127

	return Style{
		Title:         "Lace - hand tracking",
		GradientInner: scene.Gray(90),
		GradientOuter: scene.Gray(30),
		Flat:          scene.Black,
		TextColor:     scene.Gray(200),
		TextX:         20,
		TextY:         20,
		Camera:        scene.NewCamera(r3.Vec{X: -90}),
		GridColor:     scene.Gray(20),
		GridStep:      800,
		GridSteps:     20,
		PalmColor:     scene.Blue,
		PalmRadius:    20,
		NormalColor:   scene.Yellow,
		NormalScale:   100,
		Accent:        accent,
		JointRadius:   5,
		BoneColor:     scene.Red,
		BoneWidth:     3,
		TrailColor:    scene.White,
		BoxPolicy:     BoxLastKnown,
	}
}

// Status is the tracker state shown in the overlay.
type Status struct {
	Connected bool
}

// Render draws one frame of st onto c. Palms are recorded in the trails only
// when st.Fresh is set, so a snapshot redrawn on later ticks is counted once.
// Hands are processed in tracker order; when two hands of the same side
// appear in one frame the later one wins the last-known slot.
func Render(c scene.Canvas, st *State, style Style, status Status) {
	if st.Toggles.Grid {
		c.BackgroundGradient(style.GradientInner, style.GradientOuter)
	} else {
		c.Background(style.Flat)
	}

	c.Text(statusText(st, style, status), style.TextX, style.TextY, style.TextColor)

	c.BeginCamera(style.Camera)
	defer c.EndCamera()

	if st.Toggles.Grid {
		c.GridPlane(style.GridStep, style.GridSteps, style.GridColor)
	}

	st.Left.Current = false
	st.Right.Current = false

	for i := range st.Hands {
		hand := &st.Hands[i]
		last, trail := st.side(hand.Handedness)
		*last = LastKnown{Pos: hand.PalmPosition, Seen: true, Current: true}

		drawHand(c, hand, style)

		if st.Fresh {
			trail.Append(hand.PalmPosition)
		}
	}

	if st.Toggles.Box {
		if center, size, ok := boxBetween(st.Left, st.Right, style.BoxPolicy); ok {
			c.Box(center, size.X, size.Y, size.Z, style.Accent)
		}
	}

	if st.LeftTrail.Len() > 1 {
		c.Polyline(st.LeftTrail.Points(), style.TrailColor)
	}
	if st.RightTrail.Len() > 1 {
		c.Polyline(st.RightTrail.Points(), style.TrailColor)
	}
}

func statusText(st *State, style Style, status Status) string {
	return fmt.Sprintf("%s\nNum vertices: %d left, %d right\nTracker connected? %t",
		style.Title, st.LeftTrail.Len(), st.RightTrail.Len(), status.Connected)
}

// drawHand draws the palm marker, the palm normal and every finger.
func drawHand(c scene.Canvas, hand *tracking.Hand, style Style) {
	palm := hand.PalmPosition
	c.Sphere(palm, style.PalmRadius, style.PalmColor)
	c.Arrow(palm, r3.Add(palm, r3.Scale(style.NormalScale, hand.PalmNormal)), style.NormalColor)

	for _, ft := range tracking.FingerTypes {
		finger := hand.Fingers[ft]
		for _, joint := range finger.Joints() {
			c.Sphere(joint, style.JointRadius, style.Accent)
		}
		for _, bone := range finger.Bones() {
			c.Line(bone[0], bone[1], style.BoneWidth, style.BoneColor)
		}
	}
}

// boxBetween returns the box spanning the two palms. The box is anchored at
// the left palm offset by half the span on X and Y only, so it is centered
// between the hands on X and Y but not on Z.
func boxBetween(left, right LastKnown, policy BoxPolicy) (center, size r3.Vec, ok bool) {
	switch policy {
	case BoxCurrentOnly:
		if !left.Current || !right.Current {
			return r3.Vec{}, r3.Vec{}, false
		}
	default:
		if !left.Current && !right.Current {
			return r3.Vec{}, r3.Vec{}, false
		}
	}
	size = r3.Sub(right.Pos, left.Pos)
	center = r3.Add(left.Pos, r3.Vec{X: size.X * 0.5, Y: size.Y * 0.5})
	return center, size, true
}
