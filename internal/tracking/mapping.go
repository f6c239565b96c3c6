package tracking

import "gonum.org/v1/gonum/spatial/r3"

// AxisMapping is a linear range mapping for one axis.
type AxisMapping struct {
	SrcMin, SrcMax float64
	DstMin, DstMax float64
}

// Map translates v from the source range into the destination range.
// Both endpoints map exactly; values outside the source range extrapolate.
// A degenerate source range maps everything to DstMin.
func (a AxisMapping) Map(v float64) float64 {
	span := a.SrcMax - a.SrcMin
	if span == 0 {
		return a.DstMin
	}
	t := (v - a.SrcMin) / span
	return a.DstMin*(1-t) + a.DstMax*t
}

// Mapping holds one AxisMapping per axis, translating sensor millimeters
// into scene units.
type Mapping struct {
	X, Y, Z AxisMapping
}

// Identity returns a mapping that leaves points unchanged.
func Identity() Mapping {
	unit := AxisMapping{SrcMin: 0, SrcMax: 1, DstMin: 0, DstMax: 1}
	return Mapping{X: unit, Y: unit, Z: unit}
}

// Map applies the per-axis mapping to p.
func (m Mapping) Map(p r3.Vec) r3.Vec {
	return r3.Vec{X: m.X.Map(p.X), Y: m.Y.Map(p.Y), Z: m.Z.Map(p.Z)}
}

// SensorBounds are the fixed sensor-space ranges that get stretched over the
// viewport each tick. Z also carries a fixed destination range because depth
// does not depend on the window.
type SensorBounds struct {
	X    [2]float64
	Y    [2]float64
	Z    [2]float64
	ZDst [2]float64
}

// DefaultSensorBounds returns the interaction volume of a desktop sensor.
func DefaultSensorBounds() SensorBounds {
	return SensorBounds{
		X:    [2]float64{-230, 230},
		Y:    [2]float64{90, 490},
		Z:    [2]float64{-150, 150},
		ZDst: [2]float64{-200, 200},
	}
}

// ForViewport builds the mapping for a viewport of the given size. X and Y
// are centered on the origin and span the full width and height, halved in
// whole pixels so odd sizes lose the extra pixel.
func (b SensorBounds) ForViewport(width, height int) Mapping {
	w := float64(width / 2)
	h := float64(height / 2)
	return Mapping{
		X: AxisMapping{SrcMin: b.X[0], SrcMax: b.X[1], DstMin: -w, DstMax: w},
		Y: AxisMapping{SrcMin: b.Y[0], SrcMax: b.Y[1], DstMin: -h, DstMax: h},
		Z: AxisMapping{SrcMin: b.Z[0], SrcMax: b.Z[1], DstMin: b.ZDst[0], DstMax: b.ZDst[1]},
	}
}

// Apply configures t with this mapping.
func (m Mapping) Apply(t Tracker) {
	t.SetMappingX(m.X.SrcMin, m.X.SrcMax, m.X.DstMin, m.X.DstMax)
	t.SetMappingY(m.Y.SrcMin, m.Y.SrcMax, m.Y.DstMin, m.Y.DstMax)
	t.SetMappingZ(m.Z.SrcMin, m.Z.SrcMax, m.Z.DstMin, m.Z.DstMax)
}
