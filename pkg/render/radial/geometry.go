package radial

import "math"

// Canvas and root geometry in logical pixels.
const (
	Width  = 800.0
	Height = 600.0

	RootX           = Width / 2
	RootY           = 120.0
	RootRadius      = 50.0
	RootStrokeWidth = 3.0
	RootLabelWidth  = 80.0

	TitleY       = 40.0
	DescriptionY = 70.0
)

// Fan-out and node sizing.
const (
	MinFanRadius  = 200.0
	FanRadiusStep = 20.0 // per sibling

	MinNodeRadius   = 40.0
	MaxNodeRadius   = 80.0
	NodePadding     = 20.0
	LabelWidthRatio = 1.8

	EdgeWidth       = 2.0
	NodeStrokeWidth = 2.0
)

// FanRadius is the distance from a parent to each of its n children. It
// grows with the sibling count to spread crowded fans.
func FanRadius(n int) float64 {
	return max(MinFanRadius, float64(n)*FanRadiusStep)
}

// Angle is the direction of child i of n, in radians. Every fan starts at 0
// regardless of where its parent sits.
func Angle(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return 2 * math.Pi * float64(i) / float64(n)
}

// Position returns the center of child i of n around a parent at (px, py).
func Position(px, py float64, i, n int) (x, y float64) {
	r, a := FanRadius(n), Angle(i, n)
	return px + r*math.Cos(a), py + r*math.Sin(a)
}

// NodeRadius sizes a node circle from its label width, clamped to
// [MinNodeRadius, MaxNodeRadius]. Negative or NaN widths count as 0.
func NodeRadius(textWidth float64) float64 {
	if !(textWidth > 0) {
		textWidth = 0
	}
	return min(MaxNodeRadius, max(MinNodeRadius, textWidth/2+NodePadding))
}

// LabelWidth is the wrap width for a label inside a node of radius r.
func LabelWidth(r float64) float64 { return r * LabelWidthRatio }
