// Package exercise provides the per-frame squat analysis pipeline: joint
// angle computation and a hysteresis-based repetition counter with coaching
// feedback.
package exercise

import "math"

// Point is a 2D joint position in normalized image coordinates.
type Point struct {
	X float64
	Y float64
}

// NeutralAngle is the fallback when an angle cannot be computed, for example
// when two of the three joints coincide. It reads as "fully extended" so an
// undetected joint never triggers a spurious stage transition.
const NeutralAngle = 180.0

// Angle computes the interior angle in degrees at vertex b formed by the
// segments b-a and b-c, using the law of cosines on the two vectors.
// The cosine is clamped to [-1, 1] before the inverse cosine to guard
// against floating-point overshoot. Degenerate input (a zero-length vector)
// returns NeutralAngle rather than NaN.
func Angle(a, b, c Point) float64 {
	bax := a.X - b.X
	bay := a.Y - b.Y
	bcx := c.X - b.X
	bcy := c.Y - b.Y

	normBA := math.Hypot(bax, bay)
	normBC := math.Hypot(bcx, bcy)
	if normBA == 0 || normBC == 0 {
		return NeutralAngle
	}

	cosine := (bax*bcx + bay*bcy) / (normBA * normBC)
	if cosine > 1 {
		cosine = 1
	} else if cosine < -1 {
		cosine = -1
	}

	return math.Acos(cosine) * 180 / math.Pi
}
