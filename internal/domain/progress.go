package domain

import "math"

// DefaultRingRadius is the radius of the progress ring the widget draws.
const DefaultRingRadius = 16.0

// RingCircumference returns the stroke length of a ring with the given radius.
func RingCircumference(radius float64) float64 {
	return 2 * math.Pi * radius
}

// ComputeStrokeOffset returns how much of the ring circumference is left
// undrawn for the given remaining and initial seconds. A full ring has offset
// 0 and an empty one has offset equal to the circumference. The caller must
// pass initial > 0.
func ComputeStrokeOffset(remaining, initial int, circumference float64) float64 {
	fraction := float64(remaining) / float64(initial)
	return circumference - fraction*circumference
}

// ProgressFraction converts a stroke offset back into the drawn share of the
// ring, in [0, 1].
func ProgressFraction(offset, circumference float64) float64 {
	if circumference <= 0 {
		return 0
	}
	f := 1 - offset/circumference
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
