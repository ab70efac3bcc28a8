// Package geom implements the geometry kernel shared by every shape:
// points, rotations, symmetries, rectangles and affine matrices.
package geom

import "math"

// Epsilon is the default gap used by EqualsDouble and the
// tolerance-based point comparisons.
const Epsilon = 1e-9

// CutThreshold is the magnitude under which a value
// is considered as zero by CutNumber.
const CutThreshold = 1e-5

// IsValidCoordinate returns true if v is a finite number.
func IsValidCoordinate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// EqualsDouble compares a and b with the default Epsilon.
func EqualsDouble(a, b float64) bool {
	return EqualsDoubleGap(a, b, Epsilon)
}

// EqualsDoubleGap returns true if |a-b| <= gap.
func EqualsDoubleGap(a, b, gap float64) bool {
	return math.Abs(a-b) <= gap
}

// CutNumber returns 0 for values too close to zero, v otherwise.
func CutNumber(v float64) float64 {
	if math.Abs(v) < CutThreshold {
		return 0
	}
	return v
}

// NormaliseAngle maps theta into [0, 2π).
// It returns NaN for non finite angles.
func NormaliseAngle(theta float64) float64 {
	if !IsValidCoordinate(theta) {
		return math.NaN()
	}
	angle := math.Mod(theta, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if EqualsDouble(angle, 2*math.Pi) {
		angle = 0
	}
	return angle
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
