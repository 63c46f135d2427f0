package flatten

import "math"

const (
	// DefaultDistanceTolerance is the default maximum distance between a
	// curve and its polyline.
	DefaultDistanceTolerance = 0.5
	// DefaultAngleTolerance is the default maximum change of direction
	// between consecutive segments.
	//
	// This is 15·(π/2)/180 and not 15°, which would be 15·π/180.
	DefaultAngleTolerance = 15 * (math.Pi / 2) / 180
	// DefaultCuspLimit disables cusp splitting.
	DefaultCuspLimit = 0
	// DefaultApproximationScale corresponds to [DefaultDistanceTolerance].
	DefaultApproximationScale = 1
)

// Tolerance bounds the error of a flattened curve.
type Tolerance struct {
	// Distance is the maximum perpendicular deviation between the curve and
	// the polyline. It must be greater than zero.
	Distance float64
	// Angle bounds the change of tangent direction between consecutive
	// segments: the turn, in radians, must stay below Angle². Values with
	// Angle² < 0.01, zero included, disable angle-based subdivision.
	Angle float64
	// CuspLimit, in radians, is the turn beyond which a sharp change of
	// direction is treated as a cusp and split eagerly. Zero disables cusp
	// handling. Quadratic Béziers ignore it.
	CuspLimit float64
}

// DefaultTolerance returns the tolerance used when none is configured.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Distance:  DefaultDistanceTolerance,
		Angle:     DefaultAngleTolerance,
		CuspLimit: DefaultCuspLimit,
	}
}

// Validate reports an [ErrInvalidArgument] error if tol cannot be used for
// flattening.
func (tol Tolerance) Validate() error {
	if !(tol.Distance > 0) {
		return argumentError("distanceTolerance", tol.Distance, "must be greater than zero")
	}
	if !(tol.Angle >= 0) {
		return argumentError("angleTolerance", tol.Angle, "must not be negative")
	}
	if !(tol.CuspLimit >= 0) {
		return argumentError("cuspLimit", tol.CuspLimit, "must not be negative")
	}
	return nil
}

// cuspThreshold maps the user-facing cusp limit to the turning angle above
// which a junction counts as a cusp. Zero stays zero, meaning disabled.
func (tol Tolerance) cuspThreshold() float64 {
	if tol.CuspLimit == 0 {
		return 0
	}
	return math.Pi - tol.CuspLimit
}

// ApproximationScaleToDistance converts an approximation scale, as used by
// UI sliders, to a distance tolerance.
func ApproximationScaleToDistance(scale float64) (float64, error) {
	if !(scale > 0) {
		return 0, argumentError("approximationScale", scale, "must be greater than zero")
	}
	return 0.5 / scale, nil
}

// DistanceToApproximationScale is the inverse of
// [ApproximationScaleToDistance].
func DistanceToApproximationScale(tolerance float64) (float64, error) {
	if !(tolerance > 0) {
		return 0, argumentError("distanceTolerance", tolerance, "must be greater than zero")
	}
	return 0.5 / tolerance, nil
}
