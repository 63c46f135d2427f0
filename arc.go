package flatten

import (
	"fmt"
	"math"
)

const (
	// MaxArcVertices is the maximum number of control points produced by
	// [Arc.Beziers]: four cubic segments of at most 90° sharing end points.
	MaxArcVertices = 4*3 + 1

	// arcEpsilon is the sweep below which an arc is reduced to its end points.
	arcEpsilon = 1e-10
	// bezierArcAngleEpsilon is the slack, in radians, with which the last
	// quarter step may overshoot the sweep.
	bezierArcAngleEpsilon = 0.01
)

// Approximation selects the kind of segments used to approximate
// non-circular arcs before they are flattened.
type Approximation uint8

const (
	// CubicApproximation approximates the arc with cubic Béziers.
	CubicApproximation Approximation = iota
	// QuadraticApproximation approximates the arc with quadratic Béziers.
	QuadraticApproximation
	// LineApproximation approximates the arc directly with straight lines.
	LineApproximation
)

func (m Approximation) String() string {
	switch m {
	case CubicApproximation:
		return "cubic"
	case QuadraticApproximation:
		return "quadratic"
	case LineApproximation:
		return "line"
	default:
		return fmt.Sprintf("Approximation(%d)", uint8(m))
	}
}

// ParseApproximation returns the approximation named s, as returned by
// [Approximation.String].
func ParseApproximation(s string) (Approximation, error) {
	for _, m := range [...]Approximation{CubicApproximation, QuadraticApproximation, LineApproximation} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, argumentError("approximation", s, "unknown approximation mode")
}

func (m Approximation) valid() bool {
	return m <= LineApproximation
}

// Arc is an elliptical arc in center form.
//
// Angles are in radians. Positive sweeps run from the positive x axis towards
// the positive y axis, which is clockwise in a y-down coordinate system.
// StartAngle is a geometric angle measured in the frame of the unrotated
// ellipse. Radii are used as absolute values, the sweep is clamped to
// [-2π, 2π] and the start angle is reduced modulo 2π.
type Arc struct {
	Center     Point
	Radii      Vec2
	StartAngle float64
	SweepAngle float64
	XRotation  float64

	// Approximation selects how non-circular arcs are approximated. Circular
	// arcs always use cubic Béziers.
	Approximation Approximation
	// Flatness is the error threshold used to choose the number of segments
	// of non-circular arcs. Zero keeps the output within the distance
	// tolerance: line approximations use it as the threshold, Bézier
	// approximations spend half of it on the segments (at most
	// DefaultFlatness) and half on flattening them.
	Flatness float64
}

// FlattenArc flattens a center-form arc. See [Arc.Flatten].
func FlattenArc(center Point, radii Vec2, startAngle, sweepAngle, rotation float64, tol Tolerance) ([]Point, error) {
	return Arc{
		Center:     center,
		Radii:      radii,
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
		XRotation:  rotation,
	}.Flatten(tol)
}

func (a Arc) normalize() Arc {
	a.Radii = a.Radii.Abs()
	a.StartAngle = math.Mod(a.StartAngle, 2*math.Pi)
	a.SweepAngle = max(-2*math.Pi, min(2*math.Pi, a.SweepAngle))
	return a
}

func (a Arc) finite() bool {
	for _, v := range [...]float64{a.Center.X, a.Center.Y, a.Radii.X, a.Radii.Y, a.StartAngle, a.SweepAngle, a.XRotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsCircular reports whether both radii are equal.
func (a Arc) IsCircular() bool {
	r := a.Radii.Abs()
	return r.X == r.Y
}

// Start returns the first point of the arc. It is identical to the first
// point of [Arc.Flatten]'s result.
func (a Arc) Start() Point {
	a = a.normalize()
	eta1, _ := a.etaRange()
	return a.sample(eta1)
}

// End returns the last point of the arc. It is identical to the last point of
// [Arc.Flatten]'s result.
func (a Arc) End() Point {
	a = a.normalize()
	_, eta2 := a.etaRange()
	return a.sample(eta2)
}

// sample returns the point at parametric angle eta.
func (a Arc) sample(eta float64) Point {
	return a.Center.Translate(sampleEllipse(a.Radii, a.XRotation, eta))
}

// derivative returns the derivative of the arc with respect to eta.
func (a Arc) derivative(eta float64) Vec2 {
	return sampleEllipse(a.Radii, a.XRotation, eta+math.Pi/2)
}

// Take the ellipse radii, how the radii are rotated, and the sweep angle, and return a
// point on the ellipse.
func sampleEllipse(radii Vec2, xRotation float64, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii.X * cos
	v := radii.Y * sin
	return rotatePt(Vec2{u, v}, xRotation)
}

// Rotate pt about the origin by angle radians.
func rotatePt(pt Vec2, angle float64) Vec2 {
	if angle == 0 {
		return pt
	}
	sin, cos := math.Sincos(angle)
	return Vec2{
		X: pt.X*cos - pt.Y*sin,
		Y: pt.X*sin + pt.Y*cos,
	}
}

// Beziers decomposes the arc into at most four cubic Bézier segments of at
// most 90° each. It returns the control points of the chain, with segment i
// using points 3i through 3i+3, and the number of points used.
//
// For circular arcs the chain matches the arc to within the accuracy of the
// cubic circle approximation. Arcs with a sweep smaller than 1e-10 radians
// produce just their two end points.
func (a Arc) Beziers() ([MaxArcVertices]Point, int) {
	a = a.normalize()
	var out [MaxArcVertices]Point
	start, end := a.Start(), a.End()
	if math.Abs(a.SweepAngle) < arcEpsilon {
		out[0], out[1] = start, end
		return out, 2
	}

	var total float64
	n := 1
	angle := a.StartAngle
	for done := false; !done && n < MaxArcVertices; {
		prev := total
		step := math.Copysign(math.Pi/2, a.SweepAngle)
		total += step
		if a.SweepAngle < 0 {
			done = total <= a.SweepAngle+bezierArcAngleEpsilon
		} else {
			done = total >= a.SweepAngle-bezierArcAngleEpsilon
		}
		if done {
			step = a.SweepAngle - prev
		}

		for i, v := range arcSegment(a.Radii, angle, step) {
			out[n-1+i] = a.Center.Translate(rotatePt(v, a.XRotation))
		}
		n += 3
		angle += step
	}
	out[0] = start
	out[n-1] = end
	return out, n
}

// arcSegment returns the control points, relative to the center, of a cubic
// Bézier approximating the arc of the unrotated ellipse from start to
// start+sweep. |sweep| must not exceed 90° by much.
func arcSegment(radii Vec2, start, sweep float64) [4]Vec2 {
	y0, x0 := math.Sincos(sweep / 2)
	tx := (1 - x0) * 4 / 3
	ty := y0 - tx*x0/y0

	px := [4]float64{x0, x0 + tx, x0 + tx, x0}
	py := [4]float64{-y0, -ty, ty, y0}

	s, c := math.Sincos(start + sweep/2)
	var out [4]Vec2
	for i := range out {
		out[i] = Vec2{
			X: radii.X * (px[i]*c - py[i]*s),
			Y: radii.Y * (px[i]*s + py[i]*c),
		}
	}
	return out
}

// Flatten approximates the arc with a polyline.
//
// Circular arcs are decomposed with [Arc.Beziers] and each segment is
// flattened like [CubicBez.Flatten]. Other arcs are split into a number of
// segments of equal parametric length, chosen with an analytic error model,
// and each segment is approximated according to a.Approximation.
//
// The first and last points of the result are [Arc.Start] and [Arc.End].
// Arcs with a sweep smaller than 1e-10 radians produce exactly those two
// points.
//
// Flatten returns an error wrapping [ErrInvalidArgument] if tol is invalid, a
// parameter is not finite, a.Flatness is negative or a.Approximation is
// unknown.
func (a Arc) Flatten(tol Tolerance) ([]Point, error) {
	return a.flatten(tol, nil)
}

// FlattenTransformed is like [Arc.Flatten] but applies aff to the arc before
// flattening it, so that tolerances are measured in the transformed space.
//
// It returns an error wrapping [ErrInvalidArgument] if aff has non-finite
// coefficients.
func (a Arc) FlattenTransformed(aff Affine, tol Tolerance) ([]Point, error) {
	if aff.IsNaN() || aff.IsInf() {
		return nil, argumentError("transform", aff, "coefficients must be finite")
	}
	return a.flatten(tol, &aff)
}

func (a Arc) flatten(tol Tolerance, aff *Affine) ([]Point, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	if !a.Approximation.valid() {
		return nil, argumentError("approximation", a.Approximation, "unknown approximation mode")
	}
	if !(a.Flatness >= 0) {
		return nil, argumentError("flatness", a.Flatness, "must not be negative")
	}
	if !a.finite() {
		return nil, argumentError("arc", a, "parameters must be finite")
	}

	a = a.normalize()
	var pts []Point
	switch {
	case math.Abs(a.SweepAngle) < arcEpsilon:
		pts = []Point{a.Start(), a.End()}
	case a.Radii.X == 0 || a.Radii.Y == 0:
		pts = a.flattenDegenerate()
	case a.Radii.X == a.Radii.Y:
		return a.flattenCircular(tol, aff), nil
	default:
		return a.flattenElliptical(tol, aff), nil
	}
	if aff != nil {
		TransformPoints(pts, *aff)
	}
	return pts, nil
}

func (a Arc) flattenCircular(tol Tolerance, aff *Affine) []Point {
	vs, n := a.Beziers()
	if aff != nil {
		TransformPoints(vs[:n], *aff)
	}
	pts := make([]Point, 0, 64)
	pts = append(pts, vs[0])
	for i := 0; i+3 < n; i += 3 {
		pts = CubicBez{vs[i], vs[i+1], vs[i+2], vs[i+3]}.appendFlattened(pts, tol)
	}
	return pts
}

// flattenDegenerate handles ellipses with a zero radius. They trace a line
// segment back and forth, so breaking the arc at its turning points is exact.
func (a Arc) flattenDegenerate() []Point {
	eta1, eta2 := a.etaRange()
	if a.Radii.X == 0 && a.Radii.Y == 0 {
		return []Point{a.sample(eta1), a.sample(eta2)}
	}
	// Turning points lie at phase + kπ.
	var phase float64
	if a.Radii.X == 0 {
		phase = math.Pi / 2
	}
	pts := []Point{a.sample(eta1)}
	if eta2 > eta1 {
		for k := math.Floor((eta1-phase)/math.Pi) + 1; phase+k*math.Pi < eta2; k++ {
			pts = append(pts, a.sample(phase+k*math.Pi))
		}
	} else {
		for k := math.Ceil((eta1-phase)/math.Pi) - 1; phase+k*math.Pi > eta2; k-- {
			pts = append(pts, a.sample(phase+k*math.Pi))
		}
	}
	return append(pts, a.sample(eta2))
}
