package flatten

import "math"

// SvgArc is an elliptical arc in endpoint form, as used by the SVG path "A"
// command.
type SvgArc struct {
	From      Point
	To        Point
	Radii     Vec2
	XRotation float64
	// LargeArc selects the arc spanning more than 180°.
	LargeArc bool
	// Clockwise selects the arc with a positive sweep, which is clockwise in a
	// y-down coordinate system.
	Clockwise bool
}

// severeRadiiCorrection is the radii check above which the radii had to be
// scaled up so much that the input was almost certainly wrong.
const severeRadiiCorrection = 10

// FlattenSvgArc flattens an endpoint-form arc. See [SvgArc.Flatten].
func FlattenSvgArc(from, to Point, radii Vec2, rotation float64, largeArc, clockwise bool, tol Tolerance) ([]Point, bool, error) {
	return SvgArc{
		From:      from,
		To:        to,
		Radii:     radii,
		XRotation: rotation,
		LargeArc:  largeArc,
		Clockwise: clockwise,
	}.Flatten(tol)
}

// CenterForm converts the arc to center form.
//
// Negative radii are used as absolute values. Radii too small to span the end
// points are scaled up uniformly until they do. The second return value is
// false if that required scaling the radii by more than √10.
//
// Arcs with coincident end points or a zero radius have no proper center
// form. They are returned as degenerate arcs tracing the straight line from
// From to To.
func (s SvgArc) CenterForm() (Arc, bool) {
	rx, ry := math.Abs(s.Radii.X), math.Abs(s.Radii.Y)
	if s.From == s.To || rx == 0 || ry == 0 {
		return s.chord(), true
	}

	sinA, cosA := math.Sincos(s.XRotation)

	// Half chord in the frame of the unrotated ellipse.
	d := s.From.Sub(s.To).Mul(0.5)
	x1 := cosA*d.X + sinA*d.Y
	y1 := -sinA*d.X + cosA*d.Y

	prx, pry := rx*rx, ry*ry
	px1, py1 := x1*x1, y1*y1

	valid := true
	if check := px1/prx + py1/pry; check > 1 {
		k := math.Sqrt(check)
		rx *= k
		ry *= k
		prx, pry = rx*rx, ry*ry
		if check > severeRadiiCorrection {
			valid = false
		}
	}

	sign := 1.0
	if s.LargeArc == s.Clockwise {
		sign = -1
	}
	sq := max(0, (prx*pry-prx*py1-pry*px1)/(prx*py1+pry*px1))
	coef := sign * math.Sqrt(sq)
	cx1 := coef * (rx * y1 / ry)
	cy1 := coef * -(ry * x1 / rx)

	mid := s.From.Midpoint(s.To)
	center := Point{
		X: mid.X + (cosA*cx1 - sinA*cy1),
		Y: mid.Y + (sinA*cx1 + cosA*cy1),
	}

	u := Vec2{(x1 - cx1) / rx, (y1 - cy1) / ry}
	v := Vec2{(-x1 - cx1) / rx, (-y1 - cy1) / ry}

	start := math.Acos(clamp(u.X/u.Hypot(), -1, 1))
	if u.Y < 0 {
		start = -start
	}
	sweep := math.Acos(clamp(u.Dot(v)/math.Sqrt(u.Hypot2()*v.Hypot2()), -1, 1))
	if u.Cross(v) < 0 {
		sweep = -sweep
	}
	if !s.Clockwise && sweep > 0 {
		sweep -= 2 * math.Pi
	} else if s.Clockwise && sweep < 0 {
		sweep += 2 * math.Pi
	}

	// start and sweep are parametric; Arc wants geometric angles.
	lambda1, dLambda := start, sweep
	if rx != ry {
		lambda1 = geometricAngle(rx, ry, start)
		lambda2 := geometricAngle(rx, ry, start+sweep)
		dLambda = lambda2 - lambda1
		// Both angles lie in the same quadrant as their parametric
		// counterparts, so the two sweeps differ by less than π.
		dLambda -= 2 * math.Pi * math.Round((dLambda-sweep)/(2*math.Pi))
	}

	return Arc{
		Center:     center,
		Radii:      Vec2{rx, ry},
		StartAngle: lambda1,
		SweepAngle: dLambda,
		XRotation:  s.XRotation,
	}, valid
}

// chord returns a degenerate arc tracing the straight line from From to To.
func (s SvgArc) chord() Arc {
	d := s.To.Sub(s.From)
	return Arc{
		Center:     s.From.Midpoint(s.To),
		Radii:      Vec2{d.Hypot() / 2, 0},
		StartAngle: math.Pi,
		SweepAngle: math.Pi,
		XRotation:  d.Angle(),
	}
}

// geometricAngle returns the direction, as seen from the center, of the point
// of the ellipse with parametric angle eta.
func geometricAngle(rx, ry, eta float64) float64 {
	sin, cos := math.Sincos(eta)
	return math.Atan2(ry*sin, rx*cos)
}

// Flatten approximates the arc with a polyline, using [SvgArc.CenterForm] and
// [Arc.Flatten]. The first and last points of the result are exactly From and
// To. The boolean result is the validity flag of CenterForm.
//
// Flatten returns an error wrapping [ErrInvalidArgument] if tol is invalid or
// a parameter is not finite.
func (s SvgArc) Flatten(tol Tolerance) ([]Point, bool, error) {
	if err := tol.Validate(); err != nil {
		return nil, false, err
	}
	for _, v := range [...]float64{s.From.X, s.From.Y, s.To.X, s.To.Y, s.Radii.X, s.Radii.Y, s.XRotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false, argumentError("arc", s, "parameters must be finite")
		}
	}
	arc, valid := s.CenterForm()
	if !valid {
		Logger().Warn("SVG arc radii are much too small for its end points",
			"from", s.From, "to", s.To, "radii", s.Radii, "corrected", arc.Radii)
	}
	pts, err := arc.Flatten(tol)
	if err != nil {
		return nil, false, err
	}
	pts[0] = s.From
	pts[len(pts)-1] = s.To
	return pts, valid, nil
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
