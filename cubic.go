package flatten

import (
	"math"
)

const (
	// recursionLimit bounds the depth of binary subdivision. Well-behaved
	// inputs never get close to it.
	recursionLimit = 32
	// collinearityEpsilon is the signed-area threshold below which a control
	// point counts as lying on the chord.
	collinearityEpsilon = 1e-30
	// angleToleranceEpsilon is the squared angle tolerance below which angle
	// checks are skipped entirely.
	angleToleranceEpsilon = 0.01
)

// CubicBez is a cubic Bézier segment from P0 to P3 with control points P1 and
// P2.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsInf() bool {
	return c.P0.IsInf() || c.P1.IsInf() || c.P2.IsInf() || c.P3.IsInf()
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{
		P0: c.P0.Transform(aff),
		P1: c.P1.Transform(aff),
		P2: c.P2.Transform(aff),
		P3: c.P3.Transform(aff),
	}
}

// FlattenCubicBezier flattens the cubic Bézier segment from from to to with
// control points c1 and c2. See [CubicBez.Flatten].
func FlattenCubicBezier(from, c1, c2, to Point, tol Tolerance) ([]Point, error) {
	return CubicBez{from, c1, c2, to}.Flatten(tol)
}

// Flatten approximates the curve with a polyline.
//
// The curve is subdivided recursively at t = 0.5 until each piece is flat
// enough: no segment of the polyline deviates from the curve by more than
// tol.Distance, and the turn between consecutive segments stays below the
// square of tol.Angle. Angle checks are skipped when that square is below
// 0.01. Sharp turns exceeding the cusp limit are split eagerly instead of
// being refined further.
//
// The first point of the result is P0 and the last point is P3. Control points
// that are collinear with and evenly spread between the end points collapse
// to the chord.
//
// Flatten returns an error wrapping [ErrInvalidArgument] if tol is invalid or
// a point is not finite.
func (c CubicBez) Flatten(tol Tolerance) ([]Point, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	if c.IsNaN() || c.IsInf() {
		return nil, argumentError("curve", c, "points must be finite")
	}
	dst := make([]Point, 0, 32)
	return c.appendFlattened(append(dst, c.P0), tol), nil
}

// appendFlattened appends the flattened curve, without its start point, to
// dst. Callers chaining curves append the first start point themselves.
func (c CubicBez) appendFlattened(dst []Point, tol Tolerance) []Point {
	f := cubicFlattener{
		distanceTolSq: tol.Distance * tol.Distance,
		angleTolSq:    tol.Angle * tol.Angle,
		cuspLimit:     tol.cuspThreshold(),
		points:        dst,
	}
	f.recurse(c.P0, c.P1, c.P2, c.P3, 0)
	if f.truncated > 0 {
		Logger().Debug("cubic Bézier subdivision truncated",
			"curve", c, "limit", recursionLimit, "pieces", f.truncated)
	}
	return append(f.points, c.P3)
}

// collinearity classifies the inner control points of a cubic with respect to
// its chord.
type collinearity uint8

const (
	// Both control points lie on the chord.
	bothCollinear collinearity = 0
	// Only the control point next to the end point is off the chord.
	endControlOff collinearity = 1
	// Only the control point next to the start point is off the chord.
	startControlOff collinearity = 2
	// Both control points are off the chord.
	bothControlsOff = startControlOff | endControlOff
)

func classifyCollinearity(d2, d3 float64) collinearity {
	var c collinearity
	if d2 > collinearityEpsilon {
		c |= startControlOff
	}
	if d3 > collinearityEpsilon {
		c |= endControlOff
	}
	return c
}

type cubicFlattener struct {
	distanceTolSq float64
	angleTolSq    float64
	// cuspLimit is the remapped turning angle; 0 disables cusp handling.
	cuspLimit float64
	points    []Point
	truncated int
}

func (f *cubicFlattener) emit(pts ...Point) {
	f.points = append(f.points, pts...)
}

func (f *cubicFlattener) recurse(p1, p2, p3, p4 Point, level int) {
	if level > recursionLimit {
		f.truncated++
		return
	}

	// Midpoints of the control polygon.
	p12 := p1.Midpoint(p2)
	p23 := p2.Midpoint(p3)
	p34 := p3.Midpoint(p4)
	p123 := p12.Midpoint(p23)
	p234 := p23.Midpoint(p34)

	d := p4.Sub(p1)
	d2 := math.Abs(p2.Sub(p4).Cross(d))
	d3 := math.Abs(p3.Sub(p4).Cross(d))

	switch classifyCollinearity(d2, d3) {
	case bothCollinear:
		k := d.Hypot2()
		if k == 0 {
			d2 = p1.DistanceSquared(p2)
			d3 = p4.DistanceSquared(p3)
		} else {
			k = 1 / k
			t2 := k * p2.Sub(p1).Dot(d)
			t3 := k * p3.Sub(p1).Dot(d)
			if t2 > 0 && t2 < 1 && t3 > 0 && t3 < 1 {
				// Both controls project inside the chord: the piece
				// degenerates to the chord itself.
				return
			}
			d2 = chordDeviationSquared(p2, p1, p4, d, t2)
			d3 = chordDeviationSquared(p3, p1, p4, d, t3)
		}
		if d2 > d3 {
			if d2 < f.distanceTolSq {
				f.emit(p2)
				return
			}
		} else {
			if d3 < f.distanceTolSq {
				f.emit(p3)
				return
			}
		}

	case endControlOff:
		if d3*d3 <= f.distanceTolSq*d.Hypot2() {
			if f.angleTolSq < angleToleranceEpsilon {
				f.emit(p23)
				return
			}
			da1 := turn(p3.Sub(p2), p4.Sub(p3))
			if da1 < f.angleTolSq {
				f.emit(p2, p3)
				return
			}
			if f.cuspLimit != 0 && da1 > f.cuspLimit {
				f.emit(p3)
				return
			}
		}

	case startControlOff:
		if d2*d2 <= f.distanceTolSq*d.Hypot2() {
			if f.angleTolSq < angleToleranceEpsilon {
				f.emit(p23)
				return
			}
			da1 := turn(p2.Sub(p1), p3.Sub(p2))
			if da1 < f.angleTolSq {
				f.emit(p2, p3)
				return
			}
			if f.cuspLimit != 0 && da1 > f.cuspLimit {
				f.emit(p2)
				return
			}
		}

	case bothControlsOff:
		if (d2+d3)*(d2+d3) <= f.distanceTolSq*d.Hypot2() {
			if f.angleTolSq < angleToleranceEpsilon {
				f.emit(p23)
				return
			}
			mid := p3.Sub(p2)
			da1 := turn(p2.Sub(p1), mid)
			da2 := turn(mid, p4.Sub(p3))
			if da1+da2 < f.angleTolSq {
				f.emit(p23)
				return
			}
			if f.cuspLimit != 0 {
				if da1 > f.cuspLimit {
					f.emit(p2)
					return
				}
				if da2 > f.cuspLimit {
					f.emit(p3)
					return
				}
			}
		}
	}

	p1234 := p123.Midpoint(p234)
	f.recurse(p1, p12, p123, p1234, level+1)
	f.recurse(p1234, p234, p34, p4, level+1)
}

// chordDeviationSquared returns the squared distance between p and the point
// at parameter t along the chord from→to, with t clamped to the chord.
func chordDeviationSquared(p, from, to Point, d Vec2, t float64) float64 {
	switch {
	case t <= 0:
		return p.DistanceSquared(from)
	case t >= 1:
		return p.DistanceSquared(to)
	default:
		return p.DistanceSquared(from.Translate(d.Mul(t)))
	}
}

// turn returns the absolute change of direction, in [0, π], between two
// consecutive legs.
func turn(a, b Vec2) float64 {
	da := math.Abs(b.Angle() - a.Angle())
	if da >= math.Pi {
		da = 2*math.Pi - da
	}
	return da
}
