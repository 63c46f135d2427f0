package flatten

import "math"

// QuadBez is a quadratic Bézier segment from P0 to P2 with control point P1.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise returns a cubic Bézier segment that exactly represents this quadratic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf()
}

func (q QuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	v := Vec2(q.P0).Mul(mt * mt).
		Add(Vec2(q.P1).Mul(mt * 2.0).
			Add(Vec2(q.P2).Mul(t)).
			Mul(t))
	return Point(v)
}

func (q QuadBez) Start() Point {
	return q.P0
}

func (q QuadBez) End() Point {
	return q.P2
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{
		P0: q.P0.Transform(aff),
		P1: q.P1.Transform(aff),
		P2: q.P2.Transform(aff),
	}
}

// FlattenQuadraticBezier flattens the quadratic Bézier segment from from to
// to with control point c. See [QuadBez.Flatten].
func FlattenQuadraticBezier(from, c, to Point, tol Tolerance) ([]Point, error) {
	return QuadBez{from, c, to}.Flatten(tol)
}

// Flatten approximates the curve with a polyline, using the same subdivision
// strategy as [CubicBez.Flatten]. The cusp limit of tol is not used.
//
// The first point of the result is P0 and the last point is P2.
func (q QuadBez) Flatten(tol Tolerance) ([]Point, error) {
	if err := tol.Validate(); err != nil {
		return nil, err
	}
	if q.IsNaN() || q.IsInf() {
		return nil, argumentError("curve", q, "points must be finite")
	}
	dst := make([]Point, 0, 32)
	return q.appendFlattened(append(dst, q.P0), tol), nil
}

func (q QuadBez) appendFlattened(dst []Point, tol Tolerance) []Point {
	f := quadFlattener{
		distanceTolSq: tol.Distance * tol.Distance,
		angleTolSq:    tol.Angle * tol.Angle,
		points:        dst,
	}
	f.recurse(q.P0, q.P1, q.P2, 0)
	if f.truncated > 0 {
		Logger().Debug("quadratic Bézier subdivision truncated",
			"curve", q, "limit", recursionLimit, "pieces", f.truncated)
	}
	return append(f.points, q.P2)
}

type quadFlattener struct {
	distanceTolSq float64
	angleTolSq    float64
	points        []Point
	truncated     int
}

func (f *quadFlattener) recurse(p1, p2, p3 Point, level int) {
	if level > recursionLimit {
		f.truncated++
		return
	}

	p12 := p1.Midpoint(p2)
	p23 := p2.Midpoint(p3)
	p123 := p12.Midpoint(p23)

	delta := p3.Sub(p1)
	d := math.Abs(p2.Sub(p3).Cross(delta))

	if d > collinearityEpsilon {
		// Regular case.
		if d*d <= f.distanceTolSq*delta.Hypot2() {
			if f.angleTolSq < angleToleranceEpsilon {
				f.points = append(f.points, p123)
				return
			}
			if turn(p2.Sub(p1), p3.Sub(p2)) < f.angleTolSq {
				f.points = append(f.points, p123)
				return
			}
		}
	} else {
		// Collinear case.
		var dev float64
		if k := delta.Hypot2(); k == 0 {
			dev = p1.DistanceSquared(p2)
		} else {
			t := p2.Sub(p1).Dot(delta) / k
			if t > 0 && t < 1 {
				// The control point lies inside the chord; the curve is the
				// chord.
				return
			}
			dev = chordDeviationSquared(p2, p1, p3, delta, t)
		}
		if dev < f.distanceTolSq {
			f.points = append(f.points, p2)
			return
		}
	}

	f.recurse(p1, p12, p123, level+1)
	f.recurse(p123, p23, p3, level+1)
}
