package flatten

import "math"

// Line is a line segment. Polylines are made of lines sharing end points.
type Line struct {
	P0 Point
	P1 Point
}

func (l Line) Length() float64 {
	return l.P1.Distance(l.P0)
}

// Eval returns the point at parameter t, with t = 0 at P0 and t = 1 at P1.
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// CrossingPoint returns the intersection of the infinite lines through l and
// o. It reports false if they are parallel.
func (l Line) CrossingPoint(o Line) (Point, bool) {
	ab := l.P1.Sub(l.P0)
	cd := o.P1.Sub(o.P0)
	denom := ab.Cross(cd)
	if denom == 0 {
		return Point{}, false
	}
	h := ab.Cross(l.P0.Sub(o.P0)) / denom
	return o.P0.Translate(cd.Mul(h)), true
}

// Nearest returns the squared distance from pt to the closest point of the
// segment, and the parameter of that point.
func (l Line) Nearest(pt Point) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	proj := d.Dot(pt.Sub(l.P0))
	lenSq := d.Hypot2()
	switch {
	case proj <= 0:
		return pt.DistanceSquared(l.P0), 0
	case proj >= lenSq:
		return pt.DistanceSquared(l.P1), 1
	default:
		t = proj / lenSq
		return pt.DistanceSquared(l.Eval(t)), t
	}
}

// PerpendicularDistance returns the distance from pt to the infinite line
// through l. For degenerate lines it is the distance to P0.
func (l Line) PerpendicularDistance(pt Point) float64 {
	d := l.P1.Sub(l.P0)
	n := d.Hypot()
	if n == 0 {
		return pt.Distance(l.P0)
	}
	return math.Abs(d.Cross(pt.Sub(l.P0))) / n
}
