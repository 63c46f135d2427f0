package flatten

import (
	"fmt"
	"math"
)

// Point is a position in the plane. Flatteners return sequences of points.
type Point struct {
	X float64
	Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (pt Point) String() string {
	return fmt.Sprintf("(%g, %g)", pt.X, pt.Y)
}

// Translate returns pt moved by o.
func (pt Point) Translate(o Vec2) Point {
	return Point{pt.X + o.X, pt.Y + o.Y}
}

func (pt Point) Transform(aff Affine) Point {
	return Point{
		X: aff.N0*pt.X + aff.N2*pt.Y + aff.N4,
		Y: aff.N1*pt.X + aff.N3*pt.Y + aff.N5,
	}
}

// Sub returns the vector from o to pt.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{pt.X - o.X, pt.Y - o.Y}
}

// Lerp returns the point at t on the segment from pt to o.
func (pt Point) Lerp(o Point, t float64) Point {
	return pt.Translate(o.Sub(pt).Mul(t))
}

func (pt Point) Midpoint(o Point) Point {
	return Point{0.5 * (pt.X + o.X), 0.5 * (pt.Y + o.Y)}
}

func (pt Point) Distance(o Point) float64 {
	return math.Hypot(pt.X-o.X, pt.Y-o.Y)
}

// DistanceSquared is the square of [Point.Distance], without the square
// root. The subdivision tests compare it against squared tolerances.
func (pt Point) DistanceSquared(o Point) float64 {
	dx, dy := pt.X-o.X, pt.Y-o.Y
	return dx*dx + dy*dy
}

func (pt Point) IsInf() bool {
	return math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0)
}

func (pt Point) IsNaN() bool {
	return math.IsNaN(pt.X) || math.IsNaN(pt.Y)
}
