package flatten

import (
	"fmt"
	"math"
)

// Vec2 is a displacement in the plane. Arc radii are stored as vectors, too.
type Vec2 struct {
	X float64
	Y float64
}

func Vec(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// VecFromAngle returns the unit vector at angle th, in radians, from the
// positive x axis towards the positive y axis.
func VecFromAngle(th float64) Vec2 {
	sin, cos := math.Sincos(th)
	return Vec2{cos, sin}
}

func (v Vec2) String() string {
	return fmt.Sprintf("⟨%g, %g⟩", v.X, v.Y)
}

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o. It is
// positive if o points to the left of v in a y-up system.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Hypot returns the length of v.
func (v Vec2) Hypot() float64 { return math.Hypot(v.X, v.Y) }

// Hypot2 returns the squared length of v.
func (v Vec2) Hypot2() float64 { return v.Dot(v) }

// Angle returns the direction of v in radians, in (-π, π].
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Mul(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Negate() Vec2 { return Vec2{-v.X, -v.Y} }

// Abs returns v with both components made non-negative.
func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }
