package flatten

import "math"

// Affine is a 2D affine map with coefficients (a, b, c, d, e, f), mapping
// (x, y) to (a·x + c·y + e, b·x + d·y + f).
//
// Flatteners use it to emit points in a different space than the one a curve
// is defined in, see [Arc.FlattenTransformed]. The raster package uses it to
// map polylines to pixels.
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

var Identity = Affine{1, 0, 0, 1, 0, 0}

func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

// Rotate returns a rotation by th radians, turning the positive x axis
// towards the positive y axis.
func Rotate(th float64) Affine {
	sin, cos := math.Sincos(th)
	return Affine{cos, sin, -sin, cos, 0, 0}
}

// Mul composes two maps. The result applies o first, then aff.
func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		N0: aff.N0*o.N0 + aff.N2*o.N1,
		N1: aff.N1*o.N0 + aff.N3*o.N1,
		N2: aff.N0*o.N2 + aff.N2*o.N3,
		N3: aff.N1*o.N2 + aff.N3*o.N3,
		N4: aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		N5: aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale returns aff followed by a scale of (x, y).
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate returns aff followed by a translation by v.
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// Expansion returns the largest factor by which aff stretches any vector.
// A distance tolerance meant for the output space of aff corresponds to a
// tolerance divided by Expansion in its input space.
func (aff Affine) Expansion() float64 {
	// Largest singular value of the linear part.
	p := (aff.N0*aff.N0 + aff.N1*aff.N1 + aff.N2*aff.N2 + aff.N3*aff.N3) / 2
	det := aff.N0*aff.N3 - aff.N1*aff.N2
	return math.Sqrt(p + math.Sqrt(max(0, p*p-det*det)))
}

func (aff Affine) IsNaN() bool {
	return math.IsNaN(aff.N0) || math.IsNaN(aff.N1) || math.IsNaN(aff.N2) ||
		math.IsNaN(aff.N3) || math.IsNaN(aff.N4) || math.IsNaN(aff.N5)
}

func (aff Affine) IsInf() bool {
	return math.IsInf(aff.N0, 0) || math.IsInf(aff.N1, 0) || math.IsInf(aff.N2, 0) ||
		math.IsInf(aff.N3, 0) || math.IsInf(aff.N4, 0) || math.IsInf(aff.N5, 0)
}

// TransformPoints applies aff to every point of pts, in place, and returns
// pts.
func TransformPoints(pts []Point, aff Affine) []Point {
	for i, pt := range pts {
		pts[i] = pt.Transform(aff)
	}
	return pts
}
