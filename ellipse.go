package flatten

import "math"

// minEllipseSteps is the smallest number of distinct vertices of an ellipse
// polygon.
const minEllipseSteps = 3

// Ellipse is an axis-aligned full ellipse.
type Ellipse struct {
	Center Point
	Radii  Vec2
	// Clockwise reverses the direction of the polygon, which otherwise runs
	// from the positive x axis towards the positive y axis.
	Clockwise bool
}

// FlattenEllipse returns the polygon of a full ellipse. See [Ellipse.Polygon].
func FlattenEllipse(center Point, radii Vec2, clockwise bool, scale float64) ([]Point, error) {
	return Ellipse{Center: center, Radii: radii, Clockwise: clockwise}.Polygon(scale)
}

// Polygon approximates the ellipse with a closed polygon of equal angular
// steps. The number of steps only depends on the mean radius and the
// approximation scale, see [ApproximationScaleToDistance]. The last point
// repeats the first.
//
// Polygon returns an error wrapping [ErrInvalidArgument] if scale is not
// positive.
func (e Ellipse) Polygon(scale float64) ([]Point, error) {
	if !(scale > 0) {
		return nil, argumentError("approximationScale", scale, "must be greater than zero")
	}
	steps := e.steps(scale)
	pts := make([]Point, steps+1)
	for i := range steps {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		if e.Clockwise {
			angle = 2*math.Pi - angle
		}
		sin, cos := math.Sincos(angle)
		pts[i] = Point{
			X: e.Center.X + cos*e.Radii.X,
			Y: e.Center.Y + sin*e.Radii.Y,
		}
	}
	pts[steps] = pts[0]
	return pts, nil
}

func (e Ellipse) steps(scale float64) int {
	ra := (math.Abs(e.Radii.X) + math.Abs(e.Radii.Y)) / 2
	da := math.Acos(ra/(ra+0.125/scale)) * 2
	return max(minEllipseSteps, int(math.Round(2*math.Pi/da)))
}
