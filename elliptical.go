package flatten

import "math"

const (
	// DefaultFlatness is the largest error threshold used to choose the
	// number of Bézier segments of non-circular arcs.
	DefaultFlatness = 0.5

	// maxEllipticalSegments bounds the number of segments a non-circular arc
	// is split into.
	maxEllipticalSegments = 1024
)

// Error model of L. Maisonobe, "Drawing an elliptical arc using polylines,
// quadratic or cubic Bézier curves". The tables are indexed by the degree of
// the approximation, the ratio of the radii (below or above 1/4), the
// coefficient pair, the cos(2kη) term and the rational function coefficient.

var quadraticCoeffsLow = [2][4][4]float64{
	{
		{3.92478, -13.5822, -0.233377, 0.0128206},
		{-1.08814, 0.859987, 0.000362265, 0.000229036},
		{-0.942512, 0.390456, 0.0080909, 0.00723895},
		{-0.736228, 0.20998, 0.0129867, 0.0103456},
	},
	{
		{-0.395018, 6.82464, 0.0995293, 0.0122198},
		{-0.545608, 0.0774863, 0.0267327, 0.0132482},
		{0.0534754, -0.0884167, 0.012595, 0.0343396},
		{0.209052, -0.0599987, -0.00723897, 0.00789976},
	},
}

var quadraticCoeffsHigh = [2][4][4]float64{
	{
		{0.0863805, -11.5595, -2.68765, 0.181224},
		{0.242856, -1.81073, 1.56876, 1.68544},
		{0.233337, -0.455621, 0.222856, 0.403469},
		{0.0612978, -0.104879, 0.0446799, 0.00867312},
	},
	{
		{0.028973, 6.68407, 0.171472, 0.0211706},
		{0.0307674, -0.0517815, 0.0216803, -0.0749348},
		{-0.0471179, 0.1288, -0.0781702, 2.0},
		{-0.0309683, 0.0531557, -0.0227191, 0.0434511},
	},
}

var quadraticSafety = [4]float64{0.02, 2.83, 0.125, 0.01}

var cubicCoeffsLow = [2][4][4]float64{
	{
		{3.85268, -21.229, -0.330434, 0.0127842},
		{-1.61486, 0.706564, 0.225945, 0.263682},
		{-0.910164, 0.388383, 0.00551445, 0.00671814},
		{-0.630184, 0.192402, 0.0098871, 0.0102527},
	},
	{
		{-0.162211, 9.94329, 0.13723, 0.0124084},
		{-0.253135, 0.00187735, 0.0230286, 0.01264},
		{-0.0695069, -0.0437594, 0.0120636, 0.0163087},
		{-0.0328856, -0.00926032, -0.00173573, 0.00527385},
	},
}

var cubicCoeffsHigh = [2][4][4]float64{
	{
		{0.0899116, -19.2349, -4.11711, 0.183362},
		{0.138148, -1.45804, 1.32044, 1.38474},
		{0.230903, -0.450262, 0.219963, 0.414038},
		{0.0590565, -0.101062, 0.0430592, 0.0204699},
	},
	{
		{0.0164649, 9.89394, 0.0919496, 0.00760802},
		{0.0191603, -0.0322058, 0.0134667, -0.0825018},
		{0.0156192, -0.017535, 0.00326508, -0.228157},
		{-0.0236752, 0.0405821, -0.0173086, 0.176187},
	},
}

var cubicSafety = [4]float64{0.001, 4.98, 0.207, 0.0067}

func rationalFunction(x float64, c *[4]float64) float64 {
	return (x*(x*c[0]+c[1]) + c[2]) / (x + c[3])
}

// etaRange returns the parametric angles of the end points of a normalized
// arc. For circles, and for ellipses with a zero radius, they equal the
// geometric angles.
func (a Arc) etaRange() (eta1, eta2 float64) {
	lambda1 := a.StartAngle
	lambda2 := a.StartAngle + a.SweepAngle
	if a.Radii.X == a.Radii.Y || a.Radii.X == 0 || a.Radii.Y == 0 {
		return lambda1, lambda2
	}
	eta1 = ellipseParameter(a.Radii, lambda1)
	eta2 = ellipseParameter(a.Radii, lambda2)
	if a.SweepAngle < 0 {
		// Mirror, unwrap as a positive sweep, mirror back.
		return eta1, -unwrapEta(-eta1, -eta2, -a.SweepAngle)
	}
	return eta1, unwrapEta(eta1, eta2, a.SweepAngle)
}

// ellipseParameter converts the geometric angle lambda to the parametric
// angle of the point of the ellipse lying in that direction.
func ellipseParameter(radii Vec2, lambda float64) float64 {
	sin, cos := math.Sincos(lambda)
	return math.Atan2(sin/radii.Y, cos/radii.X)
}

// unwrapEta moves eta2 so that eta2-eta1 matches the non-negative geometric
// sweep.
func unwrapEta(eta1, eta2, sweep float64) float64 {
	eta2 -= 2 * math.Pi * math.Floor((eta2-eta1)/(2*math.Pi))
	switch {
	case sweep > math.Pi && eta2-eta1 < math.Pi:
		eta2 += 2 * math.Pi
	case sweep < math.Pi/2 && eta2-eta1 > math.Pi:
		// eta2 was rounded to just below eta1 and wrapped around.
		eta2 -= 2 * math.Pi
	}
	return eta2
}

// threshold returns the error bound used to choose the number of segments,
// and the tolerance left for flattening Bézier segments.
func (a Arc) threshold(tol Tolerance) (float64, Tolerance) {
	switch {
	case a.Flatness > 0:
		return a.Flatness, tol
	case a.Approximation == LineApproximation:
		return tol.Distance, tol
	default:
		// The segments and their flattening split the distance tolerance.
		tol.Distance /= 2
		return min(DefaultFlatness, tol.Distance), tol
	}
}

// segmentCount returns the smallest power of two such that every segment of
// the arc spans at most 90° and has an estimated error within threshold.
func (a Arc) segmentCount(eta1, eta2, threshold float64) int {
	span := eta2 - eta1
	for n := 1; n < maxEllipticalSegments; n <<= 1 {
		dEta := span / float64(n)
		if math.Abs(dEta) > math.Pi/2 {
			continue
		}
		ok := true
		etaB := eta1
		for i := 0; ok && i < n; i++ {
			etaA := etaB
			etaB += dEta
			ok = a.estimateError(etaA, etaB) <= threshold
		}
		if ok {
			return n
		}
	}
	return maxEllipticalSegments
}

// estimateError returns an upper bound of the distance between the arc from
// etaA to etaB and its approximation.
func (a Arc) estimateError(etaA, etaB float64) float64 {
	if a.Approximation == LineApproximation {
		mid := a.sample(0.5 * (etaA + etaB))
		return Line{a.sample(etaA), a.sample(etaB)}.PerpendicularDistance(mid)
	}

	eta := 0.5 * (etaA + etaB)
	dEta := math.Abs(etaB - etaA)
	major, minor := a.Radii.X, a.Radii.Y
	if minor > major {
		// The model assumes the first radius is the larger one.
		major, minor = minor, major
		eta -= math.Pi / 2
	}
	x := minor / major

	var coeffs *[2][4][4]float64
	var safety *[4]float64
	if a.Approximation == QuadraticApproximation {
		safety = &quadraticSafety
		if x < 0.25 {
			coeffs = &quadraticCoeffsLow
		} else {
			coeffs = &quadraticCoeffsHigh
		}
	} else {
		safety = &cubicSafety
		if x < 0.25 {
			coeffs = &cubicCoeffsLow
		} else {
			coeffs = &cubicCoeffsHigh
		}
	}

	cos2 := math.Cos(2 * eta)
	cos4 := math.Cos(4 * eta)
	cos6 := math.Cos(6 * eta)
	c := func(i int) float64 {
		k := &coeffs[i]
		return rationalFunction(x, &k[0]) +
			cos2*rationalFunction(x, &k[1]) +
			cos4*rationalFunction(x, &k[2]) +
			cos6*rationalFunction(x, &k[3])
	}
	return rationalFunction(x, safety) * major * math.Exp(c(0)+c(1)*dEta)
}

// flattenElliptical approximates a non-circular arc with n segments of equal
// parametric length and flattens each of them.
func (a Arc) flattenElliptical(tol Tolerance, aff *Affine) []Point {
	eta1, eta2 := a.etaRange()
	threshold, tol := a.threshold(tol)
	if aff != nil {
		// The segment error grows with the transform.
		if e := aff.Expansion(); e > 0 {
			threshold /= e
		}
	}
	n := a.segmentCount(eta1, eta2, threshold)
	dEta := (eta2 - eta1) / float64(n)

	xform := func(p Point) Point {
		if aff != nil {
			return p.Transform(*aff)
		}
		return p
	}

	t := math.Tan(0.5 * dEta)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*t*t) - 1) / 3

	etaB := eta1
	pB, dB := a.sample(etaB), a.derivative(etaB)
	pts := make([]Point, 0, 2*n+1)
	pts = append(pts, xform(pB))
	for i := range n {
		pA, dA := pB, dB
		if i == n-1 {
			etaB = eta2
		} else {
			etaB += dEta
		}
		pB, dB = a.sample(etaB), a.derivative(etaB)

		switch a.Approximation {
		case CubicApproximation:
			c := CubicBez{pA, pA.Translate(dA.Mul(alpha)), pB.Translate(dB.Mul(-alpha)), pB}
			if aff != nil {
				c = c.Transform(*aff)
			}
			pts = c.appendFlattened(pts, tol)
		case QuadraticApproximation:
			// The control point is where the end point tangents cross.
			cp, ok := Line{pA, pA.Translate(dA)}.CrossingPoint(Line{pB, pB.Translate(dB)})
			if !ok {
				cp = pA.Midpoint(pB)
			}
			q := QuadBez{pA, cp, pB}
			if aff != nil {
				q = q.Transform(*aff)
			}
			pts = q.appendFlattened(pts, tol)
		case LineApproximation:
			pts = append(pts, xform(pB))
		}
	}
	return pts
}
