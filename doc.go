// Package flatten converts curves to polylines. It was designed to serve the
// needs of 2D rasterizers and hit testing, which want straight segments but
// are handed Béziers and arcs.
//
// # Curves
//
// The following curves can be flattened:
//   - cubic Béziers (see [CubicBez.Flatten] and [FlattenCubicBezier])
//   - quadratic Béziers (see [QuadBez.Flatten] and [FlattenQuadraticBezier])
//   - circular and elliptical arcs in center form (see [Arc.Flatten] and [FlattenArc])
//   - arcs in SVG endpoint form (see [SvgArc.Flatten] and [FlattenSvgArc])
//   - full ellipses, with a uniform polygon (see [Ellipse.Polygon] and [FlattenEllipse])
//
// Every flattener returns a slice of points whose first element is the start
// of the curve and whose last element is its end. Polylines aren't closed
// implicitly. [Polyline] provides helpers for consuming the result.
//
// # Tolerances
//
// Béziers are subdivided recursively until each piece is flat enough, as
// bounded by a [Tolerance]. The distance tolerance bounds the distance
// between the curve and the polyline, in the units of the curve's
// coordinates. The angle tolerance optionally bounds the change of direction
// between consecutive segments, which is useful when the polyline will be
// stroked with a wide pen. The cusp limit controls how sharp turns are
// handled.
//
// User interfaces sometimes express precision as an approximation scale
// instead, where larger means finer. [ApproximationScaleToDistance] converts
// between the two.
//
// Circular arcs are converted to at most four cubic Béziers, see
// [Arc.Beziers], and flattened like any other cubic. Elliptical arcs are
// split into segments whose count is chosen by an analytic error model, and
// each segment is approximated by a cubic, a quadratic or a straight line,
// see [Approximation].
//
// # Errors and logging
//
// Invalid arguments produce errors wrapping [ErrInvalidArgument]; use
// [errors.As] with [*ArgumentError] to find out which argument was rejected.
// Degenerate geometry is never an error.
//
// The package logs unusual but valid situations, such as severely corrected
// SVG arc radii, to the logger installed with [SetLogger]. By default nothing
// is logged.
//
// # Literature
//
//   - [Adaptive Subdivision of Bezier Curves] by Maxim Shemanarev
//   - [Drawing an elliptical arc using polylines, quadratic or cubic Bézier curves] by Luc Maisonobe
//   - [SVG implementation notes on elliptical arcs]
//
// [Adaptive Subdivision of Bezier Curves]: https://agg.sourceforge.net/antigrain.com/research/adaptive_bezier/index.html
// [Drawing an elliptical arc using polylines, quadratic or cubic Bézier curves]: https://www.spaceroots.org/documents/ellipse/elliptical-arc.pdf
// [SVG implementation notes on elliptical arcs]: https://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes
package flatten
