package flatten

import (
	"fmt"
	"slices"
)

type PathElementKind int

const (
	// Move to P0 without drawing anything, starting a new subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line to P0.
	LineToKind
	// Draw a quadratic Bézier with control point P0, ending at P1.
	QuadToKind
	// Draw a cubic Bézier with control points P0 and P1, ending at P2.
	CubicToKind
	// Draw an SVG-style elliptical arc ending at P0, shaped by Arc.
	ArcToKind
	// Close the subpath.
	ClosePathKind
)

// ArcShape holds the endpoint-form parameters of an [ArcToKind] element.
type ArcShape struct {
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Clockwise bool
}

// PathElement is a single command of a [Path].
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
	Arc  ArcShape
}

func (el PathElement) String() string {
	switch el.Kind {
	case MoveToKind:
		return fmt.Sprintf("MoveTo(%s)", el.P0)
	case LineToKind:
		return fmt.Sprintf("LineTo(%s)", el.P0)
	case QuadToKind:
		return fmt.Sprintf("QuadTo(%s, %s)", el.P0, el.P1)
	case CubicToKind:
		return fmt.Sprintf("CubicTo(%s, %s, %s)", el.P0, el.P1, el.P2)
	case ArcToKind:
		return fmt.Sprintf("ArcTo(%s, %s, %g, %t, %t)", el.P0, el.Arc.Radii, el.Arc.XRotation, el.Arc.LargeArc, el.Arc.Clockwise)
	case ClosePathKind:
		return "ClosePath()"
	default:
		return "InvalidPathElement"
	}
}

// Path is a sequence of path elements. Each subpath begins with a
// [MoveToKind] element.
type Path []PathElement

func (p *Path) MoveTo(pt Point) { *p = append(*p, PathElement{Kind: MoveToKind, P0: pt}) }

func (p *Path) LineTo(pt Point) { *p = append(*p, PathElement{Kind: LineToKind, P0: pt}) }

func (p *Path) QuadTo(p1, p2 Point) {
	*p = append(*p, PathElement{Kind: QuadToKind, P0: p1, P1: p2})
}

func (p *Path) CubicTo(p1, p2, p3 Point) {
	*p = append(*p, PathElement{Kind: CubicToKind, P0: p1, P1: p2, P2: p3})
}

// ArcTo appends an elliptical arc from the current point to pt, with the
// semantics of the SVG "A" command.
func (p *Path) ArcTo(pt Point, radii Vec2, rotation float64, largeArc, clockwise bool) {
	*p = append(*p, PathElement{
		Kind: ArcToKind,
		P0:   pt,
		Arc:  ArcShape{Radii: radii, XRotation: rotation, LargeArc: largeArc, Clockwise: clockwise},
	})
}

func (p *Path) ClosePath() { *p = append(*p, PathElement{Kind: ClosePathKind}) }

// Flatten flattens every segment of the path and returns one polyline per
// subpath. Closed subpaths end with their first point. Consecutive segments
// share their junction point.
//
// Flatten returns an error wrapping [ErrInvalidArgument] if tol is invalid,
// a subpath doesn't start with a [MoveToKind] element, or a segment can't be
// flattened.
func (p Path) Flatten(tol Tolerance) ([]Polyline, error) {
	out, _, err := p.FlattenReport(tol)
	return out, err
}

// FlattenReport is like [Path.Flatten] and also returns the indices of the
// [ArcToKind] elements whose radii were much too small for their end points
// and had to be grown, as reported by [SvgArc.CenterForm].
func (p Path) FlattenReport(tol Tolerance) ([]Polyline, []int, error) {
	if err := tol.Validate(); err != nil {
		return nil, nil, err
	}
	var (
		out     []Polyline
		cur     Polyline
		started bool
		invalid []int
	)
	// Subpaths consisting of a lone point are dropped.
	flush := func() {
		if len(cur) > 1 {
			out = append(out, cur)
		}
		cur = nil
	}
	last := func() Point { return cur[len(cur)-1] }

	for i, el := range p {
		if el.Kind != MoveToKind && el.Kind != ClosePathKind && !started {
			return nil, nil, argumentError("path", el, fmt.Sprintf("element %d outside of a subpath", i))
		}
		var (
			pts []Point
			err error
		)
		switch el.Kind {
		case MoveToKind:
			if el.P0.IsNaN() || el.P0.IsInf() {
				return nil, nil, argumentError("path", el, "points must be finite")
			}
			flush()
			cur = Polyline{el.P0}
			started = true
			continue
		case LineToKind:
			if el.P0.IsNaN() || el.P0.IsInf() {
				return nil, nil, argumentError("path", el, "points must be finite")
			}
			cur = append(cur, el.P0)
			continue
		case QuadToKind:
			pts, err = QuadBez{last(), el.P0, el.P1}.Flatten(tol)
		case CubicToKind:
			pts, err = CubicBez{last(), el.P0, el.P1, el.P2}.Flatten(tol)
		case ArcToKind:
			var valid bool
			pts, valid, err = SvgArc{
				From:      last(),
				To:        el.P0,
				Radii:     el.Arc.Radii,
				XRotation: el.Arc.XRotation,
				LargeArc:  el.Arc.LargeArc,
				Clockwise: el.Arc.Clockwise,
			}.Flatten(tol)
			if err == nil && !valid {
				invalid = append(invalid, i)
			}
		case ClosePathKind:
			if started && len(cur) > 1 && last() != cur[0] {
				cur = append(cur, cur[0])
			}
			if started {
				// A new subpath after a close starts where the closed one
				// did.
				start := cur[0]
				flush()
				cur = Polyline{start}
			}
			continue
		default:
			return nil, nil, argumentError("path", el, "unknown element kind")
		}
		if err != nil {
			return nil, nil, fmt.Errorf("element %d: %w", i, err)
		}
		cur = append(cur, pts[1:]...)
	}
	flush()
	return slices.Clip(out), invalid, nil
}
