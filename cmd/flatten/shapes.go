package main

import (
	"fmt"

	"honnef.co/go/flatten"
	"honnef.co/go/flatten/internal/config"
	"honnef.co/go/flatten/svgpath"
)

// shape is a flattened shape spec. Only paths produce more than one
// polyline.
type shape struct {
	kind   string
	lines  []flatten.Polyline
	closed bool
	// radiiGrown is set when the radii of an SVG arc were much too small
	// for its end points and had to be scaled up.
	radiiGrown bool
}

func (s shape) points() int {
	n := 0
	for _, pl := range s.lines {
		n += len(pl)
	}
	return n
}

// flattenShape flattens a validated shape spec.
func flattenShape(s config.ShapeSpec, tol flatten.Tolerance) (shape, error) {
	out := shape{kind: s.Kind}
	var (
		pl  flatten.Polyline
		err error
	)
	switch s.Kind {
	case "cubic":
		pl, err = flatten.FlattenCubicBezier(
			config.Pt(s.Points[0]), config.Pt(s.Points[1]), config.Pt(s.Points[2]), config.Pt(s.Points[3]), tol)
	case "quad":
		pl, err = flatten.FlattenQuadraticBezier(
			config.Pt(s.Points[0]), config.Pt(s.Points[1]), config.Pt(s.Points[2]), tol)
	case "arc":
		arc := flatten.Arc{
			Center:     config.Pt(s.Center),
			Radii:      config.Vec(s.Radii),
			StartAngle: config.Radians(s.Start),
			SweepAngle: config.Radians(s.Sweep),
			XRotation:  config.Radians(s.Rotation),
			Flatness:   s.Flatness,
		}
		if s.Approximation != "" {
			if arc.Approximation, err = flatten.ParseApproximation(s.Approximation); err != nil {
				return shape{}, err
			}
		}
		pl, err = arc.Flatten(tol)
		out.closed = s.Sweep <= -360 || s.Sweep >= 360
	case "svgarc":
		var valid bool
		pl, valid, err = flatten.FlattenSvgArc(
			config.Pt(s.Points[0]), config.Pt(s.Points[1]), config.Vec(s.Radii),
			config.Radians(s.Rotation), s.LargeArc, s.Clockwise, tol)
		out.radiiGrown = !valid
	case "ellipse":
		scale := s.Scale
		if scale == 0 {
			scale = flatten.DefaultApproximationScale
		}
		pl, err = flatten.FlattenEllipse(config.Pt(s.Center), config.Vec(s.Radii), s.Clockwise, scale)
		out.closed = true
	case "path":
		// Closed subpaths already end on their first point.
		p, err := svgpath.Parse(s.D)
		if err != nil {
			return shape{}, err
		}
		lines, invalid, err := p.FlattenReport(tol)
		if err != nil {
			return shape{}, err
		}
		out.lines, out.radiiGrown = lines, len(invalid) > 0
		return out, nil
	default:
		return shape{}, fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	if err != nil {
		return shape{}, err
	}
	out.lines = []flatten.Polyline{pl}
	return out, nil
}
