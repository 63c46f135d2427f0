package flatten

import (
	"errors"
	"math"
	"testing"
)

func TestPathFlatten(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(100, 0))
	p.QuadTo(Pt(150, 50), Pt(100, 100))
	p.CubicTo(Pt(70, 130), Pt(30, 70), Pt(0, 100))
	p.ArcTo(Pt(0, 0), Vec(50, 50), 0, false, true)
	p.ClosePath()
	p.MoveTo(Pt(200, 0))
	p.LineTo(Pt(300, 0))

	pls, err := p.Flatten(DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	if len(pls) != 2 {
		t.Fatalf("got %d polylines, want 2", len(pls))
	}

	first := pls[0]
	assertEndpoints(t, first, Pt(0, 0), Pt(0, 0))
	for _, pt := range []Point{Pt(100, 0), Pt(100, 100), Pt(0, 100)} {
		if d, _ := first.DistanceTo(pt); d != 0 {
			t.Errorf("junction %s is missing from the polyline", pt)
		}
	}
	for i := 1; i < len(first); i++ {
		if first[i] == first[i-1] {
			t.Errorf("duplicate point %s at index %d", first[i], i)
		}
	}
	// The semicircle from (0, 100) to (0, 0) bulges to the left.
	if b := first.BoundingBox(); b.X0 > -50+DefaultDistanceTolerance {
		t.Errorf("got bounding box %v, want it to reach x = -50", b)
	}

	diff(t, Polyline{Pt(200, 0), Pt(300, 0)}, pls[1])
}

func TestPathClosedTwice(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(10, 0))
	p.LineTo(Pt(10, 10))
	p.ClosePath()
	// Continues from (0, 0).
	p.LineTo(Pt(-10, 0))
	p.ClosePath()

	pls, err := p.Flatten(DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []Polyline{
		{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 0)},
		{Pt(0, 0), Pt(-10, 0), Pt(0, 0)},
	}, pls)
}

func TestPathLonePoints(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.MoveTo(Pt(1, 1))
	p.ClosePath()
	pls, err := p.Flatten(DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	if len(pls) != 0 {
		t.Errorf("got %v, want no polylines", pls)
	}
}

func TestPathFlattenReport(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0))
	p.ArcTo(Pt(100, 0), Vec(50, 50), 0, false, true)
	// Radii a tenth of the half chord.
	p.ArcTo(Pt(200, 0), Vec(5, 5), 0, false, true)
	p.LineTo(Pt(200, 50))
	p.ArcTo(Pt(200, 100), Vec(1, 1), 0, false, false)

	pls, invalid, err := p.FlattenReport(DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, []int{2, 4}, invalid)
	assertEndpoints(t, pls[0], Pt(0, 0), Pt(200, 100))

	plain, err := p.Flatten(DefaultTolerance())
	if err != nil {
		t.Fatal(err)
	}
	diff(t, pls, plain)

	var q Path
	q.MoveTo(Pt(0, 0))
	q.ArcTo(Pt(10, 0), Vec(5, 5), 0, false, true)
	if _, invalid, err := q.FlattenReport(DefaultTolerance()); err != nil || invalid != nil {
		t.Errorf("got %v, %v, want no invalid arcs", invalid, err)
	}
}

func TestPathFlattenInvalid(t *testing.T) {
	paths := map[string]Path{
		"no move":        {{Kind: LineToKind, P0: Pt(1, 1)}},
		"unknown kind":   {{Kind: MoveToKind}, {Kind: 42}},
		"infinite line":  {{Kind: MoveToKind}, {Kind: LineToKind, P0: Pt(math.Inf(1), 0)}},
		"nan move":       {{Kind: MoveToKind, P0: Pt(math.NaN(), 0)}},
		"nan cubic":      {{Kind: MoveToKind}, {Kind: CubicToKind, P1: Pt(math.NaN(), 0)}},
		"bad arc radius": {{Kind: MoveToKind}, {Kind: ArcToKind, P0: Pt(1, 0), Arc: ArcShape{Radii: Vec(math.Inf(1), 1)}}},
	}
	for name, p := range paths {
		if _, err := p.Flatten(DefaultTolerance()); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: got error %v, want %v", name, err, ErrInvalidArgument)
		}
	}
	var p Path
	p.MoveTo(Pt(0, 0))
	p.LineTo(Pt(1, 0))
	if _, err := p.Flatten(Tolerance{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("got error %v, want %v", err, ErrInvalidArgument)
	}
}

func TestPathElementString(t *testing.T) {
	var p Path
	p.MoveTo(Pt(1, 2))
	p.QuadTo(Pt(3, 4), Pt(5, 6))
	p.ClosePath()
	want := []string{"MoveTo((1, 2))", "QuadTo((3, 4), (5, 6))", "ClosePath()"}
	for i, el := range p {
		if got := el.String(); got != want[i] {
			t.Errorf("got %q, want %q", got, want[i])
		}
	}
}
