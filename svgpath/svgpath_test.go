package svgpath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/flatten"
)

func TestParseCommands(t *testing.T) {
	p, err := Parse("M10,20 L30 40 H50 V60 C1 2 3 4 5 6 Q7 8 9 10 A5 6 90 1 0 11 12 Z")
	require.NoError(t, err)

	var want flatten.Path
	want.MoveTo(flatten.Pt(10, 20))
	want.LineTo(flatten.Pt(30, 40))
	want.LineTo(flatten.Pt(50, 40))
	want.LineTo(flatten.Pt(50, 60))
	want.CubicTo(flatten.Pt(1, 2), flatten.Pt(3, 4), flatten.Pt(5, 6))
	want.QuadTo(flatten.Pt(7, 8), flatten.Pt(9, 10))
	rot := 90.0
	want.ArcTo(flatten.Pt(11, 12), flatten.Vec(5, 6), rot*math.Pi/180, true, false)
	want.ClosePath()
	assert.Equal(t, want, p)
}

func TestParseRelative(t *testing.T) {
	p, err := Parse("m1 1 l2 0 h1 v3 c0 1 1 1 1 0 q1 0 1-1 z l1 1")
	require.NoError(t, err)

	var want flatten.Path
	want.MoveTo(flatten.Pt(1, 1))
	want.LineTo(flatten.Pt(3, 1))
	want.LineTo(flatten.Pt(4, 1))
	want.LineTo(flatten.Pt(4, 4))
	want.CubicTo(flatten.Pt(4, 5), flatten.Pt(5, 5), flatten.Pt(5, 4))
	want.QuadTo(flatten.Pt(6, 4), flatten.Pt(6, 3))
	want.ClosePath()
	// Relative to the subpath start after a close.
	want.LineTo(flatten.Pt(2, 2))
	assert.Equal(t, want, p)
}

func TestParseImplicitRepeats(t *testing.T) {
	p, err := Parse("M0 0 10 0 10 10L20 20 30 30")
	require.NoError(t, err)

	var want flatten.Path
	want.MoveTo(flatten.Pt(0, 0))
	want.LineTo(flatten.Pt(10, 0))
	want.LineTo(flatten.Pt(10, 10))
	want.LineTo(flatten.Pt(20, 20))
	want.LineTo(flatten.Pt(30, 30))
	assert.Equal(t, want, p)
}

func TestParseSmooth(t *testing.T) {
	p, err := Parse("M0 0 C0 10 10 10 10 0 S20 -10 20 0 M0 0 Q5 5 10 0 T20 0 M0 0 S1 1 2 2")
	require.NoError(t, err)
	require.Len(t, p, 8)

	// Reflected control points.
	assert.Equal(t, flatten.Pt(10, -10), p[2].P0)
	assert.Equal(t, flatten.Pt(15, -5), p[5].P0)
	// Without a preceding cubic the first control point is the current point.
	assert.Equal(t, flatten.Pt(0, 0), p[7].P0)
	assert.Equal(t, flatten.Pt(1, 1), p[7].P1)
}

func TestParseCompactArcFlags(t *testing.T) {
	p, err := Parse("M0 0a5 5 0 0110 0")
	require.NoError(t, err)
	require.Len(t, p, 2)
	arc := p[1]
	assert.Equal(t, flatten.ArcToKind, arc.Kind)
	assert.Equal(t, flatten.Pt(10, 0), arc.P0)
	assert.False(t, arc.Arc.LargeArc)
	assert.True(t, arc.Arc.Clockwise)
}

func TestParseNumbers(t *testing.T) {
	p, err := Parse("M.5-.5L1e1,+2.5")
	require.NoError(t, err)
	assert.Equal(t, flatten.Pt(0.5, -0.5), p[0].P0)
	assert.Equal(t, flatten.Pt(10, 2.5), p[1].P0)
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse("  ")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestParseErrors(t *testing.T) {
	for _, d := range []string{
		"L1 1",
		"M1",
		"M1 1 X2 2",
		"M0 0 A1 1 0 2 0 1 1",
		"M0 0 Z 1 1",
		"M0 0 L1 x",
	} {
		_, err := Parse(d)
		var serr *SyntaxError
		assert.ErrorAs(t, err, &serr, d)
	}
}

func TestParseFlatten(t *testing.T) {
	p, err := Parse("M0 0 H100 A50 50 0 0 1 100 100 H0 Z")
	require.NoError(t, err)
	pls, err := p.Flatten(flatten.DefaultTolerance())
	require.NoError(t, err)
	require.Len(t, pls, 1)
	pl := pls[0]
	assert.Equal(t, flatten.Pt(0, 0), pl[0])
	assert.Equal(t, flatten.Pt(0, 0), pl[len(pl)-1])
	// The arc bulges to the right of x = 100.
	assert.Greater(t, pl.BoundingBox().X1, 149.0)
}
