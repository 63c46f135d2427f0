package flatten

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

// deviation returns the largest distance between n+1 evenly spaced samples
// of f on [0, 1] and the polyline pts.
func deviation(f func(t float64) Point, pts []Point, n int) float64 {
	var worst float64
	for i := range n + 1 {
		d, _ := Polyline(pts).DistanceTo(f(float64(i) / float64(n)))
		worst = max(worst, d)
	}
	return worst
}

func assertEndpoints(t *testing.T, pts []Point, start, end Point) {
	t.Helper()
	if len(pts) < 2 {
		t.Fatalf("got %d points, want at least 2", len(pts))
	}
	if pts[0] != start {
		t.Errorf("got first point %s, want %s", pts[0], start)
	}
	if pts[len(pts)-1] != end {
		t.Errorf("got last point %s, want %s", pts[len(pts)-1], end)
	}
}
