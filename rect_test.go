package flatten

import (
	"testing"
)

func TestRectFromPoints(t *testing.T) {
	r := NewRectFromPoints(Pt(10, -5), Pt(-2, 7))
	diff(t, Rect{-2, -5, 10, 7}, r)
	if w, h := r.Width(), r.Height(); w != 12 || h != 12 {
		t.Errorf("got size %vx%v, want 12x12", w, h)
	}
	diff(t, Pt(4, 1), r.Center())
}

func TestRectContains(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	for _, tt := range []struct {
		pt   Point
		want bool
	}{
		{Pt(0, 0), true},
		{Pt(5, 5), true},
		{Pt(10, 5), false},
		{Pt(-1, 5), false},
	} {
		if got := r.Contains(tt.pt); got != tt.want {
			t.Errorf("Contains(%s) = %t, want %t", tt.pt, got, tt.want)
		}
	}
}

func TestRectUnion(t *testing.T) {
	r := Rect{0, 0, 1, 1}
	diff(t, Rect{0, 0, 5, 3}, r.Union(Rect{2, 2, 5, 3}))
	diff(t, Rect{-1, 0, 1, 4}, r.UnionPoint(Pt(-1, 4)))
	diff(t, Rect{-1, -2, 2, 3}, r.Inflate(1, 2))
}
