package flatten

// Rect is an axis-aligned rectangle spanning [X0, X1] × [Y0, Y1].
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

// NewRectFromPoints returns the smallest rectangle containing p0 and p1.
func NewRectFromPoints(p0, p1 Point) Rect {
	return Rect{min(p0.X, p1.X), min(p0.Y, p1.Y), max(p0.X, p1.X), max(p0.Y, p1.Y)}
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

func (r Rect) Center() Point {
	return Point{0.5 * (r.X0 + r.X1), 0.5 * (r.Y0 + r.Y1)}
}

// Contains reports whether pt lies in r. The right and bottom edges are
// excluded.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X0 && pt.X < r.X1 && pt.Y >= r.Y0 && pt.Y < r.Y1
}

func (r Rect) Union(o Rect) Rect {
	return Rect{min(r.X0, o.X0), min(r.Y0, o.Y0), max(r.X1, o.X1), max(r.Y1, o.Y1)}
}

// UnionPoint grows r to include pt.
func (r Rect) UnionPoint(pt Point) Rect {
	return Rect{min(r.X0, pt.X), min(r.Y0, pt.Y), max(r.X1, pt.X), max(r.Y1, pt.Y)}
}

// Inflate grows r by dx on the left and right, and by dy on the top and
// bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{r.X0 - dx, r.Y0 - dy, r.X1 + dx, r.Y1 + dy}
}
