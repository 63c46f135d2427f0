// Package raster draws flattened polylines into alpha masks, using
// golang.org/x/image/vector for anti-aliased scan conversion.
package raster

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/vector"
	"honnef.co/go/flatten"
)

// Fit returns the transform that scales bbox uniformly and centers it in an
// image of the given size, leaving margin pixels on every side. The y axis
// is kept pointing down.
func Fit(bbox flatten.Rect, width, height int, margin float64) flatten.Affine {
	availW := float64(width) - 2*margin
	availH := float64(height) - 2*margin
	bw, bh := bbox.Width(), bbox.Height()

	s := math.Inf(1)
	if bw > 0 {
		s = availW / bw
	}
	if bh > 0 {
		s = min(s, availH/bh)
	}
	if math.IsInf(s, 1) || s <= 0 {
		s = 1
	}
	center := bbox.Center()
	return flatten.Translate(flatten.Vec(float64(width)/2, float64(height)/2)).
		Mul(flatten.Scale(s, s)).
		Mul(flatten.Translate(flatten.Vec(-center.X, -center.Y)))
}

func newRasterizer(dst *image.Alpha) *vector.Rasterizer {
	b := dst.Bounds()
	return vector.NewRasterizer(b.Dx(), b.Dy())
}

func draw(dst *image.Alpha, z *vector.Rasterizer) {
	b := dst.Bounds()
	z.Draw(dst, b, image.Opaque, image.Point{})
}

// addPolygon adds the closed polygon pts, mapped by aff, to z. The origin of
// dst's bounds maps to the rasterizer's origin.
func addPolygon(z *vector.Rasterizer, origin image.Point, pts []flatten.Point, aff flatten.Affine) {
	for i, pt := range pts {
		pt = pt.Transform(aff)
		x := float32(pt.X - float64(origin.X))
		y := float32(pt.Y - float64(origin.Y))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

// Fill fills the polygons formed by closing each polyline. Overlapping areas
// are filled once, regardless of their winding.
func Fill(dst *image.Alpha, pls []flatten.Polyline, aff flatten.Affine) {
	z := newRasterizer(dst)
	for _, pl := range pls {
		if len(pl) < 3 {
			continue
		}
		addPolygon(z, dst.Bounds().Min, pl, aff)
	}
	draw(dst, z)
}

// Stroke draws the polyline with a pen of the given width, measured in
// pixels. Joins and caps are square.
//
// Stroke returns an error wrapping [flatten.ErrInvalidArgument] if width is
// not positive.
func Stroke(dst *image.Alpha, pl flatten.Polyline, width float64, aff flatten.Affine) error {
	if !(width > 0) || math.IsInf(width, 1) {
		return fmt.Errorf("raster: stroke width %v: %w", width, flatten.ErrInvalidArgument)
	}
	if len(pl) == 0 {
		return nil
	}
	h := width / 2
	origin := dst.Bounds().Min
	z := newRasterizer(dst)

	// All quads are added with the same orientation so that overlaps
	// accumulate instead of cancelling out.
	square := func(c flatten.Point) {
		addPolygon(z, origin, []flatten.Point{
			flatten.Pt(c.X-h, c.Y+h),
			flatten.Pt(c.X+h, c.Y+h),
			flatten.Pt(c.X+h, c.Y-h),
			flatten.Pt(c.X-h, c.Y-h),
		}, flatten.Identity)
	}

	prev := pl[0].Transform(aff)
	square(prev)
	for _, pt := range pl[1:] {
		cur := pt.Transform(aff)
		d := cur.Sub(prev)
		if l := d.Hypot(); l > 0 {
			n := flatten.Vec(-d.Y, d.X).Mul(h / l)
			addPolygon(z, origin, []flatten.Point{
				prev.Translate(n),
				cur.Translate(n),
				cur.Translate(n.Negate()),
				prev.Translate(n.Negate()),
			}, flatten.Identity)
		}
		square(cur)
		prev = cur
	}
	draw(dst, z)
	return nil
}
