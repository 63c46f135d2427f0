package flatten

import (
	"fmt"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"
)

// Polyline is a sequence of points connected by straight lines, as returned
// by the flatteners.
type Polyline []Point

// Lines returns the segments of the polyline.
func (pl Polyline) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := 1; i < len(pl); i++ {
			if !yield(Line{pl[i-1], pl[i]}) {
				return
			}
		}
	}
}

// BoundingBox returns the smallest rectangle enclosing all points. It
// returns the zero Rect for empty polylines.
func (pl Polyline) BoundingBox() Rect {
	if len(pl) == 0 {
		return Rect{}
	}
	bbox := NewRectFromPoints(pl[0], pl[0])
	for _, pt := range pl[1:] {
		bbox = bbox.UnionPoint(pt)
	}
	return bbox
}

// Length returns the sum of the lengths of all segments.
func (pl Polyline) Length() float64 {
	var l float64
	for line := range pl.Lines() {
		l += line.Length()
	}
	return l
}

// DistanceTo returns the distance from pt to the closest point of the
// polyline, and the index of the segment containing that point. It returns
// +Inf and -1 for empty polylines.
func (pl Polyline) DistanceTo(pt Point) (float64, int) {
	switch len(pl) {
	case 0:
		return math.Inf(1), -1
	case 1:
		return pt.Distance(pl[0]), 0
	}
	best := math.Inf(1)
	idx := -1
	i := 0
	for line := range pl.Lines() {
		if d, _ := line.Nearest(pt); d < best {
			best = d
			idx = i
		}
		i++
	}
	return math.Sqrt(best), idx
}

// SVGOptions specifies optional settings for [Polyline.SVG] and
// [Polyline.WriteSVG].
type SVGOptions struct {
	// The maximum precision with which to format coordinates. A value of 0
	// chooses the highest precision necessary to unambiguously represent any
	// given coordinate.
	MaxPrecision int
	// Close appends a close path command.
	Close bool
}

// SVG converts the polyline to a string of SVG path commands.
//
// See [Polyline.WriteSVG] for a version that writes to an [io.Writer]
// instead of returning a string.
func (pl Polyline) SVG(opts SVGOptions) string {
	sb := &strings.Builder{}
	pl.WriteSVG(sb, opts)
	return sb.String()
}

// WriteSVG converts the polyline to a string of SVG path commands and writes
// it to w.
//
// The current implementation doesn't take any special care to produce a
// short string (reducing precision, using relative movement).
func (pl Polyline) WriteSVG(w io.Writer, opts SVGOptions) error {
	var err error
	writef := func(s string, v ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, s, v...)
	}
	format := func(n float64) string {
		maxPrec := opts.MaxPrecision
		if maxPrec <= 0 {
			return strconv.FormatFloat(n, 'f', -1, 64)
		}
		s := strconv.FormatFloat(n, 'f', maxPrec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
		}
		if s == "-0" {
			s = "0"
		}
		return s
	}
	for i, pt := range pl {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		} else {
			writef(" ")
		}
		writef("%s%s,%s", cmd, format(pt.X), format(pt.Y))
	}
	if opts.Close && len(pl) > 0 {
		writef(" Z")
	}
	return err
}
