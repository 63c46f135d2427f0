// Package svgpath parses SVG path data into flatten paths.
package svgpath

import (
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"honnef.co/go/flatten"
)

// SyntaxError reports malformed path data.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("svgpath: %s at offset %d", e.Msg, e.Offset)
}

// argument counts per command
var numArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2,
	'A': 7, 'Z': 0,
}

type scanner struct {
	b []byte
	i int
}

func (s *scanner) skip() {
	for s.i < len(s.b) {
		switch s.b[s.i] {
		case ' ', ',', '\t', '\n', '\r', '\f':
			s.i++
		default:
			return
		}
	}
}

func (s *scanner) atNumber() bool {
	if s.i >= len(s.b) {
		return false
	}
	c := s.b[s.i]
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func (s *scanner) number() (float64, error) {
	f, n := strconv.ParseFloat(s.b[s.i:])
	if n == 0 {
		return 0, &SyntaxError{s.i, "expected number"}
	}
	s.i += n
	s.skip()
	return f, nil
}

// flag reads an arc flag. Flags are single digits and need no separator.
func (s *scanner) flag() (bool, error) {
	if s.i < len(s.b) && (s.b[s.i] == '0' || s.b[s.i] == '1') {
		v := s.b[s.i] == '1'
		s.i++
		s.skip()
		return v, nil
	}
	return false, &SyntaxError{s.i, "expected arc flag"}
}

// Parse converts path data, as found in the d attribute of an SVG path
// element, to a path. Arc rotations are converted from degrees to radians.
// Empty data yields an empty path.
func Parse(d string) (flatten.Path, error) {
	s := &scanner{b: []byte(d)}
	s.skip()

	var (
		p                   flatten.Path
		cur, start          flatten.Point
		lastCubic, lastQuad flatten.Point
		prev                byte
	)
	var args [7]float64
	for s.i < len(s.b) {
		cmdOffset := s.i
		cmd := s.b[s.i]
		upper := cmd &^ 0x20
		if _, ok := numArgs[upper]; !ok {
			return nil, &SyntaxError{s.i, fmt.Sprintf("unknown command %q", cmd)}
		}
		if prev == 0 && upper != 'M' {
			return nil, &SyntaxError{s.i, "path data must start with a move"}
		}
		s.i++
		s.skip()
		rel := cmd != upper

		for first := true; first || (upper != 'Z' && s.atNumber()); first = false {
			for j := range numArgs[upper] {
				var err error
				if upper == 'A' && (j == 3 || j == 4) {
					var v bool
					v, err = s.flag()
					args[j] = 0
					if v {
						args[j] = 1
					}
				} else {
					args[j], err = s.number()
				}
				if err != nil {
					return nil, err
				}
			}
			pt := func(x, y float64) flatten.Point {
				if rel {
					return flatten.Pt(cur.X+x, cur.Y+y)
				}
				return flatten.Pt(x, y)
			}

			switch upper {
			case 'M':
				cur = pt(args[0], args[1])
				if first {
					p.MoveTo(cur)
					start = cur
				} else {
					// Coordinates following a move are implicit lines.
					p.LineTo(cur)
				}
			case 'L':
				cur = pt(args[0], args[1])
				p.LineTo(cur)
			case 'H':
				x := args[0]
				if rel {
					x += cur.X
				}
				cur = flatten.Pt(x, cur.Y)
				p.LineTo(cur)
			case 'V':
				y := args[0]
				if rel {
					y += cur.Y
				}
				cur = flatten.Pt(cur.X, y)
				p.LineTo(cur)
			case 'C':
				c1, c2, end := pt(args[0], args[1]), pt(args[2], args[3]), pt(args[4], args[5])
				p.CubicTo(c1, c2, end)
				lastCubic, cur = c2, end
			case 'S':
				c1 := cur
				if prev == 'C' || prev == 'S' {
					c1 = cur.Translate(cur.Sub(lastCubic))
				}
				c2, end := pt(args[0], args[1]), pt(args[2], args[3])
				p.CubicTo(c1, c2, end)
				lastCubic, cur = c2, end
			case 'Q':
				c, end := pt(args[0], args[1]), pt(args[2], args[3])
				p.QuadTo(c, end)
				lastQuad, cur = c, end
			case 'T':
				c := cur
				if prev == 'Q' || prev == 'T' {
					c = cur.Translate(cur.Sub(lastQuad))
				}
				end := pt(args[0], args[1])
				p.QuadTo(c, end)
				lastQuad, cur = c, end
			case 'A':
				end := pt(args[5], args[6])
				p.ArcTo(end, flatten.Vec(args[0], args[1]), args[2]*math.Pi/180, args[3] == 1, args[4] == 1)
				cur = end
			case 'Z':
				p.ClosePath()
				cur = start
			}
			prev = upper
		}
		if upper == 'Z' && s.atNumber() {
			return nil, &SyntaxError{cmdOffset + 1, "close takes no arguments"}
		}
	}
	return p, nil
}
