package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"strconv"

	"golang.org/x/image/draw"

	"honnef.co/go/flatten"
	"honnef.co/go/flatten/internal/config"
	"honnef.co/go/flatten/raster"
)

func write(w io.Writer, shapes []shape, out config.OutputConfig) error {
	switch out.Format {
	case "svg":
		return writeSVG(w, shapes, out)
	case "json":
		return writeJSON(w, shapes)
	case "png":
		return writePNG(w, shapes, out)
	default:
		return fmt.Errorf("unknown output format %q", out.Format)
	}
}

func bounds(shapes []shape) flatten.Rect {
	var r flatten.Rect
	first := true
	for _, s := range shapes {
		for _, pl := range s.lines {
			if len(pl) == 0 {
				continue
			}
			if first {
				r = pl.BoundingBox()
				first = false
			} else {
				r = r.Union(pl.BoundingBox())
			}
		}
	}
	return r
}

func writeSVG(w io.Writer, shapes []shape, out config.OutputConfig) error {
	bw := bufio.NewWriter(w)
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

	box := bounds(shapes).Inflate(out.Margin, out.Margin)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`+"\n",
		num(box.X0), num(box.Y0), num(box.Width()), num(box.Height()))
	for i, s := range shapes {
		fmt.Fprintf(bw, `  <path id="shape%d" class="%s" fill="none" stroke="black" stroke-width="%s" d="`, i, s.kind, num(out.StrokeWidth))
		for j, pl := range s.lines {
			if j > 0 {
				bw.WriteString(" ")
			}
			if err := pl.WriteSVG(bw, flatten.SVGOptions{MaxPrecision: out.Precision, Close: s.closed}); err != nil {
				return err
			}
		}
		bw.WriteString("\"/>\n")
	}
	bw.WriteString("</svg>\n")
	return bw.Flush()
}

type jsonShape struct {
	Kind       string         `json:"kind"`
	Closed     bool           `json:"closed,omitempty"`
	RadiiGrown bool           `json:"radii_grown,omitempty"`
	Polylines  [][][2]float64 `json:"polylines"`
}

func writeJSON(w io.Writer, shapes []shape) error {
	doc := make([]jsonShape, len(shapes))
	for i, s := range shapes {
		lines := make([][][2]float64, len(s.lines))
		for j, pl := range s.lines {
			pts := make([][2]float64, len(pl))
			for k, pt := range pl {
				pts[k] = [2]float64{pt.X, pt.Y}
			}
			lines[j] = pts
		}
		doc[i] = jsonShape{Kind: s.kind, Closed: s.closed, RadiiGrown: s.radiiGrown, Polylines: lines}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func writePNG(w io.Writer, shapes []shape, out config.OutputConfig) error {
	mask := image.NewAlpha(image.Rect(0, 0, out.Width, out.Height))
	aff := raster.Fit(bounds(shapes), out.Width, out.Height, out.Margin+out.StrokeWidth/2)
	for _, s := range shapes {
		for _, pl := range s.lines {
			if err := raster.Stroke(mask, pl, out.StrokeWidth, aff); err != nil {
				return err
			}
		}
	}

	img := image.NewGray(mask.Bounds())
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.DrawMask(img, img.Bounds(), image.Black, image.Point{}, mask, image.Point{}, draw.Over)
	return png.Encode(w, img)
}
