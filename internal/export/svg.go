// Package export renders stored runs to files outside the data directory.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

var ErrNoTrack = errors.New("no track to draw")

// Palette cycles through stroke colors, one per track.
var Palette = []string{"#00ff00", "#ffaa00", "#00aaff", "#ff4466", "#cc66ff", "#ffffff"}

type Point struct {
	X, Y float64
}

// Track is the path one body traced over a run.
type Track struct {
	Name   string
	Points []Point
}

// Tracks collects a track per named body from frames, in the order given.
// Bodies missing from every frame are left out.
func Tracks(frames []dynamo.Frame, bodies []string) []Track {
	tracks := make([]Track, 0, len(bodies))
	for _, name := range bodies {
		t := Track{Name: name}
		for _, f := range frames {
			if b, ok := f.Body(name); ok {
				t.Points = append(t.Points, Point{b.X, b.Y})
			}
		}
		if len(t.Points) > 0 {
			tracks = append(tracks, t)
		}
	}
	return tracks
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func fit(tracks []Track) bounds {
	first := tracks[0].Points[0]
	b := bounds{first.X, first.X, first.Y, first.Y}
	for _, t := range tracks {
		for _, p := range t.Points {
			b.minX = min(b.minX, p.X)
			b.maxX = max(b.maxX, p.X)
			b.minY = min(b.minY, p.Y)
			b.maxY = max(b.maxY, p.Y)
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

// project maps world coordinates to SVG pixels, y up.
func (b bounds) project(p Point, width, height int) (float64, float64) {
	x := (p.X - b.minX) / (b.maxX - b.minX) * float64(width)
	y := float64(height) - (p.Y-b.minY)/(b.maxY-b.minY)*float64(height)
	return x, y
}

// WriteSVG draws every track as a polyline on a shared, padded viewport.
// The start of each track is marked with a dot.
func WriteSVG(w io.Writer, tracks []Track, width, height int) error {
	if len(tracks) == 0 {
		return ErrNoTrack
	}
	b := fit(tracks)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, t := range tracks {
		color := Palette[i%len(Palette)]
		fmt.Fprintf(&sb, "<g id=%q>\n", t.Name)

		x, y := b.project(t.Points[0], width, height)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n", x, y, color)

		if len(t.Points) > 1 {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`, color, x, y)
			for _, p := range t.Points[1:] {
				x, y := b.project(p, width, height)
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
			sb.WriteString("\"/>\n")
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
