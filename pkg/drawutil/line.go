// Package drawutil draws canvas primitives into a cellbuf.Buffer: lines
// with direction-aware box characters, dashed guidelines, polygon outlines,
// sampled shape fills and the zoom-adaptive world grid.
//
// Inputs are in cell space with fractional coordinates. Segments are
// clipped to the buffer before rasterizing, so a line whose endpoints are
// far off screen costs no more than one that fits.
package drawutil

import "image"

// Bresenham returns the integer points on the line from a to b, both
// endpoints included.
func Bresenham(a, b image.Point) []image.Point {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy

	pts := make([]image.Point, 0, max(dx, -dy)+1)
	p := a
	for {
		pts = append(pts, p)
		if p == b {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

// LineChar returns the box-drawing character for a step of (dx, dy).
func LineChar(dx, dy int) rune {
	switch {
	case dx == 0 && dy == 0:
		return '•'
	case dx == 0:
		return '│'
	case dy == 0:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╲'
	}
	return '╱'
}

// stepChar picks the character for pts[i] from its neighbour.
func stepChar(pts []image.Point, i int) rune {
	switch {
	case i < len(pts)-1:
		return LineChar(pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y)
	case i > 0:
		return LineChar(pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y)
	}
	return LineChar(0, 0)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
