package drawutil

import "github.com/wesen/snapcanvas/pkg/geom"

// ClipSegment clips the segment a→b to r with the Liang–Barsky algorithm.
// ok is false when no part of the segment lies inside r.
func ClipSegment(a, b geom.Point, r geom.Rect) (geom.Point, geom.Point, bool) {
	if !a.Finite() || !b.Finite() {
		return a, b, false
	}
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-d.X, a.X - r.X},
		{d.X, r.Right() - a.X},
		{-d.Y, a.Y - r.Y},
		{d.Y, r.Bottom() - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}
