package drawutil

import (
	"image"
	"math"

	"github.com/wesen/snapcanvas/pkg/cellbuf"
	"github.com/wesen/snapcanvas/pkg/geom"
)

// Pen describes how a line is put into the buffer.
type Pen struct {
	Style cellbuf.StyleKey
	Owner string
	// Dash, when positive, draws Dash cells then skips Dash cells.
	Dash int
	// Char overrides the direction-aware line characters.
	Char rune
}

// Cell returns the buffer cell containing the fractional point p.
func Cell(p geom.Point) image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// DrawLine draws the segment a→b, given in cell space, clipped to buf.
func DrawLine(buf *cellbuf.Buffer, a, b geom.Point, pen Pen) {
	area := geom.R(0, 0, float64(buf.W)-1e-9, float64(buf.H)-1e-9)
	a, b, ok := ClipSegment(a, b, area)
	if !ok {
		return
	}
	pts := Bresenham(Cell(a), Cell(b))
	for i, p := range pts {
		if pen.Dash > 0 && (i/pen.Dash)%2 == 1 {
			continue
		}
		ch := pen.Char
		if ch == 0 {
			ch = stepChar(pts, i)
		}
		buf.Paint(p.X, p.Y, ch, pen.Style, pen.Owner)
	}
}

// DrawPolygon draws the closed outline through pts. Vertices get a '+'
// unless the pen has its own character.
func DrawPolygon(buf *cellbuf.Buffer, pts []geom.Point, pen Pen) {
	for i := range pts {
		DrawLine(buf, pts[i], pts[(i+1)%len(pts)], pen)
	}
	if pen.Char != 0 {
		return
	}
	for _, p := range pts {
		c := Cell(p)
		buf.Paint(c.X, c.Y, '+', pen.Style, pen.Owner)
	}
}

// FillInside paints every cell in r, clipped to buf, whose center
// satisfies inside. Centers are passed in cell space.
func FillInside(buf *cellbuf.Buffer, r image.Rectangle, inside func(center geom.Point) bool, ch rune, pen Pen) {
	r = r.Intersect(buf.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if inside(geom.Pt(float64(x)+0.5, float64(y)+0.5)) {
				buf.Paint(x, y, ch, pen.Style, pen.Owner)
			}
		}
	}
}

// CellRect returns the smallest cell rectangle covering the fractional
// box r.
func CellRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}

// Label writes s centered on p, clipped to buf.
func Label(buf *cellbuf.Buffer, p geom.Point, s string, pen Pen) {
	rs := []rune(s)
	c := Cell(p)
	x := c.X - len(rs)/2
	for i, r := range rs {
		buf.Paint(x+i, c.Y, r, pen.Style, pen.Owner)
	}
}
