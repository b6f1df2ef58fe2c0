package drawutil

import (
	"image"
	"testing"

	"github.com/wesen/snapcanvas/pkg/cellbuf"
	"github.com/wesen/snapcanvas/pkg/geom"
)

// ── Bresenham ──

func TestBresenhamStraight(t *testing.T) {
	tests := []struct {
		name string
		a, b image.Point
		step image.Point
	}{
		{"horizontal", image.Pt(0, 0), image.Pt(5, 0), image.Pt(1, 0)},
		{"vertical", image.Pt(0, 0), image.Pt(0, 5), image.Pt(0, 1)},
		{"diagonal", image.Pt(0, 0), image.Pt(5, 5), image.Pt(1, 1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pts := Bresenham(tc.a, tc.b)
			if len(pts) != 6 {
				t.Fatalf("expected 6 points, got %d: %v", len(pts), pts)
			}
			for i, p := range pts {
				if want := tc.a.Add(tc.step.Mul(i)); p != want {
					t.Errorf("point %d: expected %v, got %v", i, want, p)
				}
			}
		})
	}
}

func TestBresenhamEndpoints(t *testing.T) {
	for _, tc := range [][2]image.Point{
		{image.Pt(0, 0), image.Pt(2, 8)},
		{image.Pt(5, 3), image.Pt(0, 0)},
		{image.Pt(-4, 7), image.Pt(9, -2)},
	} {
		pts := Bresenham(tc[0], tc[1])
		if pts[0] != tc[0] || pts[len(pts)-1] != tc[1] {
			t.Errorf("%v→%v: endpoints %v..%v", tc[0], tc[1], pts[0], pts[len(pts)-1])
		}
		for i := 1; i < len(pts); i++ {
			d := pts[i].Sub(pts[i-1])
			if abs(d.X) > 1 || abs(d.Y) > 1 {
				t.Errorf("%v→%v: gap between %v and %v", tc[0], tc[1], pts[i-1], pts[i])
			}
		}
	}
}

func TestBresenhamZeroLength(t *testing.T) {
	pts := Bresenham(image.Pt(3, 3), image.Pt(3, 3))
	if len(pts) != 1 || pts[0] != image.Pt(3, 3) {
		t.Fatalf("zero-length line: expected [(3,3)], got %v", pts)
	}
}

// ── LineChar ──

func TestLineChar(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   rune
	}{
		{0, 1, '│'},
		{0, -1, '│'},
		{1, 0, '─'},
		{-1, 0, '─'},
		{1, 1, '╲'},
		{-1, -1, '╲'},
		{-1, 1, '╱'},
		{1, -1, '╱'},
		{0, 0, '•'},
	}
	for _, tc := range tests {
		if got := LineChar(tc.dx, tc.dy); got != tc.want {
			t.Errorf("LineChar(%d,%d) = %c, want %c", tc.dx, tc.dy, got, tc.want)
		}
	}
}

// ── Clipping ──

func TestClipSegment(t *testing.T) {
	r := geom.R(0, 0, 10, 10)
	tests := []struct {
		name   string
		a, b   geom.Point
		ok     bool
		wa, wb geom.Point
	}{
		{"inside", geom.Pt(1, 1), geom.Pt(9, 9), true, geom.Pt(1, 1), geom.Pt(9, 9)},
		{"crosses", geom.Pt(-10, 5), geom.Pt(20, 5), true, geom.Pt(0, 5), geom.Pt(10, 5)},
		{"outside", geom.Pt(-10, -1), geom.Pt(20, -1), false, geom.Point{}, geom.Point{}},
		{"parallel inside", geom.Pt(3, -10), geom.Pt(3, 30), true, geom.Pt(3, 0), geom.Pt(3, 10)},
		{"miss corner", geom.Pt(-5, 8), geom.Pt(8, 21), false, geom.Point{}, geom.Point{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b, ok := ClipSegment(tc.a, tc.b, r)
			if ok != tc.ok {
				t.Fatalf("ok: expected %v, got %v", tc.ok, ok)
			}
			if ok && (a != tc.wa || b != tc.wb) {
				t.Errorf("expected %v→%v, got %v→%v", tc.wa, tc.wb, a, b)
			}
		})
	}
}

// ── Drawing ──

func TestDrawLineClipsFarEndpoints(t *testing.T) {
	buf := cellbuf.New(10, 3, 0)
	DrawLine(buf, geom.Pt(-1e7, 1.5), geom.Pt(1e7, 1.5), Pen{Style: 1})
	if got := buf.Text()[1]; got != "──────────" {
		t.Errorf("expected a full row of '─', got %q", got)
	}
}

func TestDrawLineDashed(t *testing.T) {
	buf := cellbuf.New(8, 1, 0)
	DrawLine(buf, geom.Pt(0, 0.5), geom.Pt(7.5, 0.5), Pen{Style: 1, Dash: 2, Char: '┄'})
	if got := buf.Text()[0]; got != "┄┄  ┄┄  " {
		t.Errorf("dashed: got %q", got)
	}
}

func TestDrawPolygonOwner(t *testing.T) {
	buf := cellbuf.New(6, 4, 0)
	DrawPolygon(buf, []geom.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 5, Y: 3}, {X: 0, Y: 3}}, Pen{Style: 1, Owner: "box"})
	want := []string{"+────+", "│    │", "│    │", "+────+"}
	for i, line := range buf.Text() {
		if line != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], line)
		}
	}
	if buf.OwnerAt(0, 1) != "box" || buf.OwnerAt(2, 1) != "" {
		t.Error("outline cells should be owned, interior not")
	}
}

func TestFillInside(t *testing.T) {
	buf := cellbuf.New(5, 5, 0)
	disk := func(c geom.Point) bool {
		d := c.Sub(geom.Pt(2.5, 2.5))
		return d.X*d.X+d.Y*d.Y <= 1.5*1.5
	}
	FillInside(buf, image.Rect(-3, -3, 30, 30), disk, '█', Pen{Style: 1, Owner: "c"})
	if buf.OwnerAt(2, 2) != "c" || buf.OwnerAt(0, 0) != "" {
		t.Errorf("fill: got\n%v", buf.Text())
	}
}

func TestCellRect(t *testing.T) {
	if got := CellRect(geom.R(1.5, -0.5, 2, 1)); got != image.Rect(1, -1, 4, 1) {
		t.Errorf("CellRect: got %v", got)
	}
}

func TestLabelCentered(t *testing.T) {
	buf := cellbuf.New(9, 1, 0)
	Label(buf, geom.Pt(4.5, 0), "abc", Pen{Style: 1, Owner: "t"})
	if got := buf.Text()[0]; got != "   abc   " {
		t.Errorf("Label: got %q", got)
	}
	if buf.OwnerAt(4, 0) != "t" {
		t.Errorf("Label owner: expected t, got %q", buf.OwnerAt(4, 0))
	}
}
