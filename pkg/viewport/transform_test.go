package viewport

import (
	"math"
	"testing"

	"github.com/wesen/snapcanvas/pkg/geom"
	"gonum.org/v1/gonum/floats/scalar"
)

const eps = 1e-9

func near(a, b geom.Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, eps) && scalar.EqualWithinAbs(a.Y, b.Y, eps)
}

var screen = Size{W: 800, H: 600}

// ── Mapping ──

func TestScreenCenterIsCamera(t *testing.T) {
	st := State{X: 120, Y: -40, Zoom: 2.5}
	got := ScreenToWorld(geom.Pt(400, 300), st, screen)
	if !near(got, geom.Pt(120, -40)) {
		t.Errorf("screen center: expected (120,-40), got %v", got)
	}
}

func TestScreenToWorldKnownValues(t *testing.T) {
	tests := []struct {
		name string
		st   State
		in   geom.Point
		want geom.Point
	}{
		{"identity origin", State{Zoom: 1}, geom.Pt(0, 0), geom.Pt(-400, -300)},
		{"zoom 2", State{Zoom: 2}, geom.Pt(600, 300), geom.Pt(100, 0)},
		{"zoom half", State{X: 10, Y: 10, Zoom: 0.5}, geom.Pt(400, 400), geom.Pt(10, 210)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ScreenToWorld(tc.in, tc.st, screen); !near(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	states := []State{
		{Zoom: 1},
		{X: 33.3, Y: -71, Zoom: 0.1},
		{X: -1000, Y: 250, Zoom: 4},
		{X: 5, Y: 5, Zoom: 1.2345},
	}
	pts := []geom.Point{{X: 0, Y: 0}, {X: 799, Y: 1}, {X: 123.5, Y: 456.25}, {X: -50, Y: 900}}
	for _, st := range states {
		for _, p := range pts {
			back := WorldToScreen(ScreenToWorld(p, st, screen), st, screen)
			if !scalar.EqualWithinAbs(back.X, p.X, 1e-6) || !scalar.EqualWithinAbs(back.Y, p.Y, 1e-6) {
				t.Errorf("round trip %v at %+v: got %v", p, st, back)
			}
		}
	}
}

func TestBatchMatchesSingle(t *testing.T) {
	st := State{X: 3, Y: 4, Zoom: 1.5}
	pts := []geom.Point{{X: 1, Y: 2}, {X: 300, Y: 10}}
	world := ScreenToWorldAll(pts, st, screen)
	back := WorldToScreenAll(world, st, screen)
	for i := range pts {
		if world[i] != ScreenToWorld(pts[i], st, screen) {
			t.Errorf("ScreenToWorldAll[%d] differs from ScreenToWorld", i)
		}
		if !near(back[i], pts[i]) {
			t.Errorf("WorldToScreenAll[%d]: expected %v, got %v", i, pts[i], back[i])
		}
	}
	if len(ScreenToWorldAll(nil, st, screen)) != 0 {
		t.Error("empty batch should stay empty")
	}
}

func TestScreenDelta(t *testing.T) {
	dx, dy := ScreenDeltaToWorldDelta(10, -20, State{X: 999, Y: 999, Zoom: 2})
	if dx != 5 || dy != -10 {
		t.Errorf("delta at zoom 2: expected (5,-10), got (%v,%v)", dx, dy)
	}
}

// ── Degenerate zoom ──

func TestNonPositiveZoomIsFinite(t *testing.T) {
	for _, z := range []float64{0, -3, math.NaN()} {
		st := State{Zoom: z}
		p := ScreenToWorld(geom.Pt(10, 10), st, screen)
		if !p.Finite() {
			t.Errorf("zoom %v: ScreenToWorld returned %v", z, p)
		}
		dx, dy := ScreenDeltaToWorldDelta(1, 1, st)
		if math.IsInf(dx, 0) || math.IsNaN(dy) {
			t.Errorf("zoom %v: delta (%v,%v)", z, dx, dy)
		}
		vb := VisibleBoundsOf(st, screen)
		if math.IsNaN(vb.Left) || math.IsInf(vb.Right, 0) {
			t.Errorf("zoom %v: bounds %+v", z, vb)
		}
	}
}

// ── Visible bounds ──

func TestVisibleBounds(t *testing.T) {
	vb := VisibleBoundsOf(State{X: 100, Y: 50, Zoom: 2}, screen)
	want := VisibleBounds{Left: -100, Top: -100, Right: 300, Bottom: 200}
	if vb != want {
		t.Errorf("expected %+v, got %+v", want, vb)
	}
	if vb.Rect() != geom.R(-100, -100, 400, 300) {
		t.Errorf("Rect(): got %v", vb.Rect())
	}
}

func TestVisibility(t *testing.T) {
	vb := VisibleBounds{Left: 0, Top: 0, Right: 100, Bottom: 100}
	rects := []struct {
		r    geom.Rect
		want bool
	}{
		{geom.R(10, 10, 5, 5), true},
		{geom.R(-10, -10, 10, 10), true}, // touches the corner
		{geom.R(101, 0, 5, 5), false},
		{geom.R(-50, -50, 300, 300), true},
		{geom.R(0, 100.5, 5, 5), false},
	}
	for _, tc := range rects {
		if got := IsRectVisible(tc.r, vb); got != tc.want {
			t.Errorf("IsRectVisible(%v): expected %v, got %v", tc.r, tc.want, got)
		}
	}
	if !IsPointVisible(geom.Pt(100, 0), vb) {
		t.Error("point on the edge should be visible")
	}
	if IsPointVisible(geom.Pt(100.01, 50), vb) {
		t.Error("point outside should not be visible")
	}
}

// ── Zoom anchor ──

func TestZoomAnchorKeepsWorldPoint(t *testing.T) {
	tests := []struct {
		st      State
		newZoom float64
		anchor  geom.Point
	}{
		{State{Zoom: 1}, 2, geom.Pt(100, 100)},
		{State{X: 50, Y: -20, Zoom: 0.5}, 3.7, geom.Pt(799, 0)},
		{State{X: -4, Y: 8, Zoom: 4}, 0.1, geom.Pt(400, 300)},
	}
	for _, tc := range tests {
		before := ScreenToWorld(tc.anchor, tc.st, screen)
		pos := ZoomAnchor(tc.st, tc.newZoom, tc.anchor, screen)
		after := ScreenToWorld(tc.anchor, State{X: pos.X, Y: pos.Y, Zoom: tc.newZoom}, screen)
		if !near(before, after) {
			t.Errorf("anchor %v zoom %v→%v: world moved from %v to %v",
				tc.anchor, tc.st.Zoom, tc.newZoom, before, after)
		}
	}
}

func TestZoomAnchorAtCenterKeepsCamera(t *testing.T) {
	st := State{X: 12, Y: 34, Zoom: 1}
	pos := ZoomAnchor(st, 3, geom.Pt(400, 300), screen)
	if !near(pos, geom.Pt(12, 34)) {
		t.Errorf("center anchor moved camera to %v", pos)
	}
}

// ── Clamp ──

func TestClampToBounds(t *testing.T) {
	bounds := geom.R(0, 0, 2000, 1000)
	tests := []struct {
		name string
		st   State
		want geom.Point
	}{
		{"inside", State{X: 1000, Y: 500, Zoom: 1}, geom.Pt(1000, 500)},
		{"too far left", State{X: -500, Y: 500, Zoom: 1}, geom.Pt(400, 500)},
		{"too far down", State{X: 1000, Y: 5000, Zoom: 1}, geom.Pt(1000, 700)},
		{"zoomed out centers", State{X: 7, Y: 7, Zoom: 0.25}, geom.Pt(1000, 500)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampToBounds(tc.st, screen, bounds); !near(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
