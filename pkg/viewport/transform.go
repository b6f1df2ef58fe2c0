// Package viewport maps between screen pixels and world units for a
// camera that looks at a point of the infinite canvas with a zoom factor.
//
// The package-level functions are pure and safe for concurrent use.
// Camera wraps them with the mutable pan/zoom state an editor keeps.
package viewport

import (
	"math"

	"github.com/wesen/snapcanvas/pkg/geom"
)

// MinSafeZoom replaces a non-positive zoom before any division.
const MinSafeZoom = 1e-6

// State is the camera: the world point at the center of the screen and
// the zoom factor. Camera rotation is not modeled.
type State struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

// Pos returns the camera position.
func (s State) Pos() geom.Point { return geom.Point{X: s.X, Y: s.Y} }

// zoom returns a zoom that is safe to divide by.
func (s State) zoom() float64 {
	if !(s.Zoom > MinSafeZoom) {
		return MinSafeZoom
	}
	return s.Zoom
}

// Size is the viewport size in pixels.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (sz Size) half() geom.Point { return geom.Point{X: sz.W / 2, Y: sz.H / 2} }

// ScreenToWorld converts a screen point to world space:
// (screen - size/2) / zoom + camera.
func ScreenToWorld(p geom.Point, st State, sz Size) geom.Point {
	rel := p.Sub(sz.half())
	z := st.zoom()
	return geom.Point{X: rel.X/z + st.X, Y: rel.Y/z + st.Y}
}

// WorldToScreen is the exact inverse of ScreenToWorld:
// (world - camera) * zoom + size/2.
func WorldToScreen(p geom.Point, st State, sz Size) geom.Point {
	return p.Sub(st.Pos()).Scale(st.zoom()).Add(sz.half())
}

// ScreenToWorldAll converts a batch of screen points.
func ScreenToWorldAll(pts []geom.Point, st State, sz Size) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = ScreenToWorld(p, st, sz)
	}
	return out
}

// WorldToScreenAll converts a batch of world points.
func WorldToScreenAll(pts []geom.Point, st State, sz Size) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = WorldToScreen(p, st, sz)
	}
	return out
}

// ScreenDeltaToWorldDelta scales a pointer movement into world units.
// It ignores the camera position, so use it for drags, not positions.
func ScreenDeltaToWorldDelta(dx, dy float64, st State) (float64, float64) {
	z := st.zoom()
	return dx / z, dy / z
}

// VisibleBounds is the world-space rectangle covered by the screen.
type VisibleBounds struct {
	Left, Top, Right, Bottom float64
}

// Rect returns the bounds as a geom.Rect.
func (vb VisibleBounds) Rect() geom.Rect {
	return geom.Rect{X: vb.Left, Y: vb.Top, Width: vb.Right - vb.Left, Height: vb.Bottom - vb.Top}
}

// VisibleBoundsOf maps all four screen corners to world space and takes
// their extent, so the result stays correct if the camera ever rotates.
func VisibleBoundsOf(st State, sz Size) VisibleBounds {
	corners := ScreenToWorldAll([]geom.Point{
		{X: 0, Y: 0},
		{X: sz.W, Y: 0},
		{X: 0, Y: sz.H},
		{X: sz.W, Y: sz.H},
	}, st, sz)
	r := geom.BoundingBox(corners...)
	return VisibleBounds{Left: r.X, Top: r.Y, Right: r.Right(), Bottom: r.Bottom()}
}

// IsRectVisible reports whether r overlaps the visible bounds. Touching
// counts as visible.
func IsRectVisible(r geom.Rect, vb VisibleBounds) bool {
	return !(r.Right() < vb.Left ||
		r.X > vb.Right ||
		r.Bottom() < vb.Top ||
		r.Y > vb.Bottom)
}

// IsPointVisible reports whether p lies within the visible bounds.
func IsPointVisible(p geom.Point, vb VisibleBounds) bool {
	return p.X >= vb.Left && p.X <= vb.Right &&
		p.Y >= vb.Top && p.Y <= vb.Bottom
}

// ZoomAnchor returns the camera position that keeps the world point
// under the screen point anchor fixed when the zoom changes to newZoom.
func ZoomAnchor(st State, newZoom float64, anchor geom.Point, sz Size) geom.Point {
	world := ScreenToWorld(anchor, st, sz)
	next := State{Zoom: newZoom}
	rel := anchor.Sub(sz.half())
	z := next.zoom()
	return geom.Point{X: world.X - rel.X/z, Y: world.Y - rel.Y/z}
}

// ClampToBounds returns a camera position that keeps the visible area
// inside bounds. An axis on which the visible extent is at least as large
// as bounds is centered instead.
func ClampToBounds(st State, sz Size, bounds geom.Rect) geom.Point {
	z := st.zoom()
	visW := sz.W / z
	visH := sz.H / z
	return geom.Point{
		X: clampAxis(st.X, visW, bounds.X, bounds.Width),
		Y: clampAxis(st.Y, visH, bounds.Y, bounds.Height),
	}
}

func clampAxis(cam, visible, start, extent float64) float64 {
	if visible >= extent {
		return start + extent/2
	}
	lo := start + visible/2
	hi := start + extent - visible/2
	return math.Max(lo, math.Min(hi, cam))
}
