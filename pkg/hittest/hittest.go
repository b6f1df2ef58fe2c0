// Package hittest finds the element under a world-space point.
//
// Only visible top-level elements take part. Groups are hit through their
// bounding box; a click inside a group selects the group, never a child.
package hittest

import (
	"cmp"
	"slices"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
	"gonum.org/v1/gonum/spatial/r2"
)

// HitTest returns the id of the topmost element containing pt. Higher
// ZIndex wins; among equal ZIndex the earlier element in the slice wins.
func HitTest(pt geom.Point, elements []scene.Element) (string, bool) {
	for _, el := range candidates(elements) {
		if Contains(el, pt) {
			return el.ID, true
		}
	}
	return "", false
}

// ElementsAt returns the ids of every candidate containing pt, topmost
// first.
func ElementsAt(pt geom.Point, elements []scene.Element) []string {
	var out []string
	for _, el := range candidates(elements) {
		if Contains(el, pt) {
			out = append(out, el.ID)
		}
	}
	return out
}

// Contains reports whether pt lies inside a single element's shape. It
// does not look at visibility or group membership.
func Contains(el scene.Element, pt geom.Point) bool {
	switch el.Shape() {
	case geom.ShapeCircle:
		return inCircle(pt, el.Rect())
	case geom.ShapeTriangle:
		return inTriangle(pt, el.Rect())
	default:
		// Rotation is ignored for box-like shapes.
		return el.Rect().Contains(pt)
	}
}

// candidates returns the visible top-level elements, topmost first.
func candidates(elements []scene.Element) []scene.Element {
	out := make([]scene.Element, 0, len(elements))
	for _, el := range elements {
		if el.Visible && el.IsTopLevel() {
			out = append(out, el)
		}
	}
	slices.SortStableFunc(out, func(a, b scene.Element) int {
		return cmp.Compare(b.ZIndex, a.ZIndex)
	})
	return out
}

func inCircle(pt geom.Point, box geom.Rect) bool {
	r := box.Width / 2
	if r <= 0 {
		return false
	}
	d := pt.Sub(box.Center()).Vec()
	return r2.Dot(d, d) <= r*r
}

// inTriangle runs a barycentric test against the isosceles triangle with
// its apex at the top middle and its base along the bottom edge.
func inTriangle(pt geom.Point, box geom.Rect) bool {
	apex := geom.Pt(box.X+box.Width/2, box.Y)
	left := geom.Pt(box.X, box.Bottom())
	right := geom.Pt(box.Right(), box.Bottom())

	e0 := left.Sub(apex).Vec()
	e1 := right.Sub(apex).Vec()
	p := pt.Sub(apex).Vec()

	d00 := r2.Dot(e0, e0)
	d01 := r2.Dot(e0, e1)
	d02 := r2.Dot(e0, p)
	d11 := r2.Dot(e1, e1)
	d12 := r2.Dot(e1, p)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return false
	}
	u := (d11*d02 - d01*d12) / denom
	v := (d00*d12 - d01*d02) / denom
	return u >= 0 && v >= 0 && u+v <= 1
}
