package align

import (
	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
	"gonum.org/v1/gonum/floats/scalar"
)

// SnapType labels what part of a shape a snap point sits on.
type SnapType string

const (
	SnapEdgeLeft   SnapType = "edge-left"
	SnapEdgeRight  SnapType = "edge-right"
	SnapEdgeTop    SnapType = "edge-top"
	SnapEdgeBottom SnapType = "edge-bottom"
	SnapCenter     SnapType = "center"
	SnapVertex     SnapType = "vertex"
)

// SnapPoint is an alignment candidate on a shape's rotated box.
type SnapPoint struct {
	geom.Point
	Type SnapType `json:"type"`
}

// rotationEpsilon is the rotation below which a reference box is treated
// as axis aligned.
const rotationEpsilon = 0.001

// SnapPoints returns the nine canonical points of g's rotated box: the
// corners TL, TR, BR, BL, the edge midpoints top, right, bottom, left, and
// the center. For a triangle the apex and both base corners are vertex
// points.
func SnapPoints(g geom.Geometry) []SnapPoint {
	b := geom.Box(g)
	c := b.Corners
	mid := func(i, j int) geom.Point { return c[i].Add(c[j]).Scale(0.5) }

	pts := []SnapPoint{
		{c[geom.TopLeft], SnapEdgeLeft},
		{c[geom.TopRight], SnapEdgeRight},
		{c[geom.BottomRight], SnapEdgeRight},
		{c[geom.BottomLeft], SnapEdgeLeft},
		{mid(geom.TopLeft, geom.TopRight), SnapEdgeTop},
		{mid(geom.TopRight, geom.BottomRight), SnapEdgeRight},
		{mid(geom.BottomRight, geom.BottomLeft), SnapEdgeBottom},
		{mid(geom.BottomLeft, geom.TopLeft), SnapEdgeLeft},
		{b.Center, SnapCenter},
	}
	if g.Shape == geom.ShapeTriangle {
		pts[geom.BottomRight].Type = SnapVertex
		pts[geom.BottomLeft].Type = SnapVertex
		pts[4].Type = SnapVertex // apex
	}
	return pts
}

// RefBounds returns the box used to prefilter a reference element: its
// rotated AABB when it is noticeably rotated, its plain box otherwise.
func RefBounds(el scene.Element) geom.Rect {
	if scalar.EqualWithinAbs(el.Rotation, 0, rotationEpsilon) {
		return el.Rect()
	}
	return geom.Box(el.Geometry()).AABB()
}
