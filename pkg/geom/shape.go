package geom

import "gonum.org/v1/gonum/spatial/r2"

// Shape discriminates how an element's box is interpreted.
type Shape string

const (
	ShapeRectangle   Shape = "rectangle"
	ShapeRoundedRect Shape = "roundedRect"
	ShapeCircle      Shape = "circle"
	ShapeTriangle    Shape = "triangle"
	ShapeText        Shape = "text"
	ShapeImage       Shape = "image"
	ShapeGroup       Shape = "group"
)

// Geometry is the minimal description of an element needed for spatial
// math. Rotation is in radians about the box center.
type Geometry struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Shape    Shape   `json:"shape"`
}

// Rect returns the unrotated box.
func (g Geometry) Rect() Rect { return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height} }

// Center returns the box center. Rotation about the center leaves it fixed.
func (g Geometry) Center() Point { return g.Rect().Center() }

// Translate returns g moved by (dx, dy).
func (g Geometry) Translate(dx, dy float64) Geometry {
	g.X += dx
	g.Y += dy
	return g
}

// Corner indexes into RotatedBox.Corners.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// RotatedBox holds the four corners of a box after rotation about its
// center. Corners are always TL, TR, BR, BL of the unrotated box, which is
// clockwise on a y-down canvas.
type RotatedBox struct {
	Corners [4]Point
	Center  Point
}

// Rotator maps points of a geometry's unrotated frame into world space.
type Rotator struct {
	rot      r2.Rotation
	identity bool
}

// RotatorFor returns the rotation of g about its center.
func RotatorFor(g Geometry) Rotator {
	if g.Rotation == 0 {
		return Rotator{identity: true}
	}
	return Rotator{rot: r2.NewRotation(g.Rotation, g.Center().Vec())}
}

// Apply rotates p. A zero rotation returns p untouched so integer inputs
// stay exact.
func (r Rotator) Apply(p Point) Point {
	if r.identity {
		return p
	}
	return FromVec(r.rot.Rotate(p.Vec()))
}

// Box computes the rotated bounding box of g.
func Box(g Geometry) RotatedBox {
	rot := RotatorFor(g)
	r := g.Rect()
	return RotatedBox{
		Corners: [4]Point{
			rot.Apply(Pt(r.X, r.Y)),
			rot.Apply(Pt(r.Right(), r.Y)),
			rot.Apply(Pt(r.Right(), r.Bottom())),
			rot.Apply(Pt(r.X, r.Bottom())),
		},
		Center: r.Center(),
	}
}

// AABB returns the axis-aligned box over the corners and the center.
func (b RotatedBox) AABB() Rect {
	return BoundingBox(b.Corners[0], b.Corners[1], b.Corners[2], b.Corners[3], b.Center)
}
