// Package scene holds the canvas elements the spatial core reads: an
// element record with id-based group relations and an insertion-ordered
// store with the group/ungroup and marquee queries the editor needs.
package scene

import "github.com/wesen/snapcanvas/pkg/geom"

// Type is the element kind.
type Type string

const (
	TypeShape Type = "shape"
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeGroup Type = "group"
)

// Element is one item on the canvas. Groups reference their children by
// id and children point back through ParentGroup; there are no pointers
// between elements.
type Element struct {
	ID          string     `json:"id"`
	Type        Type       `json:"type"`
	ShapeType   geom.Shape `json:"shapeType,omitempty"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Rotation    float64    `json:"rotation"`
	Visible     bool       `json:"visible"`
	ZIndex      int        `json:"zIndex"`
	ParentGroup string     `json:"parentGroup,omitempty"`
	Children    []string   `json:"children,omitempty"`
	Label       string     `json:"label,omitempty"`
}

// IsTopLevel reports whether the element belongs to no group.
func (e Element) IsTopLevel() bool { return e.ParentGroup == "" }

// Rect returns the unrotated box.
func (e Element) Rect() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// Shape resolves the geometry discriminator from Type and ShapeType.
func (e Element) Shape() geom.Shape {
	switch e.Type {
	case TypeGroup:
		return geom.ShapeGroup
	case TypeText:
		return geom.ShapeText
	case TypeImage:
		return geom.ShapeImage
	}
	if e.ShapeType == "" {
		return geom.ShapeRectangle
	}
	return e.ShapeType
}

// Geometry derives the spatial description of the element.
func (e Element) Geometry() geom.Geometry {
	return geom.Geometry{
		X:        e.X,
		Y:        e.Y,
		Width:    e.Width,
		Height:   e.Height,
		Rotation: e.Rotation,
		Shape:    e.Shape(),
	}
}

// Index maps ids to positions in a slice of elements.
type Index map[string]int

// IndexOf builds an id lookup over els.
func IndexOf(els []Element) Index {
	idx := make(Index, len(els))
	for i, el := range els {
		idx[el.ID] = i
	}
	return idx
}

// Descendants returns the ids reachable from the given group ids through
// Children, depth first. Cycles are cut.
func Descendants(els []Element, ids ...string) []string {
	idx := IndexOf(els)
	seen := make(map[string]bool)
	var out []string
	var walk func(id string)
	walk = func(id string) {
		i, ok := idx[id]
		if !ok {
			return
		}
		for _, child := range els[i].Children {
			if seen[child] {
				continue
			}
			seen[child] = true
			out = append(out, child)
			walk(child)
		}
	}
	for _, id := range ids {
		seen[id] = true
	}
	for _, id := range ids {
		walk(id)
	}
	return out
}

// RootOf walks ParentGroup links from el to its top-level ancestor and
// returns that ancestor's id. visible is false when el or any ancestor is
// hidden. A dangling or cyclic parent link ends the walk.
func RootOf(els []Element, idx Index, el Element) (root string, visible bool) {
	visible = el.Visible
	seen := map[string]bool{el.ID: true}
	for !el.IsTopLevel() {
		i, ok := idx[el.ParentGroup]
		if !ok || seen[el.ParentGroup] {
			break
		}
		el = els[i]
		seen[el.ID] = true
		visible = visible && el.Visible
	}
	return el.ID, visible
}
