package align

import (
	"slices"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
)

// DraggedIDs expands ids with the descendants of any dragged group. Ids
// that do not name an element are dropped.
func DraggedIDs(elements []scene.Element, ids []string) []string {
	idx := scene.IndexOf(elements)
	var out []string
	seen := make(map[string]bool)
	add := func(id string) {
		if _, ok := idx[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range ids {
		add(id)
		for _, d := range scene.Descendants(elements, id) {
			add(d)
		}
	}
	return out
}

// DragTarget returns the geometry to snap while ids are dragged by
// (dx, dy). A single element keeps its shape and rotation; several
// elements, including a group with its children, collapse to the union of
// their boxes with no rotation. ok is false when no id names an element.
func DragTarget(elements []scene.Element, ids []string, dx, dy float64) (geom.Geometry, bool) {
	dragged := DraggedIDs(elements, ids)
	idx := scene.IndexOf(elements)
	switch len(dragged) {
	case 0:
		return geom.Geometry{}, false
	case 1:
		return elements[idx[dragged[0]]].Geometry().Translate(dx, dy), true
	}
	box := elements[idx[dragged[0]]].Rect()
	for _, id := range dragged[1:] {
		box = box.Union(elements[idx[id]].Rect())
	}
	return geom.Geometry{
		X:      box.X + dx,
		Y:      box.Y + dy,
		Width:  box.Width,
		Height: box.Height,
		Shape:  geom.ShapeRectangle,
	}, true
}

// Snap aligns target against every element not being dragged. exclude
// names the dragged elements; children of dragged groups are excluded too.
// With snapping disabled it returns the identity result.
func (e *Engine) Snap(target geom.Geometry, all []scene.Element, exclude []string, scale float64) Result {
	if e.Options.Disabled {
		return Identity()
	}
	skip := DraggedIDs(all, exclude)
	refs := make([]scene.Element, 0, len(all))
	for _, el := range all {
		if !slices.Contains(skip, el.ID) {
			refs = append(refs, el)
		}
	}
	return e.Compute(target, refs, scale)
}
