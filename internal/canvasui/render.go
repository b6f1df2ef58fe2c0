package canvasui

import (
	"cmp"
	"image"
	"slices"

	"charm.land/lipgloss/v2"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/cellbuf"
	"github.com/wesen/snapcanvas/pkg/drawutil"
	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/hittest"
	"github.com/wesen/snapcanvas/pkg/scene"
	"github.com/wesen/snapcanvas/pkg/tealayout"
	"github.com/wesen/snapcanvas/pkg/viewport"
)

// fillChars per shape; text is opaque but blank.
var fillChars = map[geom.Shape]rune{
	geom.ShapeRectangle:   '░',
	geom.ShapeRoundedRect: '░',
	geom.ShapeCircle:      '▒',
	geom.ShapeTriangle:    '▒',
	geom.ShapeImage:       '▚',
	geom.ShapeText:        ' ',
}

// renderCanvas draws grid, elements, selection and guidelines into a
// buffer of w×h cells. Each painted cell is owned by the top-level id a
// click there would select.
func renderCanvas(m Model, w, h int) *cellbuf.Buffer {
	buf := cellbuf.New(w, h, styleBG)
	if w == 0 || h == 0 {
		return buf
	}
	proj := ProjectionFor(m.Camera)

	if m.ShowGrid {
		m.Grid.Draw(buf, proj, proj.State.Zoom, styleGrid, styleGridMajor)
	}

	elements := m.Store.Elements()
	idx := scene.IndexOf(elements)
	vb := m.Camera.VisibleBounds()

	ordered := slices.Clone(elements)
	slices.SortStableFunc(ordered, func(a, b scene.Element) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
	for _, el := range ordered {
		if el.Type == scene.TypeGroup {
			continue
		}
		root, visible := scene.RootOf(elements, idx, el)
		if !visible {
			continue
		}
		if !viewport.IsRectVisible(geom.Box(el.Geometry()).AABB(), vb) {
			continue
		}
		drawElement(buf, proj, el, root)
	}

	for _, id := range m.Selected {
		if i, ok := idx[id]; ok {
			drawSelection(buf, proj, elements[i])
		}
	}
	drawGuides(buf, proj, m.Guides)
	return buf
}

func drawElement(buf *cellbuf.Buffer, proj Projection, el scene.Element, owner string) {
	g := el.Geometry()
	box := geom.Box(g)
	shape := g.Shape

	// fill by testing each cell center against the unrotated shape
	inverse := g
	inverse.Rotation = -g.Rotation
	unrotate := geom.RotatorFor(inverse)
	inside := func(center geom.Point) bool {
		return hittest.Contains(el, unrotate.Apply(proj.CellToWorld(center)))
	}
	cells := drawutil.CellRect(proj.WorldRectToCells(box.AABB()))
	fill := drawutil.Pen{Style: shapeFill(shape), Owner: owner}
	if shape == geom.ShapeText {
		fill.Style = styleBG
	}
	drawutil.FillInside(buf, cells, inside, fillChars[shape], fill)

	outline := drawutil.Pen{Style: shapeOutline(shape), Owner: owner}
	switch shape {
	case geom.ShapeRectangle, geom.ShapeImage:
		drawutil.DrawPolygon(buf, cornersToCells(proj, box.Corners[:]), outline)
	case geom.ShapeRoundedRect:
		pts := cornersToCells(proj, box.Corners[:])
		drawutil.DrawPolygon(buf, pts, outline)
		for _, p := range pts {
			c := drawutil.Cell(p)
			buf.Paint(c.X, c.Y, '•', outline.Style, owner)
		}
	case geom.ShapeTriangle:
		drawutil.DrawPolygon(buf, cornersToCells(proj, triangleCorners(g)), outline)
	}

	if el.Label != "" {
		drawutil.Label(buf, proj.WorldToCell(box.Center), el.Label, drawutil.Pen{Style: styleLabel, Owner: owner})
	}
}

// triangleCorners returns apex, bottom-right and bottom-left of the
// triangle inscribed in g, rotated with it.
func triangleCorners(g geom.Geometry) []geom.Point {
	r := g.Rect()
	rot := geom.RotatorFor(g)
	return []geom.Point{
		rot.Apply(geom.Pt(r.X+r.Width/2, r.Y)),
		rot.Apply(geom.Pt(r.Right(), r.Bottom())),
		rot.Apply(geom.Pt(r.X, r.Bottom())),
	}
}

func cornersToCells(proj Projection, pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = proj.WorldToCell(p)
	}
	return out
}

func drawSelection(buf *cellbuf.Buffer, proj Projection, el scene.Element) {
	corners := geom.Box(el.Geometry()).Corners
	pen := drawutil.Pen{Style: styleSelection, Owner: el.ID}
	drawutil.DrawPolygon(buf, cornersToCells(proj, corners[:]), pen)
}

func drawGuides(buf *cellbuf.Buffer, proj Projection, res align.Result) {
	for _, l := range res.VerticalLines {
		drawutil.DrawLine(buf, proj.WorldToCell(l.Start), proj.WorldToCell(l.End),
			drawutil.Pen{Style: styleGuide, Char: '┆'})
	}
	for _, l := range res.HorizontalLines {
		drawutil.DrawLine(buf, proj.WorldToCell(l.Start), proj.WorldToCell(l.End),
			drawutil.Pen{Style: styleGuide, Char: '┄'})
	}
}

// buildCanvasLayer renders the canvas region into a background layer and
// returns the buffer for hover lookups.
func buildCanvasLayer(m Model, region tealayout.Region) (*lipgloss.Layer, *cellbuf.Buffer) {
	buf := renderCanvas(m, region.Rect.Dx(), region.Rect.Dy())
	return tealayout.ContentLayer(region, buf.Render(bufStyles), tealayout.ZBackground), buf
}

// hoverOwner returns the element id painted under the terminal cell p.
func hoverOwner(buf *cellbuf.Buffer, region tealayout.Region, p image.Point) string {
	if !region.Contains(p) {
		return ""
	}
	l := region.Local(p)
	return buf.OwnerAt(l.X, l.Y)
}
