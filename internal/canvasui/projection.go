package canvasui

import (
	"image"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/viewport"
)

// Pixel size of one terminal cell. Screen-space values such as the snap
// threshold are expressed in these pixels.
const (
	CellW = 8
	CellH = 16
)

// Projection maps between canvas cells, screen pixels and world space for
// one frame. Cell coordinates are local to the canvas region.
type Projection struct {
	State viewport.State
	Size  viewport.Size
}

// ProjectionFor returns the current projection of cam.
func ProjectionFor(cam *viewport.Camera) Projection {
	return Projection{State: cam.State(), Size: cam.Size()}
}

// CanvasSize is the pixel size of a canvas of cols×rows cells.
func CanvasSize(cols, rows int) viewport.Size {
	return viewport.Size{W: float64(cols * CellW), H: float64(rows * CellH)}
}

// CellToScreen returns the screen pixel at fractional cell p.
func (p Projection) CellToScreen(c geom.Point) geom.Point {
	return geom.Pt(c.X*CellW, c.Y*CellH)
}

// ScreenToCell is the inverse of CellToScreen.
func (p Projection) ScreenToCell(s geom.Point) geom.Point {
	return geom.Pt(s.X/CellW, s.Y/CellH)
}

// WorldToCell projects a world point into fractional cell space.
func (p Projection) WorldToCell(w geom.Point) geom.Point {
	return p.ScreenToCell(viewport.WorldToScreen(w, p.State, p.Size))
}

// CellToWorld maps a fractional cell position back to the world.
func (p Projection) CellToWorld(c geom.Point) geom.Point {
	return viewport.ScreenToWorld(p.CellToScreen(c), p.State, p.Size)
}

// PointerWorld maps the terminal cell under the pointer to the world point
// at its center.
func (p Projection) PointerWorld(cell image.Point) geom.Point {
	return p.CellToWorld(geom.Pt(float64(cell.X)+0.5, float64(cell.Y)+0.5))
}

// PointerScreen is the screen pixel at the center of a pointer cell.
func (p Projection) PointerScreen(cell image.Point) geom.Point {
	return p.CellToScreen(geom.Pt(float64(cell.X)+0.5, float64(cell.Y)+0.5))
}

// WorldRectToCells returns the cell rectangle covering world rect r.
func (p Projection) WorldRectToCells(r geom.Rect) geom.Rect {
	a := p.WorldToCell(geom.Pt(r.X, r.Y))
	b := p.WorldToCell(geom.Pt(r.Right(), r.Bottom()))
	return geom.BoundingBox(a, b)
}
