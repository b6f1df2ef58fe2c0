package drawutil

import (
	"math"

	"github.com/wesen/snapcanvas/pkg/cellbuf"
	"github.com/wesen/snapcanvas/pkg/geom"
)

// GridLevel is one zoom band of the background grid, in world units.
type GridLevel struct {
	Below float64 // the level applies when zoom < Below
	Minor float64
	Major float64
}

// Grid selects grid spacing by zoom.
type Grid struct {
	// Levels ordered by ascending Below; the first match wins.
	Levels  []GridLevel
	Minor   float64 // spacing when no level matches
	Major   float64
	MinorAt float64 // minor dots are hidden below this zoom
}

// DefaultGrid returns 20/100 spacing, widening to 40/200 below zoom 0.5
// and 80/400 below 0.25. Minor dots are hidden below zoom 0.3.
func DefaultGrid() Grid {
	return Grid{
		Levels: []GridLevel{
			{Below: 0.25, Minor: 80, Major: 400},
			{Below: 0.5, Minor: 40, Major: 200},
		},
		Minor:   20,
		Major:   100,
		MinorAt: 0.3,
	}
}

// Spacing returns the minor and major spacing at zoom and whether minor
// dots are shown.
func (g Grid) Spacing(zoom float64) (minor, major float64, showMinor bool) {
	minor, major = g.Minor, g.Major
	for _, l := range g.Levels {
		if zoom < l.Below {
			minor, major = l.Minor, l.Major
			break
		}
	}
	return minor, major, zoom >= g.MinorAt
}

// Projection maps between world space and fractional cell space.
type Projection interface {
	WorldToCell(p geom.Point) geom.Point
	CellToWorld(p geom.Point) geom.Point
}

// maxGridLines bounds the work per axis when spacing is tiny on screen.
const maxGridLines = 512

// Draw puts a '·' at every minor intersection and a '+' at every major
// one that falls inside buf.
func (g Grid) Draw(buf *cellbuf.Buffer, proj Projection, zoom float64, minorStyle, majorStyle cellbuf.StyleKey) {
	minor, major, showMinor := g.Spacing(zoom)
	step := minor
	if !showMinor {
		step = major
	}
	if !(step > 0) {
		return
	}
	tl := proj.CellToWorld(geom.Pt(0, 0))
	br := proj.CellToWorld(geom.Pt(float64(buf.W), float64(buf.H)))
	xs := gridLines(tl.X, br.X, step)
	ys := gridLines(tl.Y, br.Y, step)
	for _, wy := range ys {
		for _, wx := range xs {
			c := Cell(proj.WorldToCell(geom.Pt(wx, wy)))
			if onLine(wx, major) && onLine(wy, major) {
				buf.Set(c.X, c.Y, '+', majorStyle)
			} else {
				buf.Set(c.X, c.Y, '·', minorStyle)
			}
		}
	}
}

func gridLines(from, to, step float64) []float64 {
	if from > to {
		from, to = to, from
	}
	first := math.Ceil(from / step)
	var out []float64
	for i := 0.0; i < maxGridLines; i++ {
		v := (first + i) * step
		if v >= to {
			break
		}
		out = append(out, v)
	}
	return out
}

func onLine(v, spacing float64) bool {
	if !(spacing > 0) {
		return false
	}
	r := math.Mod(math.Abs(v), spacing)
	return r < 1e-6 || spacing-r < 1e-6
}
