// Package tealayout splits a terminal into named regions and builds the
// lipgloss layers that fill them: bars, panels, separators and modals.
package tealayout

import "image"

// Side is the terminal edge a region is docked to.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

// Region is a named rectangle of terminal cells.
type Region struct {
	Name string
	Rect image.Rectangle
}

// Empty reports whether the region has no cells.
func (r Region) Empty() bool { return r.Rect.Empty() }

// Contains reports whether the terminal cell p lies in the region.
func (r Region) Contains(p image.Point) bool { return p.In(r.Rect) }

// Local converts a terminal cell to region-local coordinates.
func (r Region) Local(p image.Point) image.Point { return p.Sub(r.Rect.Min) }

// Layout is the result of a Builder, in docking order.
type Layout struct {
	W, H    int
	regions []Region
}

// Get returns the named region, or a zero Region.
func (l Layout) Get(name string) Region {
	for _, r := range l.regions {
		if r.Name == name {
			return r
		}
	}
	return Region{}
}

// At returns the region containing the terminal cell p.
func (l Layout) At(p image.Point) (Region, bool) {
	for _, r := range l.regions {
		if r.Contains(p) {
			return r, true
		}
	}
	return Region{}, false
}

// Regions returns all regions in docking order.
func (l Layout) Regions() []Region {
	return append([]Region(nil), l.regions...)
}

// Builder carves regions off the edges of the free area. Each Dock takes
// from what earlier calls left, so order decides which regions span the
// full width or height.
type Builder struct {
	w, h    int
	free    image.Rectangle
	regions []Region
}

// NewBuilder starts a layout for a w×h terminal.
func NewBuilder(w, h int) *Builder {
	w, h = max(w, 0), max(h, 0)
	return &Builder{w: w, h: h, free: image.Rect(0, 0, w, h)}
}

// Dock reserves size rows (Top, Bottom) or columns (Left, Right) from the
// free area. A size larger than what is left takes all of it.
func (b *Builder) Dock(side Side, name string, size int) *Builder {
	f := b.free
	var r image.Rectangle
	switch side {
	case Top:
		size = min(max(size, 0), f.Dy())
		r = image.Rect(f.Min.X, f.Min.Y, f.Max.X, f.Min.Y+size)
		b.free.Min.Y += size
	case Bottom:
		size = min(max(size, 0), f.Dy())
		r = image.Rect(f.Min.X, f.Max.Y-size, f.Max.X, f.Max.Y)
		b.free.Max.Y -= size
	case Left:
		size = min(max(size, 0), f.Dx())
		r = image.Rect(f.Min.X, f.Min.Y, f.Min.X+size, f.Max.Y)
		b.free.Min.X += size
	case Right:
		size = min(max(size, 0), f.Dx())
		r = image.Rect(f.Max.X-size, f.Min.Y, f.Max.X, f.Max.Y)
		b.free.Max.X -= size
	}
	b.regions = append(b.regions, Region{Name: name, Rect: r.Canon()})
	return b
}

// Fill assigns everything still free to name.
func (b *Builder) Fill(name string) *Builder {
	b.regions = append(b.regions, Region{Name: name, Rect: b.free})
	b.free = image.Rectangle{Min: b.free.Min, Max: b.free.Min}
	return b
}

// Build returns the layout. Regions without cells are normalized to the
// zero rectangle.
func (b *Builder) Build() Layout {
	l := Layout{W: b.w, H: b.h, regions: make([]Region, len(b.regions))}
	for i, r := range b.regions {
		if r.Rect.Empty() {
			r.Rect = image.Rectangle{}
		}
		l.regions[i] = r
	}
	return l
}
