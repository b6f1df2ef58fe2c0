// Package cellbuf is the terminal raster the canvas is drawn into: a grid
// of styled runes where each cell also remembers which element painted it.
//
// Styles are opaque keys. The caller maps them to lipgloss styles at
// render time, so the buffer knows nothing about colors.
//
// All runes are assumed to be single-width.
package cellbuf

import "image"

// StyleKey identifies a visual style.
type StyleKey int

// Cell is one terminal character. Owner is the id of the element that
// painted it, empty for background, grid and overlays.
type Cell struct {
	Ch    rune
	Style StyleKey
	Owner string
}

// Buffer is a W×H grid of cells, indexed [row][col].
type Buffer struct {
	W, H  int
	Cells [][]Cell
}

// New creates a buffer of blank cells in style bg. Negative sizes are
// treated as zero.
func New(w, h int, bg StyleKey) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
	}
	b.Fill(bg)
	return b
}

// Bounds returns the buffer area as an image rectangle.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.W, b.H) }

// InBounds reports whether (x, y) is inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Set writes an unowned character. Writes outside the buffer are dropped.
func (b *Buffer) Set(x, y int, ch rune, style StyleKey) {
	b.Paint(x, y, ch, style, "")
}

// Paint writes a character on behalf of owner.
func (b *Buffer) Paint(x, y int, ch rune, style StyleKey, owner string) {
	if b.InBounds(x, y) {
		b.Cells[y][x] = Cell{Ch: ch, Style: style, Owner: owner}
	}
}

// SetString writes s from (x, y) rightwards, clipped to the buffer.
func (b *Buffer) SetString(x, y int, s string, style StyleKey) {
	i := 0
	for _, ch := range s {
		b.Set(x+i, y, ch, style)
		i++
	}
}

// FillRect paints every cell of r that lies inside the buffer.
func (b *Buffer) FillRect(r image.Rectangle, ch rune, style StyleKey, owner string) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.Cells[y][x] = Cell{Ch: ch, Style: style, Owner: owner}
		}
	}
}

// Fill blanks the whole buffer in the given style.
func (b *Buffer) Fill(style StyleKey) {
	b.FillRect(b.Bounds(), ' ', style, "")
}

// OwnerAt returns the element that last painted (x, y).
func (b *Buffer) OwnerAt(x, y int) string {
	if !b.InBounds(x, y) {
		return ""
	}
	return b.Cells[y][x].Owner
}

// Text returns the buffer runes without styling, one line per row.
func (b *Buffer) Text() []string {
	lines := make([]string, b.H)
	for y, row := range b.Cells {
		rs := make([]rune, len(row))
		for x, c := range row {
			rs[x] = c.Ch
		}
		lines[y] = string(rs)
	}
	return lines
}
