// Package snapshot rasterizes a scene into an RGBA image, the way the
// playground would show it at a given camera, for previews and golden
// files.
package snapshot

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/drawutil"
	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
	"github.com/wesen/snapcanvas/pkg/viewport"
)

// Options configures a snapshot.
type Options struct {
	Width  int
	Height int
	// View is used as is when its Zoom is positive. Otherwise the camera
	// fits the content with Padding pixels around it.
	View    viewport.State
	Padding float64
	// Limits bounds the fitted zoom. The zero value uses the defaults.
	Limits viewport.Config
	// Grid draws the zoom-adaptive dot grid when set.
	Grid     *drawutil.Grid
	Guides   align.Result
	Selected []string
}

// DefaultOptions returns an 800×600 fitted snapshot without grid.
func DefaultOptions() Options {
	return Options{
		Width:   800,
		Height:  600,
		Padding: viewport.DefaultConfig().FitPadding,
		Limits:  viewport.DefaultConfig(),
		Guides:  align.Identity(),
	}
}

var (
	colorBG        = color.RGBA{0x0b, 0x16, 0x2c, 0xff}
	colorGrid      = color.RGBA{0x1e, 0x33, 0x5a, 0xff}
	colorGridMajor = color.RGBA{0x35, 0x52, 0x85, 0xff}
	colorGuide     = color.RGBA{0xff, 0x4f, 0xa3, 0xff}
	colorSelection = color.RGBA{0xff, 0xd1, 0x66, 0xff}
	colorText      = color.RGBA{0xe6, 0xed, 0xf7, 0xff}

	shapeFill = map[geom.Shape]color.RGBA{
		geom.ShapeRectangle:   {0x1f, 0x4e, 0x8c, 0xff},
		geom.ShapeRoundedRect: {0x1b, 0x6b, 0x75, 0xff},
		geom.ShapeCircle:      {0x6a, 0x3d, 0x9a, 0xff},
		geom.ShapeTriangle:    {0x8c, 0x5a, 0x1f, 0xff},
		geom.ShapeImage:       {0x3a, 0x44, 0x52, 0xff},
	}
	colorOutline = color.RGBA{0x9f, 0xc5, 0xff, 0xff}
)

const (
	outlineWidth = 1.5
	guideWidth   = 1
	guideDash    = 6
	// kappa places cubic control points for a quarter ellipse.
	kappa = 0.5522847498
)

// Camera returns the camera state a snapshot of store would use.
func Camera(store *scene.Store, opts Options) viewport.State {
	if opts.View.Zoom > 0 {
		return opts.View
	}
	limits := opts.Limits
	if limits.MaxZoom == 0 {
		limits = viewport.DefaultConfig()
	}
	cam := viewport.NewCamera(limits)
	cam.SetSize(float64(opts.Width), float64(opts.Height))
	if bounds, ok := store.ContentBounds(); ok {
		cam.FitToView(bounds, opts.Padding)
	}
	return cam.State()
}

// Render draws store into a new image.
func Render(store *scene.Store, opts Options) *image.RGBA {
	w, h := max(opts.Width, 0), max(opts.Height, 0)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBG), image.Point{}, draw.Src)
	if w == 0 || h == 0 {
		return img
	}

	p := &painter{
		img:   img,
		z:     vector.NewRasterizer(w, h),
		state: Camera(store, opts),
		size:  viewport.Size{W: float64(w), H: float64(h)},
	}
	if opts.Grid != nil {
		p.grid(*opts.Grid)
	}

	elements := store.Elements()
	idx := scene.IndexOf(elements)
	vb := viewport.VisibleBoundsOf(p.state, p.size)
	ordered := slices.Clone(elements)
	slices.SortStableFunc(ordered, func(a, b scene.Element) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
	for _, el := range ordered {
		if el.Type == scene.TypeGroup {
			continue
		}
		if _, visible := scene.RootOf(elements, idx, el); !visible {
			continue
		}
		if !viewport.IsRectVisible(geom.Box(el.Geometry()).AABB(), vb) {
			continue
		}
		p.element(el)
	}

	for _, id := range opts.Selected {
		if i, ok := idx[id]; ok {
			c := geom.Box(elements[i].Geometry()).Corners
			p.outline(c[:], outlineWidth*2, colorSelection)
		}
	}
	for _, l := range slices.Concat(opts.Guides.VerticalLines, opts.Guides.HorizontalLines) {
		p.dashed(l.Start, l.End, colorGuide)
	}
	return img
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WriteFile renders store and writes it to path as PNG.
func WriteFile(path string, store *scene.Store, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	return Encode(f, Render(store, opts))
}

// painter holds the per-image rasterizer and projection.
type painter struct {
	img   *image.RGBA
	z     *vector.Rasterizer
	state viewport.State
	size  viewport.Size
}

func (p *painter) screen(w geom.Point) (float32, float32) {
	s := viewport.WorldToScreen(w, p.state, p.size)
	return float32(s.X), float32(s.Y)
}

// fill rasterizes the path built by trace and paints it in c.
func (p *painter) fill(c color.Color, trace func()) {
	b := p.img.Bounds()
	p.z.Reset(b.Dx(), b.Dy())
	trace()
	p.z.Draw(p.img, b, image.NewUniform(c), image.Point{})
}

func (p *painter) polygon(pts []geom.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	p.fill(c, func() {
		p.z.MoveTo(p.screen(pts[0]))
		for _, pt := range pts[1:] {
			p.z.LineTo(p.screen(pt))
		}
		p.z.ClosePath()
	})
}

// segment paints a w pixels wide stroke from a to b, in world space.
func (p *painter) segment(a, b geom.Point, w float64, c color.Color) {
	sa := viewport.WorldToScreen(a, p.state, p.size)
	sb := viewport.WorldToScreen(b, p.state, p.size)
	d := sb.Sub(sa)
	l := math.Hypot(d.X, d.Y)
	if l == 0 {
		return
	}
	n := geom.Pt(-d.Y/l, d.X/l).Scale(w / 2)
	quad := []geom.Point{sa.Add(n), sb.Add(n), sb.Sub(n), sa.Sub(n)}
	p.fill(c, func() {
		p.z.MoveTo(float32(quad[0].X), float32(quad[0].Y))
		for _, q := range quad[1:] {
			p.z.LineTo(float32(q.X), float32(q.Y))
		}
		p.z.ClosePath()
	})
}

func (p *painter) outline(pts []geom.Point, w float64, c color.Color) {
	for i := range pts {
		p.segment(pts[i], pts[(i+1)%len(pts)], w, c)
	}
}

// dashed draws a guideline with screen-space dashes.
func (p *painter) dashed(a, b geom.Point, c color.Color) {
	sa := viewport.WorldToScreen(a, p.state, p.size)
	sb := viewport.WorldToScreen(b, p.state, p.size)
	l := math.Hypot(sb.X-sa.X, sb.Y-sa.Y)
	if l == 0 {
		return
	}
	for t := 0.0; t < l; t += 2 * guideDash {
		t1 := math.Min(t+guideDash, l)
		from := a.Add(b.Sub(a).Scale(t / l))
		to := a.Add(b.Sub(a).Scale(t1 / l))
		p.segment(from, to, guideWidth, c)
	}
}

func (p *painter) element(el scene.Element) {
	g := el.Geometry()
	rot := geom.RotatorFor(g)
	r := g.Rect()
	corners := geom.Box(g).Corners

	switch g.Shape {
	case geom.ShapeRectangle:
		p.polygon(corners[:], shapeFill[g.Shape])
		p.outline(corners[:], outlineWidth, colorOutline)
	case geom.ShapeImage:
		p.polygon(corners[:], shapeFill[g.Shape])
		p.segment(corners[geom.TopLeft], corners[geom.BottomRight], 1, colorOutline)
		p.segment(corners[geom.TopRight], corners[geom.BottomLeft], 1, colorOutline)
		p.outline(corners[:], outlineWidth, colorOutline)
	case geom.ShapeRoundedRect:
		p.roundedRect(r, rot, shapeFill[g.Shape])
	case geom.ShapeCircle:
		p.ellipse(r, rot, shapeFill[g.Shape])
	case geom.ShapeTriangle:
		tri := []geom.Point{
			rot.Apply(geom.Pt(r.X+r.Width/2, r.Y)),
			rot.Apply(geom.Pt(r.Right(), r.Bottom())),
			rot.Apply(geom.Pt(r.X, r.Bottom())),
		}
		p.polygon(tri, shapeFill[g.Shape])
		p.outline(tri, outlineWidth, colorOutline)
	}

	if el.Label != "" {
		p.label(r.Center(), el.Label)
	}
}

// roundedRect traces the box with quadratic corners of radius
// min(w, h)/5.
func (p *painter) roundedRect(r geom.Rect, rot geom.Rotator, c color.Color) {
	rad := math.Min(r.Width, r.Height) / 5
	at := func(x, y float64) (float32, float32) { return p.screen(rot.Apply(geom.Pt(x, y))) }
	p.fill(c, func() {
		p.z.MoveTo(at(r.X+rad, r.Y))
		p.z.LineTo(at(r.Right()-rad, r.Y))
		quadTo(p.z, at, r.Right(), r.Y, r.Right(), r.Y+rad)
		p.z.LineTo(at(r.Right(), r.Bottom()-rad))
		quadTo(p.z, at, r.Right(), r.Bottom(), r.Right()-rad, r.Bottom())
		p.z.LineTo(at(r.X+rad, r.Bottom()))
		quadTo(p.z, at, r.X, r.Bottom(), r.X, r.Bottom()-rad)
		p.z.LineTo(at(r.X, r.Y+rad))
		quadTo(p.z, at, r.X, r.Y, r.X+rad, r.Y)
		p.z.ClosePath()
	})
}

func quadTo(z *vector.Rasterizer, at func(x, y float64) (float32, float32), bx, by, cx, cy float64) {
	x1, y1 := at(bx, by)
	x2, y2 := at(cx, cy)
	z.QuadTo(x1, y1, x2, y2)
}

// ellipse traces the ellipse inscribed in r with four cubic arcs.
func (p *painter) ellipse(r geom.Rect, rot geom.Rotator, c color.Color) {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	rx, ry := r.Width/2, r.Height/2
	kx, ky := rx*kappa, ry*kappa
	at := func(x, y float64) (float32, float32) { return p.screen(rot.Apply(geom.Pt(x, y))) }
	cube := func(x1, y1, x2, y2, x3, y3 float64) {
		ax, ay := at(x1, y1)
		bx, by := at(x2, y2)
		dx, dy := at(x3, y3)
		p.z.CubeTo(ax, ay, bx, by, dx, dy)
	}
	p.fill(c, func() {
		p.z.MoveTo(at(cx+rx, cy))
		cube(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
		cube(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
		cube(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
		cube(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
		p.z.ClosePath()
	})
}

// label draws s centered on the world point c. Text is not scaled with
// the zoom.
func (p *painter) label(c geom.Point, s string) {
	face := basicfont.Face7x13
	sc := viewport.WorldToScreen(c, p.state, p.size)
	width := font.MeasureString(face, s).Ceil()
	m := face.Metrics()
	baseline := int(math.Round(sc.Y)) + (m.Ascent.Ceil()-m.Descent.Ceil())/2
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(colorText),
		Face: face,
		Dot:  fixed.P(int(math.Round(sc.X))-width/2, baseline),
	}
	d.DrawString(s)
}

// grid puts a small square at each grid intersection.
func (p *painter) grid(g drawutil.Grid) {
	minor, major, showMinor := g.Spacing(p.state.Zoom)
	step := minor
	if !showMinor {
		step = major
	}
	if !(step > 0) {
		return
	}
	vb := viewport.VisibleBoundsOf(p.state, p.size)
	if (vb.Right-vb.Left)/step > 2000 || (vb.Bottom-vb.Top)/step > 2000 {
		return
	}
	for wy := math.Ceil(vb.Top/step) * step; wy < vb.Bottom; wy += step {
		for wx := math.Ceil(vb.Left/step) * step; wx < vb.Right; wx += step {
			s := viewport.WorldToScreen(geom.Pt(wx, wy), p.state, p.size)
			x, y := int(math.Round(s.X)), int(math.Round(s.Y))
			c, half := colorGrid, 0
			if onLine(wx, major) && onLine(wy, major) {
				c, half = colorGridMajor, 1
			}
			draw.Draw(p.img, image.Rect(x-half, y-half, x+half+1, y+half+1), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
}

func onLine(v, spacing float64) bool {
	if !(spacing > 0) {
		return false
	}
	r := math.Mod(math.Abs(v), spacing)
	return r < 1e-6 || spacing-r < 1e-6
}
