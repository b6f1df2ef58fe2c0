package viewport

import (
	"math"

	"github.com/wesen/snapcanvas/pkg/geom"
)

// Config bounds what a Camera may do.
type Config struct {
	MinZoom       float64
	MaxZoom       float64
	DefaultZoom   float64
	ZoomStep      float64
	ZoomInFactor  float64 // wheel multiplier when scrolling up
	ZoomOutFactor float64 // wheel multiplier when scrolling down
	FitPadding    float64 // screen pixels kept free around fitted content
	Bounds        *geom.Rect
}

// DefaultConfig returns the editor's stock zoom limits.
func DefaultConfig() Config {
	return Config{
		MinZoom:       0.1,
		MaxZoom:       4,
		DefaultZoom:   1,
		ZoomStep:      0.1,
		ZoomInFactor:  1.2,
		ZoomOutFactor: 0.9,
		FitPadding:    50,
	}
}

// Camera is the mutable pan/zoom state of one viewport.
type Camera struct {
	cfg   Config
	state State
	size  Size
}

// NewCamera creates a camera at the world origin with the default zoom.
func NewCamera(cfg Config) *Camera {
	c := &Camera{cfg: cfg}
	c.Reset()
	return c
}

// Config returns the camera configuration.
func (c *Camera) Config() Config { return c.cfg }

// State returns the current camera state.
func (c *Camera) State() State { return c.state }

// Size returns the viewport size in pixels.
func (c *Camera) Size() Size { return c.size }

// SetSize records the viewport size in pixels.
func (c *Camera) SetSize(w, h float64) {
	c.size = Size{W: w, H: h}
	c.clamp()
}

// Reset puts the camera back at the origin with the default zoom.
func (c *Camera) Reset() {
	c.state = State{Zoom: c.clampZoom(c.cfg.DefaultZoom)}
	c.clamp()
}

// SetPosition moves the camera center to (x, y) in world space.
func (c *Camera) SetPosition(x, y float64) {
	c.state.X = x
	c.state.Y = y
	c.clamp()
}

// Pan drags the canvas by a screen-space delta. The world follows the
// pointer, so the camera moves the opposite way.
func (c *Camera) Pan(screenDx, screenDy float64) {
	dx, dy := ScreenDeltaToWorldDelta(screenDx, screenDy, c.state)
	c.SetPosition(c.state.X-dx, c.state.Y-dy)
}

// SetZoom changes the zoom around the screen center.
func (c *Camera) SetZoom(zoom float64) {
	c.state.Zoom = c.clampZoom(zoom)
	c.clamp()
}

// SetZoomAt changes the zoom keeping the world point under anchor fixed.
func (c *Camera) SetZoomAt(zoom float64, anchor geom.Point) {
	z := c.clampZoom(zoom)
	if z == c.state.Zoom {
		return
	}
	pos := ZoomAnchor(c.state, z, anchor, c.size)
	c.state = State{X: pos.X, Y: pos.Y, Zoom: z}
	c.clamp()
}

// ZoomBy adds delta to the zoom.
func (c *Camera) ZoomBy(delta float64) { c.SetZoom(c.state.Zoom + delta) }

// ZoomIn steps the zoom up.
func (c *Camera) ZoomIn() { c.ZoomBy(c.cfg.ZoomStep) }

// ZoomOut steps the zoom down.
func (c *Camera) ZoomOut() { c.ZoomBy(-c.cfg.ZoomStep) }

// Wheel applies a scroll-wheel zoom anchored at the pointer. Positive
// deltaY scrolls down and zooms out.
func (c *Camera) Wheel(deltaY float64, anchor geom.Point) {
	f := c.cfg.ZoomInFactor
	if deltaY > 0 {
		f = c.cfg.ZoomOutFactor
	}
	c.SetZoomAt(c.state.Zoom*f, anchor)
}

// FitToView centers content and picks the largest zoom that shows it
// with padding pixels to spare, within the zoom limits. It does nothing
// until the viewport has a size.
func (c *Camera) FitToView(content geom.Rect, padding float64) {
	if c.size.W <= 0 || c.size.H <= 0 {
		return
	}
	availW := c.size.W - 2*padding
	availH := c.size.H - 2*padding
	zoom := c.cfg.MaxZoom
	if content.Width > 0 {
		zoom = math.Min(zoom, availW/content.Width)
	}
	if content.Height > 0 {
		zoom = math.Min(zoom, availH/content.Height)
	}
	center := content.Center()
	c.state = State{X: center.X, Y: center.Y, Zoom: c.clampZoom(zoom)}
	c.clamp()
}

// VisibleBounds returns the world area currently on screen.
func (c *Camera) VisibleBounds() VisibleBounds { return VisibleBoundsOf(c.state, c.size) }

// ScreenToWorld maps a screen point through the current state.
func (c *Camera) ScreenToWorld(p geom.Point) geom.Point { return ScreenToWorld(p, c.state, c.size) }

// WorldToScreen maps a world point through the current state.
func (c *Camera) WorldToScreen(p geom.Point) geom.Point { return WorldToScreen(p, c.state, c.size) }

func (c *Camera) clampZoom(z float64) float64 {
	lo, hi := c.cfg.MinZoom, c.cfg.MaxZoom
	if !(lo > 0) {
		lo = MinSafeZoom
	}
	if hi < lo {
		hi = lo
	}
	if math.IsNaN(z) {
		return lo
	}
	return math.Max(lo, math.Min(hi, z))
}

func (c *Camera) clamp() {
	if c.cfg.Bounds == nil || c.size.W <= 0 || c.size.H <= 0 {
		return
	}
	pos := ClampToBounds(c.state, c.size, *c.cfg.Bounds)
	c.state.X, c.state.Y = pos.X, pos.Y
}
