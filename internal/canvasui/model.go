// Package canvasui is the terminal playground for the spatial core: a
// bubbletea model that selects elements by hit testing, drags them with
// alignment snapping and drives the camera with the wheel and keyboard.
package canvasui

import (
	"image"
	"io"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/drawutil"
	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
	"github.com/wesen/snapcanvas/pkg/tealayout"
	"github.com/wesen/snapcanvas/pkg/viewport"
)

const (
	toolbarH   = 1
	footerH    = 1
	inspectorW = 30
	panCells   = 4
)

// Options configure a Model. Zero values fall back to the package
// defaults.
type Options struct {
	Camera   viewport.Config
	Align    align.Options
	Grid     drawutil.Grid
	HideGrid bool
	Logger   *log.Logger
}

// DefaultOptions mirrors the defaults of the core packages.
func DefaultOptions() Options {
	return Options{
		Camera: viewport.DefaultConfig(),
		Align:  align.DefaultOptions(),
		Grid:   drawutil.DefaultGrid(),
	}
}

// dragMode tells what a pressed button is moving.
type dragMode int

const (
	dragNone dragMode = iota
	dragElements
	dragPan
)

type dragState struct {
	Mode  dragMode
	IDs   []string
	Press image.Point // canvas cell of the press
	Last  image.Point
	// Moved is the world offset already applied to the store.
	Moved geom.Point
}

// Model is the main application state.
type Model struct {
	Width, Height  int
	MouseX, MouseY int

	Store    *scene.Store
	Camera   *viewport.Camera
	Engine   *align.Engine
	Grid     drawutil.Grid
	ShowGrid bool

	Selected []string
	Guides   align.Result
	Drag     dragState
	// Stack is the hit list under the last click, for tab cycling.
	Stack []string

	Edit   editState
	Status string

	log    *log.Logger
	fitted bool
}

// NewModel creates a playground over store.
func NewModel(store *scene.Store, opts Options) Model {
	if opts.Camera.MaxZoom == 0 {
		opts.Camera = viewport.DefaultConfig()
	}
	if opts.Align.BaseThreshold == 0 {
		disabled := opts.Align.Disabled
		opts.Align = align.DefaultOptions()
		opts.Align.Disabled = disabled
	}
	if len(opts.Grid.Levels) == 0 && opts.Grid.Minor == 0 {
		opts.Grid = drawutil.DefaultGrid()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if store == nil {
		store = scene.NewStore()
	}
	return Model{
		Store:    store,
		Camera:   viewport.NewCamera(opts.Camera),
		Engine:   align.NewEngine(opts.Align),
		Grid:     opts.Grid,
		ShowGrid: !opts.HideGrid,
		Guides:   align.Identity(),
		log:      logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// layout splits the terminal into toolbar, footer, inspector and canvas.
func (m Model) layout() tealayout.Layout {
	return tealayout.NewBuilder(m.Width, m.Height).
		Dock(tealayout.Top, "toolbar", toolbarH).
		Dock(tealayout.Bottom, "footer", footerH).
		Dock(tealayout.Right, "inspector", inspectorW).
		Fill("canvas").
		Build()
}

// canvasRect is the terminal rectangle of the canvas region.
func (m Model) canvasRect() image.Rectangle {
	return m.layout().Get("canvas").Rect
}

// resize keeps the camera's pixel size in step with the canvas region.
// The first resize fits the scene.
func (m *Model) resize() {
	r := m.canvasRect()
	size := CanvasSize(r.Dx(), r.Dy())
	m.Camera.SetSize(size.W, size.H)
	if !m.fitted && r.Dx() > 0 && r.Dy() > 0 {
		m.fitted = true
		m.fit()
	}
}

func (m *Model) fit() {
	bounds, ok := m.Store.ContentBounds()
	if !ok {
		m.Camera.Reset()
		return
	}
	m.Camera.FitToView(bounds, m.Camera.Config().FitPadding)
	m.log.Debug("fit to view", "bounds", bounds, "zoom", m.Camera.State().Zoom)
}
