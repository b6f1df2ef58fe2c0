package canvasui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/wesen/snapcanvas/pkg/cellbuf"
	"github.com/wesen/snapcanvas/pkg/geom"
)

// c is shorthand for lipgloss.Color.
func c(hex string) color.Color { return lipgloss.Color(hex) }

// Blueprint palette.
var (
	colorBG      = c("#0b1020")
	colorPanelBG = c("#131a30")
	colorAccent  = c("#5ec8ff")
	colorGuide   = c("#ff4fa3")
	colorDim     = c("#4a5578")
	colorText    = c("#c8d4f0")
	colorWarn    = c("#ffb347")

	shapeColors = map[geom.Shape]color.Color{
		geom.ShapeRectangle:   c("#7fd1b9"),
		geom.ShapeRoundedRect: c("#9ad27f"),
		geom.ShapeCircle:      c("#f2c14e"),
		geom.ShapeTriangle:    c("#f78154"),
		geom.ShapeText:        c("#e0e6ff"),
		geom.ShapeImage:       c("#b48ead"),
		geom.ShapeGroup:       c("#6c7a9c"),
	}
)

// cellbuf style keys for the canvas layer.
const (
	styleBG cellbuf.StyleKey = iota
	styleGrid
	styleGridMajor
	styleGuide
	styleSelection
	styleLabel
	// shape styles follow, one fill and one outline per shape
	styleShapeBase
)

var shapeOrder = []geom.Shape{
	geom.ShapeRectangle,
	geom.ShapeRoundedRect,
	geom.ShapeCircle,
	geom.ShapeTriangle,
	geom.ShapeText,
	geom.ShapeImage,
	geom.ShapeGroup,
}

func shapeFill(s geom.Shape) cellbuf.StyleKey {
	for i, o := range shapeOrder {
		if o == s {
			return styleShapeBase + cellbuf.StyleKey(2*i)
		}
	}
	return styleShapeBase
}

func shapeOutline(s geom.Shape) cellbuf.StyleKey { return shapeFill(s) + 1 }

// bufStyles maps cellbuf StyleKeys to lipgloss styles for rendering.
var bufStyles = func() map[cellbuf.StyleKey]lipgloss.Style {
	base := lipgloss.NewStyle().Background(colorBG)
	m := map[cellbuf.StyleKey]lipgloss.Style{
		styleBG:        base,
		styleGrid:      base.Foreground(c("#1c2540")),
		styleGridMajor: base.Foreground(c("#2d3a63")),
		styleGuide:     base.Foreground(colorGuide).Bold(true),
		styleSelection: base.Foreground(colorAccent).Bold(true),
		styleLabel:     base.Foreground(colorText).Bold(true),
	}
	for _, s := range shapeOrder {
		fg := shapeColors[s]
		m[shapeFill(s)] = base.Foreground(fg).Faint(true)
		m[shapeOutline(s)] = base.Foreground(fg)
	}
	return m
}()

var (
	tbStyle = lipgloss.NewStyle().
		Background(c("#18213d")).
		Foreground(colorAccent).
		Bold(true)

	ftStyle = lipgloss.NewStyle().
		Background(colorBG).
		Foreground(colorDim)

	panelStyle = lipgloss.NewStyle().
			Background(colorPanelBG).
			Foreground(colorText)

	sepStyle = lipgloss.NewStyle().
			Background(colorBG).
			Foreground(colorDim)
)
