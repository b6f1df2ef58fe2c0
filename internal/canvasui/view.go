package canvasui

import (
	"fmt"
	"image"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/snapcanvas/pkg/tealayout"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	layout := m.layout()
	canvasRegion := layout.Get("canvas")

	canvasLayer, buf := buildCanvasLayer(m, canvasRegion)
	hover := hoverOwner(buf, canvasRegion, image.Pt(m.MouseX, m.MouseY))

	layers := []*lipgloss.Layer{
		canvasLayer,
		tealayout.BarLayer(layout.Get("toolbar"), m.toolbarText(), tbStyle),
		tealayout.BarLayer(layout.Get("footer"), m.footerText(canvasRegion, hover), ftStyle),
	}
	layers = append(layers, buildInspectorLayers(m, layout.Get("inspector"))...)

	if m.Edit.Open {
		if l := buildEditModalLayer(m); l != nil {
			layers = append(layers, l)
		}
	}

	comp := lipgloss.NewCompositor(layers...)
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(comp)

	v := tea.NewView(canvas.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

func (m Model) toolbarText() string {
	return fmt.Sprintf(
		" SNAPCANVAS  │  zoom %.0f%%  │  snap %s  │  grid %s  │  %d elements",
		m.Camera.State().Zoom*100,
		onOff(!m.Engine.Options.Disabled),
		onOff(m.ShowGrid),
		m.Store.Len(),
	)
}

func (m Model) footerText(canvas tealayout.Region, hover string) string {
	p := image.Pt(m.MouseX, m.MouseY)
	pos := "-"
	if canvas.Contains(p) {
		w := ProjectionFor(m.Camera).PointerWorld(canvas.Local(p))
		pos = fmt.Sprintf("%.0f, %.0f", w.X, w.Y)
	}
	over := "-"
	if el, ok := m.Store.Get(hover); ok {
		over = shortID(el.ID)
		if el.Label != "" {
			over = el.Label
		}
	}
	s := fmt.Sprintf(" world %s  over %s", pos, over)
	if m.Status != "" {
		s += "  │  " + m.Status
	}
	return s
}
