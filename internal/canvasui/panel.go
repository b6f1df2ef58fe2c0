package canvasui

import (
	"fmt"
	"image"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/scene"
	"github.com/wesen/snapcanvas/pkg/tealayout"
)

var helpLines = []string{
	"click select  shift+click add",
	"drag move     drag empty pan",
	"wheel zoom    arrows pan",
	"[tab] next under pointer",
	"[g]roup [u]ngroup [d]elete",
	"[e]dit [f]it [0] reset",
	"[n] snap  [#] grid  [q]uit",
}

// inspectorLines describes the selection, camera and snapping state.
func (m Model) inspectorLines(width int) []string {
	rule := strings.Repeat("─", max(width-2, 0))
	var lines []string

	lines = append(lines, "SELECTION", rule)
	lines = append(lines, m.selectionLines()...)

	st := m.Camera.State()
	lines = append(lines, "", "CAMERA", rule,
		fmt.Sprintf(" center  %.0f, %.0f", st.X, st.Y),
		fmt.Sprintf(" zoom    %.0f%%", st.Zoom*100),
	)

	lines = append(lines, "", "SNAP", rule,
		fmt.Sprintf(" %s  threshold %.1f", onOff(!m.Engine.Options.Disabled), m.Engine.Threshold(st.Zoom)),
	)
	if m.Drag.Mode == dragElements {
		lines = append(lines,
			fmt.Sprintf(" dx %+.1f  dy %+.1f", m.Guides.DX, m.Guides.DY),
			fmt.Sprintf(" guides %d│ %d─", len(m.Guides.VerticalLines), len(m.Guides.HorizontalLines)),
		)
	}

	lines = append(lines, "", "HELP", rule)
	for _, h := range helpLines {
		lines = append(lines, " "+h)
	}
	return lines
}

func (m Model) selectionLines() []string {
	switch len(m.Selected) {
	case 0:
		return []string{" (none)"}
	case 1:
	default:
		lines := []string{fmt.Sprintf(" %d elements", len(m.Selected))}
		if r, ok := m.Store.BoundsOf(m.Selected); ok {
			lines = append(lines, rectLine(r))
		}
		return lines
	}

	el, ok := m.Store.Get(m.Selected[0])
	if !ok {
		return []string{" (gone)"}
	}
	lines := []string{
		fmt.Sprintf(" %s %s", el.Shape(), shortID(el.ID)),
		rectLine(el.Rect()),
		fmt.Sprintf(" rot %.1f°  z %d", el.Rotation*180/math.Pi, el.ZIndex),
	}
	if el.Label != "" {
		lines = append(lines, " label "+el.Label)
	}
	if el.Type == scene.TypeGroup {
		lines = append(lines, fmt.Sprintf(" %d children", len(el.Children)))
	}
	return lines
}

func rectLine(r geom.Rect) string {
	return fmt.Sprintf(" %.0f,%.0f  %.0f×%.0f", r.X, r.Y, r.Width, r.Height)
}

// shortID trims generated UUIDs to their first block.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i == 8 {
		return id[:i]
	}
	return id
}

// buildInspectorLayers renders the separator and the inspector panel.
func buildInspectorLayers(m Model, r tealayout.Region) []*lipgloss.Layer {
	if r.Empty() {
		return nil
	}
	body := tealayout.Region{
		Name: r.Name,
		Rect: image.Rect(r.Rect.Min.X+1, r.Rect.Min.Y, r.Rect.Max.X, r.Rect.Max.Y),
	}
	return []*lipgloss.Layer{
		tealayout.SeparatorLayer(r.Rect.Min.X, r.Rect.Min.Y, r.Rect.Dy(), sepStyle),
		tealayout.PanelLayer(body, m.inspectorLines(body.Rect.Dx()), panelStyle),
	}
}
