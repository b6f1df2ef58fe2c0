package tealayout

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Z levels used by the chrome builders.
const (
	ZBackground = 0
	ZContent    = 1
	ZOverlay    = 50
	ZModal      = 100
)

// BarLayer renders a one-line bar such as a toolbar or status line across
// the region. Content wider than the region is cut.
func BarLayer(r Region, content string, style lipgloss.Style) *lipgloss.Layer {
	w := r.Rect.Dx()
	rendered := style.Width(w).MaxWidth(w).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(ZContent).ID(r.Name)
}

// PanelLayer renders lines into the region, padding or cutting them so
// the whole region is painted with style.
func PanelLayer(r Region, lines []string, style lipgloss.Style) *lipgloss.Layer {
	w, h := r.Rect.Dx(), r.Rect.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(ZContent).ID(r.Name)
	}
	rows := make([]string, h)
	for i := range rows {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows[i] = style.Width(w).MaxWidth(w).MaxHeight(1).Render(line)
	}
	return lipgloss.NewLayer(strings.Join(rows, "\n")).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(ZContent).ID(r.Name)
}

// SeparatorLayer draws a vertical rule of height h at (x, y).
func SeparatorLayer(x, y, h int, style lipgloss.Style) *lipgloss.Layer {
	rule := strings.TrimSuffix(strings.Repeat("│\n", max(h, 0)), "\n")
	return lipgloss.NewLayer(style.Render(rule)).X(x).Y(y).Z(ZContent).ID("separator")
}

// ContentLayer places pre-rendered content at the region origin.
func ContentLayer(r Region, content string, z int) *lipgloss.Layer {
	return lipgloss.NewLayer(content).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(r.Name)
}

// ModalLayer renders content in box and centers it on a w×h screen.
func ModalLayer(id, content string, w, h int, box lipgloss.Style) *lipgloss.Layer {
	rendered := box.Render(content)
	x := max((w-lipgloss.Width(rendered))/2, 0)
	y := max((h-lipgloss.Height(rendered))/2, 0)
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(ZModal).ID(id)
}
