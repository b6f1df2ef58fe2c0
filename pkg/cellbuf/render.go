package cellbuf

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Render turns the buffer into a styled string, rows joined by "\n".
// Neighbouring cells that share a StyleKey are rendered as one run, so the
// number of escape sequences grows with style changes rather than width.
// Keys missing from styles render as plain text.
func (b *Buffer) Render(styles map[StyleKey]lipgloss.Style) string {
	if b.W == 0 || b.H == 0 {
		return ""
	}
	lines := make([]string, b.H)
	for y, row := range b.Cells {
		var sb strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].Style == row[start].Style {
				continue
			}
			writeRun(&sb, row[start:x], styles)
			start = x
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}

func writeRun(sb *strings.Builder, run []Cell, styles map[StyleKey]lipgloss.Style) {
	rs := make([]rune, len(run))
	for i, c := range run {
		rs[i] = c.Ch
	}
	s, ok := styles[run[0].Style]
	if !ok {
		sb.WriteString(string(rs))
		return
	}
	sb.WriteString(s.Render(string(rs)))
}
