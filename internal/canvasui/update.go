package canvasui

import (
	"errors"
	"fmt"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/scene"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()

	case tea.KeyPressMsg:
		if m.Edit.Open {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		if m.Edit.Open {
			return m, nil
		}
		return handleMouse(m, msg, m.canvasRect())
	}

	return m, nil
}

// handleKeys processes keyboard input.
func (m Model) handleKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	step := float64(panCells)

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	// Camera
	case "up":
		m.Camera.Pan(0, step*CellH)
	case "down":
		m.Camera.Pan(0, -step*CellH)
	case "left":
		m.Camera.Pan(step*CellW, 0)
	case "right":
		m.Camera.Pan(-step*CellW, 0)
	case "+", "=":
		m.Camera.ZoomIn()
	case "-":
		m.Camera.ZoomOut()
	case "0":
		m.Camera.Reset()
	case "f":
		m.fit()

	// Scene
	case "g":
		m.groupSelection()
	case "u":
		m.ungroupSelection()
	case "d", "delete", "backspace":
		for _, id := range m.Selected {
			m.Store.Remove(id)
		}
		m.log.Info("removed", "ids", m.Selected)
		m.Selected = nil
	case "tab":
		m.cycleStack()
	case "e":
		return m.openEditModal()

	// Toggles
	case "n":
		m.Engine.Options.Disabled = !m.Engine.Options.Disabled
		m.Status = "snapping " + onOff(!m.Engine.Options.Disabled)
	case "#":
		m.ShowGrid = !m.ShowGrid
		m.Status = "grid " + onOff(m.ShowGrid)

	case "esc", "escape":
		m.Selected = nil
		m.Stack = nil
		m.Guides = align.Identity()
	}

	return m, nil
}

func (m *Model) groupSelection() {
	gid, err := m.Store.Group(m.Selected)
	if err != nil {
		if errors.Is(err, scene.ErrNotGroupable) {
			m.Status = "select two or more top-level elements to group"
		} else {
			m.Status = err.Error()
		}
		return
	}
	m.log.Info("grouped", "group", gid, "members", m.Selected)
	m.Selected = []string{gid}
	m.Status = fmt.Sprintf("grouped %d elements", len(scene.Descendants(m.Store.Elements(), gid)))
}

func (m *Model) ungroupSelection() {
	var released []string
	for _, id := range m.Selected {
		children, err := m.Store.Ungroup(id)
		if err != nil {
			m.log.Debug("ungroup skipped", "id", id, "err", err)
			released = append(released, id)
			continue
		}
		released = append(released, children...)
	}
	if slices.Equal(released, m.Selected) {
		m.Status = "nothing to ungroup"
		return
	}
	m.log.Info("ungrouped", "released", released)
	m.Selected = released
	m.Status = fmt.Sprintf("released %d elements", len(released))
}

// cycleStack selects the next element below the pointer of the last click.
func (m *Model) cycleStack() {
	if len(m.Stack) < 2 {
		return
	}
	next := m.Stack[0]
	if len(m.Selected) == 1 {
		if i := slices.Index(m.Stack, m.Selected[0]); i >= 0 {
			next = m.Stack[(i+1)%len(m.Stack)]
		}
	}
	m.Selected = []string{next}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
