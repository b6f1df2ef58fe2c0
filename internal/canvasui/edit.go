package canvasui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/wesen/snapcanvas/pkg/scene"
	"github.com/wesen/snapcanvas/pkg/tealayout"
)

// editFields are the properties the modal edits, in focus order.
var editFields = []string{"x", "y", "w", "h", "rotation°"}

type editState struct {
	Open   bool
	ID     string
	Inputs []textinput.Model
	Focus  int
	Err    string
}

// openEditModal opens the property editor for the single selected element.
func (m Model) openEditModal() (tea.Model, tea.Cmd) {
	if len(m.Selected) != 1 {
		m.Status = "select one element to edit"
		return m, nil
	}
	el, ok := m.Store.Get(m.Selected[0])
	if !ok {
		return m, nil
	}

	values := []float64{el.X, el.Y, el.Width, el.Height, el.Rotation * 180 / math.Pi}
	inputs := make([]textinput.Model, len(editFields))
	for i := range inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 16
		in.SetValue(strconv.FormatFloat(values[i], 'f', -1, 64))
		inputs[i] = in
	}

	m.Edit = editState{Open: true, ID: el.ID, Inputs: inputs}
	cmd := m.Edit.Inputs[0].Focus()
	return m, cmd
}

// handleEditKeys processes keys when the edit modal is open.
func (m Model) handleEditKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		m.Edit = editState{}
		return m, nil

	case "enter":
		if err := m.applyEdit(); err != nil {
			m.Edit.Err = err.Error()
			return m, nil
		}
		m.Edit = editState{}
		return m, nil

	case "tab", "down":
		return m.focusEdit(m.Edit.Focus + 1)

	case "shift+tab", "up":
		return m.focusEdit(m.Edit.Focus - 1)

	default:
		var cmd tea.Cmd
		inputs := append([]textinput.Model(nil), m.Edit.Inputs...)
		inputs[m.Edit.Focus], cmd = inputs[m.Edit.Focus].Update(msg)
		m.Edit.Inputs = inputs
		return m, cmd
	}
}

func (m Model) focusEdit(i int) (tea.Model, tea.Cmd) {
	n := len(m.Edit.Inputs)
	inputs := append([]textinput.Model(nil), m.Edit.Inputs...)
	inputs[m.Edit.Focus].Blur()
	m.Edit.Focus = ((i % n) + n) % n
	cmd := inputs[m.Edit.Focus].Focus()
	m.Edit.Inputs = inputs
	return m, cmd
}

// applyEdit parses every field and writes them to the element. Nothing
// is written if any field is invalid.
func (m Model) applyEdit() error {
	vals := make([]float64, len(m.Edit.Inputs))
	for i, in := range m.Edit.Inputs {
		v, err := strconv.ParseFloat(strings.TrimSpace(in.Value()), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: not a number", editFields[i])
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return fmt.Errorf("size must not be negative")
	}

	el, ok := m.Store.Get(m.Edit.ID)
	if !ok {
		return fmt.Errorf("element %s is gone", m.Edit.ID)
	}
	// groups carry their children along
	if err := m.Store.Move(el.ID, vals[0]-el.X, vals[1]-el.Y); err != nil {
		return err
	}
	err := m.Store.Update(el.ID, func(e *scene.Element) {
		e.Width = vals[2]
		e.Height = vals[3]
		e.Rotation = vals[4] * math.Pi / 180
	})
	if err != nil {
		return err
	}
	m.log.Info("edited", "id", el.ID, "x", vals[0], "y", vals[1], "w", vals[2], "h", vals[3], "rotation", vals[4])
	return nil
}

// buildEditModalLayer renders the editor as a centered modal layer.
func buildEditModalLayer(m Model) *lipgloss.Layer {
	el, ok := m.Store.Get(m.Edit.ID)
	if !ok {
		return nil
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Background(colorPanelBG).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorPanelBG)

	hintStyle := lipgloss.NewStyle().
		Foreground(colorDim).
		Background(colorPanelBG).
		Italic(true)

	errStyle := lipgloss.NewStyle().
		Foreground(colorWarn).
		Background(colorPanelBG)

	name := el.Label
	if name == "" {
		name = shortID(el.ID)
	}
	lines := []string{
		titleStyle.Render(fmt.Sprintf("EDIT %s %s", el.Shape(), name)),
		"",
	}
	for i, in := range m.Edit.Inputs {
		marker := "  "
		if i == m.Edit.Focus {
			marker = "▸ "
		}
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%s%-10s", marker, editFields[i]))+in.View())
	}
	lines = append(lines, "")
	if m.Edit.Err != "" {
		lines = append(lines, errStyle.Render(m.Edit.Err))
	}
	lines = append(lines, hintStyle.Render("[tab] next  [enter] save  [esc] cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(colorAccent).
		Background(colorPanelBG).
		Width(44).
		Padding(1, 2)

	return tealayout.ModalLayer("edit-modal", strings.Join(lines, "\n"), m.Width, m.Height, box)
}
