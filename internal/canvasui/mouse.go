package canvasui

import (
	"image"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/snapcanvas/pkg/align"
	"github.com/wesen/snapcanvas/pkg/geom"
	"github.com/wesen/snapcanvas/pkg/hittest"
	"github.com/wesen/snapcanvas/pkg/viewport"
)

// handleMouse processes mouse events and returns updated model + command.
func handleMouse(m Model, msg tea.MouseMsg, canvasRect image.Rectangle) (Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.MouseX = mouse.X
	m.MouseY = mouse.Y

	pt := image.Pt(mouse.X, mouse.Y)
	cell := pt.Sub(canvasRect.Min)
	inside := pt.In(canvasRect)

	switch msg.(type) {
	case tea.MouseWheelMsg:
		if !inside {
			return m, nil
		}
		anchor := ProjectionFor(m.Camera).PointerScreen(cell)
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.Camera.Wheel(-1, anchor)
		case tea.MouseWheelDown:
			m.Camera.Wheel(1, anchor)
		}

	case tea.MouseClickMsg:
		if inside && mouse.Button == tea.MouseLeft {
			m = handleLeftClick(m, cell, mouse.Mod&tea.ModShift != 0)
		}

	case tea.MouseMotionMsg:
		switch m.Drag.Mode {
		case dragElements:
			m = dragTo(m, cell)
		case dragPan:
			d := cell.Sub(m.Drag.Last)
			m.Camera.Pan(float64(d.X*CellW), float64(d.Y*CellH))
			m.Drag.Last = cell
		}

	case tea.MouseReleaseMsg:
		m = endDrag(m)
	}

	return m, nil
}

// handleLeftClick selects the element under the pointer and starts a drag.
// A click on empty canvas starts panning. With additive set the hit
// element is toggled in the selection instead.
func handleLeftClick(m Model, cell image.Point, additive bool) Model {
	world := ProjectionFor(m.Camera).PointerWorld(cell)
	elements := m.Store.Elements()

	m.Stack = hittest.ElementsAt(world, elements)
	id, ok := hittest.HitTest(world, elements)
	if !ok {
		if !additive {
			m.Selected = nil
		}
		m.Drag = dragState{Mode: dragPan, Press: cell, Last: cell}
		return m
	}
	m.log.Debug("hit", "id", id, "world", world, "stack", len(m.Stack))

	switch {
	case additive && slices.Contains(m.Selected, id):
		m.Selected = slices.DeleteFunc(slices.Clone(m.Selected), func(s string) bool { return s == id })
		return m
	case additive:
		m.Selected = append(slices.Clone(m.Selected), id)
	case !slices.Contains(m.Selected, id):
		m.Selected = []string{id}
	}

	m.Drag = dragState{
		Mode:  dragElements,
		IDs:   slices.Clone(m.Selected),
		Press: cell,
		Last:  cell,
	}
	return m
}

// dragTo moves the dragged elements so that they follow the pointer,
// corrected by the alignment engine.
func dragTo(m Model, cell image.Point) Model {
	st := m.Camera.State()
	d := cell.Sub(m.Drag.Press)
	rawX, rawY := viewport.ScreenDeltaToWorldDelta(float64(d.X*CellW), float64(d.Y*CellH), st)

	elements := m.Store.Elements()
	target, ok := align.DragTarget(elements, m.Drag.IDs, rawX-m.Drag.Moved.X, rawY-m.Drag.Moved.Y)
	if !ok {
		m.Drag = dragState{}
		m.Guides = align.Identity()
		return m
	}
	res := m.Engine.Snap(target, elements, m.Drag.IDs, st.Zoom)

	final := geom.Pt(rawX+res.DX, rawY+res.DY)
	step := final.Sub(m.Drag.Moved)
	if step != (geom.Point{}) {
		for _, id := range m.Drag.IDs {
			if err := m.Store.Move(id, step.X, step.Y); err != nil {
				m.log.Warn("drag", "err", err)
			}
		}
	}
	m.Drag.Moved = final
	m.Drag.Last = cell
	m.Guides = res
	return m
}

func endDrag(m Model) Model {
	if m.Drag.Mode == dragElements && m.Drag.Moved != (geom.Point{}) {
		m.log.Info("moved", "ids", m.Drag.IDs, "dx", m.Drag.Moved.X, "dy", m.Drag.Moved.Y)
	}
	m.Drag = dragState{}
	m.Guides = align.Identity()
	return m
}
