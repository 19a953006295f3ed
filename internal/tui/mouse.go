package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/tui/layout"
)

// hit is what lies under the pointer.
type hit struct {
	row  int // row index, -1 if none
	zone layout.Zone
	drop dropZone
}

// hitTest maps screen coordinates onto the layout drawn by renderView.
func (a App) hitTest(x, y int) hit {
	cfg := a.layoutConfig.List
	h := hit{row: -1}

	top := cfg.HeaderLines
	height := a.listHeight()
	// top+height is the detail line.
	switch {
	case y == top+height+1:
		h.drop = dropTrash
		return h
	case y == top+height+2:
		h.drop = dropForm
		return h
	case y < top || y >= top+height:
		return h
	}

	i := a.offset + y - top
	if i >= len(a.rows) {
		return h
	}
	h.row = i
	h.zone = layout.RowZone(x, a.rows[i].Depth, cfg)
	return h
}

// handleMouse turns press, motion and release into drag gestures.
func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		a.setCursor(a.cursor - 1)
		return a, nil
	case msg.Button == tea.MouseButtonWheelDown:
		a.setCursor(a.cursor + 1)
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			a.mousePress(msg.X, msg.Y)
		}
		return a, nil

	case tea.MouseActionMotion:
		if a.drag.Active() {
			a.mouseMotion(msg.X, msg.Y)
		}
		return a, nil

	case tea.MouseActionRelease:
		if a.drag.Active() {
			return a.mouseRelease(msg.X, msg.Y)
		}
	}
	return a, nil
}

// mousePress selects the row under the pointer and picks it up. A press on
// the toggle glyph folds the row instead.
func (a *App) mousePress(x, y int) {
	a.clearMessage()
	h := a.hitTest(x, y)
	if h.row < 0 {
		return
	}
	row := a.rows[h.row]
	a.setCursor(h.row)

	if h.zone == layout.ZoneToggle && row.HasChildren {
		a.setCollapsed(row.ID, !row.Collapsed)
		return
	}
	a.drag.Begin(row.ID, pressOrigin(row, h.zone))
}

// pressOrigin returns the node whose drag handle lies under the pointer.
// The toggle column is a control of its own, so a press there has no
// origin and Begin refuses it.
func pressOrigin(row Row, zone layout.Zone) model.NodeID {
	if zone == layout.ZoneToggle {
		return model.RootID
	}
	return row.ID
}

// mouseMotion updates hover feedback. The gutter targets the slot before a
// row, the rest of the row targets the row itself.
func (a *App) mouseMotion(x, y int) {
	h := a.hitTest(x, y)
	a.dropZone = h.drop
	if h.row < 0 {
		a.drag.Leave()
		return
	}

	row := a.rows[h.row]
	if h.zone == layout.ZoneGutter {
		a.drag.Over(row.Parent, row.ID)
		return
	}
	a.drag.Over(row.ID, model.Last)
}

// mouseRelease completes the gesture. Releasing on the picked-up row is a
// click and leaves the tree alone.
func (a App) mouseRelease(x, y int) (tea.Model, tea.Cmd) {
	source, _ := a.drag.Source()
	h := a.hitTest(x, y)

	switch {
	case h.drop == dropTrash:
		return a.dropOnTrash()

	case h.drop == dropForm:
		return a.dropOnForm()

	case h.row < 0:
		a.drag.Cancel()
		a.dropZone = dropNone
		return a, nil
	}

	row := a.rows[h.row]
	if row.ID == source {
		a.drag.Cancel()
		a.dropZone = dropNone
		return a, nil
	}
	if h.zone == layout.ZoneGutter {
		return a.finishDrop(a.drag.DropBefore(row.ID), source), nil
	}
	return a.finishDrop(a.drag.Drop(row.ID, model.Last), source), nil
}
