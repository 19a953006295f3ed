package layout

// Zone is the horizontal region of a tree row under the pointer.
type Zone int

const (
	ZoneGutter Zone = iota // left margin: drop before the row
	ZoneToggle             // expand/collapse glyph
	ZoneBody               // indentation, title and URL: drop into the row
)

// CalculateListHeight computes how many rows fit between header and footer.
// Returns at least MinHeight.
func CalculateListHeight(terminalHeight int, cfg ListConfig) int {
	height := terminalHeight - cfg.HeaderLines - cfg.FooterLines
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// ToggleColumn returns the first cell of the toggle glyph for a row at depth.
func ToggleColumn(depth int, cfg ListConfig) int {
	return cfg.GutterWidth + depth*cfg.IndentWidth
}

// RowZone classifies column x of a row at depth.
func RowZone(x, depth int, cfg ListConfig) Zone {
	if x < cfg.GutterWidth {
		return ZoneGutter
	}
	toggle := ToggleColumn(depth, cfg)
	if x >= toggle && x < toggle+cfg.ToggleWidth {
		return ZoneToggle
	}
	return ZoneBody
}

// ScrollOffset returns the first visible row so that selected stays inside
// a viewport of height rows. The offset only moves when the selection leaves
// the viewport, so rows under a stationary pointer do not shift.
func ScrollOffset(offset, selected, total, height int) int {
	if total <= height {
		return 0
	}
	if selected < offset {
		offset = selected
	}
	if selected >= offset+height {
		offset = selected - height + 1
	}

	maxOffset := total - height
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
