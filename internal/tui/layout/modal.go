package layout

// modalMargin keeps a modal's border off the terminal edges.
const modalMargin = 4

// ModalWidth returns the content width of a modal: DefaultWidthPercent of
// the terminal, clamped to [MinWidth, MaxWidth] and never wider than the
// terminal minus the margin.
func ModalWidth(terminalWidth int, cfg ModalConfig) int {
	width := terminalWidth * cfg.DefaultWidthPercent / 100
	width = max(width, cfg.MinWidth)
	width = min(width, cfg.MaxWidth, terminalWidth-modalMargin)
	return max(width, 1)
}

// VisibleRange returns the slice bounds [start, end) of a list of total
// items shown in height lines with selected kept in view. Lists that fit
// are shown whole.
func VisibleRange(selected, total, height int) (start, end int) {
	if height <= 0 {
		return 0, 0
	}
	start = ScrollOffset(0, selected, total, height)
	return start, min(start+height, total)
}
