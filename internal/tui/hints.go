package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move h:collapse".
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "enter confirm  esc cancel".
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (enter, space, etc.)
	System []Hint // System hints (?, q, esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		if a.drag.Active() {
			return a.getDragHints()
		}
		return a.getNormalModeHints()
	case ModeSearch:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "enter", Desc: "apply"}},
			System: []Hint{{Key: "esc", Desc: "clear"}},
		}
	case ModeForm:
		return HintSet{
			Nav:    []Hint{{Key: "tab", Desc: "next"}},
			Action: []Hint{{Key: "enter", Desc: "save"}},
			System: []Hint{{Key: "esc", Desc: "cancel"}},
		}
	case ModeMove:
		return HintSet{
			Nav:    []Hint{{Key: "↑/↓", Desc: "nav"}, {Key: "type", Desc: "filter"}},
			Action: []Hint{{Key: "enter", Desc: "move"}},
			System: []Hint{{Key: "esc", Desc: "cancel"}},
		}
	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/esc", Desc: "close"}},
		}
	default:
		// Confirm and notice modals carry their own hints.
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal without a drag.
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h/l", Desc: "fold"},
		},
		Action: []Hint{
			{Key: "space", Desc: "grab"},
			{Key: "/", Desc: "search"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "del"},
			{Key: "m", Desc: "move"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if a.filter.Active() {
		hints.System = append([]Hint{{Key: "esc", Desc: "clear search"}}, hints.System...)
	}
	return hints
}

// getDragHints returns hints while a keyboard drag is in progress.
func (a App) getDragHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "target"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "drop into"},
			{Key: "P", Desc: "drop before"},
		},
		Edit: []Hint{
			{Key: "d", Desc: "trash"},
			{Key: "e", Desc: "edit"},
		},
		System: []Hint{
			{Key: "esc", Desc: "cancel"},
		},
	}
}
