package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmtree/internal/color"
	"github.com/nikbrunner/bmtree/internal/drag"
	"github.com/nikbrunner/bmtree/internal/edit"
	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/tui/layout"
)

const (
	glyphExpanded  = "▾ "
	glyphCollapsed = "▸ "
	glyphCursor    = "> "
	glyphBefore    = "┄┄"
	glyphAccept    = " ✓"
	glyphReject    = " ✗"
)

// renderView draws the tree screen. Line positions must agree with hitTest:
// header, list rows, detail line, trash line, form line, message, hints.
func (a App) renderView() string {
	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeForm, ModeConfirmRemove, ModeMove, ModeNotice:
		return a.renderModal()
	}

	lines := make([]string, 0, a.height)
	lines = append(lines, a.renderTitleBar(), a.renderSearchLine())
	lines = append(lines, a.renderList()...)
	lines = append(lines,
		a.renderDetailLine(),
		a.renderDropZone(dropTrash, "[ trash ] drop here to delete"),
		a.renderDropZone(dropForm, "[ form ] drop here to edit"),
		a.renderMessageLine(),
		a.renderHints(a.getContextualHints()),
	)

	for i, line := range lines {
		lines[i] = layout.TruncateANSIAware(line, a.width, a.layoutConfig.Text)
	}
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, strings.Join(lines, "\n"))
}

// renderTitleBar renders the app name and node count.
func (a App) renderTitleBar() string {
	title := a.styles.Title.Render("bmtree")
	count := a.styles.Empty.Render(fmt.Sprintf("  %d nodes", a.tree.Len()))
	return title + count
}

// renderSearchLine shows the search input while typing, or the applied query.
func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.searchInput.View()
	}
	if a.filter.Active() {
		r := a.filter.Result()
		return a.styles.Help.Render(fmt.Sprintf("/ %s  (%d matches)", a.filter.Query(), r.MatchCount()))
	}
	return ""
}

// renderList renders exactly listHeight lines starting at the scroll offset.
func (a App) renderList() []string {
	height := a.listHeight()
	lines := make([]string, 0, height)

	if len(a.rows) == 0 {
		empty := "(empty) press a to add a bookmark"
		if a.filter.Active() {
			empty = "(no matches)"
		}
		lines = append(lines, a.styles.Empty.Render(strings.Repeat(" ", a.layoutConfig.List.GutterWidth)+empty))
	}

	for i := a.offset; i < len(a.rows) && len(lines) < height; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// renderRow draws one row: gutter, indentation, toggle glyph, then the title
// and URL on the node's color.
func (a App) renderRow(row Row, selected bool) string {
	cfg := a.layoutConfig.List
	hover, hovering := a.drag.Hover()
	source, dragging := a.drag.Source()

	gutter := strings.Repeat(" ", cfg.GutterWidth)
	switch {
	case dragging && hovering && hover.Before == row.ID:
		gutter = a.verdictStyle(hover.Verdict).Render(layout.PadRight(glyphBefore, cfg.GutterWidth))
	case selected:
		gutter = a.styles.Cursor.Render(layout.PadRight(glyphCursor, cfg.GutterWidth))
	}

	indent := strings.Repeat(" ", row.Depth*cfg.IndentWidth)

	toggle := strings.Repeat(" ", cfg.ToggleWidth)
	if row.HasChildren {
		if row.Collapsed {
			toggle = glyphCollapsed
		} else {
			toggle = glyphExpanded
		}
	}

	suffix := ""
	if dragging && hovering && hover.Target == row.ID && hover.Before == model.Last {
		if hover.Verdict == drag.Accept {
			suffix = a.styles.Accept.Render(glyphAccept)
		} else {
			suffix = a.styles.Reject.Render(glyphReject)
		}
	}

	available := a.width - cfg.GutterWidth - len(indent) - cfg.ToggleWidth - layout.VisibleLength(suffix)
	body := a.renderBody(row, available)
	if dragging && row.ID == source {
		body = a.styles.Dragged.Render(layout.StripANSI(body))
	}

	return gutter + indent + toggle + body + suffix
}

// renderBody renders title and URL on the node color, truncated to width.
func (a App) renderBody(row Row, width int) string {
	if width <= 0 {
		return ""
	}
	fg := a.styles.DarkText
	if color.IsDark(row.Color) {
		fg = a.styles.LightText
	}
	base := a.styles.Row.Background(lipgloss.Color(row.Color)).Foreground(fg)

	title, truncated := layout.TruncateText(" "+row.Title+" ", width, a.layoutConfig.Text)
	titleStyle := base
	if row.Match {
		titleStyle = base.Bold(true).Underline(true)
	}
	out := titleStyle.Render(title)
	if truncated || row.URL == "" {
		return out
	}

	rest := width - layout.VisibleLength(title)
	if rest <= 2 {
		return out
	}
	url, _ := layout.TruncateText(row.URL+" ", rest, a.layoutConfig.Text)
	return out + base.Faint(true).Render(url)
}

// renderDetailLine shows the selected row's URL and description. The
// description is otherwise only visible in the edit form.
func (a App) renderDetailLine() string {
	row, ok := a.selectedRow()
	if !ok {
		return ""
	}
	parts := make([]string, 0, 2)
	if row.URL != "" {
		parts = append(parts, a.styles.URL.Render(row.URL))
	}
	if row.Description != "" {
		parts = append(parts, a.styles.Help.Render(row.Description))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Repeat(" ", a.layoutConfig.List.GutterWidth) + strings.Join(parts, "  ")
}

func (a App) verdictStyle(v drag.Verdict) lipgloss.Style {
	if v == drag.Accept {
		return a.styles.Accept
	}
	return a.styles.Reject
}

// renderDropZone renders the trash or form target line. It is only shown
// while a drag is active.
func (a App) renderDropZone(zone dropZone, label string) string {
	if !a.drag.Active() {
		return ""
	}
	indent := strings.Repeat(" ", a.layoutConfig.List.GutterWidth)
	if a.dropZone == zone {
		return indent + a.styles.DropZoneOver.Render(label)
	}
	return indent + a.styles.DropZone.Render(label)
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	if a.messageText == "" {
		return ""
	}

	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderModal renders the current modal dialog.
func (a App) renderModal() string {
	var title, content strings.Builder

	// Industrial style: thick borders, teal accent
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.ModalWidth(a.width, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeForm:
		if a.editor.Mode() == edit.ModeEdit {
			title.WriteString("Edit Bookmark\n\n")
		} else {
			title.WriteString("Add Bookmark\n\n")
		}
		content.WriteString("Title:\n")
		content.WriteString(a.form.TitleInput.View() + "\n\n")
		content.WriteString("URL:\n")
		content.WriteString(a.form.URLInput.View() + "\n\n")
		content.WriteString("Color:\n")
		content.WriteString(a.form.ColorInput.View() + " " + a.renderSwatch(a.form.ColorInput.Value()) + "\n\n")
		content.WriteString("Description:\n")
		content.WriteString(a.form.DescriptionInput.View())

	case ModeConfirmRemove:
		title.WriteString("Delete\n\n")
		if a.removal != nil {
			content.WriteString(lipgloss.NewStyle().Bold(true).Render(a.removal.Title()) + "\n\n")
			content.WriteString(a.removal.Message() + "\n")
		}
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "y", Desc: "delete"},
			{Key: "n", Desc: "cancel"},
		}))

	case ModeNotice:
		title.WriteString("Notice\n\n")
		content.WriteString(a.notice + "\n\n")
		content.WriteString(a.styles.Help.Render("Press any key to continue"))

	case ModeMove:
		content.WriteString(a.picker.View())
	}

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add hints at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-1,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHints(a.getContextualHints()))
}

// renderSwatch previews a color value, or flags it as unparseable.
// Invalid input is saved as the default color.
func (a App) renderSwatch(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	hex, err := color.Normalize(value)
	if err != nil {
		return a.styles.Reject.Render("invalid, default used")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " " + a.styles.Help.Render(hex)
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("h/l    fold/unfold\n")
	left.WriteString("enter  toggle\n")
	left.WriteString("gg     top\n")
	left.WriteString("G      bottom\n")
	left.WriteString("/      search\n")
	left.WriteString("esc    clear search\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("drag") + "\n")
	left.WriteString("space  grab\n")
	left.WriteString("enter  drop into\n")
	left.WriteString("P      drop before\n")
	left.WriteString("d      drop on trash\n")
	left.WriteString("e      drop on form\n")
	left.WriteString("mouse  drag a row\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add\n")
	right.WriteString("e    edit\n")
	right.WriteString("d    delete\n")
	right.WriteString("m    move to folder\n")
	right.WriteString("Y    yank url\n")
	right.WriteString("y    yank handle\n")
	right.WriteString("E    export html\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/q/esc] close"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
