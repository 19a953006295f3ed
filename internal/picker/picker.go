// Package picker is a fuzzy folder chooser for moving a node without a mouse.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/search"
	"github.com/nikbrunner/bmtree/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Underline(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Picker lists the legal move targets for one node, filtered as the user types.
type Picker struct {
	tree      *model.Tree
	source    model.NodeID
	input     textinput.Model
	results   []search.FolderMatch
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a picker for moving source.
func New(t *model.Tree, source model.NodeID) Picker {
	ti := textinput.New()
	ti.Placeholder = "Filter folders..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	p := Picker{
		tree:   t,
		source: source,
		input:  ti,
		width:  80,
		height: 24,
	}
	p.refresh()
	return p
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, nil

		case tea.KeyEnter:
			if len(p.results) > 0 {
				p.selected = true
			}
			return p, nil

		case tea.KeyDown, tea.KeyCtrlN:
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}
	}

	prev := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != prev {
		p.refresh()
	}
	return p, cmd
}

func (p *Picker) refresh() {
	p.results = search.FuzzyFolders(p.tree, p.input.Value(), p.source)
	p.cursor = 0
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	title := "Move"
	if n, ok := p.tree.Get(p.source); ok {
		title = fmt.Sprintf("Move %q", n.Title())
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s to... (%d folders)", title, len(p.results))))
	b.WriteString("\n\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")

	visible := max(min(p.height-8, layout.DefaultConfig().Modal.MoveMaxVisible), 1)
	start, end := layout.VisibleRange(p.cursor, len(p.results), visible)

	for i := start; i < end; i++ {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(highlight(p.results[i], style))
		b.WriteString("\n")
	}
	if len(p.results) == 0 {
		b.WriteString(hintStyle.Render("  no matching folders"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("↑/↓: move  Enter: choose  Esc: cancel"))

	return b.String()
}

// highlight renders the path with fuzzy-matched characters emphasized.
func highlight(m search.FolderMatch, base lipgloss.Style) string {
	if len(m.MatchedIndexes) == 0 {
		return base.Render(m.Path)
	}
	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}
	var b strings.Builder
	for i, r := range m.Path {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Selected returns the chosen target, or false if nothing was chosen.
func (p Picker) Selected() (model.NodeID, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.results) {
		return model.RootID, false
	}
	return p.results[p.cursor].ID, true
}

// Source returns the node being moved.
func (p Picker) Source() model.NodeID {
	return p.source
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Done reports whether the picker has finished, either way.
func (p Picker) Done() bool {
	return p.cancelled || p.selected
}
