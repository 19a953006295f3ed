package search

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
)

// Filter holds the active query for a tree and the last computed result.
type Filter struct {
	tree     *model.Tree
	query    string
	result   Result
	debounce *Debouncer
}

// NewFilter creates a Filter with an empty query.
func NewFilter(t *model.Tree, delay time.Duration) *Filter {
	f := &Filter{
		tree:     t,
		debounce: NewDebouncer(delay),
	}
	f.Refresh()
	return f
}

// Query returns the query of the last applied pass.
func (f *Filter) Query() string {
	return f.query
}

// Result returns the last computed result.
func (f *Filter) Result() Result {
	return f.result
}

// Active reports whether a non-empty query is applied.
func (f *Filter) Active() bool {
	return f.query != ""
}

// Type schedules a debounced pass for query.
func (f *Filter) Type(query string) tea.Cmd {
	return f.debounce.Schedule(query)
}

// Fire applies msg if it is the latest scheduled pass.
// Returns false for superseded ticks.
func (f *Filter) Fire(msg DebounceMsg) bool {
	if !f.debounce.Ready(msg) {
		return false
	}
	f.Set(msg.Query)
	return true
}

// Set applies query immediately.
func (f *Filter) Set(query string) {
	f.query = query
	f.Refresh()
}

// Refresh re-applies the current query, e.g. after a tree mutation.
func (f *Filter) Refresh() {
	f.result = Apply(f.tree, f.query)
	Expand(f.tree, f.result)
	log.Debug(log.CatSearch, "Filter pass", "query", f.query, "matches", f.result.MatchCount())
}

// Clear drops the query and any pending pass.
func (f *Filter) Clear() {
	f.debounce.Cancel()
	f.Set("")
}
