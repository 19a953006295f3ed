package tui

import (
	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/search"
)

// Row is one rendered line of the tree.
type Row struct {
	ID          model.NodeID
	Parent      model.NodeID
	Depth       int
	Title       string
	URL         string
	Description string
	Color       string
	HasChildren bool
	Collapsed   bool
	Match       bool // matched the active query by its own text
}

// IsFolder returns true if this row is a folder.
func (r Row) IsFolder() bool {
	return r.URL == ""
}

// Project flattens the visible part of t into rows in display order.
// Hidden nodes are skipped with their subtrees; collapsed nodes are shown
// without their children.
func Project(t *model.Tree, r search.Result) []Row {
	var rows []Row
	t.Walk(func(n *model.Node, depth int) bool {
		if !r.Visible(n.ID()) {
			return false
		}
		rows = append(rows, Row{
			ID:          n.ID(),
			Parent:      n.Parent(),
			Depth:       depth,
			Title:       n.Title(),
			URL:         n.URL(),
			Description: n.Description(),
			Color:       n.Color(),
			HasChildren: n.HasChildren(),
			Collapsed:   n.Collapsed(),
			Match:       r.Query != "" && r.Matches(n.ID()),
		})
		return !n.Collapsed()
	})
	return rows
}
