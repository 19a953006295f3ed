// Package search computes which nodes stay visible under a text query and
// schedules filter passes so rapid typing does not re-filter on every key.
package search

import (
	"sort"
	"strings"

	"github.com/nikbrunner/bmtree/internal/model"
)

// Visibility is the filter decision for one node.
type Visibility struct {
	Matches       bool // own title or description contains the query
	Visible       bool // matches, has a matching descendant, or the query is empty
	ForceExpanded bool // shown open because a descendant matches
}

// Result maps every node to its visibility for one query.
type Result struct {
	Query string
	Nodes map[model.NodeID]Visibility
}

// Visible reports whether id should be rendered.
// Nodes unknown to the result (created after it was computed) are visible.
func (r Result) Visible(id model.NodeID) bool {
	v, ok := r.Nodes[id]
	return !ok || v.Visible
}

// Matches reports whether id matched the query by its own text.
func (r Result) Matches(id model.NodeID) bool {
	return r.Nodes[id].Matches
}

// ForceExpanded returns the IDs that must be expanded, in ascending order.
func (r Result) ForceExpanded() []model.NodeID {
	var out []model.NodeID
	for id, v := range r.Nodes {
		if v.ForceExpanded {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MatchCount returns the number of nodes matching by their own text.
func (r Result) MatchCount() int {
	count := 0
	for _, v := range r.Nodes {
		if v.Matches {
			count++
		}
	}
	return count
}

// Apply evaluates query against every node of t. It does not mutate t.
// Matching is a case-insensitive substring test on title or description.
func Apply(t *model.Tree, query string) Result {
	q := strings.ToLower(query)
	res := Result{
		Query: query,
		Nodes: make(map[model.NodeID]Visibility, t.Len()),
	}

	// visit returns whether n or any of its descendants matches.
	var visit func(n *model.Node) bool
	visit = func(n *model.Node) bool {
		descendantMatch := false
		for _, c := range n.Children() {
			if visit(c) {
				descendantMatch = true
			}
		}

		matches := q == "" || matchesNode(n, q)
		res.Nodes[n.ID()] = Visibility{
			Matches:       matches,
			Visible:       q == "" || matches || descendantMatch,
			ForceExpanded: q != "" && descendantMatch,
		}
		return matches || descendantMatch
	}

	for _, n := range t.Roots() {
		visit(n)
	}
	return res
}

// Expand clears the collapsed flag of every force-expanded node in r.
// Expansion is sticky: clearing the query later does not collapse them again.
func Expand(t *model.Tree, r Result) {
	for _, id := range r.ForceExpanded() {
		_ = t.SetCollapsed(id, false)
	}
}

// matchesNode reports whether n's title or description contains q.
// q must already be lower-case.
func matchesNode(n *model.Node, q string) bool {
	return strings.Contains(strings.ToLower(n.Title()), q) ||
		strings.Contains(strings.ToLower(n.Description()), q)
}
