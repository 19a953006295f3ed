package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/bmtree/internal/model"
)

// PathSeparator joins folder titles in a path.
const PathSeparator = " / "

// FolderMatch is a folder target ranked by fuzzy match.
type FolderMatch struct {
	ID             model.NodeID
	Path           string
	MatchedIndexes []int
	Score          int
}

// FolderPath returns the titles from the top level down to id.
// RootID yields "/".
func FolderPath(t *model.Tree, id model.NodeID) string {
	if id == model.RootID {
		return "/"
	}
	n, ok := t.Get(id)
	if !ok {
		return ""
	}
	ancestors, _ := t.AncestorsOf(id)
	parts := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		if a, ok := t.Get(ancestors[i]); ok {
			parts = append(parts, a.Title())
		}
	}
	parts = append(parts, n.Title())
	return strings.Join(parts, PathSeparator)
}

// folderPaths implements fuzzy.Source for folder targets.
type folderPaths []FolderMatch

func (fp folderPaths) String(i int) string {
	return fp[i].Path
}

func (fp folderPaths) Len() int {
	return len(fp)
}

// MoveTargets lists the root and every folder that source may move into,
// in tree order. Source and its descendants are excluded.
func MoveTargets(t *model.Tree, source model.NodeID) []FolderMatch {
	targets := []FolderMatch{{ID: model.RootID, Path: FolderPath(t, model.RootID)}}
	for _, f := range t.Folders() {
		if f.ID() == source || t.IsDescendant(f.ID(), source) {
			continue
		}
		targets = append(targets, FolderMatch{ID: f.ID(), Path: FolderPath(t, f.ID())})
	}
	return targets
}

// FuzzyFolders ranks the legal move targets for source against query.
// An empty query returns all targets in tree order.
func FuzzyFolders(t *model.Tree, query string, source model.NodeID) []FolderMatch {
	targets := folderPaths(MoveTargets(t, source))
	if query == "" {
		return targets
	}

	matches := fuzzy.FindFrom(query, targets)
	results := make([]FolderMatch, len(matches))
	for i, m := range matches {
		results[i] = targets[m.Index]
		results[i].MatchedIndexes = m.MatchedIndexes
		results[i].Score = m.Score
	}
	return results
}
