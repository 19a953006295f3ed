package search

import (
	"testing"

	"github.com/nikbrunner/bmtree/internal/model"
)

func TestFolderPath(t *testing.T) {
	tree, ids := sampleTree()

	tests := []struct {
		id   model.NodeID
		want string
	}{
		{model.RootID, "/"},
		{ids["Dev"], "Dev"},
		{ids["Go"], "Dev / Go"},
		{ids["Tour"], "Dev / Go / Tour"},
		{model.NodeID(999), ""},
	}
	for _, tt := range tests {
		if got := FolderPath(tree, tt.id); got != tt.want {
			t.Errorf("FolderPath(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestMoveTargets_ExcludesSourceSubtree(t *testing.T) {
	tree, ids := sampleTree()

	targets := MoveTargets(tree, ids["Dev"])

	got := map[model.NodeID]bool{}
	for _, m := range targets {
		got[m.ID] = true
	}
	if !got[model.RootID] || !got[ids["News"]] {
		t.Errorf("root and News should be targets: %+v", targets)
	}
	if got[ids["Dev"]] || got[ids["Go"]] {
		t.Errorf("Dev and its descendants must be excluded: %+v", targets)
	}
	if got[ids["HN"]] {
		t.Error("bookmarks with a URL are not folder targets")
	}
}

func TestFuzzyFolders(t *testing.T) {
	tree, ids := sampleTree()

	all := FuzzyFolders(tree, "", ids["HN"])
	if len(all) != 4 { // root, Dev, Go, News
		t.Fatalf("expected 4 targets, got %d: %+v", len(all), all)
	}

	matches := FuzzyFolders(tree, "dvgo", ids["HN"])
	if len(matches) == 0 {
		t.Fatal("expected a fuzzy match for dvgo")
	}
	if matches[0].ID != ids["Go"] {
		t.Errorf("best match = %q, want Dev / Go", matches[0].Path)
	}
	if len(matches[0].MatchedIndexes) == 0 {
		t.Error("expected matched indexes")
	}
}
