package tui

import (
	"testing"

	"github.com/nikbrunner/bmtree/internal/model"
	"github.com/nikbrunner/bmtree/internal/search"
)

func projectTree() (*model.Tree, map[string]model.NodeID) {
	t := model.NewTree()
	ids := map[string]model.NodeID{}
	ids["dev"] = t.Insert(model.RootID, model.Fields{Title: "Dev"})
	ids["go"] = t.Insert(ids["dev"], model.Fields{Title: "Go", URL: "https://go.dev"})
	ids["tour"] = t.Insert(ids["go"], model.Fields{Title: "Tour", URL: "https://go.dev/tour"})
	ids["rust"] = t.Insert(model.RootID, model.Fields{Title: "Rust"})
	return t, ids
}

func titles(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProject(t *testing.T) {
	tree, ids := projectTree()

	rows := Project(tree, search.Apply(tree, ""))
	if got, want := titles(rows), []string{"Dev", "Go", "Tour", "Rust"}; !equalStrings(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}

	depths := []int{0, 1, 2, 0}
	for i, r := range rows {
		if r.Depth != depths[i] {
			t.Errorf("%s depth = %d, want %d", r.Title, r.Depth, depths[i])
		}
		if r.Match {
			t.Errorf("%s marked as match without a query", r.Title)
		}
	}
	if rows[1].Parent != ids["dev"] {
		t.Errorf("Go parent = %d, want %d", rows[1].Parent, ids["dev"])
	}
	if !rows[0].HasChildren || rows[3].HasChildren {
		t.Error("HasChildren not carried into rows")
	}
	if !rows[3].IsFolder() || rows[1].IsFolder() {
		t.Error("IsFolder should follow the URL")
	}
}

func TestProject_CollapsedHidesChildren(t *testing.T) {
	tree, ids := projectTree()
	if err := tree.SetCollapsed(ids["dev"], true); err != nil {
		t.Fatal(err)
	}

	rows := Project(tree, search.Apply(tree, ""))
	if got, want := titles(rows), []string{"Dev", "Rust"}; !equalStrings(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	if !rows[0].Collapsed {
		t.Error("Dev row should be collapsed")
	}
}

func TestProject_FilterKeepsAncestors(t *testing.T) {
	tree, _ := projectTree()

	rows := Project(tree, search.Apply(tree, "tour"))
	if got, want := titles(rows), []string{"Dev", "Go", "Tour"}; !equalStrings(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for _, r := range rows {
		if r.Match != (r.Title == "Tour") {
			t.Errorf("%s Match = %v", r.Title, r.Match)
		}
	}
}

func TestProject_EmptyTree(t *testing.T) {
	tree := model.NewTree()
	if rows := Project(tree, search.Apply(tree, "")); len(rows) != 0 {
		t.Errorf("expected no rows, got %d", len(rows))
	}
}
