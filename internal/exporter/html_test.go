package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nikbrunner/bmtree/internal/importer"
	"github.com/nikbrunner/bmtree/internal/model"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/golden"
)

// sampleTree builds Development{Go{Tour}}, Reading (collapsed), HN.
func sampleTree() *model.Tree {
	tree := model.NewTree()
	dev := tree.Insert(model.RootID, model.Fields{Title: "Development", Color: "#123456", Description: "Work stuff"})
	goNode := tree.Insert(dev, model.Fields{Title: "Go", URL: "https://go.dev"})
	tree.Insert(goNode, model.Fields{Title: "Tour", URL: "https://go.dev/tour"})
	reading := tree.Insert(model.RootID, model.Fields{Title: "Reading"})
	_ = tree.SetCollapsed(reading, true)
	tree.Insert(model.RootID, model.Fields{Title: "Hacker <News>", URL: "https://news.ycombinator.com/?a=1&b=2"})
	return tree
}

// outline renders the tree as indented lines for comparison.
func outline(tree *model.Tree) string {
	var b strings.Builder
	tree.Walk(func(n *model.Node, depth int) bool {
		fmt.Fprintf(&b, "%s%s|%s|%s|%s|%v\n",
			strings.Repeat("  ", depth), n.Title(), n.URL(), n.Color(), n.Description(), n.Collapsed())
		return true
	})
	return b.String()
}

func TestExportHTML_Golden(t *testing.T) {
	golden.Assert(t, ExportHTML(sampleTree()), "tree.golden")
}

func TestExportHTML_EmptyTree(t *testing.T) {
	html := ExportHTML(model.NewTree())

	// Should have basic structure even when empty
	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Bookmarks</TITLE>") {
		t.Error("expected TITLE element")
	}
	if !strings.Contains(html, "<H1>Bookmarks</H1>") {
		t.Error("expected H1 element")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	tree := model.NewTree()
	tree.Insert(model.RootID, model.Fields{
		Title: "Test <script>alert('xss')</script>",
		URL:   "https://example.com?foo=bar&baz=qux",
	})

	html := ExportHTML(tree)

	if strings.Contains(html, "<script>") {
		t.Error("script tag should be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if strings.Contains(html, "foo=bar&baz") {
		t.Error("ampersand should be escaped in URL")
	}
	if !strings.Contains(html, "foo=bar&amp;baz") {
		t.Error("expected escaped ampersand in URL")
	}
}

func TestExportHTML_DefaultColorOmitted(t *testing.T) {
	tree := model.NewTree(model.WithDefaultColor("#abcdef"))
	tree.Insert(model.RootID, model.Fields{Title: "Plain", URL: "https://plain.example"})

	html := ExportHTML(tree)

	if strings.Contains(html, "COLOR=") {
		t.Errorf("default color should not be written:\n%s", html)
	}
}

func TestExportHTML_RoundTrip(t *testing.T) {
	original := sampleTree()

	restored := model.NewTree()
	_, err := importer.ParseHTMLBookmarks(strings.NewReader(ExportHTML(original)), restored, model.RootID)
	assert.NilError(t, err)

	assert.Equal(t, outline(restored), outline(original))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.html")

	assert.NilError(t, WriteFile(sampleTree(), path))

	data, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(data), ExportHTML(sampleTree()))
}

func TestDefaultExportPath(t *testing.T) {
	path, err := DefaultExportPath()
	assert.NilError(t, err)
	assert.Assert(t, strings.HasSuffix(path, ".html"))
	assert.Equal(t, filepath.Base(filepath.Dir(path)), "Downloads")
}
