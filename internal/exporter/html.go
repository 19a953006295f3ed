package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bmtree/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the tree to Netscape bookmark HTML format.
func ExportHTML(t *model.Tree) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, t, t.Roots(), 1)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// WriteFile exports the tree to path, creating parent directories.
func WriteFile(t *model.Tree, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(ExportHTML(t)), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// writeItems writes nodes in order. Folders always get a DL; bookmarks only
// when they have children.
func writeItems(b *strings.Builder, t *model.Tree, nodes []*model.Node, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, n := range nodes {
		attrs := attributes(t, n)
		if n.IsFolder() {
			fmt.Fprintf(b, "%s<DT><H3%s>%s</H3>\n", prefix, attrs, html.EscapeString(n.Title()))
		} else {
			fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"%s>%s</A>\n",
				prefix,
				html.EscapeString(n.URL()),
				attrs,
				html.EscapeString(n.Title()),
			)
		}

		if desc := n.Description(); desc != "" {
			fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(desc))
		}

		if n.IsFolder() || n.HasChildren() {
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)
			writeItems(b, t, n.Children(), indent+1)
			fmt.Fprintf(b, "%s</DL><p>\n", prefix)
		}
	}
}

// attributes renders the optional COLOR and FOLDED attributes.
func attributes(t *model.Tree, n *model.Node) string {
	var attrs string
	if n.Color() != t.DefaultColor() {
		attrs += fmt.Sprintf(" COLOR=\"%s\"", n.Color())
	}
	if n.Collapsed() {
		attrs += " FOLDED"
	}
	return attrs
}
