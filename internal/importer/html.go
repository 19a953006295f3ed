package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
	"golang.org/x/net/html"
)

// Result counts what an import added to the tree.
type Result struct {
	Folders   int
	Bookmarks int
}

// Total returns the number of nodes added.
func (r Result) Total() int {
	return r.Folders + r.Bookmarks
}

// ParseHTMLBookmarks parses Netscape bookmark HTML and inserts its entries
// under parent in document order.
func ParseHTMLBookmarks(r io.Reader, t *model.Tree, parent model.NodeID) (Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	stack := []model.NodeID{parent}
	pending := model.RootID // entry whose children start at the next DL
	last := model.RootID    // entry a following DD describes

	top := func() model.NodeID { return stack[len(stack)-1] }

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				id := t.Insert(top(), model.Fields{
					Title: getTextContent(n),
					Color: getAttr(n, "color"),
				})
				if hasAttr(n, "folded") {
					_ = t.SetCollapsed(id, true)
				}
				res.Folders++
				pending, last = id, id
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}
				title := getTextContent(n)
				if title == "" {
					title = href
				}
				id := t.Insert(top(), model.Fields{
					Title: title,
					URL:   href,
					Color: getAttr(n, "color"),
				})
				res.Bookmarks++
				pending, last = id, id
				return

			case "dd":
				if last != model.RootID {
					if desc := getOwnText(n); desc != "" {
						describe(t, last, desc)
					}
				}
				// A DL following the description is parsed as part of the DD.
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode {
						parse(c)
					}
				}
				return

			case "dl":
				pushed := false
				if pending != model.RootID {
					stack = append(stack, pending)
					pending = model.RootID
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed {
					stack = stack[:len(stack)-1]
				}
				pending, last = model.RootID, model.RootID
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	log.Info(log.CatImport, "Imported bookmarks", "folders", res.Folders, "bookmarks", res.Bookmarks, "parent", parent)
	return res, nil
}

func describe(t *model.Tree, id model.NodeID, desc string) {
	n, ok := t.Get(id)
	if !ok {
		return
	}
	f := n.Fields()
	f.Description = desc
	if err := t.Update(id, f); err != nil {
		log.ErrorErr(log.CatImport, "Failed to set description", err, "id", id)
	}
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getOwnText returns only the direct text children of a node.
func getOwnText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// hasAttr reports whether a boolean attribute such as FOLDED is present.
func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return true
		}
	}
	return false
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
