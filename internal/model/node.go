package model

// NodeID identifies a node for the lifetime of its tree.
type NodeID int64

const (
	// RootID names the implicit root that owns all top-level nodes.
	RootID NodeID = 0

	// Last is passed as the "before" sibling to append at the end.
	Last NodeID = 0
)

// DefaultColor is the node color used when none (or an invalid one) is given.
const DefaultColor = "#eeeeee"

// Fields holds the user-editable values of a node.
type Fields struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// Node is one bookmark or folder in the tree.
// Nodes are created and mutated only through Tree.
type Node struct {
	id          NodeID
	title       string
	url         string
	color       string
	description string
	collapsed   bool

	parent   *Node // nil only for the implicit root
	children []*Node
}

// ID returns the node's identity.
func (n *Node) ID() NodeID { return n.id }

// Title returns the display title.
func (n *Node) Title() string { return n.title }

// URL returns the target URL, empty for folders.
func (n *Node) URL() string { return n.url }

// Color returns the normalized "#rrggbb" color.
func (n *Node) Color() string { return n.color }

// Description returns the hover/search text.
func (n *Node) Description() string { return n.description }

// Collapsed reports whether the node's children are hidden.
func (n *Node) Collapsed() bool { return n.collapsed }

// IsFolder reports whether the node has no URL.
func (n *Node) IsFolder() bool { return n.url == "" }

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Parent returns the parent's ID, RootID for top-level nodes.
func (n *Node) Parent() NodeID {
	if n.parent == nil {
		return RootID
	}
	return n.parent.id
}

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Fields returns a snapshot of the editable values.
func (n *Node) Fields() Fields {
	return Fields{
		Title:       n.title,
		URL:         n.url,
		Color:       n.color,
		Description: n.description,
	}
}

// indexOf returns the position of child among n's children, or -1.
func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// detach unlinks n from its parent.
func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}

// insertAt links child under n at position i (clamped to the end).
func (n *Node) insertAt(child *Node, i int) {
	if i < 0 || i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
}
