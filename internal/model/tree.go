package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nikbrunner/bmtree/internal/color"
	"github.com/nikbrunner/bmtree/internal/log"
)

// Tree owns a forest of bookmark nodes under an implicit root.
// It is not safe for concurrent use; callers on multi-threaded hosts must
// serialize all mutations.
type Tree struct {
	root         *Node
	nodes        map[NodeID]*Node
	last         NodeID
	session      string
	defaultColor string
}

// Option configures a Tree.
type Option func(*Tree)

// WithDefaultColor sets the color used for nodes created without one.
func WithDefaultColor(hex string) Option {
	return func(t *Tree) {
		if normalized, err := color.Normalize(hex); err == nil {
			t.defaultColor = normalized
		}
	}
}

// NewTree creates an empty tree.
func NewTree(opts ...Option) *Tree {
	t := &Tree{
		root:         &Node{id: RootID},
		nodes:        make(map[NodeID]*Node),
		session:      newSessionID(),
		defaultColor: DefaultColor,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// DefaultColor returns the color given to nodes without one.
func (t *Tree) DefaultColor() string {
	return t.defaultColor
}

// Get finds a node by ID.
func (t *Tree) Get(id NodeID) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Roots returns the top-level nodes in order.
func (t *Tree) Roots() []*Node {
	return t.root.Children()
}

// Children returns the children of id in order. RootID yields the roots.
// Unknown IDs yield nil.
func (t *Tree) Children(id NodeID) []*Node {
	n := t.lookup(id)
	if n == nil {
		return nil
	}
	return n.Children()
}

// Folders returns every node without a URL, in pre-order.
func (t *Tree) Folders() []*Node {
	var out []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.IsFolder() {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Walk visits every node in pre-order with its depth (0 for roots).
// Returning false from fn skips that node's subtree.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.children, depth+1)
			}
		}
	}
	walk(t.root.children, 0)
}

// Insert creates a node and appends it as the last child of parent.
// RootID, or a parent that no longer exists, attaches it at the top level.
func (t *Tree) Insert(parent NodeID, f Fields) NodeID {
	p := t.lookup(parent)
	if p == nil {
		log.Warn(log.CatTree, "Insert parent not found, using root", "parent", parent)
		p = t.root
	}

	t.last++
	n := &Node{id: t.last}
	t.apply(n, f)
	p.insertAt(n, -1)
	t.nodes[n.id] = n

	log.Debug(log.CatTree, "Inserted node", "id", n.id, "parent", p.id)
	return n.id
}

// Update replaces the editable fields of id. Identity and links are kept.
func (t *Tree) Update(id NodeID, f Fields) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	t.apply(n, f)
	log.Debug(log.CatTree, "Updated node", "id", id)
	return nil
}

// Move detaches id and inserts it under parent, immediately before the
// sibling before, or last when before is Last. The tree is unchanged on error.
func (t *Tree) Move(id, parent, before NodeID) error {
	if id == RootID {
		return fmt.Errorf("%w: the root cannot be moved", ErrInvalidMove)
	}
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	p := t.lookup(parent)
	if p == nil {
		return fmt.Errorf("%w: target %d", ErrNotFound, parent)
	}
	if parent == id {
		return fmt.Errorf("%w: %d cannot contain itself", ErrInvalidMove, id)
	}
	if t.IsDescendant(parent, id) {
		return fmt.Errorf("%w: %d is inside %d", ErrInvalidMove, parent, id)
	}

	var sibling *Node
	if before != Last {
		sibling = t.nodes[before]
		if sibling == nil || sibling.parent != p {
			return fmt.Errorf("%w: %d is not a child of %d", ErrInvalidMove, before, parent)
		}
		if sibling == n {
			return nil
		}
	}

	n.detach()
	idx := -1
	if sibling != nil {
		idx = p.indexOf(sibling)
	}
	p.insertAt(n, idx)

	log.Debug(log.CatTree, "Moved node", "id", id, "parent", parent, "before", before)
	return nil
}

// Remove deletes id and its whole subtree.
func (t *Tree) Remove(id NodeID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	n.detach()
	removed := 0
	var drop func(*Node)
	drop = func(x *Node) {
		for _, c := range x.children {
			drop(c)
		}
		delete(t.nodes, x.id)
		removed++
	}
	drop(n)

	log.Debug(log.CatTree, "Removed subtree", "id", id, "count", removed)
	return nil
}

// SetCollapsed sets whether id's children are hidden.
func (t *Tree) SetCollapsed(id NodeID, collapsed bool) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	n.collapsed = collapsed
	return nil
}

// ToggleCollapsed flips the collapsed state of id.
func (t *Tree) ToggleCollapsed(id NodeID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	n.collapsed = !n.collapsed
	return nil
}

// AncestorsOf returns the ancestors of id, nearest first.
// The implicit root is not included.
func (t *Tree) AncestorsOf(id NodeID) ([]NodeID, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	var out []NodeID
	for p := n.parent; p != nil && p != t.root; p = p.parent {
		out = append(out, p.id)
	}
	return out, nil
}

// IsDescendant reports whether a lies strictly below b.
// Every node is a descendant of RootID.
func (t *Tree) IsDescendant(a, b NodeID) bool {
	n, ok := t.nodes[a]
	if !ok {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if p.id == b {
			return true
		}
	}
	return false
}

// Handle encodes id as a drag payload bound to this tree.
func (t *Tree) Handle(id NodeID) string {
	return t.session + "/" + strconv.FormatInt(int64(id), 10)
}

// ParseHandle decodes a payload produced by Handle.
func (t *Tree) ParseHandle(s string) (NodeID, error) {
	session, raw, ok := strings.Cut(s, "/")
	if !ok || session != t.session {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPayload, s)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedPayload, s)
	}
	id := NodeID(v)
	if _, ok := t.nodes[id]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return id, nil
}

// lookup resolves id, treating RootID as the implicit root.
func (t *Tree) lookup(id NodeID) *Node {
	if id == RootID {
		return t.root
	}
	return t.nodes[id]
}

// apply copies f onto n, normalizing the color.
func (t *Tree) apply(n *Node, f Fields) {
	n.title = f.Title
	n.url = f.URL
	n.description = f.Description
	n.color = t.defaultColor
	if f.Color != "" {
		if normalized, err := color.Normalize(f.Color); err == nil {
			n.color = normalized
		}
	}
}
