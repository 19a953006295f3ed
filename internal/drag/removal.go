package drag

import (
	"fmt"

	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
)

const (
	removePrompt      = "Delete this bookmark?"
	removeChildrenTag = " Its children will also be deleted."
)

// Removal is a pending delete awaiting user confirmation.
type Removal struct {
	tree        *model.Tree
	id          model.NodeID
	title       string
	hasChildren bool
}

// NewRemoval prepares the removal of id and its subtree.
func NewRemoval(t *model.Tree, id model.NodeID) (*Removal, error) {
	n, ok := t.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", model.ErrNotFound, id)
	}
	return &Removal{
		tree:        t,
		id:          id,
		title:       n.Title(),
		hasChildren: n.HasChildren(),
	}, nil
}

// ID returns the node that would be removed.
func (r *Removal) ID() model.NodeID {
	return r.id
}

// Title returns the node's title at the time of the request.
func (r *Removal) Title() string {
	return r.title
}

// HasChildren reports whether the removal takes a subtree with it.
func (r *Removal) HasChildren() bool {
	return r.hasChildren
}

// Message is the confirmation question shown to the user.
func (r *Removal) Message() string {
	if r.hasChildren {
		return removePrompt + removeChildrenTag
	}
	return removePrompt
}

// Confirm deletes the node and its subtree.
func (r *Removal) Confirm() error {
	if err := r.tree.Remove(r.id); err != nil {
		return err
	}
	log.Info(log.CatDrag, "Removal confirmed", "id", r.id, "subtree", r.hasChildren)
	return nil
}
