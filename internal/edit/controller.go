// Package edit routes the bookmark form to create or edit operations on the
// tree.
package edit

import (
	"fmt"
	"strings"

	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
)

// Mode is what a submit will do.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Clearer resets the active search query.
type Clearer interface {
	Clear()
}

// Options configures a Controller.
type Options struct {
	DefaultColor string  // color placed in a fresh buffer
	Search       Clearer // cleared after every submit, may be nil
}

// Controller binds the form buffer to a target node.
type Controller struct {
	tree         *model.Tree
	search       Clearer
	defaultColor string

	mode   Mode
	target model.NodeID
	buffer model.Fields
}

// NewController creates a Controller in create mode.
func NewController(t *model.Tree, opts Options) *Controller {
	c := &Controller{
		tree:         t,
		search:       opts.Search,
		defaultColor: opts.DefaultColor,
	}
	if c.defaultColor == "" {
		c.defaultColor = t.DefaultColor()
	}
	c.reset()
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Target returns the node being edited, RootID in create mode.
func (c *Controller) Target() model.NodeID {
	return c.target
}

// Buffer returns the transient form values.
func (c *Controller) Buffer() model.Fields {
	return c.buffer
}

// SetBuffer replaces the transient form values.
func (c *Controller) SetBuffer(f model.Fields) {
	c.buffer = f
}

// Load copies id's fields into the buffer and switches to edit mode.
func (c *Controller) Load(id model.NodeID) error {
	n, ok := c.tree.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", model.ErrNotFound, id)
	}
	c.mode = ModeEdit
	c.target = id
	c.buffer = n.Fields()
	log.Debug(log.CatEdit, "Loaded node for edit", "id", id)
	return nil
}

// FillFromText places dropped text into the URL field when it looks like a
// URL, otherwise into the title. The tree is not touched.
func (c *Controller) FillFromText(text string) {
	text = strings.TrimSpace(text)
	if IsURL(text) {
		c.buffer.URL = text
	} else {
		c.buffer.Title = text
	}
}

// Submit creates or updates depending on the mode.
// It returns the ID of the created or edited node.
func (c *Controller) Submit(f model.Fields) (model.NodeID, error) {
	if c.mode == ModeEdit {
		id := c.target
		return id, c.SubmitEdit(f)
	}
	return c.SubmitCreate(f), nil
}

// SubmitCreate inserts a new top-level node.
func (c *Controller) SubmitCreate(f model.Fields) model.NodeID {
	defer c.finish()
	f.URL = NormalizeURL(f.URL)
	id := c.tree.Insert(model.RootID, f)
	log.Info(log.CatEdit, "Created node", "id", id)
	return id
}

// SubmitEdit updates the loaded node. The controller resets even when the
// node has since been removed.
func (c *Controller) SubmitEdit(f model.Fields) error {
	defer c.finish()
	if c.mode != ModeEdit {
		return fmt.Errorf("%w: no node loaded for edit", model.ErrNotFound)
	}
	f.URL = NormalizeURL(f.URL)
	if err := c.tree.Update(c.target, f); err != nil {
		log.ErrorErr(log.CatEdit, "Edit target vanished", err, "id", c.target)
		return err
	}
	log.Info(log.CatEdit, "Updated node", "id", c.target)
	return nil
}

// Cancel discards the buffer without touching the tree.
func (c *Controller) Cancel() {
	c.reset()
}

// finish resets the form and clears the search after a submit.
func (c *Controller) finish() {
	c.reset()
	if c.search != nil {
		c.search.Clear()
	}
}

func (c *Controller) reset() {
	c.mode = ModeCreate
	c.target = model.RootID
	c.buffer = model.Fields{Color: c.defaultColor}
}
