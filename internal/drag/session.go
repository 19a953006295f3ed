// Package drag tracks a single drag gesture from pick-up to drop and turns
// drops into tree moves, removals or form loads.
package drag

import (
	"errors"
	"fmt"

	"github.com/nikbrunner/bmtree/internal/log"
	"github.com/nikbrunner/bmtree/internal/model"
)

// ErrNotDragging is returned by drop operations while no drag is active.
var ErrNotDragging = errors.New("no drag in progress")

// State is the session's phase.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Verdict is the hover feedback for a candidate drop target.
type Verdict int

const (
	Reject Verdict = iota
	Accept
)

// Hover is the last evaluated drop target.
type Hover struct {
	Target  model.NodeID
	Before  model.NodeID
	Verdict Verdict
}

// Loader receives a node dropped onto the edit form.
type Loader interface {
	Load(id model.NodeID) error
}

// TextReceiver receives plain text dropped onto the edit form.
type TextReceiver interface {
	FillFromText(text string)
}

// Payload is what a gesture carries: a node handle minted by
// model.Tree.Handle, or plain text from outside the tree.
type Payload struct {
	Handle string
	Text   string
}

// Session is the drag state machine for one tree. At most one drag is
// active at a time.
type Session struct {
	tree   *model.Tree
	state  State
	source model.NodeID
	hover  *Hover
}

// NewSession creates an idle session.
func NewSession(t *model.Tree) *Session {
	return &Session{tree: t}
}

// State returns the current phase.
func (s *Session) State() State {
	return s.state
}

// Active reports whether a drag is in progress.
func (s *Session) Active() bool {
	return s.state == Dragging
}

// Source returns the dragged node.
func (s *Session) Source() (model.NodeID, bool) {
	return s.source, s.state == Dragging
}

// Hover returns the last evaluated target, if any.
func (s *Session) Hover() (Hover, bool) {
	if s.hover == nil {
		return Hover{}, false
	}
	return *s.hover, true
}

// Begin starts dragging source. The gesture must have originated exactly on
// source (origin == source); gestures bubbling up from a descendant's row
// are ignored, as is a second Begin while a drag is active.
func (s *Session) Begin(source, origin model.NodeID) bool {
	if s.state == Dragging {
		log.Debug(log.CatDrag, "Begin ignored, drag already active", "source", s.source, "requested", source)
		return false
	}
	if origin != source {
		return false
	}
	if _, ok := s.tree.Get(source); !ok {
		return false
	}

	s.state = Dragging
	s.source = source
	s.hover = nil
	log.Debug(log.CatDrag, "Drag started", "source", source)
	return true
}

// BeginPayload starts a drag from a transferred payload. Plain text never
// starts a session and yields model.ErrMalformedPayload.
func (s *Session) BeginPayload(p Payload, origin model.NodeID) (bool, error) {
	if p.Handle == "" {
		return false, fmt.Errorf("%w: no node handle", model.ErrMalformedPayload)
	}
	id, err := s.tree.ParseHandle(p.Handle)
	if err != nil {
		return false, err
	}
	return s.Begin(id, origin), nil
}

// Over evaluates target (with an optional before sibling) as a drop
// location. The tree is not modified.
func (s *Session) Over(target, before model.NodeID) Verdict {
	v := s.evaluate(target, before)
	s.hover = &Hover{Target: target, Before: before, Verdict: v}
	return v
}

// Leave clears the hover feedback.
func (s *Session) Leave() {
	s.hover = nil
}

// Drop moves the source under target, before the given sibling or last.
// The session is idle afterwards whatever the outcome; a rejected move
// returns model.ErrInvalidMove and leaves the tree unchanged.
func (s *Session) Drop(target, before model.NodeID) error {
	if s.state != Dragging {
		return ErrNotDragging
	}
	source := s.source
	s.end()

	if err := s.tree.Move(source, target, before); err != nil {
		log.Warn(log.CatDrag, "Drop rejected", "source", source, "target", target, "before", before, "error", err)
		return err
	}
	log.Info(log.CatDrag, "Dropped", "source", source, "target", target, "before", before)
	return nil
}

// DropBefore moves the source immediately before sibling, under sibling's
// parent.
func (s *Session) DropBefore(sibling model.NodeID) error {
	if s.state != Dragging {
		return ErrNotDragging
	}
	n, ok := s.tree.Get(sibling)
	if !ok {
		s.end()
		return fmt.Errorf("%w: %d", model.ErrNotFound, sibling)
	}
	return s.Drop(n.Parent(), sibling)
}

// DropOnTrash ends the drag and returns a removal request for the source.
// Nothing is deleted until the request is confirmed.
func (s *Session) DropOnTrash() (*Removal, error) {
	if s.state != Dragging {
		return nil, ErrNotDragging
	}
	source := s.source
	s.end()
	return NewRemoval(s.tree, source)
}

// DropOnForm ends the drag and loads the source into l for editing.
func (s *Session) DropOnForm(l Loader) error {
	if s.state != Dragging {
		return ErrNotDragging
	}
	source := s.source
	s.end()
	return l.Load(source)
}

// DropText hands an external text payload to r. The tree is not touched.
func (s *Session) DropText(p Payload, r TextReceiver) error {
	if p.Text == "" {
		return fmt.Errorf("%w: empty text", model.ErrMalformedPayload)
	}
	r.FillFromText(p.Text)
	return nil
}

// Cancel abandons the drag without touching the tree.
func (s *Session) Cancel() {
	if s.state == Dragging {
		log.Debug(log.CatDrag, "Drag cancelled", "source", s.source)
	}
	s.end()
}

func (s *Session) end() {
	s.state = Idle
	s.source = model.RootID
	s.hover = nil
}

// evaluate applies the drop rules without mutating anything.
func (s *Session) evaluate(target, before model.NodeID) Verdict {
	if s.state != Dragging {
		return Reject
	}
	if target == s.source || s.tree.IsDescendant(target, s.source) {
		return Reject
	}
	if target != model.RootID {
		if _, ok := s.tree.Get(target); !ok {
			return Reject
		}
	}
	if before != model.Last {
		n, ok := s.tree.Get(before)
		if !ok || n.Parent() != target {
			return Reject
		}
	}
	return Accept
}
