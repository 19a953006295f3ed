package model

import "errors"

var (
	// ErrInvalidMove is returned when a move would create a cycle or names a
	// sibling that is not a child of the target parent.
	ErrInvalidMove = errors.New("invalid move")

	// ErrNotFound is returned when an operation references an unknown node.
	ErrNotFound = errors.New("node not found")

	// ErrMalformedPayload is returned for drag payloads that carry neither a
	// node handle of this tree nor usable text.
	ErrMalformedPayload = errors.New("malformed payload")
)
