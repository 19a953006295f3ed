package model

import "github.com/google/uuid"

// newSessionID returns the random prefix that binds drag handles to one tree.
// Handles from another tree, or an earlier run, never resolve.
func newSessionID() string {
	return uuid.NewString()
}
