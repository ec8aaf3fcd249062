// Package repository contains data access logic separated from HTTP handlers.
// Sentinel errors defined here let handlers distinguish failure scenarios
// without inspecting driver-specific errors.
package repository

import "errors"

// ErrEmailExists is returned when registration hits the unique email index.
var ErrEmailExists = errors.New("email already exists")

// ErrStoryNotFound is returned when a story lookup filtered by (id, owner)
// matches nothing.  A story owned by someone else and a story that does not
// exist produce this same error, so handlers cannot leak existence.
var ErrStoryNotFound = errors.New("story not found")
