// Package repository implements the data access layer on top of MongoDB.
// The sentinel errors defined here let handlers distinguish failure
// scenarios without inspecting driver errors: ErrNotFound means the filter
// matched no document, ErrConflict means a uniqueness index rejected a
// write (duplicate username or catalog title).
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete matches no
// document. Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or update violates a uniqueness
// index. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
