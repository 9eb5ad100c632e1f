// Package repository implements data access over MySQL.  Sentinel errors
// defined here let handlers distinguish failure scenarios and map them to
// HTTP responses without inspecting driver-specific error strings.
package repository

import "errors"

// ErrReservationNotFound is returned when a lookup, update or delete
// targets a reservation id that does not exist.  Handlers translate it
// into an HTTP 404.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEmailExists is returned when registering a user whose email is
// already taken.  Handlers translate it into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")
