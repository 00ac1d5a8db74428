// Package repository implements MySQL persistence for the scheduling
// domain. The sentinel values defined here are reused across multiple
// repositories so that higher layers such as handlers can distinguish
// between failure scenarios. For example, ErrOverlappingAppointment
// signals that a candidate appointment collides with an existing one
// for the same customer, while ErrConflict covers the generic case of
// an operation blocked by dependent records.
package repository

import "errors"

// ErrOverlappingAppointment is returned when a candidate appointment's
// interval touches or intersects an existing appointment for the same
// customer. Handlers should translate this into an HTTP 409 response.
var ErrOverlappingAppointment = errors.New("overlapping appointment for customer")

// ErrConflict is returned when a delete or update cannot be performed
// because of conflicting state. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they may not act on. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")
