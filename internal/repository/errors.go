// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios: a full slot maps to HTTP 409,
// a missing slot or booking to 404, and so on.
package repository

import "errors"

// ErrSlotNotFound is returned when a booking targets a (date, time) pair
// for which no administrator-created slot exists.
var ErrSlotNotFound = errors.New("slot not found")

// ErrSlotFull is returned when a booking would exceed the slot's capacity.
var ErrSlotFull = errors.New("slot is fully booked")

// ErrBookingNotFound is returned when no booking matches the given
// reference code (and family name, when the two-factor lookup is used).
var ErrBookingNotFound = errors.New("booking not found")

// ErrDuplicateRef is returned when an insert collides with an existing
// reference code. Callers retry with a freshly allocated code.
var ErrDuplicateRef = errors.New("duplicate reference code")

// ErrAdminNotFound is returned when no admin credential exists for the
// given username. Handlers must not surface it verbatim; login reports a
// uniform "invalid credentials" regardless of the cause.
var ErrAdminNotFound = errors.New("admin not found")

// ErrNoFields is returned when a partial update supplies no updatable
// fields.
var ErrNoFields = errors.New("no fields to update")
