// Package store holds the authoritative in-memory inventory of
// hospitals, wards, beds and bookings.  This file defines the
// sentinel error values shared by the store's operations.  Higher
// layers such as handlers compare against these values to pick the
// right HTTP status: not-found conditions become 404, a lost
// reservation race becomes 409, and malformed onboarding input
// becomes 400.  Every error here is recoverable by the caller; no
// operation can leave the store in a corrupted state.
package store

import "errors"

// ErrHospitalNotFound is returned when a hospital id does not match
// any onboarded hospital.
var ErrHospitalNotFound = errors.New("hospital not found")

// ErrBedNotFound is returned when a bed id does not exist in any of
// the hospital's wards.
var ErrBedNotFound = errors.New("bed not found")

// ErrBedAlreadyOccupied is returned when a reservation loses the race
// for a bed.  Retrying the same request keeps failing with this error
// and never creates a duplicate booking.
var ErrBedAlreadyOccupied = errors.New("bed already occupied")

// ErrBedNotOccupied is returned when a release targets a bed that is
// not currently occupied.
var ErrBedNotOccupied = errors.New("bed not occupied")

// ErrInvalidInput is returned when onboarding input fails basic
// validation (empty name or location, non-positive price).
var ErrInvalidInput = errors.New("invalid input")
