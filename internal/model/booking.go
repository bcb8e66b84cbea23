package model

import "time"

// BookingStatus enumerates the reachable states of a booking.  A
// booking is created CONFIRMED and moves to DISCHARGED when the bed
// is released; it is never edited or deleted otherwise.
type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingDischarged BookingStatus = "DISCHARGED"
)

// PatientIntake carries the admission details collected when a bed is
// reserved.  It is embedded into the resulting booking record.
type PatientIntake struct {
	PatientName string `json:"patient_name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Reason      string `json:"reason"`
}

// Booking links one patient's intake details to one reserved bed in
// one hospital.  Seq is a monotonic creation counter so that the
// newest-first activity feed does not depend on parsing the opaque ID
// or on timestamp resolution.
//
// Fields:
//  ID           – opaque UUID string.
//  Seq          – monotonic creation sequence, starts at 1.
//  HospitalID   – hospital the bed belongs to.
//  BedID        – reserved bed, e.g. "ICU-9".
//  UserID       – account that created the booking; zero for seeded data.
//  Status       – CONFIRMED, or DISCHARGED after release.
//  CreatedAt    – reservation timestamp (UTC).
//  DischargedAt – set when the bed is released (nullable).
type Booking struct {
	ID         string `json:"id"`
	Seq        uint64 `json:"seq"`
	HospitalID string `json:"hospital_id"`
	BedID      string `json:"bed_id"`
	UserID     uint64 `json:"user_id,omitempty"`
	PatientIntake
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	DischargedAt *time.Time    `json:"discharged_at,omitempty"`
}

// Active reports whether the booking still holds its bed.
func (b *Booking) Active() bool { return b.Status == BookingConfirmed }
