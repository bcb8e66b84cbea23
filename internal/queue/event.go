// Package queue defines message payloads exchanged over the message broker.
package queue

// BedReservedEvent is published whenever a bed reservation is confirmed.
// It carries enough information for downstream consumers (dashboards,
// notification fanout, analytics) to act without querying the inventory
// store, which is how confirmed state propagates to observers instead of
// each observer mutating its own copy.
type BedReservedEvent struct {
	BookingID     string `json:"booking_id"`
	BookingSeq    uint64 `json:"booking_seq"`
	UserID        uint64 `json:"user_id"`
	HospitalID    string `json:"hospital_id"`
	HospitalName  string `json:"hospital_name"`
	BedID         string `json:"bed_id"`
	WardType      string `json:"ward_type"`
	PatientName   string `json:"patient_name"`
	Reason        string `json:"reason"`
	PricePerDay   int64  `json:"price_per_day"`
	AvailableBeds int    `json:"available_beds"` // hospital-wide, after this reservation
	ReservedAt    string `json:"reserved_at"`
}
