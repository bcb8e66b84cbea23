package model

// WardType enumerates the ward categories a bed can belong to.
type WardType string

const (
	WardGeneral WardType = "GENERAL"
	WardICU     WardType = "ICU"
	WardVIP     WardType = "VIP"
)

// BedStatus is the binary availability state of a bed.  The only
// transitions are AVAILABLE -> OCCUPIED via a reservation and
// OCCUPIED -> AVAILABLE via a discharge.
type BedStatus string

const (
	BedAvailable BedStatus = "AVAILABLE"
	BedOccupied  BedStatus = "OCCUPIED"
)

// Bed is the smallest unit of inventory.  Identity is immutable;
// only Status changes over a bed's lifetime.  Beds are created when a
// hospital is onboarded and never deleted.
//
// Fields:
//  ID       – unique within the hospital, e.g. "ICU-9".
//  WardType – category of the owning ward.
//  Status   – current availability.
type Bed struct {
	ID       string    `json:"id"`
	WardType WardType  `json:"ward_type"`
	Status   BedStatus `json:"status"`
}
