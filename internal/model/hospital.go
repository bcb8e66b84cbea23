package model

import "time"

// Hospital represents a facility listed on the platform.  A hospital
// owns an ordered list of wards, each holding a fixed set of beds.
// The ward list is part of the hospital value itself rather than a
// separate table because the inventory store is the single in-memory
// owner of the whole topology.  JSON tags are present because these
// structs are serialized verbatim into persistence snapshots.
//
// Fields:
//  ID           – opaque identifier assigned at onboarding (e.g. "hosp-1").
//  Name         – display name of the hospital.
//  Location     – free-text locality, e.g. "Indiranagar, Bangalore".
//  FacilityType – facility category, e.g. "Multi-Specialty".
//  PricePerDay  – price of a bed per day in whole rupees; always positive.
//  Rating       – average review rating.
//  ReviewCount  – number of reviews behind the rating.
//  Features     – marketing feature labels shown on listing cards.
//  Wards        – ordered wards; bed ids are unique across all of them.
//  CreatedAt    – onboarding timestamp.
type Hospital struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	FacilityType string    `json:"facility_type"`
	PricePerDay  int64     `json:"price_per_day"`
	Rating       float64   `json:"rating"`
	ReviewCount  int       `json:"review_count"`
	Features     []string  `json:"features,omitempty"`
	Wards        []Ward    `json:"wards"`
	CreatedAt    time.Time `json:"created_at"`
}

// Ward is a named grouping of beds within a hospital, e.g. the ICU
// ward.  Bed ids carry the ward prefix ("ICU-1") so they stay unique
// across the hospital by construction.
type Ward struct {
	Name string   `json:"name"`
	Type WardType `json:"type"`
	Beds []Bed    `json:"beds"`
}

// AvailableBeds returns how many beds in the ward are currently free.
func (w *Ward) AvailableBeds() int {
	n := 0
	for i := range w.Beds {
		if w.Beds[i].Status == BedAvailable {
			n++
		}
	}
	return n
}

// TotalBeds returns the number of beds across all wards.  The bed
// topology is static, so this only changes at onboarding time.
func (h *Hospital) TotalBeds() int {
	n := 0
	for i := range h.Wards {
		n += len(h.Wards[i].Beds)
	}
	return n
}

// AvailableBeds derives the hospital-wide availability from live bed
// statuses.  It is never stored; storing it separately is exactly the
// drift the original mockups suffered from.
func (h *Hospital) AvailableBeds() int {
	n := 0
	for i := range h.Wards {
		n += h.Wards[i].AvailableBeds()
	}
	return n
}

// FindBed locates a bed by id across all wards.  The returned pointer
// aliases the hospital's own slice so callers inside the store can
// mutate status in place; it must never escape the store's lock.
func (h *Hospital) FindBed(bedID string) *Bed {
	for wi := range h.Wards {
		for bi := range h.Wards[wi].Beds {
			if h.Wards[wi].Beds[bi].ID == bedID {
				return &h.Wards[wi].Beds[bi]
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the hospital so that values handed out
// of the store cannot be mutated behind its back.
func (h *Hospital) Clone() Hospital {
	out := *h
	out.Features = append([]string(nil), h.Features...)
	out.Wards = make([]Ward, len(h.Wards))
	for i := range h.Wards {
		out.Wards[i] = h.Wards[i]
		out.Wards[i].Beds = append([]Bed(nil), h.Wards[i].Beds...)
	}
	return out
}
