package store

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// InventoryStore is the single authoritative holder of hospitals and
// bookings for the process.  All reads and mutations go through its
// RWMutex, which makes the bed transition a compare-and-swap: the
// Available check and the flip to Occupied happen under one lock, so
// two callers can never both reserve the same bed no matter how many
// goroutines the HTTP server runs.  Values handed out are deep copies;
// nothing outside the store ever holds a live pointer into it.
type InventoryStore struct {
	mu        sync.RWMutex
	hospitals []*model.Hospital          // onboarding order, never re-sorted
	byID      map[string]*model.Hospital // id -> same pointers as hospitals
	bookings  []*model.Booking           // append order
	seq       uint64                     // last issued booking sequence
	hospSeq   uint64                     // last issued hospital number
	saver     SnapshotSaver              // optional, best-effort persistence
	now       func() time.Time
}

// New returns an empty InventoryStore.  Call Seed or Restore before
// serving traffic.
func New() *InventoryStore {
	return &InventoryStore{
		byID: make(map[string]*model.Hospital),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// SetSaver attaches a snapshot saver.  After every successful
// mutation the store overwrites the persisted snapshot wholesale;
// a failed save is logged and does not roll back the mutation
// because the in-memory state is authoritative.
func (s *InventoryStore) SetSaver(sv SnapshotSaver) {
	s.mu.Lock()
	s.saver = sv
	s.mu.Unlock()
}

// HospitalFilter narrows ListHospitals results.  Query is a
// case-insensitive substring matched against name and location;
// Region is matched exactly (case-insensitive) against the segment
// after the last comma of the location.
type HospitalFilter struct {
	Query  string
	Region string
}

// BookingFilter narrows ListBookings results to one hospital when
// HospitalID is non-empty.
type BookingFilter struct {
	HospitalID string
}

// HospitalDescriptor is the input for onboarding a new hospital.
type HospitalDescriptor struct {
	Name         string
	Location     string
	FacilityType string
	PricePerDay  int64
}

// ListHospitals returns hospitals matching all supplied filters in
// their original onboarding order.  No filter returns the full set;
// no match returns an empty slice, which is not an error.
func (s *InventoryStore) ListHospitals(f HospitalFilter) []model.Hospital {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	region := strings.ToLower(strings.TrimSpace(f.Region))

	out := make([]model.Hospital, 0, len(s.hospitals))
	for _, h := range s.hospitals {
		if q != "" &&
			!strings.Contains(strings.ToLower(h.Name), q) &&
			!strings.Contains(strings.ToLower(h.Location), q) {
			continue
		}
		if region != "" && regionOf(h.Location) != region {
			continue
		}
		out = append(out, h.Clone())
	}
	return out
}

// regionOf extracts the lowercase region from a free-text location.
// The mock data encodes it as the segment after the last comma
// ("Indiranagar, Bangalore" -> "bangalore"); a location without a
// comma is its own region.
func regionOf(location string) string {
	if i := strings.LastIndex(location, ","); i >= 0 {
		location = location[i+1:]
	}
	return strings.ToLower(strings.TrimSpace(location))
}

// GetHospital returns a deep copy of the hospital or
// ErrHospitalNotFound.
func (s *InventoryStore) GetHospital(hospitalID string) (model.Hospital, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.byID[hospitalID]
	if !ok {
		return model.Hospital{}, ErrHospitalNotFound
	}
	return h.Clone(), nil
}

// AvailableBeds recomputes the hospital's availability from live bed
// statuses.  The count is always derived, never cached.
func (s *InventoryStore) AvailableBeds(hospitalID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.byID[hospitalID]
	if !ok {
		return 0, ErrHospitalNotFound
	}
	return h.AvailableBeds(), nil
}

// ReserveBed transitions a bed Available -> Occupied and appends a
// confirmed booking, atomically.  It fails with ErrHospitalNotFound,
// ErrBedNotFound or ErrBedAlreadyOccupied; a failed call never
// creates a booking, so retrying a reservation that already succeeded
// is rejected rather than double-booked.
func (s *InventoryStore) ReserveBed(hospitalID, bedID string, userID uint64, intake model.PatientIntake) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.reserveLocked(hospitalID, bedID, userID, intake)
	if err != nil {
		return model.Booking{}, err
	}
	s.persistLocked()
	return *b, nil
}

// reserveLocked performs the reservation under an already-held write
// lock.  Seed reuses it without triggering a persist per bed.
func (s *InventoryStore) reserveLocked(hospitalID, bedID string, userID uint64, intake model.PatientIntake) (*model.Booking, error) {
	h, ok := s.byID[hospitalID]
	if !ok {
		return nil, ErrHospitalNotFound
	}
	bed := h.FindBed(bedID)
	if bed == nil {
		return nil, ErrBedNotFound
	}
	if bed.Status != model.BedAvailable {
		return nil, ErrBedAlreadyOccupied
	}

	bed.Status = model.BedOccupied
	s.seq++
	booking := &model.Booking{
		ID:            uuid.NewString(),
		Seq:           s.seq,
		HospitalID:    hospitalID,
		BedID:         bedID,
		UserID:        userID,
		PatientIntake: intake,
		Status:        model.BookingConfirmed,
		CreatedAt:     s.now(),
	}
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

// ReleaseBed transitions a bed Occupied -> Available and marks its
// active booking DISCHARGED.  The discharge path is not part of the
// original mock behavior; it exists so occupied inventory can be
// returned to circulation.
func (s *InventoryStore) ReleaseBed(hospitalID, bedID string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.byID[hospitalID]
	if !ok {
		return model.Booking{}, ErrHospitalNotFound
	}
	bed := h.FindBed(bedID)
	if bed == nil {
		return model.Booking{}, ErrBedNotFound
	}
	if bed.Status != model.BedOccupied {
		return model.Booking{}, ErrBedNotOccupied
	}

	bed.Status = model.BedAvailable
	// Exactly one active booking references an occupied bed; walk from
	// the newest end to find it.
	for i := len(s.bookings) - 1; i >= 0; i-- {
		b := s.bookings[i]
		if b.HospitalID == hospitalID && b.BedID == bedID && b.Active() {
			now := s.now()
			b.Status = model.BookingDischarged
			b.DischargedAt = &now
			s.persistLocked()
			return *b, nil
		}
	}
	// An occupied bed without an active booking would violate the
	// store's own invariant; surface it loudly instead of inventing a
	// record.
	return model.Booking{}, fmt.Errorf("no active booking for occupied bed %s/%s", hospitalID, bedID)
}

// ListBookings returns bookings newest-first, optionally filtered to
// one hospital.  The length grows by exactly one per successful
// reservation and is unaffected by failed calls.
func (s *InventoryStore) ListBookings(f BookingFilter) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Booking, 0, len(s.bookings))
	for i := len(s.bookings) - 1; i >= 0; i-- {
		b := s.bookings[i]
		if f.HospitalID != "" && b.HospitalID != f.HospitalID {
			continue
		}
		out = append(out, *b)
	}
	return out
}

// ListBookingsByUser returns the bookings created by one account,
// newest-first.
func (s *InventoryStore) ListBookingsByUser(userID uint64) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Booking{}
	for i := len(s.bookings) - 1; i >= 0; i-- {
		if s.bookings[i].UserID == userID {
			out = append(out, *s.bookings[i])
		}
	}
	return out
}

// OnboardHospital validates the descriptor and appends a new hospital
// with the default ward topology, all beds available.  It fails with
// ErrInvalidInput when name or location is empty or the price is not
// positive.
func (s *InventoryStore) OnboardHospital(d HospitalDescriptor) (model.Hospital, error) {
	name := strings.TrimSpace(d.Name)
	location := strings.TrimSpace(d.Location)
	if name == "" {
		return model.Hospital{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if location == "" {
		return model.Hospital{}, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if d.PricePerDay <= 0 {
		return model.Hospital{}, fmt.Errorf("%w: price_per_day must be positive", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.onboardLocked(d, defaultWards())
	s.persistLocked()
	return h.Clone(), nil
}

// onboardLocked appends a hospital under an already-held write lock.
// Seed reuses it with custom ward layouts.
func (s *InventoryStore) onboardLocked(d HospitalDescriptor, wards []model.Ward) *model.Hospital {
	s.hospSeq++
	h := &model.Hospital{
		ID:           fmt.Sprintf("hosp-%d", s.hospSeq),
		Name:         strings.TrimSpace(d.Name),
		Location:     strings.TrimSpace(d.Location),
		FacilityType: strings.TrimSpace(d.FacilityType),
		PricePerDay:  d.PricePerDay,
		Wards:        wards,
		CreatedAt:    s.now(),
	}
	s.hospitals = append(s.hospitals, h)
	s.byID[h.ID] = h
	return h
}

// defaultWards builds the fixed onboarding topology: one General ward
// of 20 beds, one ICU ward of 10 and one VIP ward of 5, with
// deterministic ids GEN-1.., ICU-1.., VIP-1...
func defaultWards() []model.Ward {
	return []model.Ward{
		makeWard("General", model.WardGeneral, "GEN", 20),
		makeWard("ICU", model.WardICU, "ICU", 10),
		makeWard("VIP", model.WardVIP, "VIP", 5),
	}
}

func makeWard(name string, wt model.WardType, prefix string, size int) model.Ward {
	beds := make([]model.Bed, size)
	for i := range beds {
		beds[i] = model.Bed{
			ID:       fmt.Sprintf("%s-%d", prefix, i+1),
			WardType: wt,
			Status:   model.BedAvailable,
		}
	}
	return model.Ward{Name: name, Type: wt, Beds: beds}
}

// persistLocked saves a snapshot while the write lock is held so
// saves are serialized in mutation order and always reflect the
// post-mutation state.
func (s *InventoryStore) persistLocked() {
	if s.saver == nil {
		return
	}
	if err := s.saver.Save(s.snapshotLocked()); err != nil {
		log.Printf("store: snapshot save failed: %v", err)
	}
}
