package store

import (
	"fmt"

	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// Snapshot is a full serialized copy of the store's state: the whole
// hospital collection, the whole booking feed and the id counters.
// Snapshots are always written and read wholesale; a loaded snapshot
// replaces the store's state entirely, never merges into it.
type Snapshot struct {
	Hospitals []model.Hospital `json:"hospitals"`
	Bookings  []model.Booking  `json:"bookings"`
	Counters  Counters         `json:"counters"`
}

// Counters carries the monotonic sequences so that ids keep
// increasing across restarts.
type Counters struct {
	BookingSeq  uint64 `json:"booking_seq"`
	HospitalSeq uint64 `json:"hospital_seq"`
}

// SnapshotSaver persists a snapshot.  The Redis implementation lives
// in internal/snapshot; tests substitute an in-memory fake.
type SnapshotSaver interface {
	Save(Snapshot) error
}

// Snapshot returns a deep copy of the current state.
func (s *InventoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *InventoryStore) snapshotLocked() Snapshot {
	snap := Snapshot{
		Hospitals: make([]model.Hospital, 0, len(s.hospitals)),
		Bookings:  make([]model.Booking, 0, len(s.bookings)),
		Counters:  Counters{BookingSeq: s.seq, HospitalSeq: s.hospSeq},
	}
	for _, h := range s.hospitals {
		snap.Hospitals = append(snap.Hospitals, h.Clone())
	}
	for _, b := range s.bookings {
		snap.Bookings = append(snap.Bookings, *b)
	}
	return snap
}

// Restore replaces the store's state with the snapshot's.  It rejects
// snapshots that reference unknown hospitals so a truncated or
// hand-edited snapshot cannot smuggle dangling bookings in.
func (s *InventoryStore) Restore(snap Snapshot) error {
	hospitals := make([]*model.Hospital, 0, len(snap.Hospitals))
	byID := make(map[string]*model.Hospital, len(snap.Hospitals))
	for i := range snap.Hospitals {
		h := snap.Hospitals[i].Clone()
		if _, dup := byID[h.ID]; dup {
			return fmt.Errorf("snapshot: duplicate hospital id %q", h.ID)
		}
		hospitals = append(hospitals, &h)
		byID[h.ID] = &h
	}
	bookings := make([]*model.Booking, 0, len(snap.Bookings))
	for i := range snap.Bookings {
		b := snap.Bookings[i]
		h, ok := byID[b.HospitalID]
		if !ok {
			return fmt.Errorf("snapshot: booking %s references unknown hospital %q", b.ID, b.HospitalID)
		}
		if h.FindBed(b.BedID) == nil {
			return fmt.Errorf("snapshot: booking %s references unknown bed %q", b.ID, b.BedID)
		}
		bookings = append(bookings, &b)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hospitals = hospitals
	s.byID = byID
	s.bookings = bookings
	s.seq = snap.Counters.BookingSeq
	s.hospSeq = snap.Counters.HospitalSeq
	return nil
}
