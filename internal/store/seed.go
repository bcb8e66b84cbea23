package store

import (
	"fmt"

	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// Seed loads the demo catalogue the platform launched with: three
// Bangalore hospitals with partially occupied wards.  Occupancy is
// established through the normal reservation path so every occupied
// bed has its confirmed booking, keeping the bed/booking invariant
// intact from the first request on.  Seed replaces any existing
// state; call it only on a fresh store.
func (s *InventoryStore) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hospitals = nil
	s.byID = make(map[string]*model.Hospital)
	s.bookings = nil
	s.seq = 0
	s.hospSeq = 0

	city := s.onboardLocked(HospitalDescriptor{
		Name:         "City General Hospital",
		Location:     "Indiranagar, Bangalore",
		FacilityType: "Multi-Specialty",
		PricePerDay:  4500,
	}, defaultWards())
	city.Rating, city.ReviewCount = 4.8, 1240
	city.Features = []string{"Oxygen Support", "ICU Available", "24/7 Pharmacy"}

	astra := s.onboardLocked(HospitalDescriptor{
		Name:         "Astra Specialty Care",
		Location:     "Koramangala, Bangalore",
		FacilityType: "Cardiology",
		PricePerDay:  6200,
	}, defaultWards())
	astra.Rating, astra.ReviewCount = 4.6, 850
	astra.Features = []string{"Advanced Labs", "Emergency Care", "Private Suites"}

	safehands := s.onboardLocked(HospitalDescriptor{
		Name:         "SafeHands Community Hospital",
		Location:     "Whitefield, Bangalore",
		FacilityType: "General Practice",
		PricePerDay:  2800,
	}, []model.Ward{
		makeWard("General", model.WardGeneral, "GEN", 40),
		makeWard("ICU", model.WardICU, "ICU", 10),
		makeWard("VIP", model.WardVIP, "VIP", 5),
	})
	safehands.Rating, safehands.ReviewCount = 4.2, 620
	safehands.Features = []string{"Child Care", "Maternity", "Ambulance Service"}

	// Occupancy mirrors the listing data the catalogue launched with:
	// 12 of 35 free at City General, 5 of 35 at Astra, 45 of 55 at
	// SafeHands.
	s.seedOccupy(city.ID, "GEN", 15)
	s.seedOccupy(city.ID, "ICU", 8)
	s.seedOccupy(astra.ID, "GEN", 20)
	s.seedOccupy(astra.ID, "ICU", 10)
	s.seedOccupy(safehands.ID, "GEN", 10)
}

// seedNames rotate through the seeded admissions so the booking feed
// looks like real intake data.
var seedNames = []string{
	"Rahul Sharma", "Priya Nair", "Amit Verma", "Sunita Rao",
	"Vikram Iyer", "Deepa Menon", "Arjun Reddy", "Kavya Pillai",
}

var seedReasons = []string{
	"fever", "post-surgery recovery", "cardiac observation",
	"respiratory support", "maternity care",
}

// seedOccupy reserves beds prefix-1..prefix-n in order through the
// regular reservation path.
func (s *InventoryStore) seedOccupy(hospitalID, prefix string, n int) {
	for i := 1; i <= n; i++ {
		intake := model.PatientIntake{
			PatientName: seedNames[int(s.seq)%len(seedNames)],
			Age:         22 + int(s.seq)%50,
			Gender:      []string{"Male", "Female"}[int(s.seq)%2],
			Phone:       fmt.Sprintf("98%08d", s.seq+1),
			Reason:      seedReasons[int(s.seq)%len(seedReasons)],
		}
		if _, err := s.reserveLocked(hospitalID, fmt.Sprintf("%s-%d", prefix, i), 0, intake); err != nil {
			// Seed reserves only beds it just created; any failure is a bug.
			panic(fmt.Sprintf("seed: reserve %s/%s-%d: %v", hospitalID, prefix, i, err))
		}
	}
}
