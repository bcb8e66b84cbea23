package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoHospital() Hospital {
	return Hospital{
		ID:   "hosp-1",
		Name: "City General Hospital",
		Wards: []Ward{
			{Name: "General", Type: WardGeneral, Beds: []Bed{
				{ID: "GEN-1", WardType: WardGeneral, Status: BedOccupied},
				{ID: "GEN-2", WardType: WardGeneral, Status: BedAvailable},
			}},
			{Name: "ICU", Type: WardICU, Beds: []Bed{
				{ID: "ICU-1", WardType: WardICU, Status: BedAvailable},
			}},
		},
		Features: []string{"Oxygen Support"},
	}
}

func TestHospitalDerivedCounts(t *testing.T) {
	h := demoHospital()
	assert.Equal(t, 3, h.TotalBeds())
	assert.Equal(t, 2, h.AvailableBeds())

	// Counts follow bed status with no separate bookkeeping.
	h.Wards[1].Beds[0].Status = BedOccupied
	assert.Equal(t, 1, h.AvailableBeds())
	assert.Equal(t, 3, h.TotalBeds())
}

func TestFindBed(t *testing.T) {
	h := demoHospital()

	bed := h.FindBed("ICU-1")
	require.NotNil(t, bed)
	assert.Equal(t, WardICU, bed.WardType)

	// The pointer aliases the hospital's own slice.
	bed.Status = BedOccupied
	assert.Equal(t, BedOccupied, h.Wards[1].Beds[0].Status)

	assert.Nil(t, h.FindBed("XRAY-7"))
}

func TestClone(t *testing.T) {
	h := demoHospital()
	c := h.Clone()

	c.Wards[0].Beds[1].Status = BedOccupied
	c.Features[0] = "tampered"

	assert.Equal(t, BedAvailable, h.Wards[0].Beds[1].Status)
	assert.Equal(t, "Oxygen Support", h.Features[0])
}
