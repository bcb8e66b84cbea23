// Package handler exposes HTTP handlers for both authenticated and public
// endpoints.  This file defines handlers for the public browsing API.
// These routes let unauthenticated users search hospitals, inspect a
// hospital's ward/bed grid and read live availability without a session.
// Availability is always derived from bed statuses at request time.

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medstay/hospital-bed-reservation/internal/model"
	"github.com/medstay/hospital-bed-reservation/internal/store"
)

// PublicHandler serves unauthenticated browsing out of the inventory
// store.  It produces sanitized summaries suitable for listing cards.
type PublicHandler struct {
	Store *store.InventoryStore // single source of truth for inventory
}

func NewPublicHandler(s *store.InventoryStore) *PublicHandler {
	if s == nil {
		panic("nil store passed to NewPublicHandler")
	}
	return &PublicHandler{Store: s}
}

// HospitalSummary is a hospital as shown on listing cards.  Bed counts
// are computed from the ward grid at response time.
type HospitalSummary struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	FacilityType  string   `json:"facility_type"`
	PricePerDay   int64    `json:"price_per_day"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	Features      []string `json:"features,omitempty"`
	TotalBeds     int      `json:"total_beds"`
	AvailableBeds int      `json:"available_beds"`
}

// WardGrid is one ward of the bed selector: the ordered beds plus the
// derived free count.
type WardGrid struct {
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	AvailableBeds int         `json:"available_beds"`
	Beds          []model.Bed `json:"beds"`
}

// HospitalDetail extends the summary with the full ward grid.
type HospitalDetail struct {
	HospitalSummary
	Wards []WardGrid `json:"wards"`
}

func summarize(h *model.Hospital) HospitalSummary {
	return HospitalSummary{
		ID:            h.ID,
		Name:          h.Name,
		Location:      h.Location,
		FacilityType:  h.FacilityType,
		PricePerDay:   h.PricePerDay,
		Rating:        h.Rating,
		ReviewCount:   h.ReviewCount,
		Features:      h.Features,
		TotalBeds:     h.TotalBeds(),
		AvailableBeds: h.AvailableBeds(),
	}
}

func wardGrids(h *model.Hospital) []WardGrid {
	out := make([]WardGrid, 0, len(h.Wards))
	for i := range h.Wards {
		w := &h.Wards[i]
		out = append(out, WardGrid{
			Name:          w.Name,
			Type:          string(w.Type),
			AvailableBeds: w.AvailableBeds(),
			Beds:          w.Beds,
		})
	}
	return out
}

// GetHospitals handles GET /v1/hospitals.  The optional ?q= parameter is a
// case-insensitive substring filter over name and location; ?region= is an
// exact region match.  Results keep their onboarding order; an empty match
// is a valid response with an empty items array, not an error.
func (h *PublicHandler) GetHospitals(c echo.Context) error {
	hospitals := h.Store.ListHospitals(store.HospitalFilter{
		Query:  c.QueryParam("q"),
		Region: c.QueryParam("region"),
	})
	out := make([]HospitalSummary, 0, len(hospitals))
	for i := range hospitals {
		out = append(out, summarize(&hospitals[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetHospital handles GET /v1/hospitals/:id and returns the hospital with
// its full ward grid, or 404 when the id is unknown.
func (h *PublicHandler) GetHospital(c echo.Context) error {
	hosp, err := h.Store.GetHospital(c.Param("id"))
	if err != nil {
		if err == store.ErrHospitalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hospital not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, HospitalDetail{
		HospitalSummary: summarize(&hosp),
		Wards:           wardGrids(&hosp),
	})
}

// GetAvailability handles GET /v1/hospitals/:id/availability and returns
// just the derived free-bed count, the cheapest poll for the listing UI.
func (h *PublicHandler) GetAvailability(c echo.Context) error {
	n, err := h.Store.AvailableBeds(c.Param("id"))
	if err != nil {
		if err == store.ErrHospitalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hospital not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"available_beds": n})
}

// GetWards handles GET /v1/hospitals/:id/wards.  It returns the ward/bed
// grid used by the visual bed selector, grouped per ward in ward order.
func (h *PublicHandler) GetWards(c echo.Context) error {
	hosp, err := h.Store.GetHospital(c.Param("id"))
	if err != nil {
		if err == store.ErrHospitalNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hospital not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": wardGrids(&hosp)})
}
