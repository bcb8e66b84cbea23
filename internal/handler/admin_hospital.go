package handler // handler package contains hospital-partner and admin handlers

import (
	"errors"   // errors.Is for sentinel comparisons
	"net/http" // http provides status code constants
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/medstay/hospital-bed-reservation/internal/store"
)

// AdminHandler groups the operations available to hospital partners and
// platform admins: onboarding new facilities, discharging patients to
// free beds, and reading the booking activity feed.
type AdminHandler struct {
	Store *store.InventoryStore
}

func NewAdminHandler(s *store.InventoryStore) *AdminHandler {
	if s == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{Store: s}
}

// OnboardHospital handles POST /v1/hospitals.  The new hospital gets the
// fixed default ward layout with every bed available.  Returns 201 with
// the created hospital, or 400 when name/location are empty or the price
// is not positive.
func (h *AdminHandler) OnboardHospital(c echo.Context) error {
	var body struct {
		Name         string `json:"name"`
		Location     string `json:"location"`
		FacilityType string `json:"facility_type"`
		PricePerDay  int64  `json:"price_per_day"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	hosp, err := h.Store.OnboardHospital(store.HospitalDescriptor{
		Name:         body.Name,
		Location:     body.Location,
		FacilityType: body.FacilityType,
		PricePerDay:  body.PricePerDay,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidInput) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not onboard hospital"})
	}
	return c.JSON(http.StatusCreated, hosp)
}

// ReleaseBed handles POST /v1/hospitals/:id/beds/:bedId/release.  It
// discharges the active booking and returns the bed to circulation.
// 404 for unknown hospital or bed, 409 when the bed is not occupied.
func (h *AdminHandler) ReleaseBed(c echo.Context) error {
	booking, err := h.Store.ReleaseBed(c.Param("id"), c.Param("bedId"))
	if err != nil {
		switch err {
		case store.ErrHospitalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hospital not found"})
		case store.ErrBedNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bed not found"})
		case store.ErrBedNotOccupied:
			return c.JSON(http.StatusConflict, echo.Map{"error": "bed not occupied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// ListBookings handles GET /v1/bookings.  It returns the activity feed
// newest-first, optionally limited to one hospital with ?hospital_id=.
// An unknown hospital id simply yields an empty feed; the feed is a
// filter, not a lookup.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	filter := store.BookingFilter{
		HospitalID: strings.TrimSpace(c.QueryParam("hospital_id")),
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Store.ListBookings(filter),
	})
}
