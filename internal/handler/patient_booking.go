package handler

import (
	"context"  // detached context for event publishing
	"net/http" // HTTP status codes
	"strings"  // input trimming
	"time"     // event timestamps

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/medstay/hospital-bed-reservation/internal/model"
	"github.com/medstay/hospital-bed-reservation/internal/queue"
	queue_publisher "github.com/medstay/hospital-bed-reservation/internal/service"
	"github.com/medstay/hospital-bed-reservation/internal/store"
)

// PatientHandler serves the booking flow for authenticated patients.
// All methods assume JWT authentication and role validation have
// already run in middleware.  The reservation itself is a single
// compare-and-swap inside the store, so no transaction plumbing is
// needed here; the handler's job is input validation, error mapping
// and event fanout.
type PatientHandler struct {
	Store *store.InventoryStore
	// Publish sends the reservation event.  Injectable so tests run
	// without a broker; nil disables publishing.
	Publish func(ctx context.Context, ev queue.BedReservedEvent) error
}

// NewPatientHandler constructs a PatientHandler wired to the RabbitMQ
// publisher.
func NewPatientHandler(s *store.InventoryStore) *PatientHandler {
	if s == nil {
		panic("nil store passed to NewPatientHandler")
	}
	return &PatientHandler{Store: s, Publish: queue_publisher.PublishBedReserved}
}

// reserveReq is the intake form submitted with a reservation.
type reserveReq struct {
	PatientName string `json:"patient_name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Reason      string `json:"reason"`
}

// ReserveBed handles POST /v1/hospitals/:id/beds/:bedId/reserve.  It
// validates the intake details, performs the atomic reservation and
// returns 201 with the booking.  A bed that no longer exists yields
// 404; a bed that was taken first yields 409 and no booking record —
// repeating a request that already succeeded is rejected the same
// way, never double-booked.
func (h *PatientHandler) ReserveBed(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hospitalID := c.Param("id")
	bedID := c.Param("bedId")

	var body reserveReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	intake := model.PatientIntake{
		PatientName: strings.TrimSpace(body.PatientName),
		Age:         body.Age,
		Gender:      strings.TrimSpace(body.Gender),
		Phone:       strings.TrimSpace(body.Phone),
		Reason:      strings.TrimSpace(body.Reason),
	}
	if intake.PatientName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "patient_name is required"})
	}
	if intake.Age <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "age must be positive"})
	}
	if intake.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "phone is required"})
	}

	booking, err := h.Store.ReserveBed(hospitalID, bedID, userID, intake)
	if err != nil {
		switch err {
		case store.ErrHospitalNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hospital not found"})
		case store.ErrBedNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bed not found"})
		case store.ErrBedAlreadyOccupied:
			return c.JSON(http.StatusConflict, echo.Map{"error": "bed already occupied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}

	h.publishReserved(booking)

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// publishReserved fans the confirmed reservation out to the broker in the
// background.  The event is best-effort: the booking stands either way.
func (h *PatientHandler) publishReserved(b model.Booking) {
	if h.Publish == nil {
		return
	}
	ev := queue.BedReservedEvent{
		BookingID:   b.ID,
		BookingSeq:  b.Seq,
		UserID:      b.UserID,
		HospitalID:  b.HospitalID,
		BedID:       b.BedID,
		PatientName: b.PatientName,
		Reason:      b.Reason,
		ReservedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	if hosp, err := h.Store.GetHospital(b.HospitalID); err == nil {
		ev.HospitalName = hosp.Name
		ev.PricePerDay = hosp.PricePerDay
		ev.AvailableBeds = hosp.AvailableBeds()
		if bed := hosp.FindBed(b.BedID); bed != nil {
			ev.WardType = string(bed.WardType)
		}
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}

// MyBookings handles GET /v1/my-bookings.  It returns the caller's
// bookings newest-first; an account with no bookings gets an empty
// array.
func (h *PatientHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": h.Store.ListBookingsByUser(userID),
	})
}
