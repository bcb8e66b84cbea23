package router

import (
	"github.com/labstack/echo/v4"

	"github.com/medstay/hospital-bed-reservation/internal/handler"
	"github.com/medstay/hospital-bed-reservation/internal/middleware"
	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// RegisterPatient wires the booking flow for authenticated patients.
// Reserving a bed and listing one's own bookings require the PATIENT
// role; hospital partners and admins use their own feed instead.
func RegisterPatient(e *echo.Echo, h *handler.PatientHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RolePatient))

	g.POST("/hospitals/:id/beds/:bedId/reserve", h.ReserveBed)
	g.GET("/my-bookings", h.MyBookings)
}
