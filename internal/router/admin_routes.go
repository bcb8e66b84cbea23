package router

import (
	"github.com/labstack/echo/v4"

	"github.com/medstay/hospital-bed-reservation/internal/handler"
	"github.com/medstay/hospital-bed-reservation/internal/middleware"
	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// RegisterAdmin wires the partner/admin surface.  Onboarding a new
// hospital is admin-only; discharging a bed and reading the booking
// feed are shared with hospital partner accounts.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	partners := e.Group("/v1")
	partners.Use(middleware.JWTAuth(jwtSecret))
	partners.Use(middleware.RequireRole(model.RoleHospital, model.RoleAdmin))
	partners.POST("/hospitals/:id/beds/:bedId/release", h.ReleaseBed)
	partners.GET("/bookings", h.ListBookings)

	admins := e.Group("/v1")
	admins.Use(middleware.JWTAuth(jwtSecret))
	admins.Use(middleware.RequireRole(model.RoleAdmin))
	admins.POST("/hospitals", h.OnboardHospital)
}
