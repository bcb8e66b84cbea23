package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/medstay/hospital-bed-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/medstay/hospital-bed-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/medstay/hospital-bed-reservation/internal/model"      // closed role set used on protected groups
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The /healthz endpoint is used by load balancers and monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: register, login
	// and the two refresh variants.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotating refresh: exchanges the refresh token for a new pair.
	g.POST("/refresh", a.Refresh)
	// Non-rotating refresh: issues a new access token only.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (revoke all sessions) or a
	// refresh_token body (revoke one session) and needs no JWT middleware.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.  Every role in the closed
	// set may call them; the middleware rejects missing or unknown roles.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RolePatient, model.RoleHospital, model.RoleAdmin))
	auth.GET("/me", a.Me)

	// Top-level alias so clients can call /v1/logout as well.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints.  These
// serve the landing page: hospital search, hospital detail, the derived
// availability count and the ward/bed grid for the selector.  No JWT or
// role middleware applies; the optional extra middleware (response cache,
// rate limiter) is applied per group.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1", extra...)
	g.GET("/hospitals", p.GetHospitals)
	g.GET("/hospitals/:id", p.GetHospital)
	g.GET("/hospitals/:id/availability", p.GetAvailability)
	g.GET("/hospitals/:id/wards", p.GetWards)
}
