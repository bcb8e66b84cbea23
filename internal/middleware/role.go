package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/medstay/hospital-bed-reservation/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated account has one of the specified roles.  Roles are the
// closed enumerated set from the model package; the JWT's "role" claim
// is parsed through model.ParseRole, so an unknown or free-form role
// string is rejected rather than silently compared.  If the account's
// role is not in the allowed set, the request is aborted with a 403
// Forbidden response.  It assumes a previous middleware has extracted
// the role into the context under the key "role".
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			raw, ok := v.(string)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			role, ok := model.ParseRole(raw)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
