package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstay/hospital-bed-reservation/internal/model"
)

func runWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole(model.RoleHospital, model.RoleAdmin)

	t.Run("allowed role passes", func(t *testing.T) {
		rec := runWithRole(t, mw, "ADMIN")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("matching is case-insensitive", func(t *testing.T) {
		rec := runWithRole(t, mw, "hospital")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is forbidden", func(t *testing.T) {
		rec := runWithRole(t, mw, "PATIENT")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown role string is forbidden", func(t *testing.T) {
		rec := runWithRole(t, mw, "superuser")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		rec := runWithRole(t, mw, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("non-string role claim is forbidden", func(t *testing.T) {
		rec := runWithRole(t, mw, 42)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
