package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstay/hospital-bed-reservation/internal/model"
	"github.com/medstay/hospital-bed-reservation/internal/utils"
)

const testSecret = "unit-test-secret"

func runWithAuth(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := JWTAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token injects claims", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 42, model.RolePatient, 5)
		require.NoError(t, err)

		rec, c := runWithAuth(t, "Bearer "+tok.Token)
		require.Equal(t, http.StatusOK, rec.Code)

		// JWT numbers decode as float64; getUserID in the handlers
		// normalizes that.
		assert.Equal(t, float64(42), c.Get("user_id"))
		assert.Equal(t, "PATIENT", c.Get("role"))
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _ := runWithAuth(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec, _ := runWithAuth(t, "Basic abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := runWithAuth(t, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("another-secret", 42, model.RolePatient, 5)
		require.NoError(t, err)
		rec, _ := runWithAuth(t, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 42, model.RolePatient, -5)
		require.NoError(t, err)
		rec, _ := runWithAuth(t, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
