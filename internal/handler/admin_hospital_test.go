package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstay/hospital-bed-reservation/internal/model"
	"github.com/medstay/hospital-bed-reservation/internal/store"
)

func postJSON(t *testing.T, h echo.HandlerFunc, target, body string, names, values []string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	require.NoError(t, h(c))
	return rec
}

func TestOnboardHospitalHandler(t *testing.T) {
	s := seededStore()
	h := NewAdminHandler(s)

	rec := postJSON(t, h.OnboardHospital, "/v1/hospitals",
		`{"name":"Lakeside Medical Centre","location":"HSR Layout, Bangalore","facility_type":"Multi-Specialty","price_per_day":3900}`,
		nil, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var hosp model.Hospital
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &hosp))
	assert.Equal(t, "hosp-4", hosp.ID)
	assert.Equal(t, "Lakeside Medical Centre", hosp.Name)
	assert.Equal(t, 35, hosp.TotalBeds())
	assert.Equal(t, 35, hosp.AvailableBeds())

	// Immediately visible on the public listing.
	assert.Len(t, s.ListHospitals(store.HospitalFilter{}), 4)
}

func TestOnboardHospitalHandlerRejectsBadInput(t *testing.T) {
	s := seededStore()
	h := NewAdminHandler(s)

	cases := []struct {
		name string
		body string
	}{
		{"empty name", `{"location":"X","price_per_day":100}`},
		{"empty location", `{"name":"X","price_per_day":100}`},
		{"zero price", `{"name":"X","location":"Y"}`},
		{"negative price", `{"name":"X","location":"Y","price_per_day":-1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.OnboardHospital, "/v1/hospitals", tc.body, nil, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Len(t, s.ListHospitals(store.HospitalFilter{}), 3)
}

func TestReleaseBedHandler(t *testing.T) {
	s := seededStore()
	h := NewAdminHandler(s)

	_, err := s.ReserveBed("hosp-1", "GEN-16", 5, testIntake("short stay"))
	require.NoError(t, err)

	rec := postJSON(t, h.ReleaseBed, "/v1/hospitals/hosp-1/beds/GEN-16/release", "",
		[]string{"id", "bedId"}, []string{"hosp-1", "GEN-16"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.BookingDischarged, resp.Booking.Status)
	require.NotNil(t, resp.Booking.DischargedAt)

	avail, err := s.AvailableBeds("hosp-1")
	require.NoError(t, err)
	assert.Equal(t, 12, avail)

	// Releasing again conflicts: the bed is already free.
	rec = postJSON(t, h.ReleaseBed, "/v1/hospitals/hosp-1/beds/GEN-16/release", "",
		[]string{"id", "bedId"}, []string{"hosp-1", "GEN-16"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestReleaseBedHandlerNotFound(t *testing.T) {
	h := NewAdminHandler(seededStore())

	rec := postJSON(t, h.ReleaseBed, "/v1/hospitals/hosp-999/beds/GEN-1/release", "",
		[]string{"id", "bedId"}, []string{"hosp-999", "GEN-1"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, h.ReleaseBed, "/v1/hospitals/hosp-1/beds/XRAY-7/release", "",
		[]string{"id", "bedId"}, []string{"hosp-1", "XRAY-7"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBookingsHandler(t *testing.T) {
	s := seededStore()
	h := NewAdminHandler(s)

	latest, err := s.ReserveBed("hosp-3", "GEN-11", 2, testIntake("newest"))
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h.ListBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []model.Booking `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Items)
	assert.Equal(t, latest.ID, resp.Items[0].ID)

	t.Run("filtered by hospital", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?hospital_id=hosp-3", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, h.ListBookings(c))
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Items)
		for _, b := range resp.Items {
			assert.Equal(t, "hosp-3", b.HospitalID)
		}
	})

	t.Run("unknown hospital yields empty feed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings?hospital_id=hosp-999", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, h.ListBookings(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Items)
	})
}
