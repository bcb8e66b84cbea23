package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstay/hospital-bed-reservation/internal/model"
	"github.com/medstay/hospital-bed-reservation/internal/queue"
	"github.com/medstay/hospital-bed-reservation/internal/store"
)

func testIntake(name string) model.PatientIntake {
	return model.PatientIntake{
		PatientName: name,
		Age:         34,
		Gender:      "Female",
		Phone:       "9800000001",
		Reason:      "observation",
	}
}

// eventRecorder stands in for the RabbitMQ publisher.
type eventRecorder struct {
	mu     sync.Mutex
	events []queue.BedReservedEvent
	done   chan struct{}
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{done: make(chan struct{}, 8)}
}

func (r *eventRecorder) publish(ctx context.Context, ev queue.BedReservedEvent) error {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *eventRecorder) wait(t *testing.T) queue.BedReservedEvent {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("no event published")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func reserveRequest(t *testing.T, h *PatientHandler, userID interface{}, hospitalID, bedID, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/hospitals/"+hospitalID+"/beds/"+bedID+"/reserve", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "bedId")
	c.SetParamValues(hospitalID, bedID)
	c.Set("user_id", userID)
	require.NoError(t, h.ReserveBed(c))
	return rec
}

const validIntakeBody = `{"patient_name":"Asha Kulkarni","age":34,"gender":"Female","phone":"9800000001","reason":"observation"}`

func TestReserveBedHandler(t *testing.T) {
	s := seededStore()
	events := newEventRecorder()
	h := &PatientHandler{Store: s, Publish: events.publish}

	rec := reserveRequest(t, h, uint64(42), "hosp-1", "GEN-16", validIntakeBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Booking.ID)
	assert.Equal(t, "GEN-16", resp.Booking.BedID)
	assert.Equal(t, uint64(42), resp.Booking.UserID)
	assert.Equal(t, model.BookingConfirmed, resp.Booking.Status)

	avail, err := s.AvailableBeds("hosp-1")
	require.NoError(t, err)
	assert.Equal(t, 11, avail)

	ev := events.wait(t)
	assert.Equal(t, resp.Booking.ID, ev.BookingID)
	assert.Equal(t, "City General Hospital", ev.HospitalName)
	assert.Equal(t, "GENERAL", ev.WardType)
	assert.Equal(t, 11, ev.AvailableBeds)
}

func TestReserveBedHandlerConflict(t *testing.T) {
	s := seededStore()
	h := &PatientHandler{Store: s}

	rec := reserveRequest(t, h, uint64(1), "hosp-1", "GEN-16", validIntakeBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	feed := len(s.ListBookings(store.BookingFilter{}))

	// The loser of the race gets 409 and the feed does not grow.
	rec = reserveRequest(t, h, uint64(2), "hosp-1", "GEN-16", validIntakeBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Len(t, s.ListBookings(store.BookingFilter{}), feed)
}

func TestReserveBedHandlerNotFound(t *testing.T) {
	h := &PatientHandler{Store: seededStore()}

	rec := reserveRequest(t, h, uint64(1), "hosp-999", "GEN-1", validIntakeBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = reserveRequest(t, h, uint64(1), "hosp-1", "XRAY-7", validIntakeBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReserveBedHandlerValidation(t *testing.T) {
	s := seededStore()
	h := &PatientHandler{Store: s}

	cases := []struct {
		name string
		body string
	}{
		{"missing patient name", `{"age":34,"phone":"98"}`},
		{"blank patient name", `{"patient_name":"  ","age":34,"phone":"98"}`},
		{"zero age", `{"patient_name":"A","age":0,"phone":"98"}`},
		{"missing phone", `{"patient_name":"A","age":34}`},
		{"malformed json", `{"patient_name":`},
	}
	feed := len(s.ListBookings(store.BookingFilter{}))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := reserveRequest(t, h, uint64(1), "hosp-1", "GEN-16", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Len(t, s.ListBookings(store.BookingFilter{}), feed)
}

func TestReserveBedHandlerUnauthorized(t *testing.T) {
	h := &PatientHandler{Store: seededStore()}

	// No user_id in context: the JWT middleware never ran.
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/hospitals/hosp-1/beds/GEN-16/reserve", strings.NewReader(validIntakeBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id", "bedId")
	c.SetParamValues("hosp-1", "GEN-16")
	require.NoError(t, h.ReserveBed(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMyBookings(t *testing.T) {
	s := seededStore()
	h := &PatientHandler{Store: s}

	_, err := s.ReserveBed("hosp-1", "GEN-16", 7, testIntake("a"))
	require.NoError(t, err)
	latest, err := s.ReserveBed("hosp-1", "GEN-17", 7, testIntake("b"))
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/my-bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// JWT claims decode numbers as float64.
	c.Set("user_id", float64(7))
	require.NoError(t, h.MyBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []model.Booking `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Equal(t, latest.ID, resp.Items[0].ID)

	t.Run("empty for other users", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/my-bookings", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("user_id", float64(999))
		require.NoError(t, h.MyBookings(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Items)
	})
}
