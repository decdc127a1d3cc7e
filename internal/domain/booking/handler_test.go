package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() *Handler {
	svc, _, _ := newTestService()
	return NewHandler(svc)
}

func getAvailability(t *testing.T, h *Handler, query string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Availability(c); err != nil {
		t.Fatalf("Availability: %v", err)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	return rec, body
}

func TestAvailabilityMissingFields(t *testing.T) {
	h := newTestHandler()
	for _, query := range []string{
		"",
		"doctor_id=1",
		"doctor_id=1&date=2026-09-07",
		"date=2026-09-07&service_id=1",
		"doctor_id=abc&date=2026-09-07&service_id=1",
	} {
		rec, body := getAvailability(t, h, query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status %d, want 400", query, rec.Code)
		}
		if body["error"] != "missing fields" {
			t.Errorf("query %q: error = %v, want \"missing fields\"", query, body["error"])
		}
	}
}

func TestAvailabilityInvalidDate(t *testing.T) {
	h := newTestHandler()
	rec, body := getAvailability(t, h, "doctor_id=1&date=07-09-2026&service_id=1")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
	if body["error"] != "invalid date format" {
		t.Errorf("error = %v, want \"invalid date format\"", body["error"])
	}
}

func TestAvailabilityUnknownService(t *testing.T) {
	h := newTestHandler()
	rec, body := getAvailability(t, h, "doctor_id=1&date=2026-09-07&service_id=99")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rec.Code)
	}
	if body["error"] != "service not found" {
		t.Errorf("error = %v, want \"service not found\"", body["error"])
	}
}

func TestAvailabilitySuccess(t *testing.T) {
	h := newTestHandler()
	rec, body := getAvailability(t, h, "doctor_id=1&date=2026-09-07&service_id=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	slots, ok := body["slots"].([]interface{})
	if !ok {
		t.Fatalf("missing slots array in %v", body)
	}
	if len(slots) == 0 {
		t.Fatal("expected slots on a working day")
	}
	if slots[0] != "09:00" {
		t.Errorf("first slot = %v, want 09:00", slots[0])
	}
}

func TestAvailabilityEmptyDayIsSuccess(t *testing.T) {
	h := newTestHandler()
	// Sunday: doctor does not work, still a 200 with an empty list
	rec, body := getAvailability(t, h, "doctor_id=1&date=2026-09-06&service_id=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	slots, ok := body["slots"].([]interface{})
	if !ok {
		t.Fatalf("missing slots array in %v", body)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots, want 0", len(slots))
	}
}

func TestCreateBookingConflict(t *testing.T) {
	h := newTestHandler()
	e := echo.New()

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := h.CreateBooking(e.NewContext(req, rec)); err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
		return rec
	}

	payload := `{"doctor_id":1,"service_id":1,"start_time":"2026-09-07T10:00","name":"Ana","email":"ana@example.com"}`
	if rec := post(payload); rec.Code != http.StatusCreated {
		t.Fatalf("first booking status %d, want 201: %s", rec.Code, rec.Body.String())
	}

	rec := post(`{"doctor_id":1,"service_id":1,"start_time":"2026-09-07T10:00","name":"Luis","email":"luis@example.com"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate booking status %d, want 409", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if body["error"] != "schedule unavailable" {
		t.Errorf("error = %v, want \"schedule unavailable\"", body["error"])
	}
}

func TestConfirmBookingBadToken(t *testing.T) {
	h := newTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("token")
	c.SetParamValues("garbage")
	if err := h.ConfirmBooking(c); err != nil {
		t.Fatalf("ConfirmBooking: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}
