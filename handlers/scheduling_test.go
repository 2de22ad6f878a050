package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedula/models"
	"schedula/services/scheduling"
	"schedula/utils"
)

// stubSchedulingService returns canned responses so the handler tests only
// exercise binding and error mapping.
type stubSchedulingService struct {
	availability *models.AvailabilityResult
	appointment  *models.Appointment
	err          error
}

func (s *stubSchedulingService) GetAvailableSlots(ctx context.Context, providerID, serviceID, date string) (*models.AvailabilityResult, error) {
	return s.availability, s.err
}

func (s *stubSchedulingService) BookAppointment(ctx context.Context, req models.BookingRequest) (*models.Appointment, error) {
	return s.appointment, s.err
}

func (s *stubSchedulingService) EditAppointment(ctx context.Context, id string, req models.BookingRequest) (*models.Appointment, error) {
	return s.appointment, s.err
}

func (s *stubSchedulingService) CancelAppointment(ctx context.Context, id, reason string) (*models.Appointment, error) {
	return s.appointment, s.err
}

func (s *stubSchedulingService) BlockTime(ctx context.Context, req models.BlockTimeRequest) (*models.BlockedTime, error) {
	return nil, s.err
}

func (s *stubSchedulingService) CancelBlockedTime(ctx context.Context, id, reason string) (*models.BlockedTime, error) {
	return nil, s.err
}

func (s *stubSchedulingService) DeleteBlockedTime(ctx context.Context, id string) error {
	return s.err
}

func (s *stubSchedulingService) CompletePastAppointments(ctx context.Context, now time.Time) (int, error) {
	return 0, s.err
}

func newTestRouter(svc scheduling.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &SchedulingHandler{Service: svc}
	r := gin.New()
	r.GET("/api/availability", h.GetAvailability)
	r.POST("/api/appointments", h.BookAppointment)
	r.PUT("/api/appointments/:id/cancel", h.CancelAppointment)
	return r
}

func TestGetAvailabilityHandler(t *testing.T) {
	svc := &stubSchedulingService{
		availability: &models.AvailabilityResult{Date: "2026-03-02", Slots: []string{"09:00", "09:40"}},
	}
	router := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?providerId=p1&serviceId=svc30&date=2026-03-02", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var result models.AvailabilityResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []string{"09:00", "09:40"}, result.Slots)
}

func TestGetAvailabilityHandlerMissingParams(t *testing.T) {
	router := newTestRouter(&stubSchedulingService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/availability?providerId=p1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation maps to 400", scheduling.ValidationError{Field: "date", Code: models.ReasonInvalidTime, Message: "bad date"}, http.StatusBadRequest, models.ReasonInvalidTime},
		{"not found maps to 404", scheduling.NotFoundError{Resource: "provider", ID: "ghost"}, http.StatusNotFound, "PROVIDER_NOT_FOUND"},
		{"conflict maps to 409", scheduling.ConflictError{Message: "taken"}, http.StatusConflict, "CONFLICT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubSchedulingService{err: tt.err})

			w := httptest.NewRecorder()
			body := `{"customerId":"c1","providerId":"p1","serviceId":"s1","date":"2026-03-02","time":"09:00"}`
			req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			var resp utils.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Code)
		})
	}
}

func TestCancelAppointmentHandlerRequiresReason(t *testing.T) {
	router := newTestRouter(&stubSchedulingService{appointment: &models.Appointment{ID: "a1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/appointments/a1/cancel", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
