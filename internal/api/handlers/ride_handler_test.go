package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/adapters/memory"
	"github.com/zinklake/shuttle/internal/api/handlers"
	"github.com/zinklake/shuttle/internal/application/services"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

func newRideHandler(bus *MockEventBus) *handlers.RideHandler {
	var eventBus providers.EventBus
	if bus != nil {
		eventBus = bus
	}
	svc := services.NewRideService(memory.NewRideAdapter(catalog.DefaultRides()), eventBus, services.RideServiceOptions{})
	return handlers.NewRideHandler(svc)
}

func TestRideHandler_TrackRides(t *testing.T) {
	handler := newRideHandler(nil)

	req := httptest.NewRequest("GET", "/api/rides/track", nil)
	w := httptest.NewRecorder()
	handler.TrackRides(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var tracking entities.Tracking
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tracking))
	require.NotNil(t, tracking.Active)
	assert.Equal(t, "12345", tracking.Active.ID)
	assert.Equal(t, "Michael Rodriguez", tracking.Active.DriverName)
	require.Len(t, tracking.Active.Tracker.Steps, 5)
	assert.True(t, tracking.Active.Tracker.Steps[1].Completed)
	assert.True(t, tracking.Active.Tracker.Steps[2].Current)
	require.Len(t, tracking.Upcoming, 1)
	assert.Equal(t, "12346", tracking.Upcoming[0].ID)
}

func TestRideHandler_GetProgress(t *testing.T) {
	handler := newRideHandler(nil)

	req := httptest.NewRequest("GET", "/api/rides/12346/progress", nil)
	req.SetPathValue("id", "12346")
	w := httptest.NewRecorder()
	handler.GetProgress(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view entities.RideView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, "Scheduled", view.StatusInfo.Label)
	assert.Equal(t, 1, view.Tracker.StepIndex)
}

func TestRideHandler_GetProgress_NotFound(t *testing.T) {
	handler := newRideHandler(nil)

	req := httptest.NewRequest("GET", "/api/rides/0/progress", nil)
	req.SetPathValue("id", "0")
	w := httptest.NewRecorder()
	handler.GetProgress(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRideHandler_UpdateStatus(t *testing.T) {
	bus := NewMockEventBus()
	handler := newRideHandler(bus)

	req := httptest.NewRequest("PUT", "/api/rides/12345/status", strings.NewReader(`{"status":"completed"}`))
	req.SetPathValue("id", "12345")
	w := httptest.NewRecorder()
	handler.UpdateStatus(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var view entities.RideView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Equal(t, entities.RideStatusCompleted, view.Status)
	assert.Equal(t, 4, view.Tracker.StepIndex)
	assert.Len(t, bus.published, 2)
}

func TestRideHandler_UpdateStatus_BadInput(t *testing.T) {
	handler := newRideHandler(nil)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"status":`, http.StatusBadRequest},
		{"unknown status", `{"status":"flying"}`, http.StatusBadRequest},
		{"empty status", `{}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/api/rides/12345/status", strings.NewReader(tt.body))
			req.SetPathValue("id", "12345")
			w := httptest.NewRecorder()
			handler.UpdateStatus(w, req)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

type failingRideService struct {
	err error
}

func (s failingRideService) Track(ctx context.Context) (*entities.Tracking, error) {
	return nil, s.err
}

func (s failingRideService) Progress(ctx context.Context, id string) (*entities.RideView, error) {
	return nil, s.err
}

func (s failingRideService) UpdateStatus(ctx context.Context, id, status string) (*entities.RideView, error) {
	return nil, s.err
}

func TestRideHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"internal hides detail", apperrors.NewInternalError("db exploded", errors.New("secret")), http.StatusInternalServerError, "internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
		{"canceled", apperrors.NewCanceledError("ride feed request abandoned", context.Canceled), 499, "ride feed request abandoned"},
		{"external", apperrors.NewExternalError("dispatch unavailable", nil), http.StatusBadGateway, "dispatch unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewRideHandler(failingRideService{err: tt.err})

			req := httptest.NewRequest("GET", "/api/rides/track", nil)
			w := httptest.NewRecorder()
			handler.TrackRides(w, req)

			assert.Equal(t, tt.code, w.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}
