package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// RideService defines the ride tracker operations used by the handler.
type RideService interface {
	Track(ctx context.Context) (*entities.Tracking, error)
	Progress(ctx context.Context, id string) (*entities.RideView, error)
	UpdateStatus(ctx context.Context, id, status string) (*entities.RideView, error)
}

// RideHandler serves the ride tracker.
type RideHandler struct {
	service RideService
}

// NewRideHandler creates a new ride handler
func NewRideHandler(service RideService) *RideHandler {
	return &RideHandler{service: service}
}

// TrackRides handles GET /api/rides/track
func (h *RideHandler) TrackRides(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.service.Track(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tracking)
}

// GetProgress handles GET /api/rides/{id}/progress
func (h *RideHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "ride ID is required")
		return
	}

	view, err := h.service.Progress(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/rides/{id}/status
func (h *RideHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "ride ID is required")
		return
	}

	var payload updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	view, err := h.service.UpdateStatus(r.Context(), id, payload.Status)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}
