package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// BookingService defines the booking operations used by the handler.
type BookingService interface {
	Book(ctx context.Context, req entities.BookingRequest) (*entities.BookingConfirmation, error)
}

// BookingHandler accepts ride bookings.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	confirmation, err := h.service.Book(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, confirmation)
}
