package entities

import (
	"time"

	"github.com/google/uuid"
)

// RideEvent is published whenever a ride changes status.
type RideEvent struct {
	ID        string     `json:"id"`
	RideID    string     `json:"ride_id"`
	Status    RideStatus `json:"status"`
	StepIndex int        `json:"step_index"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewRideEvent creates a ride status event stamped with the current time.
func NewRideEvent(rideID string, status RideStatus, stepIndex int) *RideEvent {
	return &RideEvent{
		ID:        uuid.New().String(),
		RideID:    rideID,
		Status:    status,
		StepIndex: stepIndex,
		Timestamp: time.Now().UTC(),
	}
}
