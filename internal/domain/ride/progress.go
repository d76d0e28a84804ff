// Package ride maps ride statuses onto the five-step journey shown by the
// tracker, and selects the active and upcoming rides from a ride list.
package ride

import (
	"fmt"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// Journey is the fixed, ordered set of tracker steps.
var Journey = []entities.ProgressStep{
	{ID: "booked", Label: "Booked"},
	{ID: "confirmed", Label: "Confirmed"},
	{ID: "on-way", Label: "On the Way"},
	{ID: "arrived", Label: "Arrived"},
	{ID: "completed", Label: "Completed"},
}

// StepIndex returns the current step for a status. Steps before it are done.
// Any status without a journey position, cancelled included, maps to 0.
func StepIndex(status entities.RideStatus) int {
	switch status {
	case entities.RideStatusScheduled:
		return 1
	case entities.RideStatusInProgress:
		return 2
	case entities.RideStatusArriving:
		return 3
	case entities.RideStatusCompleted:
		return 4
	default:
		return 0
	}
}

// CancelledPolicy decides how the tracker treats cancelled rides.
type CancelledPolicy string

const (
	// CancelledPolicyHide hides the tracker for cancelled rides.
	CancelledPolicyHide CancelledPolicy = "hide"
	// CancelledPolicyReset shows the tracker at step 0.
	CancelledPolicyReset CancelledPolicy = "reset"
)

// ParseCancelledPolicy validates a configured policy value.
func ParseCancelledPolicy(s string) (CancelledPolicy, error) {
	switch CancelledPolicy(s) {
	case CancelledPolicyHide, CancelledPolicyReset:
		return CancelledPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown cancelled tracker policy: %q", s)
	}
}

// Steps builds the tracker for a status: steps below the step index are
// completed, the step at the index is current, the rest are incomplete.
func Steps(status entities.RideStatus, policy CancelledPolicy) entities.Tracker {
	n := StepIndex(status)

	steps := make([]entities.StepState, len(Journey))
	for i, step := range Journey {
		steps[i] = entities.StepState{
			ProgressStep: step,
			Completed:    i < n,
			Current:      i == n,
		}
	}

	return entities.Tracker{
		Visible:   status != entities.RideStatusCancelled || policy == CancelledPolicyReset,
		StepIndex: n,
		Steps:     steps,
	}
}

// IsActive reports whether a ride is currently in transit or arriving.
func IsActive(r entities.Ride) bool {
	return r.Status == entities.RideStatusInProgress || r.Status == entities.RideStatusArriving
}

// ActiveRide returns the first active ride in sequence order.
func ActiveRide(rides []entities.Ride) (entities.Ride, bool) {
	for _, r := range rides {
		if IsActive(r) {
			return r, true
		}
	}
	return entities.Ride{}, false
}

// UpcomingRides returns the scheduled rides, keeping sequence order.
func UpcomingRides(rides []entities.Ride) []entities.Ride {
	upcoming := make([]entities.Ride, 0)
	for _, r := range rides {
		if r.Status == entities.RideStatusScheduled {
			upcoming = append(upcoming, r)
		}
	}
	return upcoming
}
