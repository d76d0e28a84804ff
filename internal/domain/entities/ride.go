package entities

import "fmt"

// RideStatus is the lifecycle state of a shuttle ride.
type RideStatus string

const (
	RideStatusScheduled  RideStatus = "scheduled"
	RideStatusInProgress RideStatus = "in-progress"
	RideStatusArriving   RideStatus = "arriving"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// ParseRideStatus converts a raw status string into a known RideStatus.
func ParseRideStatus(s string) (RideStatus, error) {
	switch RideStatus(s) {
	case RideStatusScheduled, RideStatusInProgress, RideStatusArriving, RideStatusCompleted, RideStatusCancelled:
		return RideStatus(s), nil
	default:
		return "", fmt.Errorf("unknown ride status: %q", s)
	}
}

// Ride is a booked shuttle trip as the tracker shows it.
type Ride struct {
	ID               string     `json:"id" yaml:"id"`
	Status           RideStatus `json:"status" yaml:"status"`
	Pickup           string     `json:"pickup" yaml:"pickup"`
	Dropoff          string     `json:"dropoff" yaml:"dropoff"`
	ScheduledTime    string     `json:"scheduled_time" yaml:"scheduled_time"`
	EstimatedArrival string     `json:"estimated_arrival" yaml:"estimated_arrival"`
	DriverName       string     `json:"driver_name" yaml:"driver_name"`
	DriverPhone      string     `json:"driver_phone" yaml:"driver_phone"`
	VehicleType      string     `json:"vehicle_type" yaml:"vehicle_type"`
	VehicleID        string     `json:"vehicle_id" yaml:"vehicle_id"`
	PassengerCount   int        `json:"passenger_count" yaml:"passenger_count"`
}

// StatusInfo is the display metadata attached to a ride status.
type StatusInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// ProgressStep is one stage of the fixed ride journey.
type ProgressStep struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// StepState is a ProgressStep together with its rendering state.
type StepState struct {
	ProgressStep
	Completed bool `json:"completed"`
	Current   bool `json:"current"`
}

// Tracker is the step tracker rendered for a single ride.
type Tracker struct {
	Visible   bool        `json:"visible"`
	StepIndex int         `json:"step_index"`
	Steps     []StepState `json:"steps"`
}

// RideView is a ride enriched with its status display data and tracker.
type RideView struct {
	Ride
	StatusInfo StatusInfo `json:"status_info"`
	Tracker    Tracker    `json:"tracker"`
}

// Tracking is the payload behind the "Track My Ride" screen.
type Tracking struct {
	Active   *RideView  `json:"active"`
	Upcoming []RideView `json:"upcoming"`
}
