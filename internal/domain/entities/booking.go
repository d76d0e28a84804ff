package entities

import "time"

// BookingRequest is the pickup/drop-off form submitted from the app.
type BookingRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	PassengerCount  int    `json:"passenger_count"`
}

// BookingConfirmation is returned once a booking has been accepted.
type BookingConfirmation struct {
	RideID    string    `json:"ride_id"`
	Name      string    `json:"name"`
	Pickup    string    `json:"pickup"`
	Dropoff   string    `json:"dropoff"`
	PickupAt  time.Time `json:"pickup_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
