package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	"github.com/zinklake/shuttle/internal/domain/ride"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

const (
	bookingDateLayout   = "2006-01-02"
	bookingTimeLayout   = "15:04"
	maxBookedPassengers = 20
)

// BookingService turns booking form submissions into scheduled rides.
type BookingService struct {
	rides    repositories.RideRepository
	loc      *time.Location
	notifier rideNotifier
}

// NewBookingService creates a booking service. Pickup dates and times are
// read in loc; nil means time.Local.
func NewBookingService(rides repositories.RideRepository, loc *time.Location) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{rides: rides, loc: loc}
}

// WithEventBus announces booked rides on bus.
func (s *BookingService) WithEventBus(bus providers.EventBus) *BookingService {
	s.notifier.eventBus = bus
	return s
}

// WithCacheInvalidator clears cached tracker responses after each booking.
func (s *BookingService) WithCacheInvalidator(inv RideCacheInvalidator) *BookingService {
	s.notifier.invalidator = inv
	return s
}

// Book validates the request and adds a scheduled ride to the feed.
func (s *BookingService) Book(ctx context.Context, req entities.BookingRequest) (*entities.BookingConfirmation, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	req.DropoffLocation = strings.TrimSpace(req.DropoffLocation)

	for _, field := range []struct{ name, value string }{
		{"name", req.Name},
		{"phone", req.Phone},
		{"pickup_location", req.PickupLocation},
		{"dropoff_location", req.DropoffLocation},
	} {
		if field.value == "" {
			return nil, apperrors.NewValidationError(field.name, field.name+" is required")
		}
	}

	pickupAt, err := s.pickupTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	passengers := req.PassengerCount
	if passengers == 0 {
		passengers = 1
	}
	if passengers < 1 || passengers > maxBookedPassengers {
		return nil, apperrors.NewValidationError("passenger_count", "passenger_count must be between 1 and 20")
	}

	r := &entities.Ride{
		ID:             uuid.New().String(),
		Status:         entities.RideStatusScheduled,
		Pickup:         req.PickupLocation,
		Dropoff:        req.DropoffLocation,
		ScheduledTime:  pickupAt.Format("Jan 2, 3:04 PM"),
		PassengerCount: passengers,
	}
	if err := s.rides.Create(ctx, r); err != nil {
		return nil, err
	}
	s.notifier.notify(ctx, entities.NewRideEvent(r.ID, r.Status, ride.StepIndex(r.Status)))

	log.Ctx(ctx).Info().Str("ride_id", r.ID).Time("pickup_at", pickupAt).Int("passengers", passengers).Msg("ride booked")

	return &entities.BookingConfirmation{
		RideID:    r.ID,
		Name:      req.Name,
		Pickup:    r.Pickup,
		Dropoff:   r.Dropoff,
		PickupAt:  pickupAt,
		Status:    string(r.Status),
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *BookingService) pickupTime(date, clock string) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, apperrors.NewValidationError("date", "date is required")
	}
	if clock == "" {
		return time.Time{}, apperrors.NewValidationError("time", "time is required")
	}
	if _, err := time.Parse(bookingDateLayout, date); err != nil {
		return time.Time{}, apperrors.NewValidationError("date", "date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(bookingTimeLayout, clock); err != nil {
		return time.Time{}, apperrors.NewValidationError("time", "time must be HH:MM")
	}
	return time.ParseInLocation(bookingDateLayout+" "+bookingTimeLayout, date+" "+clock, s.loc)
}
