package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	"github.com/zinklake/shuttle/internal/domain/ride"
	"github.com/zinklake/shuttle/internal/infrastructure/observability"
	"github.com/zinklake/shuttle/pkg/delay"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

// RideService serves the ride tracker and applies dispatch status updates.
type RideService struct {
	repo     repositories.RideRepository
	notifier rideNotifier
	policy   ride.CancelledPolicy
	latency  time.Duration
}

// RideServiceOptions tune how the tracker is served.
type RideServiceOptions struct {
	// CancelledPolicy decides whether cancelled rides show a tracker.
	CancelledPolicy ride.CancelledPolicy
	// FeedLatency delays each Track call, mimicking a slow ride feed.
	FeedLatency time.Duration
	// Invalidator clears cached ride responses after a status change.
	Invalidator RideCacheInvalidator
	Metrics     *observability.Metrics
}

// NewRideService creates a ride service. eventBus may be nil, in which case
// status changes are stored but not broadcast.
func NewRideService(repo repositories.RideRepository, eventBus providers.EventBus, opts RideServiceOptions) *RideService {
	if opts.CancelledPolicy == "" {
		opts.CancelledPolicy = ride.CancelledPolicyHide
	}
	return &RideService{
		repo: repo,
		notifier: rideNotifier{
			eventBus:    eventBus,
			invalidator: opts.Invalidator,
			metrics:     opts.Metrics,
		},
		policy:  opts.CancelledPolicy,
		latency: opts.FeedLatency,
	}
}

// Track returns the active ride, if any, and the upcoming rides. The feed
// read happens after the configured latency and is skipped entirely when ctx
// ends first.
func (s *RideService) Track(ctx context.Context) (*entities.Tracking, error) {
	ctx, span := observability.StartSpan(ctx, "RideService.Track")
	defer span.End()

	fetch := delay.Start(ctx, s.latency, func(ctx context.Context) (*entities.Tracking, error) {
		rides, err := s.repo.List(ctx)
		if err != nil {
			return nil, err
		}
		return s.compose(rides), nil
	})
	defer fetch.Cancel()

	tracking, err := fetch.Wait(ctx)
	if err != nil {
		observability.RecordError(span, err)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, apperrors.NewCanceledError("ride feed request abandoned", err)
		}
		return nil, apperrors.NewInternalError("failed to load rides", err)
	}
	return tracking, nil
}

func (s *RideService) compose(rides []entities.Ride) *entities.Tracking {
	tracking := &entities.Tracking{Upcoming: []entities.RideView{}}

	if active, ok := ride.ActiveRide(rides); ok {
		view := ride.View(active, s.policy)
		tracking.Active = &view
	}
	for _, r := range ride.UpcomingRides(rides) {
		tracking.Upcoming = append(tracking.Upcoming, ride.View(r, s.policy))
	}
	return tracking
}

// Progress returns one ride with its tracker.
func (s *RideService) Progress(ctx context.Context, id string) (*entities.RideView, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := ride.View(*r, s.policy)
	return &view, nil
}

// UpdateStatus records a new status for a ride and broadcasts the change.
// A failed broadcast is logged; the stored update stands.
func (s *RideService) UpdateStatus(ctx context.Context, id, rawStatus string) (*entities.RideView, error) {
	ctx, span := observability.StartSpan(ctx, "RideService.UpdateStatus")
	defer span.End()

	status, err := entities.ParseRideStatus(rawStatus)
	if err != nil {
		return nil, apperrors.NewValidationError("status", err.Error())
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	view := ride.View(*updated, s.policy)
	s.notifier.notify(ctx, entities.NewRideEvent(updated.ID, updated.Status, view.Tracker.StepIndex))

	log.Ctx(ctx).Info().Str("ride_id", id).Str("status", string(status)).Msg("ride status updated")
	return &view, nil
}
