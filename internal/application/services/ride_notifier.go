package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/providers"
	"github.com/zinklake/shuttle/internal/infrastructure/observability"
)

// RideCacheInvalidator drops cached responses that include a ride.
type RideCacheInvalidator interface {
	InvalidateRide(ctx context.Context, rideID string) error
}

// rideNotifier announces a ride change. The cache is cleared before the
// writer returns so its next read is fresh; the event reaches other
// processes and streams. Either part may be nil.
type rideNotifier struct {
	eventBus    providers.EventBus
	invalidator RideCacheInvalidator
	metrics     *observability.Metrics
}

func (n rideNotifier) notify(ctx context.Context, event *entities.RideEvent) {
	if n.invalidator != nil {
		if err := n.invalidator.InvalidateRide(ctx, event.RideID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("ride_id", event.RideID).Msg("failed to invalidate ride cache")
		}
	}

	if n.eventBus == nil {
		return
	}
	for _, channel := range []string{providers.GetRideChannel(event.RideID), providers.EventChannelRideUpdates} {
		if err := n.eventBus.Publish(ctx, channel, event); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("channel", channel).Str("ride_id", event.RideID).Msg("failed to publish ride event")
		}
	}
	observability.RecordRideEvent(ctx, n.metrics, string(event.Status))
}
