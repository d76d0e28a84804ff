package providers

import (
	"context"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to ride events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RideEvent) error

	// Subscribe subscribes to events on a channel until ctx ends
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RideEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelRideUpdates carries every ride status change
	EventChannelRideUpdates = "ride:updates"

	// EventChannelRidePrefix is the prefix for ride-specific channels
	EventChannelRidePrefix = "ride:"
)

// GetRideChannel returns the channel name for a specific ride
func GetRideChannel(rideID string) string {
	return EventChannelRidePrefix + rideID
}
