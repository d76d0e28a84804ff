// Package memory holds process-lifetime stores for rides and contact
// messages. Nothing here survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

// RideAdapter keeps the ride feed in memory, in insertion order.
type RideAdapter struct {
	mu    sync.RWMutex
	rides []entities.Ride
	index map[string]int
}

var _ repositories.RideRepository = (*RideAdapter)(nil)

// NewRideAdapter creates a store seeded with rides.
func NewRideAdapter(seed []entities.Ride) *RideAdapter {
	a := &RideAdapter{
		rides: make([]entities.Ride, 0, len(seed)),
		index: make(map[string]int, len(seed)),
	}
	for _, r := range seed {
		a.index[r.ID] = len(a.rides)
		a.rides = append(a.rides, r)
	}
	return a
}

// List returns a snapshot of the feed.
func (a *RideAdapter) List(ctx context.Context) ([]entities.Ride, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]entities.Ride, len(a.rides))
	copy(out, a.rides)
	return out, nil
}

// GetByID returns a copy of one ride.
func (a *RideAdapter) GetByID(ctx context.Context, id string) (*entities.Ride, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	i, ok := a.index[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("ride not found")
	}
	r := a.rides[i]
	return &r, nil
}

// Create appends a ride to the feed.
func (a *RideAdapter) Create(ctx context.Context, ride *entities.Ride) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.index[ride.ID]; exists {
		return apperrors.NewInternalError("ride id already exists: "+ride.ID, nil)
	}
	a.index[ride.ID] = len(a.rides)
	a.rides = append(a.rides, *ride)
	return nil
}

// UpdateStatus sets a ride's status and returns the updated ride.
func (a *RideAdapter) UpdateStatus(ctx context.Context, id string, status entities.RideStatus) (*entities.Ride, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.index[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("ride not found")
	}
	a.rides[i].Status = status
	r := a.rides[i]
	return &r, nil
}
