package repositories

import (
	"context"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// RideRepository defines the interface for ride feed operations.
type RideRepository interface {
	// List returns rides in feed order.
	List(ctx context.Context) ([]entities.Ride, error)
	GetByID(ctx context.Context, id string) (*entities.Ride, error)
	Create(ctx context.Context, ride *entities.Ride) error
	UpdateStatus(ctx context.Context, id string, status entities.RideStatus) (*entities.Ride, error)
}
