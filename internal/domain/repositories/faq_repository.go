package repositories

import (
	"context"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// FaqRepository defines read access to the FAQ catalog.
type FaqRepository interface {
	List(ctx context.Context) ([]entities.FaqEntry, error)
	GetByID(ctx context.Context, id string) (*entities.FaqEntry, error)
}
