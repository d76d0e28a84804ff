package repositories

import (
	"context"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// FaqIndex is an external search index kept in sync with the catalog.
type FaqIndex interface {
	InitSchema(ctx context.Context) error
	// Reset drops the collection so the next InitSchema starts empty.
	Reset(ctx context.Context) error
	// Index upserts an entry. position is the entry's place in the catalog.
	Index(ctx context.Context, entry entities.FaqEntry, position int) error
	Delete(ctx context.Context, id string) error
}
