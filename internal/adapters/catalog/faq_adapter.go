package catalog

import (
	"context"

	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

// FaqAdapter serves a fixed, read-only FAQ catalog.
type FaqAdapter struct {
	entries []entities.FaqEntry
	byID    map[string]int
}

var _ repositories.FaqRepository = (*FaqAdapter)(nil)

// NewFaqAdapter wraps an already validated catalog.
func NewFaqAdapter(entries []entities.FaqEntry) *FaqAdapter {
	byID := make(map[string]int, len(entries))
	for i, e := range entries {
		byID[e.ID] = i
	}
	return &FaqAdapter{entries: entries, byID: byID}
}

// List returns a copy of the catalog in catalog order.
func (a *FaqAdapter) List(ctx context.Context) ([]entities.FaqEntry, error) {
	out := make([]entities.FaqEntry, len(a.entries))
	copy(out, a.entries)
	return out, nil
}

// GetByID returns a single entry.
func (a *FaqAdapter) GetByID(ctx context.Context, id string) (*entities.FaqEntry, error) {
	i, ok := a.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("faq entry not found")
	}
	entry := a.entries[i]
	return &entry, nil
}
