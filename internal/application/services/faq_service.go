package services

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/faq"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	"github.com/zinklake/shuttle/internal/infrastructure/observability"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

// FaqService answers FAQ browser queries against the catalog.
type FaqService struct {
	repo    repositories.FaqRepository
	metrics *observability.Metrics
}

// NewFaqService creates a new FAQ service. metrics may be nil.
func NewFaqService(repo repositories.FaqRepository, metrics *observability.Metrics) *FaqService {
	return &FaqService{repo: repo, metrics: metrics}
}

// Search filters the catalog by query and category and groups the matches
// into sections. An empty category means All.
func (s *FaqService) Search(ctx context.Context, query string, category entities.Category) (*entities.FaqSearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "FaqService.Search")
	defer span.End()

	if category == "" {
		category = entities.CategoryAll
	}

	catalog, err := s.repo.List(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to load faq catalog", err)
	}

	entries := faq.Filter(catalog, query, category)
	sections := faq.SortedSections(faq.Group(entries, category))

	log.Ctx(ctx).Debug().
		Str("query", query).
		Str("category", string(category)).
		Int("matches", len(entries)).
		Msg("faq search")
	observability.RecordFaqSearch(ctx, s.metrics, string(category), len(entries) > 0)

	return &entities.FaqSearchResult{
		Query:    query,
		Category: category,
		Total:    len(entries),
		Entries:  entries,
		Sections: sections,
	}, nil
}

// Categories lists the category chips in display order, All first, with
// the number of entries in each.
func (s *FaqService) Categories(ctx context.Context) ([]entities.CategorySummary, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load faq catalog", err)
	}

	counts := make(map[entities.Category]int, len(entities.KnownCategories))
	for _, entry := range catalog {
		counts[entry.Category]++
	}

	out := make([]entities.CategorySummary, 0, len(entities.KnownCategories)+1)
	out = append(out, entities.CategorySummary{Category: entities.CategoryAll, Count: len(catalog)})
	for _, c := range entities.KnownCategories {
		out = append(out, entities.CategorySummary{Category: c, Count: counts[c]})
	}
	return out, nil
}

// Get returns a single entry.
func (s *FaqService) Get(ctx context.Context, id string) (*entities.FaqEntry, error) {
	return s.repo.GetByID(ctx, id)
}
