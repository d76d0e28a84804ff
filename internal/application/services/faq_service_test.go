package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/application/services"
	"github.com/zinklake/shuttle/internal/domain/entities"
	apperrors "github.com/zinklake/shuttle/pkg/errors"
)

func newFaqService() *services.FaqService {
	return services.NewFaqService(catalog.NewFaqAdapter(catalog.DefaultFaqs()), nil)
}

func TestFaqService_Search_EmptyQueryReturnsEverything(t *testing.T) {
	svc := newFaqService()

	result, err := svc.Search(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, entities.CategoryAll, result.Category)
	assert.Equal(t, len(catalog.DefaultFaqs()), result.Total)
	assert.Len(t, result.Sections, len(entities.KnownCategories))

	for i := 1; i < len(result.Sections); i++ {
		assert.Less(t, string(result.Sections[i-1].Category), string(result.Sections[i].Category))
	}
}

func TestFaqService_Search_CategoryYieldsSingleSection(t *testing.T) {
	svc := newFaqService()

	result, err := svc.Search(context.Background(), "", entities.CategoryPayments)
	require.NoError(t, err)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, entities.CategoryPayments, result.Sections[0].Category)
	assert.Equal(t, result.Entries, result.Sections[0].Entries)
	for _, e := range result.Entries {
		assert.Equal(t, entities.CategoryPayments, e.Category)
	}
}

func TestFaqService_Search_NoMatchInCategoryKeepsEmptySection(t *testing.T) {
	svc := newFaqService()

	result, err := svc.Search(context.Background(), "zzz-no-such-text", entities.CategoryTech)
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.NotNil(t, result.Entries)
	require.Len(t, result.Sections, 1)
	assert.Empty(t, result.Sections[0].Entries)
}

func TestFaqService_Search_Refund(t *testing.T) {
	svc := newFaqService()

	result, err := svc.Search(context.Background(), "REFUND", "")
	require.NoError(t, err)

	require.NotZero(t, result.Total)
	ids := make([]string, 0, result.Total)
	for _, e := range result.Entries {
		ids = append(ids, e.ID)
	}
	assert.Contains(t, ids, "11")
}

func TestFaqService_Search_RepositoryError(t *testing.T) {
	repo := &mockFaqRepository{}
	repo.On("List", mock.Anything).Return(nil, errors.New("boom"))

	svc := services.NewFaqService(repo, nil)
	_, err := svc.Search(context.Background(), "", "")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	repo.AssertExpectations(t)
}

func TestFaqService_Categories(t *testing.T) {
	svc := newFaqService()

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)

	require.Len(t, cats, len(entities.KnownCategories)+1)
	assert.Equal(t, entities.CategoryAll, cats[0].Category)
	assert.Equal(t, len(catalog.DefaultFaqs()), cats[0].Count)

	sum := 0
	for _, c := range cats[1:] {
		assert.Positive(t, c.Count, c.Category)
		sum += c.Count
	}
	assert.Equal(t, cats[0].Count, sum)
}

func TestFaqService_Get(t *testing.T) {
	svc := newFaqService()

	entry, err := svc.Get(context.Background(), "11")
	require.NoError(t, err)
	assert.Equal(t, "11", entry.ID)

	_, err = svc.Get(context.Background(), "missing")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
