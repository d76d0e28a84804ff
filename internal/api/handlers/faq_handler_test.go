package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zinklake/shuttle/internal/adapters/catalog"
	"github.com/zinklake/shuttle/internal/api/handlers"
	"github.com/zinklake/shuttle/internal/application/services"
	"github.com/zinklake/shuttle/internal/domain/entities"
)

func newFaqHandler() *handlers.FaqHandler {
	svc := services.NewFaqService(catalog.NewFaqAdapter(catalog.DefaultFaqs()), nil)
	return handlers.NewFaqHandler(svc)
}

func TestFaqHandler_SearchFaqs(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs?q=refund&category=Payments", nil)
	w := httptest.NewRecorder()
	handler.SearchFaqs(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result entities.FaqSearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, "refund", result.Query)
	assert.Equal(t, entities.CategoryPayments, result.Category)
	require.NotZero(t, result.Total)
	require.Len(t, result.Sections, 1)
	for _, e := range result.Entries {
		assert.Equal(t, entities.CategoryPayments, e.Category)
	}
}

func TestFaqHandler_SearchFaqs_CategoryWithSpaces(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs?category=Group+%26+Events", nil)
	w := httptest.NewRecorder()
	handler.SearchFaqs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result entities.FaqSearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Equal(t, entities.CategoryGroupEvents, result.Category)
	assert.NotZero(t, result.Total)
}

func TestFaqHandler_SearchFaqs_UnknownCategoryIsEmpty(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs?category=Weather", nil)
	w := httptest.NewRecorder()
	handler.SearchFaqs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result entities.FaqSearchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Entries)
}

func TestFaqHandler_ListCategories(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs/categories", nil)
	w := httptest.NewRecorder()
	handler.ListCategories(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Categories []entities.CategorySummary `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.NotEmpty(t, body.Categories)
	assert.Equal(t, entities.CategoryAll, body.Categories[0].Category)
}

func TestFaqHandler_GetFaq(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs/11", nil)
	req.SetPathValue("id", "11")
	w := httptest.NewRecorder()
	handler.GetFaq(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entry entities.FaqEntry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entry))
	assert.Equal(t, "11", entry.ID)
}

func TestFaqHandler_GetFaq_NotFound(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs/999", nil)
	req.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	handler.GetFaq(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "faq entry not found", body["error"])
}

func TestFaqHandler_GetFaq_MissingID(t *testing.T) {
	handler := newFaqHandler()

	req := httptest.NewRequest("GET", "/api/faqs/", nil)
	w := httptest.NewRecorder()
	handler.GetFaq(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
