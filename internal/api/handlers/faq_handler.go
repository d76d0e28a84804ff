package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// FaqService defines the FAQ operations used by the handler.
type FaqService interface {
	Search(ctx context.Context, query string, category entities.Category) (*entities.FaqSearchResult, error)
	Categories(ctx context.Context) ([]entities.CategorySummary, error)
	Get(ctx context.Context, id string) (*entities.FaqEntry, error)
}

// FaqHandler serves the FAQ browser.
type FaqHandler struct {
	service FaqService
}

// NewFaqHandler creates a new FAQ handler
func NewFaqHandler(service FaqService) *FaqHandler {
	return &FaqHandler{service: service}
}

// SearchFaqs handles GET /api/faqs?q=&category=
func (h *FaqHandler) SearchFaqs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := entities.Category(strings.TrimSpace(query.Get("category")))

	result, err := h.service.Search(r.Context(), query.Get("q"), category)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListCategories handles GET /api/faqs/categories
func (h *FaqHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// GetFaq handles GET /api/faqs/{id}
func (h *FaqHandler) GetFaq(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "faq ID is required")
		return
	}

	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entry)
}
