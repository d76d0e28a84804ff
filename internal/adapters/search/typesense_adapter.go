package search

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/repositories"
	tsclient "github.com/zinklake/shuttle/internal/infrastructure/clients/typesense"
)

const (
	defaultCollection = "faqs"
	maxFaqTags        = 24
	minTagLength      = 4
)

// TypesenseAdapter keeps the FAQ catalog mirrored in a Typesense collection.
type TypesenseAdapter struct {
	client     *tsclient.Client
	collection string
}

var _ repositories.FaqIndex = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	collection := client.Collection()
	if collection == "" {
		collection = defaultCollection
	}
	return &TypesenseAdapter{client: client, collection: collection}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	if _, err := a.client.Client().Collection(a.collection).Retrieve(ctx); err == nil {
		return nil
	}

	if _, err := a.client.Client().Collections().Create(ctx, faqSchema(a.collection)); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}
	return nil
}

// Reset drops the collection.
func (a *TypesenseAdapter) Reset(ctx context.Context) error {
	if _, err := a.client.Client().Collection(a.collection).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete typesense collection: %w", err)
	}
	return nil
}

// Index upserts a FAQ entry
func (a *TypesenseAdapter) Index(ctx context.Context, entry entities.FaqEntry, position int) error {
	_, err := a.client.Client().Collection(a.collection).Documents().Upsert(ctx, buildFaqDocument(entry, position))
	if err != nil {
		return fmt.Errorf("failed to index faq %s: %w", entry.ID, err)
	}
	return nil
}

// Delete removes a FAQ entry from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	if _, err := a.client.Client().Collection(a.collection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete faq %s from index: %w", id, err)
	}
	return nil
}

func faqSchema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "question", Type: "string"},
			{Name: "answer", Type: "string"},
			{Name: "category", Type: "string", Facet: pointer.True()},
			{Name: "position", Type: "int32"},
			{Name: "tags", Type: "string[]", Optional: pointer.True()},
		},
		DefaultSortingField: pointer.String("position"),
	}
}

// buildFaqDocument maps an entry onto the collection schema.
func buildFaqDocument(entry entities.FaqEntry, position int) map[string]interface{} {
	doc := map[string]interface{}{
		"id":       entry.ID,
		"question": entry.Question,
		"answer":   entry.Answer,
		"category": string(entry.Category),
		"position": position,
	}
	if tags := buildFaqTags(entry); len(tags) > 0 {
		doc["tags"] = tags
	}
	return doc
}

// buildFaqTags returns the normalized category followed by the distinct
// longer words of the question, capped at maxFaqTags.
func buildFaqTags(entry entities.FaqEntry) []string {
	b := newTagBuilder(maxFaqTags)
	b.add(string(entry.Category))
	b.add(strings.FieldsFunc(entry.Question, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})...)
	return b.list
}

type tagBuilder struct {
	seen  map[string]struct{}
	list  []string
	limit int
}

func newTagBuilder(limit int) *tagBuilder {
	return &tagBuilder{seen: make(map[string]struct{}), limit: limit}
}

func (b *tagBuilder) add(values ...string) {
	for _, value := range values {
		if len(b.list) >= b.limit {
			return
		}
		normalized := strings.ToLower(strings.TrimSpace(value))
		if len([]rune(normalized)) < minTagLength {
			continue
		}
		if _, exists := b.seen[normalized]; exists {
			continue
		}
		b.seen[normalized] = struct{}{}
		b.list = append(b.list, normalized)
	}
}
