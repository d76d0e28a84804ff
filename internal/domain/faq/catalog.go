package faq

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// ErrInvalidCatalog is returned when a catalog breaks an entry invariant.
var ErrInvalidCatalog = errors.New("invalid faq catalog")

// ValidateCatalog checks that every entry has an id, question and answer,
// that ids are unique, and that each category is a known entry category.
func ValidateCatalog(catalog []entities.FaqEntry) error {
	seen := make(map[string]struct{}, len(catalog))
	var problems []error

	for i, entry := range catalog {
		if strings.TrimSpace(entry.ID) == "" {
			problems = append(problems, fmt.Errorf("entry %d: missing id", i))
			continue
		}
		if _, dup := seen[entry.ID]; dup {
			problems = append(problems, fmt.Errorf("entry %s: duplicate id", entry.ID))
		}
		seen[entry.ID] = struct{}{}

		if strings.TrimSpace(entry.Question) == "" {
			problems = append(problems, fmt.Errorf("entry %s: empty question", entry.ID))
		}
		if strings.TrimSpace(entry.Answer) == "" {
			problems = append(problems, fmt.Errorf("entry %s: empty answer", entry.ID))
		}
		if !entry.Category.IsKnown() {
			problems = append(problems, fmt.Errorf("entry %s: unknown category %q", entry.ID, entry.Category))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(problems...))
	}
	return nil
}
