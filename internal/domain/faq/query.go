// Package faq implements the FAQ query engine: filtering the catalog by free
// text and category, and grouping the result into category buckets.
package faq

import (
	"sort"
	"strings"

	"github.com/zinklake/shuttle/internal/domain/entities"
)

// Filter returns the catalog entries whose question or answer contains q
// (case-insensitive) and whose category matches c. Catalog order is kept.
// An empty q matches every entry; an unknown category matches none.
func Filter(catalog []entities.FaqEntry, q string, c entities.Category) []entities.FaqEntry {
	needle := strings.ToLower(q)

	result := make([]entities.FaqEntry, 0, len(catalog))
	for _, entry := range catalog {
		if !matchesCategory(entry, c) {
			continue
		}
		if !matchesSearch(entry, needle) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

func matchesCategory(entry entities.FaqEntry, c entities.Category) bool {
	return c == entities.CategoryAll || entry.Category == c
}

func matchesSearch(entry entities.FaqEntry, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(entry.Question), needle) ||
		strings.Contains(strings.ToLower(entry.Answer), needle)
}

// Group buckets filtered entries by category.
//
// For a concrete category the result is always {c: entries}, even when
// entries is empty. For CategoryAll the entries are partitioned by their own
// category, keeping relative order, and only categories that occur appear.
func Group(entries []entities.FaqEntry, c entities.Category) map[entities.Category][]entities.FaqEntry {
	if c != entities.CategoryAll {
		return map[entities.Category][]entities.FaqEntry{c: entries}
	}

	grouped := make(map[entities.Category][]entities.FaqEntry)
	for _, entry := range entries {
		grouped[entry.Category] = append(grouped[entry.Category], entry)
	}
	return grouped
}

// SortedSections orders grouped buckets by category label, ascending.
func SortedSections(groups map[entities.Category][]entities.FaqEntry) []entities.FaqSection {
	sections := make([]entities.FaqSection, 0, len(groups))
	for category, entries := range groups {
		sections = append(sections, entities.FaqSection{Category: category, Entries: entries})
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Category < sections[j].Category
	})
	return sections
}
