// Package catalog loads the FAQ catalog and the seed ride feed from YAML.
// Both ship embedded in the binary and can be replaced by a file on disk.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/zinklake/shuttle/internal/domain/entities"
	"github.com/zinklake/shuttle/internal/domain/faq"
	"gopkg.in/yaml.v3"
)

//go:embed data/faqs.yaml
var defaultFaqsYAML []byte

//go:embed data/rides.yaml
var defaultRidesYAML []byte

type faqDocument struct {
	Entries []entities.FaqEntry `yaml:"entries"`
}

type rideDocument struct {
	Rides []entities.Ride `yaml:"rides"`
}

// ParseFaqs decodes and validates a FAQ catalog document.
func ParseFaqs(data []byte) ([]entities.FaqEntry, error) {
	var doc faqDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode faq catalog: %w", err)
	}
	if err := faq.ValidateCatalog(doc.Entries); err != nil {
		return nil, err
	}
	return doc.Entries, nil
}

// LoadFaqs reads the catalog at path, or the bundled one when path is empty.
func LoadFaqs(path string) ([]entities.FaqEntry, error) {
	data, err := readOrDefault(path, defaultFaqsYAML)
	if err != nil {
		return nil, err
	}
	return ParseFaqs(data)
}

// DefaultFaqs returns the bundled catalog.
func DefaultFaqs() []entities.FaqEntry {
	entries, err := ParseFaqs(defaultFaqsYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled faq catalog is invalid: %v", err))
	}
	return entries
}

// ParseRides decodes a ride feed document. Every ride needs a unique id and a
// known status.
func ParseRides(data []byte) ([]entities.Ride, error) {
	var doc rideDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode ride feed: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Rides))
	for i, r := range doc.Rides {
		if r.ID == "" {
			return nil, fmt.Errorf("ride %d: missing id", i)
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("ride %s: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}
		if _, err := entities.ParseRideStatus(string(r.Status)); err != nil {
			return nil, fmt.Errorf("ride %s: %w", r.ID, err)
		}
	}
	return doc.Rides, nil
}

// LoadRides reads the ride feed at path, or the bundled one when path is empty.
func LoadRides(path string) ([]entities.Ride, error) {
	data, err := readOrDefault(path, defaultRidesYAML)
	if err != nil {
		return nil, err
	}
	return ParseRides(data)
}

// DefaultRides returns the bundled ride feed.
func DefaultRides() []entities.Ride {
	rides, err := ParseRides(defaultRidesYAML)
	if err != nil {
		panic(fmt.Sprintf("bundled ride feed is invalid: %v", err))
	}
	return rides
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
