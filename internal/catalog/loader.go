package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

type fileLayout struct {
	Breeds []models.AnimalBreed `yaml:"breeds"`
	Feeds  []models.Feed        `yaml:"feeds"`
}

// LoadFile reads a YAML overlay on top of the built-in tables. Entries with a known id
// replace the built-in entry in place, new ids are appended.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse applies a YAML overlay document to the built-in tables.
func Parse(data []byte) (*Catalog, error) {
	var layout fileLayout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("decode catalog yaml: %w", err)
	}

	breeds := overlay(defaultBreeds, layout.Breeds, func(b models.AnimalBreed) string { return b.ID })
	feeds := overlay(defaultFeeds, layout.Feeds, func(f models.Feed) string { return f.ID })

	return New(breeds, feeds)
}

func overlay[T any](base, extra []T, id func(T) string) []T {
	out := append([]T(nil), base...)
	positions := make(map[string]int, len(out))
	for i, item := range out {
		positions[id(item)] = i
	}
	for _, item := range extra {
		if i, ok := positions[id(item)]; ok {
			out[i] = item
			continue
		}
		positions[id(item)] = len(out)
		out = append(out, item)
	}
	return out
}
