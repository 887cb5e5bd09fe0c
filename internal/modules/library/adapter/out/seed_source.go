package out

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"vocabuilder/internal/modules/library/domain"
	libraryout "vocabuilder/internal/modules/library/port/out"
)

//go:embed seed/week1.yaml
var builtinSeed []byte

// SeedSource reads the seed words from a file when a path is set, otherwise from the built-in list.
// Seed rows go through the same normalization as ingested rows.
type SeedSource struct {
	enabled bool
	path    string
}

func NewSeedSource(enabled bool, path string) libraryout.SeedSource {
	return &SeedSource{enabled: enabled, path: path}
}

func (s *SeedSource) Load(_ context.Context) ([]domain.WordEntry, error) {
	if !s.enabled {
		return []domain.WordEntry{}, nil
	}
	raw := builtinSeed
	name := "seed/week1.yaml"
	if s.path != "" {
		content, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		raw, name = content, s.path
	}

	// YAML also accepts a JSON array.
	records := []domain.Record{}
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", name, err)
	}
	return domain.Normalize(records).Entries, nil
}
