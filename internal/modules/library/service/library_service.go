package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"vocabuilder/internal/modules/library/domain"
	libraryout "vocabuilder/internal/modules/library/port/out"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/platform/tabular"
)

var csvHeaders = []string{
	"word", "definition", "part_of_speech", "mnemonic", "sentence", "icon",
	"synonyms", "more_synonyms", "level", "story_builder", "mnemonic_source_url",
}

type IngestResult struct {
	Inserted  int
	Skipped   int
	Truncated int
	Total     int
	Enriched  []string
}

type LibraryService struct {
	logger        *slog.Logger
	store         libraryout.LibraryStore
	seed          libraryout.SeedSource
	enricher      libraryout.Enricher
	defaultEnrich []string
}

func NewLibraryService(logger *slog.Logger, store libraryout.LibraryStore, seed libraryout.SeedSource, enricher libraryout.Enricher, defaultEnrich []string) *LibraryService {
	return &LibraryService{logger: logger, store: store, seed: seed, enricher: enricher, defaultEnrich: defaultEnrich}
}

// Ingest decodes content, normalizes it, runs enrichers and appends the batch.
// A batch that fails anywhere leaves the library untouched.
func (s *LibraryService) Ingest(ctx context.Context, name string, content []byte, enrich []string) (IngestResult, error) {
	records, truncated, err := decode(name, content)
	if err != nil {
		return IngestResult{}, fmt.Errorf("%w: %s: %v", apperrors.ErrParse, name, err)
	}
	normalized := domain.Normalize(records)
	if truncated > 0 {
		s.logger.Warn("rows had more cells than headers; extra cells dropped", "file", name, "rows", truncated)
	}
	if normalized.Skipped > 0 {
		s.logger.Info("skipped rows without word or definition", "file", name, "rows", normalized.Skipped)
	}

	if enrich == nil {
		enrich = s.defaultEnrich
	}
	entries := normalized.Entries
	applied := []string{}
	if len(entries) > 0 {
		for _, plugin := range enrich {
			plugin = strings.TrimSpace(plugin)
			if plugin == "" {
				continue
			}
			if s.enricher == nil {
				return IngestResult{}, fmt.Errorf("%w: enrichment requested but no plugin host is configured", apperrors.ErrInvalidInput)
			}
			entries, err = s.enricher.Enrich(ctx, plugin, entries)
			if err != nil {
				return IngestResult{}, fmt.Errorf("enrich with %s: %w", plugin, err)
			}
			applied = append(applied, plugin)
		}
		for _, entry := range entries {
			if err := entry.Validate(); err != nil {
				return IngestResult{}, fmt.Errorf("%w: enriched entry: %v", apperrors.ErrInvalidInput, err)
			}
		}
	}

	total, err := s.store.Append(ctx, entries)
	if err != nil {
		return IngestResult{}, err
	}
	s.logger.Debug("ingested batch", "file", name, "inserted", len(entries), "total", total)
	return IngestResult{
		Inserted:  len(entries),
		Skipped:   normalized.Skipped,
		Truncated: truncated,
		Total:     total,
		Enriched:  applied,
	}, nil
}

func (s *LibraryService) ListWords(ctx context.Context) ([]domain.WordEntry, error) {
	return s.store.Load(ctx)
}

// Sequence returns the seed words followed by the library, plus both counts.
func (s *LibraryService) Sequence(ctx context.Context) ([]domain.WordEntry, int, int, error) {
	seed := []domain.WordEntry{}
	if s.seed != nil {
		loaded, err := s.seed.Load(ctx)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("load seed words: %w", err)
		}
		seed = loaded
	}
	library, err := s.store.Load(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	combined := make([]domain.WordEntry, 0, len(seed)+len(library))
	combined = append(combined, seed...)
	combined = append(combined, library...)
	return combined, len(seed), len(library), nil
}

// ExportCSV renders the library with canonical snake_case headers, which ingest reads back unchanged.
func (s *LibraryService) ExportCSV(ctx context.Context) (string, error) {
	words, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	rows := make([]tabular.Row, 0, len(words))
	for _, w := range words {
		rows = append(rows, tabular.Row{
			"word":                w.Word,
			"definition":          w.Definition,
			"part_of_speech":      w.PartOfSpeech,
			"mnemonic":            w.Mnemonic,
			"sentence":            w.Sentence,
			"icon":                w.Icon,
			"synonyms":            w.Synonyms,
			"more_synonyms":       w.MoreSynonyms,
			"level":               w.Level,
			"story_builder":       w.StoryBuilder,
			"mnemonic_source_url": w.MnemonicSourceURL,
		})
	}
	return tabular.Encode(csvHeaders, rows), nil
}

func (s *LibraryService) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}

func decode(name string, content []byte) ([]domain.Record, int, error) {
	if domain.DetectFormat(name) == domain.FormatCSV {
		text := strings.TrimPrefix(string(content), "\ufeff")
		decoded := tabular.Decode(text)
		records := make([]domain.Record, 0, len(decoded.Rows))
		for _, row := range decoded.Rows {
			record := make(domain.Record, len(row))
			for k, v := range row {
				record[k] = v
			}
			records = append(records, record)
		}
		return records, decoded.Truncated, nil
	}

	dec := json.NewDecoder(bytes.NewReader(bytes.TrimPrefix(content, []byte("\ufeff"))))
	dec.UseNumber()
	records := []domain.Record{}
	if err := dec.Decode(&records); err != nil {
		return nil, 0, err
	}
	if dec.More() {
		return nil, 0, fmt.Errorf("unexpected data after JSON array")
	}
	return records, 0, nil
}
