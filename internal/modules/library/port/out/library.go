package out

import (
	"context"

	"vocabuilder/internal/modules/library/domain"
)

// LibraryStore is the append-only word library.
type LibraryStore interface {
	// Append adds entries as one batch and returns the new library size.
	Append(ctx context.Context, entries []domain.WordEntry) (int, error)
	Load(ctx context.Context) ([]domain.WordEntry, error)
	Reset(ctx context.Context) error
}

// SeedSource provides the built-in words placed ahead of the library.
type SeedSource interface {
	Load(ctx context.Context) ([]domain.WordEntry, error)
}

type Enricher interface {
	Enrich(ctx context.Context, plugin string, entries []domain.WordEntry) ([]domain.WordEntry, error)
}
