package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"vocabuilder/internal/modules/library/domain"
	libraryout "vocabuilder/internal/modules/library/port/out"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/platform/kv"
)

const LibraryKey = "vb.library"

// KVLibraryStore keeps the whole library as one JSON array under LibraryKey,
// so an append is a single write that either lands completely or not at all.
type KVLibraryStore struct {
	store  kv.Store
	logger *slog.Logger
	mu     sync.Mutex
}

func NewKVLibraryStore(store kv.Store, logger *slog.Logger) libraryout.LibraryStore {
	return &KVLibraryStore{store: store, logger: logger}
}

func (s *KVLibraryStore) Append(ctx context.Context, entries []domain.WordEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return len(current), nil
	}
	next := make([]domain.WordEntry, 0, len(current)+len(entries))
	next = append(next, current...)
	next = append(next, entries...)

	raw, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("%w: encode library: %w", apperrors.ErrStorage, err)
	}
	if err := s.store.Set(ctx, LibraryKey, raw); err != nil {
		return 0, fmt.Errorf("%w: save %d words: %w", apperrors.ErrStorage, len(entries), err)
	}
	return len(next), nil
}

func (s *KVLibraryStore) Load(ctx context.Context) ([]domain.WordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *KVLibraryStore) load(ctx context.Context) ([]domain.WordEntry, error) {
	raw, err := s.store.Get(ctx, LibraryKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.WordEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read library: %w", apperrors.ErrStorage, err)
	}
	entries := []domain.WordEntry{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn("stored library is unreadable; treating as empty", "key", LibraryKey, "error", err)
		return []domain.WordEntry{}, nil
	}
	if entries == nil {
		entries = []domain.WordEntry{}
	}
	return entries, nil
}

func (s *KVLibraryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Remove(ctx, LibraryKey); err != nil {
		return fmt.Errorf("%w: reset library: %w", apperrors.ErrStorage, err)
	}
	return nil
}
