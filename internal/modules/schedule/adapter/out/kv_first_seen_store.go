package out

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	scheduleout "vocabuilder/internal/modules/schedule/port/out"
	"vocabuilder/internal/platform/clock"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/platform/kv"
)

const KeyPrefix = "vb.firstSeen."

// KVFirstSeenStore writes each first-seen time as decimal Unix milliseconds under KeyPrefix+word.
type KVFirstSeenStore struct {
	store  kv.Store
	logger *slog.Logger
}

func NewKVFirstSeenStore(store kv.Store, logger *slog.Logger) scheduleout.FirstSeenStore {
	return &KVFirstSeenStore{store: store, logger: logger}
}

func Key(word string) string {
	return KeyPrefix + word
}

func (s *KVFirstSeenStore) Get(ctx context.Context, word string) (time.Time, bool, error) {
	raw, err := s.store.Get(ctx, Key(word))
	if errors.Is(err, kv.ErrNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: read first-seen for %q: %w", apperrors.ErrStorage, word, err)
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || ms <= 0 {
		s.logger.Debug("ignoring unusable first-seen value", "word", word, "value", string(raw))
		return time.Time{}, false, nil
	}
	return clock.UnixMilli(ms), true, nil
}

func (s *KVFirstSeenStore) Set(ctx context.Context, word string, at time.Time) error {
	if err := s.store.Set(ctx, Key(word), []byte(strconv.FormatInt(at.UnixMilli(), 10))); err != nil {
		return fmt.Errorf("%w: stamp %q: %w", apperrors.ErrStorage, word, err)
	}
	return nil
}

func (s *KVFirstSeenStore) Clear(ctx context.Context) (int, error) {
	keys, err := s.store.Keys(ctx, KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("%w: list first-seen keys: %w", apperrors.ErrStorage, err)
	}
	for _, key := range keys {
		if err := s.store.Remove(ctx, key); err != nil {
			return 0, fmt.Errorf("%w: remove %s: %w", apperrors.ErrStorage, key, err)
		}
	}
	return len(keys), nil
}
