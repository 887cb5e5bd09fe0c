package service

import (
	"context"
	"log/slog"

	"vocabuilder/internal/modules/schedule/domain"
	scheduleout "vocabuilder/internal/modules/schedule/port/out"
	"vocabuilder/internal/platform/clock"
)

// Scheduler stamps first exposure and answers due queries. Queries never write.
type Scheduler struct {
	clock   clock.Clock
	store   scheduleout.FirstSeenStore
	windows []domain.Window
	logger  *slog.Logger
}

func NewScheduler(clock clock.Clock, store scheduleout.FirstSeenStore, windows []domain.Window, logger *slog.Logger) *Scheduler {
	if len(windows) == 0 {
		windows = domain.DefaultWindows
	}
	return &Scheduler{clock: clock, store: store, windows: windows, logger: logger}
}

// MarkSeen stamps every word that has no first-seen time yet and returns how many were stamped.
func (s *Scheduler) MarkSeen(ctx context.Context, words ...string) (int, error) {
	now := s.clock.Now()
	stamped := 0
	visited := map[string]struct{}{}
	for _, word := range words {
		if _, ok := visited[word]; ok {
			continue
		}
		visited[word] = struct{}{}
		_, seen, err := s.store.Get(ctx, word)
		if err != nil {
			return stamped, err
		}
		if seen {
			continue
		}
		if err := s.store.Set(ctx, word, now); err != nil {
			return stamped, err
		}
		stamped++
	}
	if stamped > 0 {
		s.logger.Debug("stamped first exposure", "words", stamped)
	}
	return stamped, nil
}

func (s *Scheduler) IsDue(ctx context.Context, word string) (bool, error) {
	firstSeen, seen, err := s.store.Get(ctx, word)
	if err != nil || !seen {
		return false, err
	}
	return domain.IsDue(firstSeen, s.clock.Now(), s.windows), nil
}

// DueSet filters words down to the due ones, keeping order and duplicates.
func (s *Scheduler) DueSet(ctx context.Context, words []string) ([]string, error) {
	now := s.clock.Now()
	cache := map[string]bool{}
	due := []string{}
	for _, word := range words {
		isDue, ok := cache[word]
		if !ok {
			firstSeen, seen, err := s.store.Get(ctx, word)
			if err != nil {
				return nil, err
			}
			isDue = seen && domain.IsDue(firstSeen, now, s.windows)
			cache[word] = isDue
		}
		if isDue {
			due = append(due, word)
		}
	}
	return due, nil
}

func (s *Scheduler) Status(ctx context.Context, words []string) ([]domain.Status, error) {
	now := s.clock.Now()
	out := make([]domain.Status, 0, len(words))
	for _, word := range words {
		firstSeen, seen, err := s.store.Get(ctx, word)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Evaluate(word, firstSeen, seen, now, s.windows))
	}
	return out, nil
}

func (s *Scheduler) Reset(ctx context.Context) (int, error) {
	removed, err := s.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Info("cleared schedule state", "words", removed)
	return removed, nil
}
