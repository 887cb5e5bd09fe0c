package kv

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// QuotaStore caps the total bytes (keys plus values) held by the wrapped store.
type QuotaStore struct {
	Store
	limit int64
	mu    sync.Mutex
}

// WithQuota wraps s with a byte limit. A non-positive limit returns s unchanged.
func WithQuota(s Store, limit int64) Store {
	if limit <= 0 {
		return s
	}
	return &QuotaStore{Store: s, limit: limit}
}

func (q *QuotaStore) Set(ctx context.Context, key string, value []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	used, err := q.usage(ctx, key)
	if err != nil {
		return err
	}
	want := int64(len(key) + len(value))
	if used+want > q.limit {
		return fmt.Errorf("%w: need %d bytes, %d of %d available", ErrQuotaExceeded, want, q.limit-used, q.limit)
	}
	return q.Store.Set(ctx, key, value)
}

// usage sums every entry except the one about to be replaced.
func (q *QuotaStore) usage(ctx context.Context, replacing string) (int64, error) {
	keys, err := q.Store.Keys(ctx, "")
	if err != nil {
		return 0, err
	}
	var total int64
	for _, key := range keys {
		if key == replacing {
			continue
		}
		value, err := q.Store.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, err
		}
		total += int64(len(key) + len(value))
	}
	return total, nil
}
