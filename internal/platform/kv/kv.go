// Package kv provides the string-keyed storage capability the library and the scheduler persist through.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var (
	ErrNotFound      = errors.New("kv: key not found")
	ErrQuotaExceeded = errors.New("kv: storage quota exceeded")
)

// Store is a flat key-value store. Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	// Keys lists keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Open builds a store for one of the supported drivers: badger, sqlite or memory.
func Open(driver, path string, logger *slog.Logger) (Store, error) {
	switch driver {
	case "badger":
		return OpenBadger(path, logger)
	case "sqlite":
		return OpenSQLite(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
