package out

import (
	"context"
	"time"
)

// FirstSeenStore persists one first-exposure time per word identity.
type FirstSeenStore interface {
	// Get reports false for words never stamped or whose stored value is unusable.
	Get(ctx context.Context, word string) (time.Time, bool, error)
	Set(ctx context.Context, word string, at time.Time) error
	Clear(ctx context.Context) (int, error)
}
