package service_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"vocabuilder/internal/modules/schedule/adapter/out"
	"vocabuilder/internal/modules/schedule/domain"
	"vocabuilder/internal/modules/schedule/service"
	"vocabuilder/internal/platform/kv"
	"vocabuilder/internal/platform/logger"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advanceDays(days int) { c.now = c.now.Add(time.Duration(days) * domain.DayLength) }

func newScheduler() (*service.Scheduler, *fakeClock, kv.Store) {
	clk := &fakeClock{now: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)}
	backing := kv.NewMemoryStore()
	store := out.NewKVFirstSeenStore(backing, logger.Discard())
	return service.NewScheduler(clk, store, nil, logger.Discard()), clk, backing
}

func TestMarkSeenIsIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	scheduler, clk, backing := newScheduler()

	stamped, err := scheduler.MarkSeen(ctx, "Abroad", "Benefit", "Abroad")
	if err != nil || stamped != 2 {
		t.Fatalf("first mark = %d %v", stamped, err)
	}
	first, _ := backing.Get(ctx, "vb.firstSeen.Abroad")

	clk.advanceDays(3)
	stamped, err = scheduler.MarkSeen(ctx, "Abroad")
	if err != nil || stamped != 0 {
		t.Fatalf("second mark = %d %v", stamped, err)
	}
	second, _ := backing.Get(ctx, "vb.firstSeen.Abroad")
	if string(first) != string(second) {
		t.Fatalf("timestamp overwritten: %s -> %s", first, second)
	}
}

func TestIsDueFollowsWindows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	scheduler, clk, _ := newScheduler()

	if due, err := scheduler.IsDue(ctx, "Courage"); err != nil || due {
		t.Fatalf("unseen word due=%v err=%v", due, err)
	}
	_, _ = scheduler.MarkSeen(ctx, "Courage")

	steps := []struct {
		advance int
		want    bool
	}{{5, false}, {1, true}, {4, false}, {3, true}, {14, true}, {73, true}}
	elapsed := 0
	for _, step := range steps {
		clk.advanceDays(step.advance)
		elapsed += step.advance
		due, err := scheduler.IsDue(ctx, "Courage")
		if err != nil || due != step.want {
			t.Fatalf("day %d: due=%v err=%v, want %v", elapsed, due, err, step.want)
		}
	}
}

func TestIsDueDoesNotStamp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	scheduler, _, backing := newScheduler()

	_, _ = scheduler.IsDue(ctx, "Decide")
	_, _ = scheduler.DueSet(ctx, []string{"Decide"})
	_, _ = scheduler.Status(ctx, []string{"Decide"})
	keys, _ := backing.Keys(ctx, "")
	if len(keys) != 0 {
		t.Fatalf("queries wrote state: %v", keys)
	}
}

func TestDueSetKeepsOrderAndDuplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	scheduler, clk, _ := newScheduler()

	_, _ = scheduler.MarkSeen(ctx, "old", "other")
	clk.advanceDays(7)
	_, _ = scheduler.MarkSeen(ctx, "new")

	due, err := scheduler.DueSet(ctx, []string{"new", "old", "never", "other", "old"})
	if err != nil {
		t.Fatalf("due set: %v", err)
	}
	if !reflect.DeepEqual(due, []string{"old", "other", "old"}) {
		t.Fatalf("due = %v", due)
	}
}

func TestStatusAndReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	scheduler, clk, _ := newScheduler()
	_, _ = scheduler.MarkSeen(ctx, "a")
	clk.advanceDays(2)

	statuses, err := scheduler.Status(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !statuses[0].Seen || statuses[0].ElapsedDays != 2 || statuses[0].NextDueIn != 4 {
		t.Fatalf("status a = %+v", statuses[0])
	}
	if statuses[1].Seen {
		t.Fatalf("status b = %+v", statuses[1])
	}

	removed, err := scheduler.Reset(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("reset = %d %v", removed, err)
	}
	statuses, _ = scheduler.Status(ctx, []string{"a"})
	if statuses[0].Seen {
		t.Fatalf("reset did not clear a")
	}
}
