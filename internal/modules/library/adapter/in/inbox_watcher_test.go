package in_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vocabuilder/internal/modules/library/adapter/in"
	"vocabuilder/internal/platform/logger"
)

func TestAccepts(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"/inbox/words.csv":  true,
		"/inbox/WORDS.JSON": true,
		"/inbox/notes.txt":  false,
		"/inbox/.words.csv": false,
		"/inbox/words.csv~": false,
	}
	for path, want := range tests {
		if got := in.Accepts(path); got != want {
			t.Fatalf("Accepts(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestInboxWatcherIngestsSettledFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got := make(chan string, 4)
	watcher := in.NewInboxWatcher(logger.Discard(), dir, 30*time.Millisecond, func(_ context.Context, path string) error {
		got <- path
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- watcher.Run(ctx) }()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write ignored: %v", err)
	}
	target := filepath.Join(dir, "words.csv")
	if err := os.WriteFile(target, []byte("word,definition\nApple,A fruit\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	select {
	case path := <-got:
		if path != target {
			t.Fatalf("ingested %q, want %q", path, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("inbox file was not ingested")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher did not stop")
	}
}

func TestInboxWatcherRejectsMissingDir(t *testing.T) {
	t.Parallel()

	watcher := in.NewInboxWatcher(logger.Discard(), filepath.Join(t.TempDir(), "missing"), 0, func(context.Context, string) error { return nil })
	if err := watcher.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing inbox")
	}
}
