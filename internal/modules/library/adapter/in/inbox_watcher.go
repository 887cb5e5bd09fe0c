package in

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultSettleDelay = 500 * time.Millisecond

// IngestFunc receives a settled inbox file.
type IngestFunc func(ctx context.Context, path string) error

// InboxWatcher ingests word lists dropped into a directory. Files are handled one at a time,
// after they have stopped changing for the settle delay.
type InboxWatcher struct {
	logger *slog.Logger
	dir    string
	settle time.Duration
	ingest IngestFunc

	mu      sync.Mutex
	pending map[string]*time.Timer
	ready   chan string
	done    chan struct{}
}

func NewInboxWatcher(logger *slog.Logger, dir string, settle time.Duration, ingest IngestFunc) *InboxWatcher {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &InboxWatcher{
		logger:  logger,
		dir:     filepath.Clean(dir),
		settle:  settle,
		ingest:  ingest,
		pending: map[string]*time.Timer{},
		ready:   make(chan string, 16),
		done:    make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled. A watcher runs once.
func (w *InboxWatcher) Run(ctx context.Context) error {
	defer close(w.done)
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("inbox: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("inbox %s is not a directory", w.dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.logger.Info("watching inbox", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && Accepts(event.Name) {
				w.schedule(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("inbox watcher error", "error", err)
		case path := <-w.ready:
			if err := w.ingest(ctx, path); err != nil {
				w.logger.Error("inbox ingest failed", "file", path, "error", err)
				continue
			}
			w.logger.Info("inbox file ingested", "file", path)
		}
	}
}

// Accepts reports whether the inbox picks up the file.
func Accepts(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(base)) {
	case ".csv", ".json":
		return true
	default:
		return false
	}
}

func (w *InboxWatcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

func (w *InboxWatcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
}
