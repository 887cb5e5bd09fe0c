package out_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vocabuilder/internal/modules/library/adapter/out"
	"vocabuilder/internal/modules/library/domain"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/platform/kv"
	"vocabuilder/internal/platform/logger"
)

func words(names ...string) []domain.WordEntry {
	out := make([]domain.WordEntry, 0, len(names))
	for _, name := range names {
		out = append(out, domain.WordEntry{Word: name, Definition: "def " + name, Icon: domain.DefaultIcon})
	}
	return out
}

func TestKVLibraryStoreAppendIsOrderPreserving(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	split := out.NewKVLibraryStore(kv.NewMemoryStore(), logger.Discard())
	if _, err := split.Append(ctx, words("a", "b")); err != nil {
		t.Fatalf("append A: %v", err)
	}
	total, err := split.Append(ctx, words("c", "a"))
	if err != nil {
		t.Fatalf("append B: %v", err)
	}
	if total != 4 {
		t.Fatalf("total = %d, want 4", total)
	}

	whole := out.NewKVLibraryStore(kv.NewMemoryStore(), logger.Discard())
	if _, err := whole.Append(ctx, words("a", "b", "c", "a")); err != nil {
		t.Fatalf("append A++B: %v", err)
	}

	left, _ := split.Load(ctx)
	right, _ := whole.Load(ctx)
	if !reflect.DeepEqual(left, right) {
		t.Fatalf("append(A);append(B) = %+v, append(A++B) = %+v", left, right)
	}
}

func TestKVLibraryStoreEmptyBatchKeepsLibrary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := out.NewKVLibraryStore(kv.NewMemoryStore(), logger.Discard())

	if _, err := store.Append(ctx, words("a")); err != nil {
		t.Fatalf("append: %v", err)
	}
	total, err := store.Append(ctx, nil)
	if err != nil || total != 1 {
		t.Fatalf("empty append: total=%d err=%v", total, err)
	}
}

func TestKVLibraryStoreCorruptValueReadsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backing := kv.NewMemoryStore()
	_ = backing.Set(ctx, out.LibraryKey, []byte("{not json"))
	store := out.NewKVLibraryStore(backing, logger.Discard())

	got, err := store.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("load corrupt: %v %v", got, err)
	}
	total, err := store.Append(ctx, words("fresh"))
	if err != nil || total != 1 {
		t.Fatalf("append over corrupt: total=%d err=%v", total, err)
	}
}

func TestKVLibraryStoreQuotaFailureIsAtomic(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := out.NewKVLibraryStore(kv.WithQuota(kv.NewMemoryStore(), 300), logger.Discard())

	if _, err := store.Append(ctx, words("kept")); err != nil {
		t.Fatalf("first append: %v", err)
	}
	_, err := store.Append(ctx, words("w1", "w2", "w3", "w4", "w5"))
	if !errors.Is(err, apperrors.ErrStorage) || !errors.Is(err, kv.ErrQuotaExceeded) {
		t.Fatalf("expected storage+quota error, got %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Word != "kept" {
		t.Fatalf("library changed after failed append: %+v", got)
	}
}

func TestKVLibraryStoreReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := out.NewKVLibraryStore(kv.NewMemoryStore(), logger.Discard())
	_, _ = store.Append(ctx, words("a", "b"))

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ := store.Load(ctx)
	if len(got) != 0 {
		t.Fatalf("library not cleared: %+v", got)
	}
}

func TestSeedSourceBuiltin(t *testing.T) {
	t.Parallel()

	seed, err := out.NewSeedSource(true, "").Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	names := []string{}
	for _, w := range seed {
		names = append(names, w.Word)
	}
	if !reflect.DeepEqual(names, []string{"Abroad", "Acceptable", "Benefit", "Courage", "Decide"}) {
		t.Fatalf("seed words = %v", names)
	}
	if seed[0].Icon != "icons/airplane.png" || seed[4].Mnemonic != "De = down, cide = cut → cut down to one choice" {
		t.Fatalf("seed fields not decoded: %+v", seed)
	}
}

func TestSeedSourceDisabledAndOverride(t *testing.T) {
	t.Parallel()

	seed, err := out.NewSeedSource(false, "").Load(context.Background())
	if err != nil || len(seed) != 0 {
		t.Fatalf("disabled seed: %v %v", seed, err)
	}

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`[{"word":"Zeal","def":"Great energy"},{"word":"NoDef"}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	seed, err = out.NewSeedSource(true, path).Load(context.Background())
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if len(seed) != 1 || seed[0].Word != "Zeal" || seed[0].Definition != "Great energy" || seed[0].Icon != domain.DefaultIcon {
		t.Fatalf("override seed = %+v", seed)
	}

	if _, err := out.NewSeedSource(true, filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background()); err == nil {
		t.Fatalf("expected missing seed file error")
	}
}
