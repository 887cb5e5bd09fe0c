package service_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"vocabuilder/internal/modules/library/adapter/out"
	"vocabuilder/internal/modules/library/domain"
	"vocabuilder/internal/modules/library/service"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/platform/kv"
	"vocabuilder/internal/platform/logger"
)

type fakeEnricher struct {
	calls []string
	err   error
}

func (f *fakeEnricher) Enrich(_ context.Context, plugin string, entries []domain.WordEntry) ([]domain.WordEntry, error) {
	f.calls = append(f.calls, plugin)
	if f.err != nil {
		return nil, f.err
	}
	enriched := make([]domain.WordEntry, len(entries))
	for i, entry := range entries {
		entry.Mnemonic = plugin + ":" + entry.Word
		enriched[i] = entry
	}
	return enriched, nil
}

func newService(enricher *fakeEnricher, defaults ...string) *service.LibraryService {
	store := out.NewKVLibraryStore(kv.NewMemoryStore(), logger.Discard())
	seed := out.NewSeedSource(true, "")
	if enricher == nil {
		return service.NewLibraryService(logger.Discard(), store, seed, nil, defaults)
	}
	return service.NewLibraryService(logger.Discard(), store, seed, enricher, defaults)
}

func TestIngestCSVSkipsIncompleteRows(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(nil)

	result, err := svc.Ingest(ctx, "words.CSV", []byte("word,definition\nApple,A fruit\n,Missing word\nPear,\"A, juicy fruit\""), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Inserted != 2 || result.Skipped != 1 || result.Total != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	words, _ := svc.ListWords(ctx)
	if words[0].Word != "Apple" || words[1].Word != "Pear" || words[1].Definition != "A, juicy fruit" {
		t.Fatalf("unexpected words: %+v", words)
	}
}

func TestIngestJSONArray(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(nil)

	result, err := svc.Ingest(ctx, "list.txt", []byte(`[{"Word":"Zeal","def":"Great energy","level":3}]`), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Inserted != 1 {
		t.Fatalf("result = %+v", result)
	}
	words, _ := svc.ListWords(ctx)
	if words[0].Level != "3" {
		t.Fatalf("level = %q", words[0].Level)
	}
}

func TestIngestParseErrorLeavesLibrary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(nil)
	if _, err := svc.Ingest(ctx, "a.json", []byte(`[{"word":"Keep","definition":"kept"}]`), nil); err != nil {
		t.Fatalf("seed ingest: %v", err)
	}

	for _, content := range []string{`{"word":"x"}`, `[{"word":`, `[] []`, ``} {
		_, err := svc.Ingest(ctx, "bad.json", []byte(content), nil)
		if !errors.Is(err, apperrors.ErrParse) {
			t.Fatalf("%q: expected parse error, got %v", content, err)
		}
	}
	words, _ := svc.ListWords(ctx)
	if len(words) != 1 {
		t.Fatalf("library changed: %+v", words)
	}
}

func TestIngestZeroValidRowsIsNotAnError(t *testing.T) {
	t.Parallel()
	svc := newService(nil)

	result, err := svc.Ingest(context.Background(), "w.csv", []byte("word,definition\n,only def\n"), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Inserted != 0 || result.Skipped != 1 || result.Total != 0 {
		t.Fatalf("result = %+v", result)
	}
}

func TestIngestReportsTruncatedRows(t *testing.T) {
	t.Parallel()
	svc := newService(nil)

	result, err := svc.Ingest(context.Background(), "w.csv", []byte("\ufeffword,definition\nA,b,extra\n"), nil)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if result.Inserted != 1 || result.Truncated != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestIngestRunsEnrichers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	enricher := &fakeEnricher{}
	svc := newService(enricher, "configured")

	result, err := svc.Ingest(ctx, "w.csv", []byte("word,definition\nA,b\n"), []string{"first", " ", "second"})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if !reflect.DeepEqual(enricher.calls, []string{"first", "second"}) || !reflect.DeepEqual(result.Enriched, []string{"first", "second"}) {
		t.Fatalf("calls = %v, enriched = %v", enricher.calls, result.Enriched)
	}
	words, _ := svc.ListWords(ctx)
	if words[0].Mnemonic != "second:A" {
		t.Fatalf("mnemonic = %q", words[0].Mnemonic)
	}

	enricher.calls = nil
	if _, err := svc.Ingest(ctx, "w.csv", []byte("word,definition\nB,c\n"), nil); err != nil {
		t.Fatalf("ingest with defaults: %v", err)
	}
	if !reflect.DeepEqual(enricher.calls, []string{"configured"}) {
		t.Fatalf("default enrichers not used: %v", enricher.calls)
	}
}

func TestIngestEnrichFailureAbortsBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(&fakeEnricher{err: errors.New("plugin crashed")})

	_, err := svc.Ingest(ctx, "w.csv", []byte("word,definition\nA,b\n"), []string{"broken"})
	if err == nil || !strings.Contains(err.Error(), "enrich with broken") {
		t.Fatalf("expected enrich error, got %v", err)
	}
	words, _ := svc.ListWords(ctx)
	if len(words) != 0 {
		t.Fatalf("batch stored despite failure: %+v", words)
	}
}

func TestIngestEnrichWithoutHost(t *testing.T) {
	t.Parallel()
	svc := newService(nil)

	_, err := svc.Ingest(context.Background(), "w.csv", []byte("word,definition\nA,b\n"), []string{"mnemonics"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSequencePutsSeedFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := newService(nil)
	if _, err := svc.Ingest(ctx, "w.csv", []byte("word,definition\nApple,A fruit\n"), nil); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	words, seed, library, err := svc.Sequence(ctx)
	if err != nil {
		t.Fatalf("sequence: %v", err)
	}
	if seed != 5 || library != 1 || len(words) != 6 {
		t.Fatalf("seed=%d library=%d len=%d", seed, library, len(words))
	}
	if words[0].Word != "Abroad" || words[5].Word != "Apple" {
		t.Fatalf("order = %s ... %s", words[0].Word, words[5].Word)
	}
}

func TestExportCSVRoundTripsThroughIngest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	source := newService(nil)
	input := `[{"word":"Pear","definition":"A, juicy fruit","sentence":"Line one\nline \"two\"","synonyms":"nashi"}]`
	if _, err := source.Ingest(ctx, "in.json", []byte(input), nil); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	text, err := source.ExportCSV(ctx)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(text, "word,definition,part_of_speech,") {
		t.Fatalf("header = %q", strings.SplitN(text, "\n", 2)[0])
	}

	target := newService(nil)
	if _, err := target.Ingest(ctx, "out.csv", []byte(text), nil); err != nil {
		t.Fatalf("re-ingest: %v", err)
	}
	want, _ := source.ListWords(ctx)
	got, _ := target.ListWords(ctx)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}
