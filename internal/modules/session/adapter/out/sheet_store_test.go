package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vocabuilder/internal/modules/session/adapter/out"
	"vocabuilder/internal/modules/session/domain"
)

func TestMarkdownSheetStoreWritesSheet(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "sheets")
	store := out.NewMarkdownSheetStore(dir)

	path, err := store.Save(context.Background(), domain.Sheet{
		SessionID:  "s-1",
		Week:       2,
		Day:        3,
		ExportedAt: time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC),
		Words: []domain.SheetWord{
			{Word: "abate", PartOfSpeech: "verb", Definition: "To lessen", Mnemonic: "a bait", Due: true},
			{Word: "candid", Definition: "Frank"},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "week-2-day-3.md" {
		t.Fatalf("unexpected path %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	content := string(raw)
	for _, want := range []string{
		"session_id: s-1",
		"words: 2",
		"# Week 2, Day 3",
		"### abate _(verb)_ 🔁",
		"- Mnemonic: a bait",
		"### candid\n\nFrank",
		domain.ManagedWordsStart,
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("sheet missing %q:\n%s", want, content)
		}
	}
}

func TestMarkdownSheetStoreKeepsNotesOnReexport(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := out.NewMarkdownSheetStore(dir)
	ctx := context.Background()
	sheet := domain.Sheet{SessionID: "s-1", Week: 1, Day: 1, ExportedAt: time.Now().UTC(), Words: []domain.SheetWord{{Word: "abate", Definition: "To lessen"}}}

	path, err := store.Save(ctx, sheet)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	edited := strings.Replace(string(raw), "## Notes\n", "## Notes\n\nremember the fishing trip\n", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit: %v", err)
	}

	sheet.SessionID = "s-2"
	sheet.Words = []domain.SheetWord{{Word: "candid", Definition: "Frank"}}
	if _, err := store.Save(ctx, sheet); err != nil {
		t.Fatalf("second save: %v", err)
	}
	raw, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "remember the fishing trip") {
		t.Fatalf("notes lost:\n%s", content)
	}
	if strings.Contains(content, "abate") || !strings.Contains(content, "### candid") {
		t.Fatalf("word block not replaced:\n%s", content)
	}
	if !strings.Contains(content, "session_id: s-2") || strings.Count(content, domain.ManagedWordsStart) != 1 {
		t.Fatalf("frontmatter or block duplicated:\n%s", content)
	}
}
