package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vocabuilder/internal/modules/session/domain"
	sessionout "vocabuilder/internal/modules/session/port/out"
	"vocabuilder/internal/platform/markdown"
	"vocabuilder/internal/platform/slug"
)

var wordsBlock = markdown.Block{Start: domain.ManagedWordsStart, End: domain.ManagedWordsEnd}

type sheetMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	SessionID     string `yaml:"session_id"`
	Week          int    `yaml:"week"`
	Day           int    `yaml:"day"`
	Words         int    `yaml:"words"`
	ExportedAt    string `yaml:"exported_at"`
}

// MarkdownSheetStore writes one sheet per week and day. Re-exporting rewrites the frontmatter
// and the managed word block; anything else in the file is kept.
type MarkdownSheetStore struct {
	dir string
}

func NewMarkdownSheetStore(dir string) sessionout.SheetStore {
	return &MarkdownSheetStore{dir: dir}
}

func (s *MarkdownSheetStore) Save(_ context.Context, sheet domain.Sheet) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create sheets dir: %w", err)
	}
	path := filepath.Join(s.dir, slug.Make(fmt.Sprintf("week %d day %d", sheet.Week, sheet.Day))+".md")

	body := fmt.Sprintf("# Week %d, Day %d\n\n## Notes\n\n", sheet.Week, sheet.Day)
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		_, prior, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr != nil {
			return "", fmt.Errorf("parse existing sheet %s: %w", path, splitErr)
		}
		body = prior
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read existing sheet: %w", err)
	}

	meta := sheetMeta{
		SchemaVersion: domain.SchemaVersion,
		SessionID:     sheet.SessionID,
		Week:          sheet.Week,
		Day:           sheet.Day,
		Words:         len(sheet.Words),
		ExportedAt:    sheet.ExportedAt.Format(time.RFC3339),
	}
	rendered, err := markdown.RenderFrontmatter(meta, wordsBlock.Replace(body, renderWords(sheet.Words)))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write sheet: %w", err)
	}
	return path, nil
}

func renderWords(words []domain.SheetWord) string {
	var sb strings.Builder
	for idx, w := range words {
		if idx > 0 {
			sb.WriteString("\n")
		}
		heading := w.Word
		if w.PartOfSpeech != "" {
			heading += " _(" + w.PartOfSpeech + ")_"
		}
		if w.Due {
			heading += " 🔁"
		}
		fmt.Fprintf(&sb, "### %s\n\n%s\n", heading, w.Definition)
		if w.Mnemonic != "" {
			fmt.Fprintf(&sb, "\n- Mnemonic: %s\n", w.Mnemonic)
		}
		if w.Sentence != "" {
			fmt.Fprintf(&sb, "- Example: %s\n", w.Sentence)
		}
		if w.Synonyms != "" {
			fmt.Fprintf(&sb, "- Synonyms: %s\n", w.Synonyms)
		}
	}
	return sb.String()
}
