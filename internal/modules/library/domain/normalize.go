package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is one loosely typed input row: a decoded CSV row or a JSON object.
type Record map[string]any

type field struct {
	aliases []string
	set     func(*WordEntry, string)
}

var fields = []field{
	{[]string{"word", "Word"}, func(w *WordEntry, v string) { w.Word = v }},
	{[]string{"definition", "Definition", "def"}, func(w *WordEntry, v string) { w.Definition = v }},
	{[]string{"part_of_speech", "partOfSpeech", "pos", "PartOfSpeech"}, func(w *WordEntry, v string) { w.PartOfSpeech = v }},
	{[]string{"mnemonic", "Mnemonic"}, func(w *WordEntry, v string) { w.Mnemonic = v }},
	{[]string{"sentence", "Sentence", "example", "Example", "context_sentence"}, func(w *WordEntry, v string) { w.Sentence = v }},
	{[]string{"icon", "Icon"}, func(w *WordEntry, v string) { w.Icon = v }},
	{[]string{"synonyms", "Synonyms"}, func(w *WordEntry, v string) { w.Synonyms = v }},
	{[]string{"more_synonyms", "moreSynonyms"}, func(w *WordEntry, v string) { w.MoreSynonyms = v }},
	{[]string{"level", "Level"}, func(w *WordEntry, v string) { w.Level = v }},
	{[]string{"story_builder", "storyBuilder"}, func(w *WordEntry, v string) { w.StoryBuilder = v }},
	{[]string{"mnemonic_source_url", "mnemonicSourceUrl"}, func(w *WordEntry, v string) { w.MnemonicSourceURL = v }},
}

type NormalizeResult struct {
	Entries []WordEntry
	// Skipped counts records without a word or a definition.
	Skipped int
}

// Normalize maps records onto WordEntry in input order, dropping the invalid ones.
func Normalize(records []Record) NormalizeResult {
	result := NormalizeResult{Entries: make([]WordEntry, 0, len(records))}
	for _, record := range records {
		entry := NormalizeRecord(record)
		if entry.Word == "" || entry.Definition == "" {
			result.Skipped++
			continue
		}
		result.Entries = append(result.Entries, entry)
	}
	return result
}

// NormalizeRecord resolves each field to the first alias holding a non-blank value.
func NormalizeRecord(record Record) WordEntry {
	entry := WordEntry{}
	for _, f := range fields {
		for _, alias := range f.aliases {
			raw, ok := record[alias]
			if !ok {
				continue
			}
			if value := strings.TrimSpace(stringify(raw)); value != "" {
				f.set(&entry, value)
				break
			}
		}
	}
	if entry.Icon == "" {
		entry.Icon = DefaultIcon
	}
	return entry
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s := strings.TrimSpace(stringify(item)); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
