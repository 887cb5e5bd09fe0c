package slug_test

import (
	"testing"

	"vocabuilder/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Week 1 Day 2":   "week-1-day-2",
		"  Café au lait": "cafe-au-lait",
		"naïve / résumé": "naive-resume",
		"???":            "untitled",
		"":               "untitled",
	}
	for input, want := range tests {
		if got := slug.Make(input); got != want {
			t.Fatalf("Make(%q) = %q, want %q", input, got, want)
		}
	}
}
