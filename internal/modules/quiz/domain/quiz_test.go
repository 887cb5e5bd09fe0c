package domain_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"vocabuilder/internal/modules/quiz/domain"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestCheckAnswer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		definition string
		answer     string
		want       bool
	}{
		{"To or in a foreign country", "somewhere FOREIGN", true},
		{"To or in a foreign country", "  country ", true},
		{"An advantage or profit", "for PROFIT", true},
		{"An advantage or profit", "gain", false},
		{"Satisfactory or allowed", "", false},
		{"Satisfactory or allowed", "   ", false},
		{"The ability to do something brave", "BRAVERY", true},
		{"---", "anything", false},
	}
	for _, tt := range tests {
		if got := domain.CheckAnswer(tt.definition, tt.answer); got != tt.want {
			t.Fatalf("CheckAnswer(%q, %q) = %v, want %v", tt.definition, tt.answer, got, tt.want)
		}
	}
}

func TestGrade(t *testing.T) {
	t.Parallel()

	if !domain.Grade("To make a choice", "To make a choice") {
		t.Fatalf("exact choice rejected")
	}
	if domain.Grade("To make a choice", "to make a choice") {
		t.Fatalf("grading must be exact")
	}
}

func TestBuildChoices(t *testing.T) {
	t.Parallel()

	pool := []domain.Card{
		{Word: "Abroad", Definition: "d-abroad"},
		{Word: "Benefit", Definition: "d-benefit"},
		{Word: "Courage", Definition: "d-courage"},
		{Word: "Decide", Definition: "d-decide"},
		{Word: "Echo", Definition: "d-echo"},
		{Word: "Abroad", Definition: "d-abroad-again"},
	}
	target := pool[0]
	for i := 0; i < 20; i++ {
		choices := domain.BuildChoices(target, pool, newRand())
		if len(choices) != 4 {
			t.Fatalf("choices = %v", choices)
		}
		if !slices.Contains(choices, "d-abroad") || slices.Contains(choices, "d-abroad-again") {
			t.Fatalf("choices must hold the answer and no same-word distractor: %v", choices)
		}
	}

	small := domain.BuildChoices(target, pool[:2], newRand())
	if len(small) != 2 {
		t.Fatalf("small pool choices = %v", small)
	}
}

func TestSampleAndPick(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5, 6, 7}
	r := newRand()
	sample := domain.Sample(items, 5, r)
	if len(sample) != 5 {
		t.Fatalf("sample = %v", sample)
	}
	seen := map[int]bool{}
	for _, v := range sample {
		if seen[v] {
			t.Fatalf("sample repeated %d", v)
		}
		seen[v] = true
	}
	if got := domain.Sample(items[:2], 5, r); len(got) != 2 {
		t.Fatalf("short sample = %v", got)
	}
	if items[0] != 1 || items[6] != 7 {
		t.Fatalf("input reordered: %v", items)
	}
	if v := domain.Pick(items, r); v < 1 || v > 7 {
		t.Fatalf("pick = %d", v)
	}
}
