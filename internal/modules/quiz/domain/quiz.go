package domain

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

const (
	DistractorCount  = 3
	DefaultStorySize = 5
)

// Rand is the randomness a quiz needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

type Card struct {
	Word       string
	Definition string
}

var nonWord = regexp.MustCompile(`\W+`)

var fold = cases.Fold()

// CheckAnswer accepts an answer containing any word of the definition, ignoring case.
func CheckAnswer(definition, answer string) bool {
	input := fold.String(strings.TrimSpace(answer))
	if input == "" {
		return false
	}
	for _, token := range nonWord.Split(fold.String(definition), -1) {
		if token != "" && strings.Contains(input, token) {
			return true
		}
	}
	return false
}

// Grade accepts only the exact definition.
func Grade(definition, choice string) bool {
	return choice == definition
}

// Pick returns a random element of pool. pool must not be empty.
func Pick[T any](pool []T, r Rand) T {
	return pool[r.IntN(len(pool))]
}

// Shuffled returns a shuffled copy of items.
func Shuffled[T any](items []T, r Rand) []T {
	out := make([]T, len(items))
	copy(out, items)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Sample returns up to n random items without repetition.
func Sample[T any](items []T, n int, r Rand) []T {
	out := Shuffled(items, r)
	if n < len(out) {
		out = out[:n]
	}
	return out
}

// BuildChoices mixes the target definition with up to three definitions of other words.
func BuildChoices(target Card, pool []Card, r Rand) []string {
	others := make([]Card, 0, len(pool))
	for _, c := range pool {
		if c.Word != target.Word {
			others = append(others, c)
		}
	}
	choices := []string{target.Definition}
	for _, c := range Sample(others, DistractorCount, r) {
		choices = append(choices, c.Definition)
	}
	return Shuffled(choices, r)
}
