package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	librarydto "vocabuilder/internal/modules/library/dto"
	"vocabuilder/internal/modules/quiz/domain"
	"vocabuilder/internal/modules/quiz/dto"
	quizin "vocabuilder/internal/modules/quiz/port/in"
	sessionin "vocabuilder/internal/modules/session/port/in"
	apperrors "vocabuilder/internal/platform/errors"
)

type Interactor struct {
	session sessionin.Usecase

	mu  sync.Mutex
	rng domain.Rand
}

func NewInteractor(session sessionin.Usecase, rng domain.Rand) quizin.Usecase {
	return &Interactor{session: session, rng: rng}
}

func (i *Interactor) NextPrompt(ctx context.Context) (dto.PromptOutput, error) {
	active, err := i.session.Active(ctx)
	if err != nil {
		return dto.PromptOutput{}, err
	}
	if len(active.Words) == 0 {
		return dto.PromptOutput{}, fmt.Errorf("%w: active set is empty", apperrors.ErrNotFound)
	}
	due, err := i.session.DueWordsInCurrentSet(ctx)
	if err != nil {
		return dto.PromptOutput{}, err
	}

	pool, spaced := active.Words, false
	if len(due) > 0 {
		pool, spaced = due, true
	}
	i.mu.Lock()
	word := domain.Pick(pool, i.rng)
	i.mu.Unlock()
	return dto.PromptOutput{
		Word:         word.Word,
		PartOfSpeech: word.PartOfSpeech,
		Icon:         word.Icon,
		Spaced:       spaced,
		Due:          len(due),
	}, nil
}

func (i *Interactor) Check(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error) {
	word, err := i.find(ctx, input.Word)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	return dto.CheckOutput{
		Word:       word.Word,
		Correct:    domain.CheckAnswer(word.Definition, input.Answer),
		Definition: word.Definition,
	}, nil
}

func (i *Interactor) Review(ctx context.Context) ([]dto.ReviewItem, error) {
	active, err := i.session.Active(ctx)
	if err != nil {
		return nil, err
	}
	due, err := i.session.DueWordsInCurrentSet(ctx)
	if err != nil {
		return nil, err
	}
	pool := cards(active.Words)

	i.mu.Lock()
	defer i.mu.Unlock()
	items := make([]dto.ReviewItem, 0, len(due))
	for _, w := range due {
		items = append(items, dto.ReviewItem{
			Word:    w.Word,
			Choices: domain.BuildChoices(domain.Card{Word: w.Word, Definition: w.Definition}, pool, i.rng),
		})
	}
	return items, nil
}

func (i *Interactor) Grade(ctx context.Context, input dto.GradeInput) (dto.CheckOutput, error) {
	word, err := i.find(ctx, input.Word)
	if err != nil {
		return dto.CheckOutput{}, err
	}
	return dto.CheckOutput{
		Word:       word.Word,
		Correct:    domain.Grade(word.Definition, input.Choice),
		Definition: word.Definition,
	}, nil
}

func (i *Interactor) Story(ctx context.Context, count int) (dto.StoryOutput, error) {
	if count < 0 {
		return dto.StoryOutput{}, fmt.Errorf("%w: story size %d", apperrors.ErrInvalidInput, count)
	}
	if count == 0 {
		count = domain.DefaultStorySize
	}
	active, err := i.session.Active(ctx)
	if err != nil {
		return dto.StoryOutput{}, err
	}

	i.mu.Lock()
	sample := domain.Sample(active.Words, count, i.rng)
	i.mu.Unlock()
	words := make([]string, 0, len(sample))
	for _, w := range sample {
		words = append(words, w.Word)
	}
	return dto.StoryOutput{Words: words}, nil
}

func (i *Interactor) find(ctx context.Context, word string) (librarydto.WordOutput, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return librarydto.WordOutput{}, fmt.Errorf("%w: word is required", apperrors.ErrInvalidInput)
	}
	active, err := i.session.Active(ctx)
	if err != nil {
		return librarydto.WordOutput{}, err
	}
	for _, w := range active.Words {
		if w.Word == word {
			return w, nil
		}
	}
	return librarydto.WordOutput{}, fmt.Errorf("%w: %q is not in week %d day %d", apperrors.ErrNotFound, word, active.Week, active.Day)
}

func cards(words []librarydto.WordOutput) []domain.Card {
	out := make([]domain.Card, 0, len(words))
	for _, w := range words {
		out = append(out, domain.Card{Word: w.Word, Definition: w.Definition})
	}
	return out
}
