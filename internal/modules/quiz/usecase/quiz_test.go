package usecase_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	librarydto "vocabuilder/internal/modules/library/dto"
	"vocabuilder/internal/modules/quiz/dto"
	"vocabuilder/internal/modules/quiz/usecase"
	sessiondto "vocabuilder/internal/modules/session/dto"
	sessionin "vocabuilder/internal/modules/session/port/in"
	apperrors "vocabuilder/internal/platform/errors"
)

type fakeSession struct {
	sessionin.Usecase
	active sessiondto.ActiveSetOutput
	due    []librarydto.WordOutput
	err    error
}

func (f *fakeSession) Active(context.Context) (sessiondto.ActiveSetOutput, error) {
	if f.err != nil {
		return sessiondto.ActiveSetOutput{}, f.err
	}
	return f.active, nil
}

func (f *fakeSession) DueWordsInCurrentSet(context.Context) ([]librarydto.WordOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.due, nil
}

func words() []librarydto.WordOutput {
	return []librarydto.WordOutput{
		{Word: "Abroad", Definition: "In or to a foreign country", PartOfSpeech: "adverb"},
		{Word: "Acceptable", Definition: "Satisfactory or allowed", PartOfSpeech: "adjective"},
		{Word: "Benefit", Definition: "An advantage or profit", PartOfSpeech: "noun"},
		{Word: "Courage", Definition: "The ability to do something brave", PartOfSpeech: "noun"},
		{Word: "Decide", Definition: "To make a choice", PartOfSpeech: "verb"},
		{Word: "Echo", Definition: "A repeated sound", PartOfSpeech: "noun"},
	}
}

func newInteractor(session *fakeSession) *usecase.Interactor {
	return usecase.NewInteractor(session, rand.New(rand.NewPCG(7, 11))).(*usecase.Interactor)
}

func TestNextPromptPrefersDueWords(t *testing.T) {
	t.Parallel()

	all := words()
	session := &fakeSession{active: sessiondto.ActiveSetOutput{Week: 1, Day: 1, Words: all}, due: all[2:3]}
	quiz := newInteractor(session)

	for range 10 {
		prompt, err := quiz.NextPrompt(context.Background())
		if err != nil {
			t.Fatalf("next prompt: %v", err)
		}
		if prompt.Word != "Benefit" || !prompt.Spaced || prompt.Due != 1 || prompt.PartOfSpeech != "noun" {
			t.Fatalf("prompt = %+v", prompt)
		}
	}

	session.due = nil
	prompt, err := quiz.NextPrompt(context.Background())
	if err != nil {
		t.Fatalf("next prompt: %v", err)
	}
	if prompt.Spaced || prompt.Word == "" {
		t.Fatalf("prompt without due words = %+v", prompt)
	}
}

func TestNextPromptErrors(t *testing.T) {
	t.Parallel()

	quiz := newInteractor(&fakeSession{err: apperrors.ErrNoActiveSet})
	if _, err := quiz.NextPrompt(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSet) {
		t.Fatalf("err = %v", err)
	}

	empty := newInteractor(&fakeSession{active: sessiondto.ActiveSetOutput{Week: 9, Day: 1}})
	if _, err := empty.NextPrompt(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("empty set err = %v", err)
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()

	quiz := newInteractor(&fakeSession{active: sessiondto.ActiveSetOutput{Week: 1, Day: 1, Words: words()}})
	ctx := context.Background()

	got, err := quiz.Check(ctx, dto.CheckInput{Word: "Decide", Answer: "a CHOICE you make"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !got.Correct || got.Definition != "To make a choice" {
		t.Fatalf("check = %+v", got)
	}

	got, err = quiz.Check(ctx, dto.CheckInput{Word: "Decide", Answer: "   "})
	if err != nil || got.Correct {
		t.Fatalf("blank answer = %+v, %v", got, err)
	}

	if _, err := quiz.Check(ctx, dto.CheckInput{Word: "Zebra", Answer: "stripes"}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown word err = %v", err)
	}
	if _, err := quiz.Check(ctx, dto.CheckInput{Answer: "x"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("missing word err = %v", err)
	}
}

func TestReviewAndGrade(t *testing.T) {
	t.Parallel()

	all := words()
	quiz := newInteractor(&fakeSession{active: sessiondto.ActiveSetOutput{Week: 1, Day: 1, Words: all}, due: all[:2]})
	ctx := context.Background()

	items, err := quiz.Review(ctx)
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(items) != 2 || items[0].Word != "Abroad" || items[1].Word != "Acceptable" {
		t.Fatalf("items = %+v", items)
	}
	for idx, item := range items {
		if len(item.Choices) != 4 || !slices.Contains(item.Choices, all[idx].Definition) {
			t.Fatalf("choices for %s = %v", item.Word, item.Choices)
		}
	}

	graded, err := quiz.Grade(ctx, dto.GradeInput{Word: "Abroad", Choice: "In or to a foreign country"})
	if err != nil || !graded.Correct {
		t.Fatalf("grade = %+v, %v", graded, err)
	}
	graded, err = quiz.Grade(ctx, dto.GradeInput{Word: "Abroad", Choice: "A repeated sound"})
	if err != nil || graded.Correct {
		t.Fatalf("wrong grade = %+v, %v", graded, err)
	}
}

func TestReviewWithoutDueWords(t *testing.T) {
	t.Parallel()

	quiz := newInteractor(&fakeSession{active: sessiondto.ActiveSetOutput{Week: 1, Day: 1, Words: words()}})
	items, err := quiz.Review(context.Background())
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items = %+v", items)
	}
}

func TestStory(t *testing.T) {
	t.Parallel()

	quiz := newInteractor(&fakeSession{active: sessiondto.ActiveSetOutput{Week: 1, Day: 1, Words: words()}})
	ctx := context.Background()

	story, err := quiz.Story(ctx, 0)
	if err != nil {
		t.Fatalf("story: %v", err)
	}
	if len(story.Words) != 5 {
		t.Fatalf("default story = %v", story.Words)
	}

	story, err = quiz.Story(ctx, 20)
	if err != nil || len(story.Words) != 6 {
		t.Fatalf("oversized story = %v, %v", story.Words, err)
	}

	if _, err := quiz.Story(ctx, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative count err = %v", err)
	}
}
