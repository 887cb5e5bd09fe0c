package in

import (
	"context"

	quizdto "vocabuilder/internal/modules/quiz/dto"
	quizin "vocabuilder/internal/modules/quiz/port/in"
)

type CLIHandler struct {
	usecase quizin.Usecase
}

func NewCLIHandler(usecase quizin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Next(ctx context.Context) (quizdto.PromptOutput, error) {
	return h.usecase.NextPrompt(ctx)
}

func (h CLIHandler) Check(ctx context.Context, word, answer string) (quizdto.CheckOutput, error) {
	return h.usecase.Check(ctx, quizdto.CheckInput{Word: word, Answer: answer})
}

func (h CLIHandler) Review(ctx context.Context) ([]quizdto.ReviewItem, error) {
	return h.usecase.Review(ctx)
}

func (h CLIHandler) Grade(ctx context.Context, word, choice string) (quizdto.CheckOutput, error) {
	return h.usecase.Grade(ctx, quizdto.GradeInput{Word: word, Choice: choice})
}

func (h CLIHandler) Story(ctx context.Context, count int) (quizdto.StoryOutput, error) {
	return h.usecase.Story(ctx, count)
}
