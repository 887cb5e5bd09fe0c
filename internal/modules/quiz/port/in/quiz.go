package in

import (
	"context"

	"vocabuilder/internal/modules/quiz/dto"
)

type Usecase interface {
	NextPrompt(ctx context.Context) (dto.PromptOutput, error)
	Check(ctx context.Context, input dto.CheckInput) (dto.CheckOutput, error)
	Review(ctx context.Context) ([]dto.ReviewItem, error)
	Grade(ctx context.Context, input dto.GradeInput) (dto.CheckOutput, error)
	Story(ctx context.Context, count int) (dto.StoryOutput, error)
}
