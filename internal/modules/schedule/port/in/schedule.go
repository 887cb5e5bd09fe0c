package in

import (
	"context"

	"vocabuilder/internal/modules/schedule/dto"
)

type Usecase interface {
	MarkSeen(ctx context.Context, input dto.MarkSeenInput) (dto.MarkSeenOutput, error)
	IsDue(ctx context.Context, word string) (bool, error)
	DueSet(ctx context.Context, input dto.DueSetInput) ([]string, error)
	Status(ctx context.Context, input dto.StatusInput) ([]dto.StatusOutput, error)
	Reset(ctx context.Context) (int, error)
}
