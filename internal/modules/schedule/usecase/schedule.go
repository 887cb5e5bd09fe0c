package usecase

import (
	"context"

	"vocabuilder/internal/modules/schedule/dto"
	schedulein "vocabuilder/internal/modules/schedule/port/in"
	"vocabuilder/internal/modules/schedule/service"
)

type Interactor struct {
	svc *service.Scheduler
}

func NewInteractor(svc *service.Scheduler) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) MarkSeen(ctx context.Context, input dto.MarkSeenInput) (dto.MarkSeenOutput, error) {
	stamped, err := i.svc.MarkSeen(ctx, input.Words...)
	if err != nil {
		return dto.MarkSeenOutput{}, err
	}
	return dto.MarkSeenOutput{Stamped: stamped}, nil
}

func (i *Interactor) IsDue(ctx context.Context, word string) (bool, error) {
	return i.svc.IsDue(ctx, word)
}

func (i *Interactor) DueSet(ctx context.Context, input dto.DueSetInput) ([]string, error) {
	return i.svc.DueSet(ctx, input.Words)
}

func (i *Interactor) Status(ctx context.Context, input dto.StatusInput) ([]dto.StatusOutput, error) {
	statuses, err := i.svc.Status(ctx, input.Words)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StatusOutput, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, dto.StatusOutput{
			Word:        s.Word,
			Seen:        s.Seen,
			FirstSeen:   s.FirstSeen,
			ElapsedDays: s.ElapsedDays,
			Due:         s.Due,
			NextDueIn:   s.NextDueIn,
			HasNext:     s.HasNext,
		})
	}
	return out, nil
}

func (i *Interactor) Reset(ctx context.Context) (int, error) {
	return i.svc.Reset(ctx)
}
