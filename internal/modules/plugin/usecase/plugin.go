package usecase

import (
	"context"

	"vocabuilder/internal/modules/plugin/dto"
	pluginin "vocabuilder/internal/modules/plugin/port/in"
	"vocabuilder/internal/modules/plugin/service"
)

type Interactor struct {
	svc *service.PluginService
}

func NewInteractor(svc *service.PluginService) pluginin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Enrich(ctx context.Context, input dto.EnrichInput) (dto.EnrichOutput, error) {
	return i.svc.Enrich(ctx, input)
}
