package in

import (
	"context"

	"vocabuilder/internal/modules/plugin/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Enrich(ctx context.Context, input dto.EnrichInput) (dto.EnrichOutput, error)
}
