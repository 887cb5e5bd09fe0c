package in

import (
	"context"

	librarydto "vocabuilder/internal/modules/library/dto"
	"vocabuilder/internal/modules/session/dto"
)

type Usecase interface {
	LoadWeekDay(ctx context.Context, input dto.LoadInput) (dto.ActiveSetOutput, error)
	Active(ctx context.Context) (dto.ActiveSetOutput, error)
	DueWordsInCurrentSet(ctx context.Context) ([]librarydto.WordOutput, error)
	Ingest(ctx context.Context, input dto.IngestInput) (dto.IngestOutput, error)
	ResetAllData(ctx context.Context) (dto.ResetOutput, error)
	Overview(ctx context.Context) (dto.OverviewOutput, error)
	ExportSheet(ctx context.Context) (dto.ExportOutput, error)
}
