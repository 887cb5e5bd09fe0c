package in

import (
	"context"

	"vocabuilder/internal/modules/library/dto"
)

type Usecase interface {
	Ingest(ctx context.Context, input dto.IngestInput) (dto.IngestOutput, error)
	ListWords(ctx context.Context) ([]dto.WordOutput, error)
	Sequence(ctx context.Context) (dto.SequenceOutput, error)
	ExportCSV(ctx context.Context) (string, error)
	Reset(ctx context.Context) error
}
