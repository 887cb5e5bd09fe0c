package out

import (
	"context"

	"vocabuilder/internal/modules/session/domain"
)

type SelectionStore interface {
	Save(ctx context.Context, selection domain.ActiveSelection) error
	// Load returns apperrors.ErrNoActiveSet when nothing has been selected.
	Load(ctx context.Context) (domain.ActiveSelection, error)
	Clear(ctx context.Context) error
}

type SheetStore interface {
	Save(ctx context.Context, sheet domain.Sheet) (string, error)
}
