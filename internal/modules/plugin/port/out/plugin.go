package out

import (
	"context"

	"vocabuilder/internal/modules/plugin/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Enrich(ctx context.Context, manifest domain.Manifest, request domain.EnrichRequest) ([]domain.WordFields, error)
}
