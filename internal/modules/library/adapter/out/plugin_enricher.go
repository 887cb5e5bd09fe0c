package out

import (
	"context"

	"vocabuilder/internal/modules/library/domain"
	libraryout "vocabuilder/internal/modules/library/port/out"
	plugindto "vocabuilder/internal/modules/plugin/dto"
	pluginin "vocabuilder/internal/modules/plugin/port/in"
)

type PluginEnricher struct {
	plugins pluginin.Usecase
}

func NewPluginEnricher(plugins pluginin.Usecase) libraryout.Enricher {
	return &PluginEnricher{plugins: plugins}
}

func (e *PluginEnricher) Enrich(ctx context.Context, plugin string, entries []domain.WordEntry) ([]domain.WordEntry, error) {
	input := plugindto.EnrichInput{PluginName: plugin, Entries: make([]plugindto.WordFields, 0, len(entries))}
	for _, entry := range entries {
		input.Entries = append(input.Entries, plugindto.WordFields(entry))
	}
	output, err := e.plugins.Enrich(ctx, input)
	if err != nil {
		return nil, err
	}
	out := make([]domain.WordEntry, 0, len(output.Entries))
	for _, fields := range output.Entries {
		out = append(out, domain.WordEntry(fields))
	}
	return out, nil
}
