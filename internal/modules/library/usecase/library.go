package usecase

import (
	"context"

	"vocabuilder/internal/modules/library/domain"
	"vocabuilder/internal/modules/library/dto"
	libraryin "vocabuilder/internal/modules/library/port/in"
	"vocabuilder/internal/modules/library/service"
)

type Interactor struct {
	svc *service.LibraryService
}

func NewInteractor(svc *service.LibraryService) libraryin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Ingest(ctx context.Context, input dto.IngestInput) (dto.IngestOutput, error) {
	result, err := i.svc.Ingest(ctx, input.Name, input.Content, input.Enrich)
	if err != nil {
		return dto.IngestOutput{}, err
	}
	return dto.IngestOutput{
		Inserted:  result.Inserted,
		Skipped:   result.Skipped,
		Truncated: result.Truncated,
		Total:     result.Total,
		Enriched:  result.Enriched,
	}, nil
}

func (i *Interactor) ListWords(ctx context.Context) ([]dto.WordOutput, error) {
	words, err := i.svc.ListWords(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(words), nil
}

func (i *Interactor) Sequence(ctx context.Context) (dto.SequenceOutput, error) {
	words, seed, library, err := i.svc.Sequence(ctx)
	if err != nil {
		return dto.SequenceOutput{}, err
	}
	return dto.SequenceOutput{Words: toOutputs(words), Seed: seed, Library: library}, nil
}

func (i *Interactor) ExportCSV(ctx context.Context) (string, error) {
	return i.svc.ExportCSV(ctx)
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func toOutputs(words []domain.WordEntry) []dto.WordOutput {
	out := make([]dto.WordOutput, 0, len(words))
	for _, w := range words {
		out = append(out, dto.WordOutput{
			Word:              w.Word,
			Definition:        w.Definition,
			PartOfSpeech:      w.PartOfSpeech,
			Mnemonic:          w.Mnemonic,
			Sentence:          w.Sentence,
			Icon:              w.Icon,
			Synonyms:          w.Synonyms,
			MoreSynonyms:      w.MoreSynonyms,
			Level:             w.Level,
			StoryBuilder:      w.StoryBuilder,
			MnemonicSourceURL: w.MnemonicSourceURL,
		})
	}
	return out
}
