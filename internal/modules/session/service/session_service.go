package service

import (
	"fmt"

	librarydto "vocabuilder/internal/modules/library/dto"
	"vocabuilder/internal/modules/session/domain"
	"vocabuilder/internal/platform/clock"
	apperrors "vocabuilder/internal/platform/errors"
	"vocabuilder/internal/platform/id"
)

type SessionService struct {
	clock  clock.Clock
	idGen  id.Generator
	layout domain.Layout
}

func NewSessionService(clock clock.Clock, idGen id.Generator, layout domain.Layout) (*SessionService, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &SessionService{clock: clock, idGen: idGen, layout: layout.Normalized()}, nil
}

func (s *SessionService) Layout() domain.Layout {
	return s.layout
}

// Select picks the bucket for week and day out of the combined word sequence.
func (s *SessionService) Select(words []librarydto.WordOutput, week, day int) ([]librarydto.WordOutput, error) {
	if !s.layout.ValidDay(week, day) {
		return nil, fmt.Errorf("%w: week must be >= 1 and day between 1 and %d, got week %d day %d", apperrors.ErrInvalidInput, s.layout.DaysPerWeek, week, day)
	}
	bucket := domain.Partition(words, s.layout).Lookup(week, day)
	if len(bucket) == 0 {
		return nil, fmt.Errorf("%w: no words for week %d day %d; try ingesting your library", apperrors.ErrNotFound, week, day)
	}
	return bucket, nil
}

func (s *SessionService) NewSelection(week, day int) domain.ActiveSelection {
	return domain.ActiveSelection{
		SchemaVersion: domain.SchemaVersion,
		SessionID:     s.idGen.New(),
		Week:          week,
		Day:           day,
		LoadedAt:      s.clock.Now(),
	}
}

func (s *SessionService) Partition(words []librarydto.WordOutput) domain.WeekDayMap[librarydto.WordOutput] {
	return domain.Partition(words, s.layout)
}

func (s *SessionService) BuildSheet(selection domain.ActiveSelection, words []librarydto.WordOutput, due map[string]bool) domain.Sheet {
	sheet := domain.Sheet{
		SessionID:  selection.SessionID,
		Week:       selection.Week,
		Day:        selection.Day,
		ExportedAt: s.clock.Now(),
		Words:      make([]domain.SheetWord, 0, len(words)),
	}
	for _, w := range words {
		sheet.Words = append(sheet.Words, domain.SheetWord{
			Word:         w.Word,
			PartOfSpeech: w.PartOfSpeech,
			Definition:   w.Definition,
			Mnemonic:     w.Mnemonic,
			Sentence:     w.Sentence,
			Synonyms:     w.Synonyms,
			Due:          due[w.Word],
		})
	}
	return sheet
}
