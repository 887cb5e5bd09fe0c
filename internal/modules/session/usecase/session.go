package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	librarydto "vocabuilder/internal/modules/library/dto"
	libraryin "vocabuilder/internal/modules/library/port/in"
	scheduledto "vocabuilder/internal/modules/schedule/dto"
	schedulein "vocabuilder/internal/modules/schedule/port/in"
	"vocabuilder/internal/modules/session/domain"
	sessiondto "vocabuilder/internal/modules/session/dto"
	sessionin "vocabuilder/internal/modules/session/port/in"
	sessionout "vocabuilder/internal/modules/session/port/out"
	"vocabuilder/internal/modules/session/service"
	apperrors "vocabuilder/internal/platform/errors"
)

type activeSet struct {
	selection domain.ActiveSelection
	words     []librarydto.WordOutput
}

// Interactor owns the active set. All methods are safe for concurrent use.
type Interactor struct {
	svc        *service.SessionService
	library    libraryin.Usecase
	schedule   schedulein.Usecase
	selections sessionout.SelectionStore
	sheets     sessionout.SheetStore
	logger     *slog.Logger

	mu     sync.Mutex
	active *activeSet
}

func NewInteractor(svc *service.SessionService, library libraryin.Usecase, schedule schedulein.Usecase, selections sessionout.SelectionStore, sheets sessionout.SheetStore, logger *slog.Logger) sessionin.Usecase {
	return &Interactor{svc: svc, library: library, schedule: schedule, selections: selections, sheets: sheets, logger: logger}
}

// LoadWeekDay replaces the active set with one bucket and stamps first exposure for its words.
func (i *Interactor) LoadWeekDay(ctx context.Context, input sessiondto.LoadInput) (sessiondto.ActiveSetOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.load(ctx, input.Week, input.Day)
}

func (i *Interactor) load(ctx context.Context, week, day int) (sessiondto.ActiveSetOutput, error) {
	sequence, err := i.library.Sequence(ctx)
	if err != nil {
		return sessiondto.ActiveSetOutput{}, err
	}
	bucket, err := i.svc.Select(sequence.Words, week, day)
	if err != nil {
		return sessiondto.ActiveSetOutput{}, err
	}
	marked, err := i.schedule.MarkSeen(ctx, scheduledto.MarkSeenInput{Words: identities(bucket)})
	if err != nil {
		return sessiondto.ActiveSetOutput{}, err
	}
	selection := i.svc.NewSelection(week, day)
	if i.selections != nil {
		if err := i.selections.Save(ctx, selection); err != nil {
			return sessiondto.ActiveSetOutput{}, err
		}
	}
	i.active = &activeSet{selection: selection, words: bucket}
	i.logger.Debug("loaded active set", "week", week, "day", day, "words", len(bucket), "first_seen", marked.Stamped)

	out := toActiveOutput(i.active)
	out.Stamped = marked.Stamped
	return out, nil
}

func (i *Interactor) Active(ctx context.Context) (sessiondto.ActiveSetOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	active, err := i.current(ctx)
	if err != nil {
		return sessiondto.ActiveSetOutput{}, err
	}
	return toActiveOutput(active), nil
}

// current returns the in-memory set, rebuilding it from the saved selection when needed.
// Rebuilding does not count as exposure.
func (i *Interactor) current(ctx context.Context) (*activeSet, error) {
	if i.active != nil {
		return i.active, nil
	}
	if i.selections == nil {
		return nil, apperrors.ErrNoActiveSet
	}
	selection, err := i.selections.Load(ctx)
	if err != nil {
		return nil, err
	}
	sequence, err := i.library.Sequence(ctx)
	if err != nil {
		return nil, err
	}
	bucket, err := i.svc.Select(sequence.Words, selection.Week, selection.Day)
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidInput) {
		return nil, fmt.Errorf("%w: saved selection week %d day %d has no words", apperrors.ErrNoActiveSet, selection.Week, selection.Day)
	}
	if err != nil {
		return nil, err
	}
	i.active = &activeSet{selection: selection, words: bucket}
	return i.active, nil
}

// DueWordsInCurrentSet returns the due words of the active set in order; empty when nothing is loaded.
func (i *Interactor) DueWordsInCurrentSet(ctx context.Context) ([]librarydto.WordOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	active, err := i.current(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSet) {
		return []librarydto.WordOutput{}, nil
	}
	if err != nil {
		return nil, err
	}
	due, err := i.dueSet(ctx, active.words)
	if err != nil {
		return nil, err
	}
	out := []librarydto.WordOutput{}
	for _, w := range active.words {
		if due[w.Word] {
			out = append(out, w)
		}
	}
	return out, nil
}

func (i *Interactor) dueSet(ctx context.Context, words []librarydto.WordOutput) (map[string]bool, error) {
	due, err := i.schedule.DueSet(ctx, scheduledto.DueSetInput{Words: identities(words)})
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(due))
	for _, word := range due {
		set[word] = true
	}
	return set, nil
}

// Ingest appends a word file to the library and, with AutoLoad, opens week 1 day 1.
func (i *Interactor) Ingest(ctx context.Context, input sessiondto.IngestInput) (sessiondto.IngestOutput, error) {
	result, err := i.library.Ingest(ctx, librarydto.IngestInput{Name: input.Name, Content: input.Content, Enrich: input.Enrich})
	if err != nil {
		return sessiondto.IngestOutput{}, err
	}
	out := sessiondto.IngestOutput{
		Inserted:  result.Inserted,
		Skipped:   result.Skipped,
		Truncated: result.Truncated,
		Total:     result.Total,
		Enriched:  result.Enriched,
	}
	if !input.AutoLoad || result.Inserted == 0 {
		return out, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	active, err := i.load(ctx, 1, 1)
	if err != nil {
		i.logger.Warn("ingest succeeded but week 1 day 1 could not be loaded", "error", err)
		return out, nil
	}
	out.Active = &active
	return out, nil
}

// ResetAllData clears the library, every first-seen stamp and the active set.
func (i *Interactor) ResetAllData(ctx context.Context) (sessiondto.ResetOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.library.Reset(ctx); err != nil {
		return sessiondto.ResetOutput{}, err
	}
	cleared, err := i.schedule.Reset(ctx)
	if err != nil {
		return sessiondto.ResetOutput{}, err
	}
	if i.selections != nil {
		if err := i.selections.Clear(ctx); err != nil {
			return sessiondto.ResetOutput{}, err
		}
	}
	i.active = nil
	i.logger.Info("all data reset", "schedule_cleared", cleared)
	return sessiondto.ResetOutput{ScheduleCleared: cleared}, nil
}

func (i *Interactor) Overview(ctx context.Context) (sessiondto.OverviewOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sequence, err := i.library.Sequence(ctx)
	if err != nil {
		return sessiondto.OverviewOutput{}, err
	}
	layout := i.svc.Layout()
	weekDays := i.svc.Partition(sequence.Words)
	out := sessiondto.OverviewOutput{
		Seed:          sequence.Seed,
		Library:       sequence.Library,
		Total:         len(sequence.Words),
		PerWeek:       layout.PerWeek,
		PerDay:        layout.PerDay,
		DaysPerWeek:   layout.DaysPerWeek,
		Weeks:         weekDays.Weeks(),
		SelectorWeeks: domain.SelectorWeeks(len(sequence.Words), layout),
		Buckets:       make([]sessiondto.BucketOutput, 0, weekDays.Len()),
	}
	for _, key := range weekDays.Keys() {
		out.Buckets = append(out.Buckets, sessiondto.BucketOutput{Week: key.Week, Day: key.Day, Size: len(weekDays.Lookup(key.Week, key.Day))})
	}

	active, err := i.current(ctx)
	switch {
	case err == nil:
		out.ActiveWeek, out.ActiveDay = active.selection.Week, active.selection.Day
	case errors.Is(err, apperrors.ErrNoActiveSet):
	default:
		return sessiondto.OverviewOutput{}, err
	}
	return out, nil
}

// ExportSheet writes the active set as a markdown study sheet.
func (i *Interactor) ExportSheet(ctx context.Context) (sessiondto.ExportOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.sheets == nil {
		return sessiondto.ExportOutput{}, fmt.Errorf("sheet export is not configured")
	}
	active, err := i.current(ctx)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	due, err := i.dueSet(ctx, active.words)
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	path, err := i.sheets.Save(ctx, i.svc.BuildSheet(active.selection, active.words, due))
	if err != nil {
		return sessiondto.ExportOutput{}, err
	}
	return sessiondto.ExportOutput{Path: path, Words: len(active.words)}, nil
}

func toActiveOutput(active *activeSet) sessiondto.ActiveSetOutput {
	words := make([]librarydto.WordOutput, len(active.words))
	copy(words, active.words)
	return sessiondto.ActiveSetOutput{
		SessionID: active.selection.SessionID,
		Week:      active.selection.Week,
		Day:       active.selection.Day,
		LoadedAt:  active.selection.LoadedAt,
		Words:     words,
	}
}

func identities(words []librarydto.WordOutput) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Word)
	}
	return out
}
