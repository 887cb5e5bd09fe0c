package service_test

import (
	"errors"
	"testing"
	"time"

	librarydto "vocabuilder/internal/modules/library/dto"
	"vocabuilder/internal/modules/session/domain"
	"vocabuilder/internal/modules/session/service"
	"vocabuilder/internal/platform/clock"
	apperrors "vocabuilder/internal/platform/errors"
)

type fixedID string

func (f fixedID) New() string { return string(f) }

var now = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

func newService(t *testing.T) *service.SessionService {
	t.Helper()
	svc, err := service.NewSessionService(clock.Fixed(now), fixedID("sess-1"), domain.Layout{PerWeek: 4, PerDay: 2, DaysPerWeek: 2})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func words(names ...string) []librarydto.WordOutput {
	out := make([]librarydto.WordOutput, 0, len(names))
	for _, n := range names {
		out = append(out, librarydto.WordOutput{Word: n, Definition: n + " def"})
	}
	return out
}

func TestNewSessionServiceRejectsOverflowingLayout(t *testing.T) {
	t.Parallel()
	_, err := service.NewSessionService(clock.Fixed(now), fixedID("x"), domain.Layout{PerWeek: 10, PerDay: 6, DaysPerWeek: 2})
	if err == nil {
		t.Fatalf("expected overflow error")
	}
}

func TestSelectPicksBucket(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	seq := words("a", "b", "c", "d", "e")

	got, err := svc.Select(seq, 1, 2)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(got) != 2 || got[0].Word != "c" || got[1].Word != "d" {
		t.Fatalf("week 1 day 2 = %+v", got)
	}
	got, err = svc.Select(seq, 2, 1)
	if err != nil || len(got) != 1 || got[0].Word != "e" {
		t.Fatalf("week 2 day 1 = %+v %v", got, err)
	}
}

func TestSelectErrors(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	seq := words("a", "b", "c")

	cases := []struct {
		name      string
		week, day int
		want      error
	}{
		{"week zero", 0, 1, apperrors.ErrInvalidInput},
		{"day past week", 1, 3, apperrors.ErrInvalidInput},
		{"empty bucket", 2, 1, apperrors.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := svc.Select(seq, tc.week, tc.day); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNewSelectionStampsIDAndTime(t *testing.T) {
	t.Parallel()
	sel := newService(t).NewSelection(3, 1)
	if sel.SessionID != "sess-1" || sel.Week != 3 || sel.Day != 1 || !sel.LoadedAt.Equal(now) || sel.SchemaVersion != domain.SchemaVersion {
		t.Fatalf("unexpected selection %+v", sel)
	}
}

func TestBuildSheetMarksDueWords(t *testing.T) {
	t.Parallel()
	svc := newService(t)
	sel := svc.NewSelection(1, 1)
	sheet := svc.BuildSheet(sel, words("a", "b"), map[string]bool{"b": true})

	if sheet.SessionID != "sess-1" || !sheet.ExportedAt.Equal(now) || len(sheet.Words) != 2 {
		t.Fatalf("unexpected sheet %+v", sheet)
	}
	if sheet.Words[0].Due || !sheet.Words[1].Due {
		t.Fatalf("due flags = %v %v", sheet.Words[0].Due, sheet.Words[1].Due)
	}
	if sheet.Words[0].Definition != "a def" {
		t.Fatalf("definition = %q", sheet.Words[0].Definition)
	}
}
