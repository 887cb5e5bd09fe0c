package dto

import (
	"time"

	librarydto "vocabuilder/internal/modules/library/dto"
)

type LoadInput struct {
	Week int
	Day  int
}

type ActiveSetOutput struct {
	SessionID string
	Week      int
	Day       int
	LoadedAt  time.Time
	Words     []librarydto.WordOutput
	// Stamped counts words seen for the first time by this load.
	Stamped int
}

type IngestInput struct {
	Name     string
	Content  []byte
	Enrich   []string
	AutoLoad bool
}

type IngestOutput struct {
	Inserted  int
	Skipped   int
	Truncated int
	Total     int
	Enriched  []string
	// Active is set when the ingest loaded week 1, day 1.
	Active *ActiveSetOutput
}

type ResetOutput struct {
	ScheduleCleared int
}

type BucketOutput struct {
	Week int
	Day  int
	Size int
}

type OverviewOutput struct {
	Seed          int
	Library       int
	Total         int
	PerWeek       int
	PerDay        int
	DaysPerWeek   int
	Weeks         int
	SelectorWeeks int
	Buckets       []BucketOutput
	ActiveWeek    int
	ActiveDay     int
}

type ExportOutput struct {
	Path  string
	Words int
}
