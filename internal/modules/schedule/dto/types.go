package dto

import "time"

type MarkSeenInput struct {
	Words []string
}

type MarkSeenOutput struct {
	Stamped int
}

type DueSetInput struct {
	Words []string
}

type StatusInput struct {
	Words []string
}

type StatusOutput struct {
	Word        string
	Seen        bool
	FirstSeen   time.Time
	ElapsedDays int
	Due         bool
	NextDueIn   int
	HasNext     bool
}
