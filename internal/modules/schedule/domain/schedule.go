package domain

import (
	"time"
)

const DayLength = 24 * time.Hour

// Window is an inclusive range of elapsed days. Open windows have no upper bound.
type Window struct {
	From int
	To   int
	Open bool
}

func (w Window) Contains(days int) bool {
	return days >= w.From && (w.Open || days <= w.To)
}

// DefaultWindows target reviews one, two and four weeks after first exposure, with a little slack.
// The last window never closes: nothing resets the first-seen time, so a word stays due from day 27 on.
var DefaultWindows = []Window{
	{From: 6, To: 9},
	{From: 13, To: 16},
	{From: 27, Open: true},
}

// ElapsedDays is the number of whole days from firstSeen to now, rounded toward negative infinity.
func ElapsedDays(firstSeen, now time.Time) int {
	d := now.Sub(firstSeen)
	days := int(d / DayLength)
	if d < 0 && d%DayLength != 0 {
		days--
	}
	return days
}

// IsDue reports whether the elapsed days fall in any window. Negative elapsed time is never due.
func IsDue(firstSeen, now time.Time, windows []Window) bool {
	days := ElapsedDays(firstSeen, now)
	if days < 0 {
		return false
	}
	for _, w := range windows {
		if w.Contains(days) {
			return true
		}
	}
	return false
}

// NextDueIn returns the days until the next window opens, 0 when due now,
// and false when no window lies ahead.
func NextDueIn(firstSeen, now time.Time, windows []Window) (int, bool) {
	days := ElapsedDays(firstSeen, now)
	if IsDue(firstSeen, now, windows) {
		return 0, true
	}
	best, found := 0, false
	for _, w := range windows {
		if w.From > days && (!found || w.From-days < best) {
			best, found = w.From-days, true
		}
	}
	return best, found
}

// Status is the schedule view of one word identity.
type Status struct {
	Word        string
	Seen        bool
	FirstSeen   time.Time
	ElapsedDays int
	Due         bool
	NextDueIn   int
	HasNext     bool
}

func Evaluate(word string, firstSeen time.Time, seen bool, now time.Time, windows []Window) Status {
	status := Status{Word: word, Seen: seen}
	if !seen {
		return status
	}
	status.FirstSeen = firstSeen
	status.ElapsedDays = ElapsedDays(firstSeen, now)
	status.Due = IsDue(firstSeen, now, windows)
	status.NextDueIn, status.HasNext = NextDueIn(firstSeen, now, windows)
	return status
}
