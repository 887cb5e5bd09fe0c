package domain

import (
	"fmt"
	"sort"
)

const (
	DefaultPerWeek     = 100
	DefaultPerDay      = 20
	DefaultDaysPerWeek = 5
	MinSelectorWeeks   = 8
)

// Layout fixes bucket sizes. Zero fields take the defaults.
type Layout struct {
	PerWeek     int
	PerDay      int
	DaysPerWeek int
}

func (l Layout) withDefaults() Layout {
	if l.PerWeek == 0 {
		l.PerWeek = DefaultPerWeek
	}
	if l.PerDay == 0 {
		l.PerDay = DefaultPerDay
	}
	if l.DaysPerWeek == 0 {
		l.DaysPerWeek = DefaultDaysPerWeek
	}
	return l
}

// Normalized returns the layout with defaults applied.
func (l Layout) Normalized() Layout {
	return l.withDefaults()
}

func (l Layout) Validate() error {
	l = l.withDefaults()
	if l.PerWeek < 0 || l.PerDay < 0 || l.DaysPerWeek < 0 {
		return fmt.Errorf("layout sizes must be positive: %+v", l)
	}
	if l.PerDay*l.DaysPerWeek > l.PerWeek {
		return fmt.Errorf("%d days of %d words overflow a %d word week", l.DaysPerWeek, l.PerDay, l.PerWeek)
	}
	return nil
}

// ValidDay reports whether week and day address a bucket slot.
func (l Layout) ValidDay(week, day int) bool {
	l = l.withDefaults()
	return week >= 1 && day >= 1 && day <= l.DaysPerWeek
}

// Weeks is the number of weeks the sequence reaches into.
func (l Layout) Weeks(n int) int {
	l = l.withDefaults()
	if n <= 0 {
		return 0
	}
	return (n + l.PerWeek - 1) / l.PerWeek
}

// SelectorWeeks is how many weeks a picker offers: at least eight, more once the library outgrows them.
func SelectorWeeks(n int, layout Layout) int {
	return max(MinSelectorWeeks, layout.Weeks(n))
}

type DayKey struct {
	Week int
	Day  int
}

// WeekDayMap holds the non-empty buckets of a partitioned sequence.
type WeekDayMap[T any] struct {
	layout  Layout
	total   int
	buckets map[DayKey][]T
}

// Partition slices seq into week/day buckets. Week w starts at (w-1)*PerWeek and day d of that week
// at (w-1)*PerWeek + (d-1)*PerDay. Empty buckets are left out. Buckets share seq's backing array.
func Partition[T any](seq []T, layout Layout) WeekDayMap[T] {
	layout = layout.withDefaults()
	m := WeekDayMap[T]{layout: layout, total: len(seq), buckets: map[DayKey][]T{}}
	for w := 1; w <= layout.Weeks(len(seq)); w++ {
		for d := 1; d <= layout.DaysPerWeek; d++ {
			start := (w-1)*layout.PerWeek + (d-1)*layout.PerDay
			if start >= len(seq) {
				break
			}
			end := min(start+layout.PerDay, len(seq))
			m.buckets[DayKey{Week: w, Day: d}] = seq[start:end:end]
		}
	}
	return m
}

// Lookup returns the bucket, or an empty slice when there is none.
func (m WeekDayMap[T]) Lookup(week, day int) []T {
	bucket, ok := m.buckets[DayKey{Week: week, Day: day}]
	if !ok {
		return []T{}
	}
	return bucket
}

// Lookup is the free-function form of WeekDayMap.Lookup.
func Lookup[T any](m WeekDayMap[T], week, day int) []T {
	return m.Lookup(week, day)
}

// Keys lists the present buckets in week, then day order.
func (m WeekDayMap[T]) Keys() []DayKey {
	keys := make([]DayKey, 0, len(m.buckets))
	for key := range m.buckets {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Week != keys[j].Week {
			return keys[i].Week < keys[j].Week
		}
		return keys[i].Day < keys[j].Day
	})
	return keys
}

func (m WeekDayMap[T]) Weeks() int {
	return m.layout.Weeks(m.total)
}

func (m WeekDayMap[T]) Len() int {
	return len(m.buckets)
}
