// Package trend provides period-based analytics over persisted sleep
// entries: window resolution, scalar and circular time averages,
// period-over-period comparison baselines, and goal classification.
// Everything here is a pure function over already-loaded entries.
package trend

import (
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

// PeriodBounds resolves a trend period to a [from, to] date window.
// Fixed day counts subtract from now; ytd anchors to January 1;
// calendar-anchored periods resolve to the start of the current week
// (Monday-based), month, or quarter. "year" covers the full previous
// calendar year.
func PeriodBounds(now time.Time, p domain.TrendPeriod) (time.Time, time.Time) {
	midnight := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	switch p {
	case domain.Period7Days:
		return midnight(now.AddDate(0, 0, -7)), now
	case domain.Period30Days:
		return midnight(now.AddDate(0, 0, -30)), now
	case domain.Period90Days:
		return midnight(now.AddDate(0, 0, -90)), now
	case domain.PeriodWeek:
		return weekStart(now), now
	case domain.PeriodMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now
	case domain.PeriodQuarter:
		qMonth := time.Month(((int(now.Month())-1)/3)*3 + 1)
		return time.Date(now.Year(), qMonth, 1, 0, 0, 0, 0, now.Location()), now
	case domain.PeriodYTD:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), now
	case domain.PeriodYear:
		from := time.Date(now.Year()-1, time.January, 1, 0, 0, 0, 0, now.Location())
		return from, time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return midnight(now.AddDate(0, 0, -7)), now
}

// weekStart returns midnight of the current week's Monday, treating
// Sunday as day 7 of the previous week.
func weekStart(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	start := now.AddDate(0, 0, -(weekday - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}

// ComparisonCutoff returns the timestamp one period length before now;
// the comparison entry is the most recent entry at or before it.
func ComparisonCutoff(now time.Time, p domain.TrendPeriod) time.Time {
	switch p {
	case domain.Period7Days, domain.PeriodWeek:
		return now.AddDate(0, 0, -7)
	case domain.Period30Days:
		return now.AddDate(0, 0, -30)
	case domain.Period90Days:
		return now.AddDate(0, 0, -90)
	case domain.PeriodMonth:
		return now.AddDate(0, -1, 0)
	case domain.PeriodQuarter:
		return now.AddDate(0, -3, 0)
	case domain.PeriodYTD, domain.PeriodYear:
		return now.AddDate(-1, 0, 0)
	}
	return now.AddDate(0, 0, -7)
}

// entryDate parses an entry's sleep-date key. Entries with malformed
// keys are excluded from analytics.
func entryDate(e domain.SleepEntry) (time.Time, bool) {
	t, err := time.Parse(domain.SleepDateFormat, e.SleepDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// inWindow reports whether a date falls inside [from, to].
func inWindow(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
