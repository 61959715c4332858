package trend

import (
	"math"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

// Accessor extracts one scalar from an entry. The second return value is
// false when the entry has no value for the metric, excluding it from
// the average.
type Accessor func(e domain.SleepEntry) (float64, bool)

// TimeAccessor extracts a time-of-day metric from an entry.
type TimeAccessor func(e domain.SleepEntry) (time.Time, bool)

// noonMinutes splits the clock for circular bedtime averaging: bedtimes
// before noon are treated as late values of the previous logical day.
const noonMinutes = 12 * 60

// AverageOverPeriod computes the arithmetic mean of the accessor over
// entries whose sleep date falls inside the period. Returns false when
// the filtered set is empty.
func AverageOverPeriod(entries []domain.SleepEntry, p domain.TrendPeriod, acc Accessor, now time.Time) (float64, bool) {
	from, to := PeriodBounds(now, p)

	var sum float64
	var n int
	for _, e := range entries {
		d, ok := entryDate(e)
		if !ok || !inWindow(d, from, to) {
			continue
		}
		v, ok := acc(e)
		if !ok {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// AverageTimeOverPeriod computes a wraparound-aware mean of a time-of-day
// metric, returned as minutes from midnight in [0,1440). For bedtimes,
// values before noon gain 1440 before averaging so that 1:00 AM (25:00)
// averages with 11:00 PM (23:00) to midnight instead of midday. Returns
// false when the period holds no data.
func AverageTimeOverPeriod(entries []domain.SleepEntry, p domain.TrendPeriod, acc TimeAccessor, isBedtime bool, now time.Time) (float64, bool) {
	from, to := PeriodBounds(now, p)

	var sum float64
	var n int
	for _, e := range entries {
		d, ok := entryDate(e)
		if !ok || !inWindow(d, from, to) {
			continue
		}
		t, ok := acc(e)
		if !ok || t.IsZero() {
			continue
		}
		sum += ClockMinutes(t, isBedtime)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Mod(sum/float64(n), 1440), true
}

// ClockMinutes places a timestamp on the linear averaging domain.
func ClockMinutes(t time.Time, isBedtime bool) float64 {
	minutes := float64(t.Hour()*60 + t.Minute())
	if isBedtime && minutes < noonMinutes {
		minutes += 1440
	}
	return minutes
}

// CountInPeriod returns how many entries fall inside the period window.
func CountInPeriod(entries []domain.SleepEntry, p domain.TrendPeriod, now time.Time) int {
	from, to := PeriodBounds(now, p)
	n := 0
	for _, e := range entries {
		if d, ok := entryDate(e); ok && inWindow(d, from, to) {
			n++
		}
	}
	return n
}

// ComparisonEntry returns the most recent entry dated at or before one
// period length before now, used as the previous-period baseline for
// delta displays. Nil when no such entry exists; dependent displays must
// degrade to "no data" rather than erroring.
func ComparisonEntry(entries []domain.SleepEntry, p domain.TrendPeriod, now time.Time) *domain.SleepEntry {
	cutoff := ComparisonCutoff(now, p)

	var best *domain.SleepEntry
	var bestDate time.Time
	for i := range entries {
		d, ok := entryDate(entries[i])
		if !ok || d.After(cutoff) {
			continue
		}
		if best == nil || d.After(bestDate) {
			best = &entries[i]
			bestDate = d
		}
	}
	return best
}

// LatestEntry returns the entry with the most recent sleep date, or nil
// for an empty history.
func LatestEntry(entries []domain.SleepEntry) *domain.SleepEntry {
	var best *domain.SleepEntry
	var bestDate time.Time
	for i := range entries {
		d, ok := entryDate(entries[i])
		if !ok {
			continue
		}
		if best == nil || d.After(bestDate) {
			best = &entries[i]
			bestDate = d
		}
	}
	return best
}
