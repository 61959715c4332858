package ingest

import (
	"sort"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

// DefaultCutoffHour is the day-boundary cutoff for night grouping.
// Segments starting before 15:00 local time belong to the previous
// calendar day; most natural sleep starts in the evening and ends the
// next morning, and early-afternoon segments (naps, trailing awake
// markers) still land on the correct preceding night.
const DefaultCutoffHour = 15

// NightKey assigns a timestamp to its sleep-night date key. The cutoff
// boundary is inclusive on the same-day side: a segment starting exactly
// at the cutoff hour belongs to its own calendar day.
func NightKey(startAt time.Time, cutoffHour int) string {
	day := startAt
	if startAt.Hour() < cutoffHour {
		day = day.AddDate(0, 0, -1)
	}
	return day.Format(domain.SleepDateFormat)
}

// GroupSegments assigns raw segments to sleep nights. Segments are sorted
// chronologically first, so each group preserves segment order. The input
// slice is not modified.
func GroupSegments(segments []domain.RawSegment, cutoffHour int) map[string][]domain.RawSegment {
	if cutoffHour <= 0 || cutoffHour > 23 {
		cutoffHour = DefaultCutoffHour
	}

	ordered := make([]domain.RawSegment, len(segments))
	copy(ordered, segments)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartAt.Before(ordered[j].StartAt)
	})

	groups := make(map[string][]domain.RawSegment)
	for _, seg := range ordered {
		key := NightKey(seg.StartAt, cutoffHour)
		groups[key] = append(groups[key], seg)
	}
	return groups
}

// sortedNightKeys returns group keys in ascending date order for
// deterministic downstream processing.
func sortedNightKeys(groups map[string][]domain.RawSegment) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
