package ingest

import (
	"testing"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

func TestNightKey(t *testing.T) {
	tests := []struct {
		name       string
		startAt    time.Time
		cutoffHour int
		want       string
	}{
		{
			name:       "early morning belongs to previous day",
			startAt:    time.Date(2026, 1, 7, 2, 0, 0, 0, time.UTC),
			cutoffHour: 15,
			want:       "2026-01-06",
		},
		{
			name:       "evening belongs to its own day",
			startAt:    time.Date(2026, 1, 7, 16, 0, 0, 0, time.UTC),
			cutoffHour: 15,
			want:       "2026-01-07",
		},
		{
			name:       "exactly at cutoff belongs to its own day",
			startAt:    time.Date(2026, 1, 7, 15, 0, 0, 0, time.UTC),
			cutoffHour: 15,
			want:       "2026-01-07",
		},
		{
			name:       "one minute before cutoff rolls back",
			startAt:    time.Date(2026, 1, 7, 14, 59, 0, 0, time.UTC),
			cutoffHour: 15,
			want:       "2026-01-06",
		},
		{
			name:       "custom cutoff",
			startAt:    time.Date(2026, 1, 7, 11, 0, 0, 0, time.UTC),
			cutoffHour: 12,
			want:       "2026-01-06",
		},
		{
			name:       "month boundary rolls back correctly",
			startAt:    time.Date(2026, 3, 1, 1, 30, 0, 0, time.UTC),
			cutoffHour: 15,
			want:       "2026-02-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NightKey(tt.startAt, tt.cutoffHour); got != tt.want {
				t.Errorf("NightKey(%v, %d) = %q, want %q", tt.startAt, tt.cutoffHour, got, tt.want)
			}
		})
	}
}

func TestGroupSegments(t *testing.T) {
	segments := []domain.RawSegment{
		// Out of order on purpose: grouping must sort first.
		{Stage: domain.StageCore, StartAt: time.Date(2026, 1, 7, 1, 0, 0, 0, time.UTC), EndAt: time.Date(2026, 1, 7, 3, 0, 0, 0, time.UTC)},
		{Stage: domain.StageCore, StartAt: time.Date(2026, 1, 6, 23, 0, 0, 0, time.UTC), EndAt: time.Date(2026, 1, 7, 1, 0, 0, 0, time.UTC)},
		{Stage: domain.StageCore, StartAt: time.Date(2026, 1, 7, 23, 30, 0, 0, time.UTC), EndAt: time.Date(2026, 1, 8, 6, 0, 0, 0, time.UTC)},
	}

	groups := GroupSegments(segments, DefaultCutoffHour)

	if len(groups) != 2 {
		t.Fatalf("expected 2 nights, got %d", len(groups))
	}

	first := groups["2026-01-06"]
	if len(first) != 2 {
		t.Fatalf("expected 2 segments on 2026-01-06, got %d", len(first))
	}
	if !first[0].StartAt.Before(first[1].StartAt) {
		t.Errorf("segments within a night not in chronological order")
	}

	if len(groups["2026-01-07"]) != 1 {
		t.Errorf("expected 1 segment on 2026-01-07, got %d", len(groups["2026-01-07"]))
	}
}

func TestGroupSegmentsInvalidCutoffFallsBack(t *testing.T) {
	segments := []domain.RawSegment{
		{Stage: domain.StageCore, StartAt: time.Date(2026, 1, 7, 2, 0, 0, 0, time.UTC), EndAt: time.Date(2026, 1, 7, 6, 0, 0, 0, time.UTC)},
	}

	for _, cutoff := range []int{0, -1, 24, 99} {
		groups := GroupSegments(segments, cutoff)
		if _, ok := groups["2026-01-06"]; !ok {
			t.Errorf("cutoff %d: expected default cutoff grouping onto 2026-01-06, got %v", cutoff, groups)
		}
	}
}

func TestGroupSegmentsDoesNotModifyInput(t *testing.T) {
	segments := []domain.RawSegment{
		{Stage: domain.StageCore, StartAt: time.Date(2026, 1, 7, 1, 0, 0, 0, time.UTC)},
		{Stage: domain.StageCore, StartAt: time.Date(2026, 1, 6, 23, 0, 0, 0, time.UTC)},
	}

	GroupSegments(segments, DefaultCutoffHour)

	if !segments[0].StartAt.After(segments[1].StartAt) {
		t.Errorf("input slice was reordered")
	}
}
