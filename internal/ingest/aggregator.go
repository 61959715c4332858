package ingest

import (
	"github.com/blaisecz/sleep-sync/internal/domain"
)

// AggregateNight reduces one night's ordered segments into per-stage
// minute totals, the overall sleep span, and an interruption summary.
// Returns false when the segment list is empty; such nights are dropped
// since there is nothing to score.
func AggregateNight(date string, segments []domain.RawSegment) (domain.NightSummary, bool) {
	if len(segments) == 0 {
		return domain.NightSummary{}, false
	}

	night := domain.NightSummary{Date: date}
	stages := &night.Stages

	for i, seg := range segments {
		minutes := seg.Minutes()

		switch seg.Stage {
		case domain.StageAwake:
			stages.AwakeMinutes += minutes
			night.Interruptions.Count++
			night.Interruptions.TotalMinutes += minutes
		case domain.StageREM:
			stages.RemMinutes += minutes
			stages.TotalSleepMinutes += minutes
		case domain.StageDeep:
			stages.DeepMinutes += minutes
			stages.TotalSleepMinutes += minutes
		case domain.StageCore:
			stages.CoreMinutes += minutes
			stages.TotalSleepMinutes += minutes
		case domain.StageAsleep:
			// Devices without stage detail report generic Asleep; fold
			// it into core so the stage invariant still holds.
			stages.CoreMinutes += minutes
			stages.TotalSleepMinutes += minutes
		case domain.StageInBed:
			stages.InBedMinutes += minutes
		}

		// The overall span covers every segment regardless of label.
		if i == 0 || seg.StartAt.Before(night.SleepStart) {
			night.SleepStart = seg.StartAt
		}
		if i == 0 || seg.EndAt.After(night.SleepEnd) {
			night.SleepEnd = seg.EndAt
		}
	}

	// InBed segments are often sparse or absent; keep the
	// in-bed >= total-sleep invariant.
	if stages.InBedMinutes < stages.TotalSleepMinutes {
		stages.InBedMinutes = stages.TotalSleepMinutes + stages.AwakeMinutes
	}

	return night, true
}
