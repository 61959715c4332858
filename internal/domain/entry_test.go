package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSleepEntry_ToResponse(t *testing.T) {
	entry := SleepEntry{
		ID:                  uuid.New(),
		UserID:              uuid.New(),
		SleepDate:           "2026-01-07",
		SleepStart:          time.Date(2026, 1, 6, 22, 30, 0, 0, time.UTC),
		SleepEnd:            time.Date(2026, 1, 7, 6, 45, 0, 0, time.UTC),
		AwakeMinutes:        10,
		RemMinutes:          45,
		CoreMinutes:         120,
		DeepMinutes:         45,
		InBedMinutes:        495,
		TotalSleepMinutes:   210,
		InterruptionCount:   1,
		InterruptionMinutes: 10,
		DurationScore:       21.875,
		BedtimeScore:        30,
		InterruptionScore:   15,
		TotalScore:          66.875,
	}

	resp := entry.ToResponse()

	if resp.ID != entry.ID || resp.UserID != entry.UserID {
		t.Errorf("identity mismatch: got %v/%v", resp.ID, resp.UserID)
	}
	if resp.SleepDate != "2026-01-07" {
		t.Errorf("SleepDate = %s, want 2026-01-07", resp.SleepDate)
	}
	if !resp.SleepStart.Equal(entry.SleepStart) || !resp.SleepEnd.Equal(entry.SleepEnd) {
		t.Errorf("span mismatch: got %v - %v", resp.SleepStart, resp.SleepEnd)
	}

	if resp.Stages.TotalSleepMinutes != 210 {
		t.Errorf("Stages.TotalSleepMinutes = %v, want 210", resp.Stages.TotalSleepMinutes)
	}
	if resp.Stages.CoreMinutes != 120 || resp.Stages.DeepMinutes != 45 || resp.Stages.RemMinutes != 45 {
		t.Errorf("stage breakdown mismatch: %+v", resp.Stages)
	}
	if resp.Stages.InBedMinutes != 495 {
		t.Errorf("Stages.InBedMinutes = %v, want 495", resp.Stages.InBedMinutes)
	}

	if resp.Interruptions.Count != 1 || resp.Interruptions.TotalMinutes != 10 {
		t.Errorf("interruptions = %+v, want 1 event / 10 min", resp.Interruptions)
	}

	if resp.Score.TotalScore != 66.875 {
		t.Errorf("Score.TotalScore = %v, want 66.875", resp.Score.TotalScore)
	}
	wantTotal := resp.Score.DurationScore + resp.Score.BedtimeScore + resp.Score.InterruptionScore
	if resp.Score.TotalScore != wantTotal {
		t.Errorf("TotalScore = %v, want sum of components %v", resp.Score.TotalScore, wantTotal)
	}
}
