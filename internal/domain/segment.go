package domain

import "time"

// StageLabel is a wearable-reported sleep phase label.
// @Description Sleep stage reported by the wearable for one interval.
type StageLabel string

const (
	// StageInBed covers time in bed regardless of sleep state
	StageInBed StageLabel = "InBed"
	// StageAsleep is generic sleep from devices without stage detail
	StageAsleep StageLabel = "Asleep"
	// StageAwake is a wake interval inside the night span
	StageAwake StageLabel = "Awake"
	// StageCore is light/core sleep
	StageCore StageLabel = "Core"
	// StageDeep is deep sleep
	StageDeep StageLabel = "Deep"
	// StageREM is REM sleep
	StageREM StageLabel = "REM"
)

// RawSegment is one interval from the wearable export. Immutable after ingestion.
type RawSegment struct {
	Stage           StageLabel
	StartAt         time.Time
	EndAt           time.Time
	DurationSeconds float64
}

// Minutes returns the segment duration in minutes. The export carries an
// explicit duration; the timestamps are the fallback when it is absent.
func (s RawSegment) Minutes() float64 {
	if s.DurationSeconds > 0 {
		return s.DurationSeconds / 60.0
	}
	return s.EndAt.Sub(s.StartAt).Minutes()
}

// StageBreakdown holds per-stage minute totals for one sleep night.
// Invariants: TotalSleepMinutes == RemMinutes + CoreMinutes + DeepMinutes
// (generic Asleep folds into core), and InBedMinutes >= TotalSleepMinutes
// after aggregation.
type StageBreakdown struct {
	AwakeMinutes      float64 `json:"awake_minutes"`
	RemMinutes        float64 `json:"rem_minutes"`
	CoreMinutes       float64 `json:"core_minutes"`
	DeepMinutes       float64 `json:"deep_minutes"`
	InBedMinutes      float64 `json:"in_bed_minutes"`
	TotalSleepMinutes float64 `json:"total_sleep_minutes"`
}

// InterruptionSummary counts discrete Awake segments within a night.
type InterruptionSummary struct {
	Count        int     `json:"count"`
	TotalMinutes float64 `json:"total_minutes"`
}

// NightSummary is the canonical intermediate produced by both ingestion
// paths: one per sleep night, before scoring.
type NightSummary struct {
	// Date is the sleep-night key in YYYY-MM-DD form
	Date          string
	SleepStart    time.Time
	SleepEnd      time.Time
	Stages        StageBreakdown
	Interruptions InterruptionSummary
}
