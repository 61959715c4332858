// Package scoring converts aggregated night metrics plus user goals into
// the composite 50/30/20 sleep quality score.
package scoring

import (
	"math"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

const (
	// DurationPoints is the duration component cap.
	DurationPoints = 50.0
	// BedtimePoints is the bedtime component cap.
	BedtimePoints = 30.0
	// InterruptionPoints is the interruption component cap.
	InterruptionPoints = 20.0

	// DefaultDurationGoalMinutes is 8 hours of sleep.
	DefaultDurationGoalMinutes = 480.0
	// DefaultBedtimeGoalMinutes is 23:00, minutes from midnight.
	DefaultBedtimeGoalMinutes = 1380.0

	// MaxBedtimeDeviationMinutes is where the bedtime score bottoms out.
	MaxBedtimeDeviationMinutes = 120.0

	// PointsPerWakeEvent is deducted for each discrete awake segment.
	PointsPerWakeEvent = 3.0
	// PointsPerAwakeMinute is deducted for each minute spent awake.
	PointsPerAwakeMinute = 0.2

	// earlyMorningCutoffMinutes anchors the circular bedtime domain:
	// times before 6:00 are treated as belonging to the previous
	// logical day (+1440) so comparisons never cross midnight wrongly.
	earlyMorningCutoffMinutes = 6 * 60
)

// Metrics are the per-night inputs to the score.
type Metrics struct {
	TotalSleepMinutes float64
	Bedtime           time.Time
	WakeCount         int
	AwakeMinutes      float64
}

// Preferences carry the user's stored goals relevant to scoring.
// Zero values fall back to the defaults.
type Preferences struct {
	DurationGoalMinutes float64
	BedtimeGoalMinutes  float64
}

// Score computes the three-part quality breakdown. Each component is
// clamped into its bounds before summing, so the total is always in
// [0,100].
func Score(m Metrics, prefs Preferences) domain.ScoreBreakdown {
	durationGoal := prefs.DurationGoalMinutes
	if durationGoal <= 0 {
		durationGoal = DefaultDurationGoalMinutes
	}
	bedtimeGoal := prefs.BedtimeGoalMinutes
	if bedtimeGoal <= 0 {
		bedtimeGoal = DefaultBedtimeGoalMinutes
	}

	breakdown := domain.ScoreBreakdown{
		DurationScore:     durationScore(m.TotalSleepMinutes, durationGoal),
		BedtimeScore:      bedtimeScore(m.Bedtime, bedtimeGoal),
		InterruptionScore: interruptionScore(m.WakeCount, m.AwakeMinutes),
	}
	breakdown.TotalScore = breakdown.DurationScore + breakdown.BedtimeScore + breakdown.InterruptionScore
	return breakdown
}

// durationScore scales linearly against the duration goal: full marks at
// or above goal, proportionally less below it. Oversleeping earns no
// extra credit.
func durationScore(totalSleepMinutes, goalMinutes float64) float64 {
	if totalSleepMinutes <= 0 {
		return 0
	}
	return clamp(totalSleepMinutes/goalMinutes*DurationPoints, 0, DurationPoints)
}

// bedtimeScore compares the actual bedtime-of-day against the goal on the
// circular 24-hour domain, losing points linearly per minute of deviation
// and bottoming out beyond MaxBedtimeDeviationMinutes.
func bedtimeScore(bedtime time.Time, goalMinutes float64) float64 {
	if bedtime.IsZero() {
		return 0
	}
	actual := NormalizeClockMinutes(float64(bedtime.Hour()*60 + bedtime.Minute()))
	goal := NormalizeClockMinutes(goalMinutes)

	deviation := math.Abs(actual - goal)
	if deviation >= MaxBedtimeDeviationMinutes {
		return 0
	}
	return clamp((1-deviation/MaxBedtimeDeviationMinutes)*BedtimePoints, 0, BedtimePoints)
}

// interruptionScore starts at full marks for an undisturbed night and
// deducts per wake event and per minute awake.
func interruptionScore(wakeCount int, awakeMinutes float64) float64 {
	penalty := float64(wakeCount)*PointsPerWakeEvent + awakeMinutes*PointsPerAwakeMinute
	return clamp(InterruptionPoints-penalty, 0, InterruptionPoints)
}

// NormalizeClockMinutes maps minutes-from-midnight onto the extended
// evening-anchored domain: values before 6:00 gain 1440 so that 1:00 AM
// (25:00) sits next to 11:00 PM (23:00) instead of across midnight.
func NormalizeClockMinutes(minutes float64) float64 {
	if minutes < earlyMorningCutoffMinutes {
		return minutes + 1440
	}
	return minutes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
