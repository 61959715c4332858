package trend

import (
	"fmt"
	"math"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/scoring"
)

const (
	// FarBelowRatio marks a higher-is-better metric as far from goal
	// when the current value is under 70% of the target.
	FarBelowRatio = 0.70
	// FarAboveRatio marks a lower-is-better metric as far from goal
	// when the current value exceeds 115% of the target.
	FarAboveRatio = 1.15
)

// Compare classifies a current value against a goal target. isFar is only
// meaningful for unmet goals and drives the three-tier met/close/far
// signal.
func Compare(current, goal float64, higherIsBetter bool) (isMet, isFar bool, gap float64) {
	gap = math.Abs(goal - current)
	if higherIsBetter {
		isMet = current >= goal
		isFar = !isMet && goal > 0 && current < goal*FarBelowRatio
	} else {
		isMet = current <= goal
		isFar = !isMet && goal > 0 && current > goal*FarAboveRatio
	}
	return isMet, isFar, gap
}

// CompareToGoal builds the full comparison for one stored goal. Time-of-day
// metrics are normalized onto the evening-anchored circular domain first
// and compared as "at or before target"; other metrics use the metric's
// direction.
func CompareToGoal(metric domain.GoalMetric, current float64, goal domain.Goal) domain.GoalComparison {
	target := goal.Target
	cmpCurrent, cmpTarget := current, target
	higherIsBetter := metric.HigherIsBetter()

	if metric.IsTimeOfDay() {
		cmpCurrent = scoring.NormalizeClockMinutes(current)
		cmpTarget = scoring.NormalizeClockMinutes(target)
		// "In bed by 23:00" or "up by 7:00": earlier than target is met.
		higherIsBetter = false
	}

	isMet, isFar, gap := Compare(cmpCurrent, cmpTarget, higherIsBetter)

	return domain.GoalComparison{
		Metric:     metric,
		Current:    current,
		Target:     target,
		IsMet:      isMet,
		IsFar:      isFar,
		Gap:        gap,
		GapDisplay: FormatGap(metric, gap),
	}
}

// FormatGap renders a gap in the metric's unit: durations and time-of-day
// deviations as hours/minutes, counts as integers, scores as points.
func FormatGap(metric domain.GoalMetric, gap float64) string {
	switch {
	case metric == domain.GoalSleepDuration || metric.IsTimeOfDay():
		return formatMinutes(gap)
	case metric == domain.GoalSleepInterruptions:
		return fmt.Sprintf("%.0f", gap)
	default:
		return fmt.Sprintf("%.0f pts", gap)
	}
}

func formatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	h := total / 60
	m := total % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}
