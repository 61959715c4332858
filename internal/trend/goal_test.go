package trend

import (
	"math"
	"testing"

	"github.com/blaisecz/sleep-sync/internal/domain"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name           string
		current        float64
		goal           float64
		higherIsBetter bool
		wantMet        bool
		wantFar        bool
		wantGap        float64
	}{
		{
			name: "duration short of goal but close",
			// 400 of 480 is above the 70% far threshold.
			current: 400, goal: 480, higherIsBetter: true,
			wantMet: false, wantFar: false, wantGap: 80,
		},
		{
			name:    "duration far below goal",
			current: 300, goal: 480, higherIsBetter: true,
			wantMet: false, wantFar: true, wantGap: 180,
		},
		{
			name:    "duration at goal",
			current: 480, goal: 480, higherIsBetter: true,
			wantMet: true, wantFar: false, wantGap: 0,
		},
		{
			name:    "duration above goal",
			current: 500, goal: 480, higherIsBetter: true,
			wantMet: true, wantFar: false, wantGap: 20,
		},
		{
			name:    "interruptions under target",
			current: 1, goal: 2, higherIsBetter: false,
			wantMet: true, wantFar: false, wantGap: 1,
		},
		{
			name: "interruptions far above target",
			// 3 exceeds 2 * 1.15.
			current: 3, goal: 2, higherIsBetter: false,
			wantMet: false, wantFar: true, wantGap: 1,
		},
		{
			name: "interruptions just above target",
			// 2.2 is within 115% of 2.
			current: 2.2, goal: 2, higherIsBetter: false,
			wantMet: false, wantFar: false, wantGap: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isMet, isFar, gap := Compare(tt.current, tt.goal, tt.higherIsBetter)
			if isMet != tt.wantMet || isFar != tt.wantFar {
				t.Errorf("Compare(%v, %v) = met %v far %v, want met %v far %v",
					tt.current, tt.goal, isMet, isFar, tt.wantMet, tt.wantFar)
			}
			if math.Abs(gap-tt.wantGap) > 1e-9 {
				t.Errorf("gap = %v, want %v", gap, tt.wantGap)
			}
		})
	}
}

func TestCompareToGoalTimeOfDay(t *testing.T) {
	goal := domain.Goal{Metric: domain.GoalSleepBedtime, Target: 1380} // 23:00

	// 22:45 is at or before the target: met.
	early := CompareToGoal(domain.GoalSleepBedtime, 1365, goal)
	if !early.IsMet {
		t.Errorf("22:45 vs 23:00 target should be met: %+v", early)
	}

	// 23:30 misses the target by 30 minutes.
	late := CompareToGoal(domain.GoalSleepBedtime, 1410, goal)
	if late.IsMet {
		t.Errorf("23:30 vs 23:00 target should not be met: %+v", late)
	}
	if late.Gap != 30 {
		t.Errorf("gap = %v, want 30", late.Gap)
	}
	if late.GapDisplay != "30m" {
		t.Errorf("gap display = %q, want 30m", late.GapDisplay)
	}

	// A 1:00 AM average sits on the extended domain next to 23:00, two
	// hours past the target rather than 22 hours before it.
	veryLate := CompareToGoal(domain.GoalSleepBedtime, 60, goal)
	if veryLate.IsMet {
		t.Errorf("1:00 vs 23:00 target should not be met: %+v", veryLate)
	}
	if veryLate.Gap != 120 {
		t.Errorf("gap = %v, want 120", veryLate.Gap)
	}
}

func TestCompareToGoalScore(t *testing.T) {
	goal := domain.Goal{Metric: domain.GoalSleepScore, Target: 85}

	got := CompareToGoal(domain.GoalSleepScore, 80, goal)
	if got.IsMet || got.IsFar {
		t.Errorf("80 vs 85 should be close, not met or far: %+v", got)
	}
	if got.GapDisplay != "5 pts" {
		t.Errorf("gap display = %q, want 5 pts", got.GapDisplay)
	}
}

func TestFormatGap(t *testing.T) {
	tests := []struct {
		metric domain.GoalMetric
		gap    float64
		want   string
	}{
		{domain.GoalSleepDuration, 80, "1h 20m"},
		{domain.GoalSleepDuration, 45, "45m"},
		{domain.GoalSleepDuration, 0, "0m"},
		{domain.GoalSleepBedtime, 150, "2h 30m"},
		{domain.GoalSleepWakeup, 15, "15m"},
		{domain.GoalSleepInterruptions, 2, "2"},
		{domain.GoalSleepScore, 12, "12 pts"},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			if got := FormatGap(tt.metric, tt.gap); got != tt.want {
				t.Errorf("FormatGap(%s, %v) = %q, want %q", tt.metric, tt.gap, got, tt.want)
			}
		})
	}
}
