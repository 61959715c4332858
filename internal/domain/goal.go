package domain

import (
	"time"

	"github.com/google/uuid"
)

// GoalMetric identifies which sleep metric a goal targets.
// @Description Metric key for a stored goal.
type GoalMetric string

const (
	// GoalSleepDuration targets total sleep per night, in minutes
	GoalSleepDuration GoalMetric = "sleep_duration"
	// GoalSleepBedtime targets bedtime, in minutes from midnight
	GoalSleepBedtime GoalMetric = "sleep_bedtime"
	// GoalSleepWakeup targets wake-up time, in minutes from midnight
	GoalSleepWakeup GoalMetric = "sleep_wakeup"
	// GoalSleepInterruptions targets wake events per night
	GoalSleepInterruptions GoalMetric = "sleep_interruptions"
	// GoalSleepScore targets the composite quality score
	GoalSleepScore GoalMetric = "sleep_score"
)

// ParseGoalMetric validates a metric key from a URL path or request body.
func ParseGoalMetric(s string) (GoalMetric, error) {
	switch m := GoalMetric(s); m {
	case GoalSleepDuration, GoalSleepBedtime, GoalSleepWakeup,
		GoalSleepInterruptions, GoalSleepScore:
		return m, nil
	}
	return "", ErrInvalidInput
}

// IsTimeOfDay reports whether the metric's values are minutes from midnight.
func (m GoalMetric) IsTimeOfDay() bool {
	return m == GoalSleepBedtime || m == GoalSleepWakeup
}

// HigherIsBetter reports the goal direction for the metric. Time-of-day
// metrics have no direction; they are compared by deviation.
func (m GoalMetric) HigherIsBetter() bool {
	switch m {
	case GoalSleepInterruptions:
		return false
	default:
		return true
	}
}

type Goal struct {
	ID     uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_goals_user_metric" json:"user_id"`
	Metric GoalMetric `gorm:"type:varchar(32);not null;uniqueIndex:idx_goals_user_metric" json:"metric"`
	// Target in metric units: minutes for durations, minutes from midnight
	// for time-of-day metrics (early-morning values stored +1440), counts
	// or points otherwise.
	Target    float64   `gorm:"not null" json:"target"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Goal) TableName() string {
	return "sleep_goals"
}

// SaveGoalRequest is the request body for creating or replacing a goal.
// @Description Target value for one sleep metric.
type SaveGoalRequest struct {
	// Target value in the metric's units (minutes, count, or points)
	Target float64 `json:"target" validate:"required,gt=0" example:"480"`
}

// GoalResponse is the response body for goal endpoints.
// @Description Stored goal for one metric.
type GoalResponse struct {
	// Metric key
	Metric GoalMetric `json:"metric" example:"sleep_duration"`
	// Target value
	Target float64 `json:"target" example:"480"`
	// Last update timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

func (g *Goal) ToResponse() GoalResponse {
	return GoalResponse{
		Metric:    g.Metric,
		Target:    g.Target,
		UpdatedAt: g.UpdatedAt,
	}
}

// GoalComparison classifies a current value against a goal target.
// @Description Three-tier goal status: met, close, or far.
type GoalComparison struct {
	// Metric key
	Metric GoalMetric `json:"metric" example:"sleep_duration"`
	// Current value (period average)
	Current float64 `json:"current" example:"400"`
	// Stored target
	Target float64 `json:"target" example:"480"`
	// True when the goal is met
	IsMet bool `json:"is_met"`
	// True when unmet and beyond the far threshold
	IsFar bool `json:"is_far"`
	// Absolute distance from the target, in metric units
	Gap float64 `json:"gap" example:"80"`
	// Gap rendered in the metric's unit (duration, count, or time-of-day)
	GapDisplay string `json:"gap_display" example:"1h 20m"`
}

// GoalProgressResponse is the response body for the goal progress endpoint.
// @Description Per-goal comparison over the selected period.
type GoalProgressResponse struct {
	// Averaging window
	Period string `json:"period" example:"7d"`
	// One comparison per stored goal; goals without period data are omitted
	Goals []GoalComparison `json:"goals"`
}
