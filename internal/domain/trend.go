package domain

import "fmt"

// TrendPeriod selects an averaging/comparison window: a fixed day count or
// a calendar-anchored window.
// @Description Trend window: 7d, 30d, 90d, week, month, quarter, ytd, or year.
type TrendPeriod string

const (
	Period7Days   TrendPeriod = "7d"
	Period30Days  TrendPeriod = "30d"
	Period90Days  TrendPeriod = "90d"
	PeriodWeek    TrendPeriod = "week"
	PeriodMonth   TrendPeriod = "month"
	PeriodQuarter TrendPeriod = "quarter"
	PeriodYTD     TrendPeriod = "ytd"
	PeriodYear    TrendPeriod = "year"
)

// ParseTrendPeriod validates a period string, defaulting to 7d when empty.
func ParseTrendPeriod(s string) (TrendPeriod, error) {
	if s == "" {
		return Period7Days, nil
	}
	switch p := TrendPeriod(s); p {
	case Period7Days, Period30Days, Period90Days,
		PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYTD, PeriodYear:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown trend period %q", ErrInvalidInput, s)
}

// TrendMetric is one averaged scalar with an optional period-over-period delta.
// @Description Period average plus delta against the comparison entry.
type TrendMetric struct {
	// Arithmetic (or circular, for times) mean over the period
	Average float64 `json:"average"`
	// Difference between the latest entry and the comparison entry;
	// omitted when no comparison entry exists
	Delta *float64 `json:"delta,omitempty"`
	// False when the period contains no data; Average is then zero
	HasData bool `json:"has_data"`
}

// TrendSummaryResponse is the response body for the trends endpoint.
// @Description Period averages and deltas for the core sleep metrics.
type TrendSummaryResponse struct {
	// Averaging window
	Period string `json:"period" example:"30d"`
	// Entries inside the window
	EntryCount int `json:"entry_count" example:"28"`
	// Composite quality score (points)
	Score TrendMetric `json:"score"`
	// Total sleep (minutes)
	Duration TrendMetric `json:"duration"`
	// Bedtime (minutes from midnight, circular mean)
	Bedtime TrendMetric `json:"bedtime"`
	// Wake-up time (minutes from midnight, circular mean)
	Wakeup TrendMetric `json:"wakeup"`
	// Wake events per night
	Interruptions TrendMetric `json:"interruptions"`
}
