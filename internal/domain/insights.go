package domain

// InsightsContext is the data handed to the LLM for narrative generation.
// @Description Trend summaries across three windows plus goal status.
type InsightsContext struct {
	// Long-term baseline (90 days)
	History TrendSummaryResponse `json:"history"`
	// Short-term window (7 days)
	Recent TrendSummaryResponse `json:"recent"`
	// Most recent persisted night, if any
	LastNight *SleepEntryResponse `json:"last_night,omitempty"`
	// Goal comparisons over the recent window
	Goals []GoalComparison `json:"goals,omitempty"`
}

// LLMInsightsOutput contains the structured output from the LLM.
// @Description LLM-generated sleep insights.
type LLMInsightsOutput struct {
	// Summary of sleep patterns (2-3 sentences)
	Summary string `json:"summary" example:"Your sleep has been fairly consistent this week..."`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations" example:"[\"Average duration of 7.2 hours meets recommended guidelines\"]"`
	// Actionable guidance (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Try to maintain your current bedtime of around 11 PM\"]"`
}

// InsightsResponse is the response for the insights endpoint.
// @Description Complete sleep insights response.
type InsightsResponse struct {
	// LLM-generated insights
	Insights LLMInsightsOutput `json:"insights"`
	// Trend summaries backing the narrative
	Metrics struct {
		History TrendSummaryResponse `json:"history"`
		Recent  TrendSummaryResponse `json:"recent"`
	} `json:"metrics"`
}
