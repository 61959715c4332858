package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScoreBreakdown is the three-part weighted sleep quality score.
// Duration contributes up to 50 points, bedtime up to 30, interruptions up
// to 20; the total is their sum and always falls in [0,100].
type ScoreBreakdown struct {
	DurationScore     float64 `json:"duration_score"`
	BedtimeScore      float64 `json:"bedtime_score"`
	InterruptionScore float64 `json:"interruption_score"`
	TotalScore        float64 `json:"total_score"`
}

// SleepEntry is the persisted record for one sleep night. At most one row
// exists per (user, sleep_date); re-ingestion of the same date overwrites.
type SleepEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_entries_user_date" json:"user_id"`
	SleepDate string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_entries_user_date" json:"sleep_date"`

	SleepStart time.Time `gorm:"not null" json:"sleep_start"`
	SleepEnd   time.Time `gorm:"not null" json:"sleep_end"`

	AwakeMinutes      float64 `gorm:"not null;default:0" json:"awake_minutes"`
	RemMinutes        float64 `gorm:"not null;default:0" json:"rem_minutes"`
	CoreMinutes       float64 `gorm:"not null;default:0" json:"core_minutes"`
	DeepMinutes       float64 `gorm:"not null;default:0" json:"deep_minutes"`
	InBedMinutes      float64 `gorm:"not null;default:0" json:"in_bed_minutes"`
	TotalSleepMinutes float64 `gorm:"not null;default:0" json:"total_sleep_minutes"`

	InterruptionCount   int     `gorm:"not null;default:0" json:"interruption_count"`
	InterruptionMinutes float64 `gorm:"not null;default:0" json:"interruption_minutes"`

	DurationScore     float64 `gorm:"not null;default:0" json:"duration_score"`
	BedtimeScore      float64 `gorm:"not null;default:0" json:"bedtime_score"`
	InterruptionScore float64 `gorm:"not null;default:0" json:"interruption_score"`
	TotalScore        float64 `gorm:"not null;default:0" json:"total_score"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SleepEntry) TableName() string {
	return "sleep_entries"
}

// SleepDateFormat is the layout for sleep-night keys.
const SleepDateFormat = "2006-01-02"

// Stages reassembles the stage breakdown from the flattened columns.
func (e *SleepEntry) Stages() StageBreakdown {
	return StageBreakdown{
		AwakeMinutes:      e.AwakeMinutes,
		RemMinutes:        e.RemMinutes,
		CoreMinutes:       e.CoreMinutes,
		DeepMinutes:       e.DeepMinutes,
		InBedMinutes:      e.InBedMinutes,
		TotalSleepMinutes: e.TotalSleepMinutes,
	}
}

// Score reassembles the score breakdown from the flattened columns.
func (e *SleepEntry) Score() ScoreBreakdown {
	return ScoreBreakdown{
		DurationScore:     e.DurationScore,
		BedtimeScore:      e.BedtimeScore,
		InterruptionScore: e.InterruptionScore,
		TotalScore:        e.TotalScore,
	}
}

// SleepEntryResponse is the response body for sleep entry endpoints.
// @Description One scored sleep night.
type SleepEntryResponse struct {
	// Unique entry identifier
	ID uuid.UUID `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Owner user ID
	UserID uuid.UUID `json:"user_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	// Sleep-night key (YYYY-MM-DD)
	SleepDate string `json:"sleep_date" example:"2026-01-07"`
	// Start of the overall night span
	SleepStart time.Time `json:"sleep_start" example:"2026-01-06T22:30:00Z"`
	// End of the overall night span
	SleepEnd time.Time `json:"sleep_end" example:"2026-01-07T06:45:00Z"`
	// Per-stage minute totals
	Stages StageBreakdown `json:"stages"`
	// Discrete awake segments within the night
	Interruptions InterruptionSummary `json:"interruptions"`
	// Quality score breakdown (0-100 total)
	Score ScoreBreakdown `json:"score"`
	// Record creation timestamp
	CreatedAt time.Time `json:"created_at"`
	// Last overwrite timestamp
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *SleepEntry) ToResponse() SleepEntryResponse {
	return SleepEntryResponse{
		ID:         e.ID,
		UserID:     e.UserID,
		SleepDate:  e.SleepDate,
		SleepStart: e.SleepStart,
		SleepEnd:   e.SleepEnd,
		Stages:     e.Stages(),
		Interruptions: InterruptionSummary{
			Count:        e.InterruptionCount,
			TotalMinutes: e.InterruptionMinutes,
		},
		Score:     e.Score(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// SleepEntryListResponse is the response body for listing sleep entries.
// @Description Paginated list of sleep entries, newest first.
type SleepEntryListResponse struct {
	// Array of scored sleep nights
	Data []SleepEntryResponse `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// SleepEntryFilter contains filter parameters for listing sleep entries
type SleepEntryFilter struct {
	From   *string
	To     *string
	Limit  int
	Cursor string
}

// IngestResponse is the response body for the webhook entry point.
// @Description Outcome of one ingestion call.
type IngestResponse struct {
	// Number of sleep nights persisted
	Processed int `json:"processed"`
	// Number of samples skipped with diagnostics
	Invalid int `json:"invalid"`
	// Number of nights that failed scoring or persistence
	Failed int `json:"failed"`
	// Sleep-night keys that were persisted
	Dates []string `json:"dates,omitempty"`
	// Human-readable outcome, set on the zero-result path
	Message string `json:"message,omitempty"`
}
