package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/ingest"
	"github.com/blaisecz/sleep-sync/internal/repository"
	"github.com/blaisecz/sleep-sync/internal/scoring"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// NoSleepDataMessage is returned when the payload carries no usable sleep
// channel. This is an expected empty case, not a fault.
const NoSleepDataMessage = "no sleep data found"

// IngestionService runs the full webhook pipeline: normalize, group,
// aggregate, score, persist. Nights are processed sequentially and
// independently; one failing night never blocks the rest of the batch.
type IngestionService interface {
	Ingest(ctx context.Context, userID uuid.UUID, payload *ingest.ExportPayload) (*domain.IngestResponse, error)
}

type ingestionService struct {
	entryRepo  repository.SleepEntryRepository
	goalRepo   repository.GoalRepository
	userRepo   repository.UserRepository
	cutoffHour int
}

// NewIngestionService creates a new IngestionService. cutoffHour is the
// day-boundary cutoff for night grouping; pass 0 for the default.
func NewIngestionService(
	entryRepo repository.SleepEntryRepository,
	goalRepo repository.GoalRepository,
	userRepo repository.UserRepository,
	cutoffHour int,
) IngestionService {
	if cutoffHour <= 0 || cutoffHour > 23 {
		cutoffHour = ingest.DefaultCutoffHour
	}
	return &ingestionService{
		entryRepo:  entryRepo,
		goalRepo:   goalRepo,
		userRepo:   userRepo,
		cutoffHour: cutoffHour,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, userID uuid.UUID, payload *ingest.ExportPayload) (*domain.IngestResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("sleep-sync-api/ingest")
	ctx, span := tracer.Start(ctx, "IngestionService.Ingest",
		trace.WithAttributes(attribute.String("user.id", userID.String())),
	)
	defer span.End()

	samples := payload.SleepSamples()
	if len(samples) == 0 {
		return &domain.IngestResponse{Message: NoSleepDataMessage}, nil
	}

	result := ingest.Normalize(samples, s.cutoffHour)
	for _, diag := range result.Diagnostics {
		log.Printf("ingest: skipped sample for user %s: %s", userID, diag.Reason)
	}

	prefs := s.loadPreferences(ctx, userID)

	response := &domain.IngestResponse{Invalid: len(result.Diagnostics)}
	for _, night := range result.Nights {
		entry := buildEntry(userID, night, prefs)
		if err := s.entryRepo.Upsert(ctx, entry); err != nil {
			log.Printf("ingest: failed to persist night %s for user %s: %v", night.Date, userID, err)
			response.Failed++
			continue
		}
		response.Processed++
		response.Dates = append(response.Dates, night.Date)
	}

	if response.Processed == 0 {
		response.Message = NoSleepDataMessage
	}

	span.SetAttributes(
		attribute.Int("ingest.processed", response.Processed),
		attribute.Int("ingest.invalid", response.Invalid),
		attribute.Int("ingest.failed", response.Failed),
	)
	if outJSON, err := json.Marshal(response); err == nil {
		span.SetAttributes(attribute.String("ingest.result", string(outJSON)))
	}

	return response, nil
}

// loadPreferences reads the scoring-relevant goals. Missing goals fall
// back to the scoring defaults; a store error at this point only costs
// personalization, not the batch.
func (s *ingestionService) loadPreferences(ctx context.Context, userID uuid.UUID) scoring.Preferences {
	var prefs scoring.Preferences

	if goal, err := s.goalRepo.GetByMetric(ctx, userID, domain.GoalSleepDuration); err == nil {
		prefs.DurationGoalMinutes = goal.Target
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Printf("ingest: failed to load duration goal for user %s: %v", userID, err)
	}

	if goal, err := s.goalRepo.GetByMetric(ctx, userID, domain.GoalSleepBedtime); err == nil {
		prefs.BedtimeGoalMinutes = goal.Target
	} else if !errors.Is(err, domain.ErrNotFound) {
		log.Printf("ingest: failed to load bedtime goal for user %s: %v", userID, err)
	}

	return prefs
}

// buildEntry scores one night summary and flattens it into the persisted
// record.
func buildEntry(userID uuid.UUID, night domain.NightSummary, prefs scoring.Preferences) *domain.SleepEntry {
	score := scoring.Score(scoring.Metrics{
		TotalSleepMinutes: night.Stages.TotalSleepMinutes,
		Bedtime:           night.SleepStart,
		WakeCount:         night.Interruptions.Count,
		AwakeMinutes:      night.Interruptions.TotalMinutes,
	}, prefs)

	now := time.Now().UTC()
	return &domain.SleepEntry{
		UserID:    userID,
		SleepDate: night.Date,

		SleepStart: night.SleepStart.UTC(),
		SleepEnd:   night.SleepEnd.UTC(),

		AwakeMinutes:      night.Stages.AwakeMinutes,
		RemMinutes:        night.Stages.RemMinutes,
		CoreMinutes:       night.Stages.CoreMinutes,
		DeepMinutes:       night.Stages.DeepMinutes,
		InBedMinutes:      night.Stages.InBedMinutes,
		TotalSleepMinutes: night.Stages.TotalSleepMinutes,

		InterruptionCount:   night.Interruptions.Count,
		InterruptionMinutes: night.Interruptions.TotalMinutes,

		DurationScore:     score.DurationScore,
		BedtimeScore:      score.BedtimeScore,
		InterruptionScore: score.InterruptionScore,
		TotalScore:        score.TotalScore,

		UpdatedAt: now,
	}
}
