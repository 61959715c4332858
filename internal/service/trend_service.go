package service

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/repository"
	"github.com/blaisecz/sleep-sync/internal/trend"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TrendService computes period averages and period-over-period deltas
// from the persisted entry history.
type TrendService interface {
	Summary(ctx context.Context, userID uuid.UUID, period domain.TrendPeriod) (*domain.TrendSummaryResponse, error)
}

type trendService struct {
	entryRepo repository.SleepEntryRepository
	userRepo  repository.UserRepository
}

// NewTrendService creates a new TrendService.
func NewTrendService(entryRepo repository.SleepEntryRepository, userRepo repository.UserRepository) TrendService {
	return &trendService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
	}
}

func (s *trendService) Summary(ctx context.Context, userID uuid.UUID, period domain.TrendPeriod) (*domain.TrendSummaryResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	tracer := otel.Tracer("sleep-sync-api/trend")
	ctx, span := tracer.Start(ctx, "TrendService.Summary",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("trend.period", string(period)),
		),
	)
	defer span.End()

	entries, err := s.entryRepo.ListHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summary := ComputeTrendSummary(entries, period, now)
	span.SetAttributes(attribute.Int("trend.entry_count", summary.EntryCount))

	return summary, nil
}

// ComputeTrendSummary builds the full trend summary over already-loaded
// entries. Pure function; exposed for analytics consumers that hold
// their own entry collections.
func ComputeTrendSummary(entries []domain.SleepEntry, period domain.TrendPeriod, now time.Time) *domain.TrendSummaryResponse {
	summary := &domain.TrendSummaryResponse{
		Period:     string(period),
		EntryCount: trend.CountInPeriod(entries, period, now),
	}

	latest := trend.LatestEntry(entries)
	comparison := trend.ComparisonEntry(entries, period, now)

	scalar := func(acc trend.Accessor) domain.TrendMetric {
		m := domain.TrendMetric{}
		m.Average, m.HasData = trend.AverageOverPeriod(entries, period, acc, now)
		if latest != nil && comparison != nil {
			lv, lok := acc(*latest)
			cv, cok := acc(*comparison)
			if lok && cok {
				delta := lv - cv
				m.Delta = &delta
			}
		}
		return m
	}

	clock := func(acc trend.TimeAccessor, isBedtime bool) domain.TrendMetric {
		m := domain.TrendMetric{}
		m.Average, m.HasData = trend.AverageTimeOverPeriod(entries, period, acc, isBedtime, now)
		if latest != nil && comparison != nil {
			lt, lok := acc(*latest)
			ct, cok := acc(*comparison)
			if lok && cok {
				delta := trend.ClockMinutes(lt, isBedtime) - trend.ClockMinutes(ct, isBedtime)
				m.Delta = &delta
			}
		}
		return m
	}

	summary.Score = scalar(ScoreAccessor)
	summary.Duration = scalar(DurationAccessor)
	summary.Interruptions = scalar(InterruptionAccessor)
	summary.Bedtime = clock(BedtimeAccessor, true)
	summary.Wakeup = clock(WakeupAccessor, false)

	return summary
}

// Accessors for the core entry metrics, shared by trends and goal
// progress.

func ScoreAccessor(e domain.SleepEntry) (float64, bool) {
	return e.TotalScore, true
}

func DurationAccessor(e domain.SleepEntry) (float64, bool) {
	return e.TotalSleepMinutes, true
}

func InterruptionAccessor(e domain.SleepEntry) (float64, bool) {
	return float64(e.InterruptionCount), true
}

func BedtimeAccessor(e domain.SleepEntry) (time.Time, bool) {
	return e.SleepStart, !e.SleepStart.IsZero()
}

func WakeupAccessor(e domain.SleepEntry) (time.Time, bool) {
	return e.SleepEnd, !e.SleepEnd.IsZero()
}
