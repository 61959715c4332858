package service

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/llm"
	"github.com/blaisecz/sleep-sync/internal/repository"
	"github.com/google/uuid"
)

const (
	// HistoryPeriod is the long-term baseline window for insights.
	HistoryPeriod = domain.Period90Days
	// RecentPeriod is the short-term window for insights.
	RecentPeriod = domain.Period7Days
)

// InsightsService generates a narrative over the user's trend data.
type InsightsService interface {
	// Generate creates sleep insights for a user.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

type insightsService struct {
	trendService TrendService
	goalService  GoalService
	llmClient    llm.InsightsLLM
	entryRepo    repository.SleepEntryRepository
	userRepo     repository.UserRepository
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(
	trendService TrendService,
	goalService GoalService,
	llmClient llm.InsightsLLM,
	entryRepo repository.SleepEntryRepository,
	userRepo repository.UserRepository,
) InsightsService {
	return &insightsService{
		trendService: trendService,
		goalService:  goalService,
		llmClient:    llmClient,
		entryRepo:    entryRepo,
		userRepo:     userRepo,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	history, err := s.trendService.Summary(ctx, userID, HistoryPeriod)
	if err != nil {
		return nil, err
	}

	recent, err := s.trendService.Summary(ctx, userID, RecentPeriod)
	if err != nil {
		return nil, err
	}

	insightsCtx := &domain.InsightsContext{
		History: *history,
		Recent:  *recent,
	}

	if lastNight, err := s.findLastNight(ctx, userID); err == nil && lastNight != nil {
		resp := lastNight.ToResponse()
		insightsCtx.LastNight = &resp
	}

	if progress, err := s.goalService.Progress(ctx, userID, RecentPeriod); err == nil {
		insightsCtx.Goals = progress.Goals
	}

	llmOutput, err := s.llmClient.GenerateInsights(ctx, insightsCtx)
	if err != nil {
		return nil, err
	}

	response := &domain.InsightsResponse{Insights: *llmOutput}
	response.Metrics.History = *history
	response.Metrics.Recent = *recent

	return response, nil
}

// findLastNight returns the most recent persisted entry, preferring one
// from the last few days so stale histories don't masquerade as "last
// night".
func (s *insightsService) findLastNight(ctx context.Context, userID uuid.UUID) (*domain.SleepEntry, error) {
	entries, err := s.entryRepo.List(ctx, userID, domain.SleepEntryFilter{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	latest := entries[0]
	if d, err := time.Parse(domain.SleepDateFormat, latest.SleepDate); err == nil {
		if time.Since(d) > 7*24*time.Hour {
			return nil, nil
		}
	}
	return &latest, nil
}
