package service

import (
	"context"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/repository"
	"github.com/blaisecz/sleep-sync/internal/trend"
	"github.com/google/uuid"
)

// earlyMorningGoalCutoff is 6:00 in minutes from midnight. Time-of-day
// targets below it are stored +1440 so comparisons never cross midnight
// incorrectly.
const earlyMorningGoalCutoff = 360.0

// GoalService manages per-metric targets and their progress
// classification.
type GoalService interface {
	Save(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric, req *domain.SaveGoalRequest) (*domain.Goal, error)
	Delete(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.GoalResponse, error)
	Progress(ctx context.Context, userID uuid.UUID, period domain.TrendPeriod) (*domain.GoalProgressResponse, error)
}

type goalService struct {
	goalRepo  repository.GoalRepository
	entryRepo repository.SleepEntryRepository
	userRepo  repository.UserRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo repository.GoalRepository, entryRepo repository.SleepEntryRepository, userRepo repository.UserRepository) GoalService {
	return &goalService{
		goalRepo:  goalRepo,
		entryRepo: entryRepo,
		userRepo:  userRepo,
	}
}

func (s *goalService) Save(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric, req *domain.SaveGoalRequest) (*domain.Goal, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	target := req.Target
	if metric.IsTimeOfDay() && target < earlyMorningGoalCutoff {
		target += 1440
	}

	goal := &domain.Goal{
		UserID:    userID,
		Metric:    metric,
		Target:    target,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.goalRepo.Upsert(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) Delete(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return s.goalRepo.Delete(ctx, userID, metric)
}

func (s *goalService) List(ctx context.Context, userID uuid.UUID) ([]domain.GoalResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	goals, err := s.goalRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]domain.GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = g.ToResponse()
	}
	return responses, nil
}

func (s *goalService) Progress(ctx context.Context, userID uuid.UUID, period domain.TrendPeriod) (*domain.GoalProgressResponse, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	goals, err := s.goalRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	response := &domain.GoalProgressResponse{
		Period: string(period),
		Goals:  []domain.GoalComparison{},
	}

	for _, goal := range goals {
		current, ok := currentValueForMetric(entries, goal.Metric, period, now)
		if !ok {
			// No data in the period: degrade to "no data", never error.
			continue
		}
		response.Goals = append(response.Goals, trend.CompareToGoal(goal.Metric, current, goal))
	}

	return response, nil
}

// currentValueForMetric resolves the period average matching a goal
// metric.
func currentValueForMetric(entries []domain.SleepEntry, metric domain.GoalMetric, period domain.TrendPeriod, now time.Time) (float64, bool) {
	switch metric {
	case domain.GoalSleepDuration:
		return trend.AverageOverPeriod(entries, period, DurationAccessor, now)
	case domain.GoalSleepBedtime:
		return trend.AverageTimeOverPeriod(entries, period, BedtimeAccessor, true, now)
	case domain.GoalSleepWakeup:
		return trend.AverageTimeOverPeriod(entries, period, WakeupAccessor, false, now)
	case domain.GoalSleepInterruptions:
		return trend.AverageOverPeriod(entries, period, InterruptionAccessor, now)
	case domain.GoalSleepScore:
		return trend.AverageOverPeriod(entries, period, ScoreAccessor, now)
	}
	return 0, false
}
