package service

import (
	"context"
	"sort"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/pkg/pagination"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uuid.UUID]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

// MockSleepEntryRepository is a mock implementation of SleepEntryRepository
type MockSleepEntryRepository struct {
	entries map[string]*domain.SleepEntry // keyed by userID:sleepDate
	err     error
	// failDates makes Upsert fail for specific sleep dates
	failDates map[string]error
}

func NewMockSleepEntryRepository() *MockSleepEntryRepository {
	return &MockSleepEntryRepository{
		entries:   make(map[string]*domain.SleepEntry),
		failDates: make(map[string]error),
	}
}

func entryKey(userID uuid.UUID, sleepDate string) string {
	return userID.String() + ":" + sleepDate
}

func (m *MockSleepEntryRepository) Upsert(ctx context.Context, entry *domain.SleepEntry) error {
	if m.err != nil {
		return m.err
	}
	if err, ok := m.failDates[entry.SleepDate]; ok {
		return err
	}
	key := entryKey(entry.UserID, entry.SleepDate)
	if existing, ok := m.entries[key]; ok {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
		entry.CreatedAt = time.Now()
	}
	m.entries[key] = entry
	return nil
}

func (m *MockSleepEntryRepository) GetByDate(ctx context.Context, userID uuid.UUID, sleepDate string) (*domain.SleepEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	entry, ok := m.entries[entryKey(userID, sleepDate)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

func (m *MockSleepEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepEntryFilter) ([]domain.SleepEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	entries := m.sorted(userID)

	var filtered []domain.SleepEntry
	for _, e := range entries {
		if filter.From != nil && e.SleepDate < *filter.From {
			continue
		}
		if filter.To != nil && e.SleepDate > *filter.To {
			continue
		}
		filtered = append(filtered, e)
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	if len(filtered) > limit+1 {
		filtered = filtered[:limit+1]
	}
	return filtered, nil
}

func (m *MockSleepEntryRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]domain.SleepEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(userID), nil
}

// sorted returns the user's entries newest sleep date first.
func (m *MockSleepEntryRepository) sorted(userID uuid.UUID) []domain.SleepEntry {
	var entries []domain.SleepEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			entries = append(entries, *e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SleepDate > entries[j].SleepDate
	})
	return entries
}

// MockGoalRepository is a mock implementation of GoalRepository
type MockGoalRepository struct {
	goals map[string]*domain.Goal // keyed by userID:metric
	err   error
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{goals: make(map[string]*domain.Goal)}
}

func goalKey(userID uuid.UUID, metric domain.GoalMetric) string {
	return userID.String() + ":" + string(metric)
}

func (m *MockGoalRepository) Upsert(ctx context.Context, goal *domain.Goal) error {
	if m.err != nil {
		return m.err
	}
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	m.goals[goalKey(goal.UserID, goal.Metric)] = goal
	return nil
}

func (m *MockGoalRepository) GetByMetric(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) (*domain.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	goal, ok := m.goals[goalKey(userID, metric)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return goal, nil
}

func (m *MockGoalRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	if m.err != nil {
		return nil, m.err
	}
	var goals []domain.Goal
	for _, g := range m.goals {
		if g.UserID == userID {
			goals = append(goals, *g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].Metric < goals[j].Metric })
	return goals, nil
}

func (m *MockGoalRepository) Delete(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) error {
	if m.err != nil {
		return m.err
	}
	key := goalKey(userID, metric)
	if _, ok := m.goals[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.goals, key)
	return nil
}

// MockInsightsLLM is a mock implementation of llm.InsightsLLM
type MockInsightsLLM struct {
	output  *domain.LLMInsightsOutput
	err     error
	lastCtx *domain.InsightsContext
}

func (m *MockInsightsLLM) GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error) {
	m.lastCtx = insightsCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}
