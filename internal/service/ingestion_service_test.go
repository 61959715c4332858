package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/ingest"
	"github.com/google/uuid"
)

// Mocks are defined in mocks_test.go

func decodePayload(t *testing.T, raw string) *ingest.ExportPayload {
	t.Helper()
	var payload ingest.ExportPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	return &payload
}

const rawSegmentPayload = `{
	"data": {
		"metrics": [
			{
				"name": "sleep_analysis",
				"units": "hr",
				"data": [
					{"startDate": "2026-01-06 23:00:00 +0000", "endDate": "2026-01-07 01:00:00 +0000", "value": "Core"},
					{"startDate": "2026-01-07 01:00:00 +0000", "endDate": "2026-01-07 01:45:00 +0000", "value": "Deep"},
					{"startDate": "2026-01-07 01:45:00 +0000", "endDate": "2026-01-07 01:55:00 +0000", "value": "Awake"},
					{"startDate": "2026-01-07 01:55:00 +0000", "endDate": "2026-01-07 06:45:00 +0000", "value": "REM"}
				]
			}
		]
	}
}`

func TestIngestionService_Ingest(t *testing.T) {
	userID := uuid.New()

	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entryRepo := NewMockSleepEntryRepository()
	goalRepo := NewMockGoalRepository()

	svc := NewIngestionService(entryRepo, goalRepo, userRepo, 0)

	resp, err := svc.Ingest(context.Background(), userID, decodePayload(t, rawSegmentPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Processed != 1 || resp.Invalid != 0 || resp.Failed != 0 {
		t.Errorf("response = %+v, want 1 processed", resp)
	}
	if len(resp.Dates) != 1 || resp.Dates[0] != "2026-01-06" {
		t.Errorf("dates = %v, want [2026-01-06]", resp.Dates)
	}

	entry, err := entryRepo.GetByDate(context.Background(), userID, "2026-01-06")
	if err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}
	if entry.TotalSleepMinutes != 455 {
		t.Errorf("TotalSleepMinutes = %v, want 455", entry.TotalSleepMinutes)
	}
	if entry.InterruptionCount != 1 {
		t.Errorf("InterruptionCount = %d, want 1", entry.InterruptionCount)
	}
	if entry.TotalScore <= 0 || entry.TotalScore > 100 {
		t.Errorf("TotalScore = %v, want within (0,100]", entry.TotalScore)
	}
}

func TestIngestionService_IngestUserNotFound(t *testing.T) {
	svc := NewIngestionService(NewMockSleepEntryRepository(), NewMockGoalRepository(), NewMockUserRepository(), 0)

	_, err := svc.Ingest(context.Background(), uuid.New(), decodePayload(t, rawSegmentPayload))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIngestionService_IngestNoSleepData(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	svc := NewIngestionService(NewMockSleepEntryRepository(), NewMockGoalRepository(), userRepo, 0)

	payload := decodePayload(t, `{"data": {"metrics": [{"name": "steps", "data": [{"qty": 100}]}]}}`)
	resp, err := svc.Ingest(context.Background(), userID, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Message != NoSleepDataMessage {
		t.Errorf("message = %q, want %q", resp.Message, NoSleepDataMessage)
	}
	if resp.Processed != 0 {
		t.Errorf("processed = %d, want 0", resp.Processed)
	}
}

func TestIngestionService_IngestOverwritesSameNight(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entryRepo := NewMockSleepEntryRepository()
	svc := NewIngestionService(entryRepo, NewMockGoalRepository(), userRepo, 0)

	if _, err := svc.Ingest(context.Background(), userID, decodePayload(t, rawSegmentPayload)); err != nil {
		t.Fatalf("first ingest failed: %v", err)
	}
	first, _ := entryRepo.GetByDate(context.Background(), userID, "2026-01-06")

	if _, err := svc.Ingest(context.Background(), userID, decodePayload(t, rawSegmentPayload)); err != nil {
		t.Fatalf("second ingest failed: %v", err)
	}
	second, _ := entryRepo.GetByDate(context.Background(), userID, "2026-01-06")

	if len(entryRepo.entries) != 1 {
		t.Errorf("expected a single entry after re-ingestion, got %d", len(entryRepo.entries))
	}
	if first.ID != second.ID {
		t.Errorf("re-ingestion must overwrite in place, got new ID %s", second.ID)
	}
}

func TestIngestionService_IngestNightFailureIsolation(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	entryRepo := NewMockSleepEntryRepository()
	entryRepo.failDates["2026-01-06"] = errors.New("db down")

	svc := NewIngestionService(entryRepo, NewMockGoalRepository(), userRepo, 0)

	payload := decodePayload(t, `{
		"data": {
			"metrics": [
				{
					"name": "sleep_analysis",
					"data": [
						{"startDate": "2026-01-06 23:00:00 +0000", "endDate": "2026-01-07 06:00:00 +0000", "value": "Asleep"},
						{"startDate": "2026-01-07 23:00:00 +0000", "endDate": "2026-01-08 06:00:00 +0000", "value": "Asleep"}
					]
				}
			]
		}
	}`)

	resp, err := svc.Ingest(context.Background(), userID, payload)
	if err != nil {
		t.Fatalf("batch must survive a single night failure: %v", err)
	}

	if resp.Processed != 1 || resp.Failed != 1 {
		t.Errorf("response = %+v, want 1 processed and 1 failed", resp)
	}
	if _, err := entryRepo.GetByDate(context.Background(), userID, "2026-01-07"); err != nil {
		t.Errorf("surviving night not persisted: %v", err)
	}
}

func TestIngestionService_IngestCountsInvalidSamples(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	svc := NewIngestionService(NewMockSleepEntryRepository(), NewMockGoalRepository(), userRepo, 0)

	payload := decodePayload(t, `{
		"data": {
			"metrics": [
				{
					"name": "sleep_analysis",
					"data": [
						{"startDate": "garbage", "endDate": "2026-01-07 06:00:00 +0000", "value": "Core"},
						{"startDate": "2026-01-06 23:00:00 +0000", "endDate": "2026-01-07 06:00:00 +0000", "value": "Asleep"}
					]
				}
			]
		}
	}`)

	resp, err := svc.Ingest(context.Background(), userID, payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Invalid != 1 || resp.Processed != 1 {
		t.Errorf("response = %+v, want 1 invalid and 1 processed", resp)
	}
}

func TestIngestionService_IngestUsesStoredGoals(t *testing.T) {
	userID := uuid.New()
	userRepo := NewMockUserRepository()
	userRepo.users[userID] = &domain.User{ID: userID, Timezone: "UTC"}

	goalRepo := NewMockGoalRepository()
	goalRepo.goals[goalKey(userID, domain.GoalSleepDuration)] = &domain.Goal{
		UserID: userID, Metric: domain.GoalSleepDuration, Target: 420,
	}

	entryRepo := NewMockSleepEntryRepository()
	svc := NewIngestionService(entryRepo, goalRepo, userRepo, 0)

	// Exactly 7h of sleep: full duration marks against the 7h goal, only
	// 7/8 of them against the default.
	payload := decodePayload(t, `{
		"data": {
			"metrics": [
				{
					"name": "sleep_analysis",
					"data": [
						{"startDate": "2026-01-06 23:00:00 +0000", "endDate": "2026-01-07 06:00:00 +0000", "value": "Asleep"}
					]
				}
			]
		}
	}`)

	if _, err := svc.Ingest(context.Background(), userID, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry, err := entryRepo.GetByDate(context.Background(), userID, "2026-01-06")
	if err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}
	if entry.DurationScore != 50 {
		t.Errorf("DurationScore = %v, want 50 with a 7h duration goal", entry.DurationScore)
	}
}
