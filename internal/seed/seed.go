package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/scoring"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seededDays = 40

// Run seeds the database with sample users, scored sleep entries, and
// goals. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.SleepEntry{}, &domain.Goal{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Amsterdam"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo"},
		{ID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Timezone: "Australia/Sydney"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for _, user := range users {
		if err := seedEntriesForUser(db, user, rng); err != nil {
			return err
		}
		if err := seedGoalsForUser(db, user); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedEntriesForUser(db *gorm.DB, user domain.User, rng *rand.Rand) error {
	now := time.Now().UTC()
	for i := 1; i <= seededDays; i++ {
		date := now.AddDate(0, 0, -i)
		// Bedtime on the evening before the sleep date, wake-up the morning of
		sleepStart := time.Date(date.Year(), date.Month(), date.Day(), 22+rng.Intn(2), rng.Intn(60), 0, 0, time.UTC)
		sleepDate := sleepStart.AddDate(0, 0, 1).Format(domain.SleepDateFormat)

		rem := 60 + rng.Float64()*60
		deep := 45 + rng.Float64()*45
		core := 200 + rng.Float64()*90
		total := rem + deep + core

		wakeCount := rng.Intn(4)
		awake := float64(wakeCount) * (3 + rng.Float64()*10)
		sleepEnd := sleepStart.Add(time.Duration(total+awake) * time.Minute)
		inBed := total + awake

		score := scoring.Score(scoring.Metrics{
			TotalSleepMinutes: total,
			Bedtime:           sleepStart,
			WakeCount:         wakeCount,
			AwakeMinutes:      awake,
		}, scoring.Preferences{})

		entry := domain.SleepEntry{
			UserID:              user.ID,
			SleepDate:           sleepDate,
			SleepStart:          sleepStart,
			SleepEnd:            sleepEnd,
			AwakeMinutes:        awake,
			RemMinutes:          rem,
			CoreMinutes:         core,
			DeepMinutes:         deep,
			InBedMinutes:        inBed,
			TotalSleepMinutes:   total,
			InterruptionCount:   wakeCount,
			InterruptionMinutes: awake,
			DurationScore:       score.DurationScore,
			BedtimeScore:        score.BedtimeScore,
			InterruptionScore:   score.InterruptionScore,
			TotalScore:          score.TotalScore,
		}

		if err := db.Where("user_id = ? AND sleep_date = ?", user.ID, sleepDate).
			FirstOrCreate(&entry).Error; err != nil {
			return fmt.Errorf("failed to create sleep entry for %s: %w", sleepDate, err)
		}
	}
	return nil
}

func seedGoalsForUser(db *gorm.DB, user domain.User) error {
	goals := []domain.Goal{
		{UserID: user.ID, Metric: domain.GoalSleepDuration, Target: 480},
		{UserID: user.ID, Metric: domain.GoalSleepBedtime, Target: 1380}, // 23:00
		{UserID: user.ID, Metric: domain.GoalSleepScore, Target: 85},
	}
	for _, goal := range goals {
		if err := db.Where("user_id = ? AND metric = ?", user.ID, goal.Metric).
			FirstOrCreate(&goal).Error; err != nil {
			return fmt.Errorf("failed to create goal %s: %w", goal.Metric, err)
		}
	}
	return nil
}
