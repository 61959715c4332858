package repository

import (
	"context"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SleepEntryRepository interface {
	// Upsert writes an entry keyed by (user_id, sleep_date); re-ingesting
	// the same night overwrites (last write wins).
	Upsert(ctx context.Context, entry *domain.SleepEntry) error
	GetByDate(ctx context.Context, userID uuid.UUID, sleepDate string) (*domain.SleepEntry, error)
	// List returns a page of entries, newest sleep date first.
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepEntryFilter) ([]domain.SleepEntry, error)
	// ListHistory returns the full entry history for trend analytics,
	// newest sleep date first.
	ListHistory(ctx context.Context, userID uuid.UUID) ([]domain.SleepEntry, error)
}

type sleepEntryRepository struct {
	db *gorm.DB
}

func NewSleepEntryRepository(db *gorm.DB) SleepEntryRepository {
	return &sleepEntryRepository{db: db}
}

// entryUpdateColumns are the columns refreshed when a night is re-ingested.
var entryUpdateColumns = []string{
	"sleep_start", "sleep_end",
	"awake_minutes", "rem_minutes", "core_minutes", "deep_minutes",
	"in_bed_minutes", "total_sleep_minutes",
	"interruption_count", "interruption_minutes",
	"duration_score", "bedtime_score", "interruption_score", "total_score",
	"updated_at",
}

func (r *sleepEntryRepository) Upsert(ctx context.Context, entry *domain.SleepEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "sleep_date"}},
			DoUpdates: clause.AssignmentColumns(entryUpdateColumns),
		}).
		Create(entry).Error
}

func (r *sleepEntryRepository) GetByDate(ctx context.Context, userID uuid.UUID, sleepDate string) (*domain.SleepEntry, error) {
	var entry domain.SleepEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sleep_date = ?", userID, sleepDate).
		First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *sleepEntryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.SleepEntryFilter) ([]domain.SleepEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sleep_date DESC")

	if filter.From != nil {
		query = query.Where("sleep_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("sleep_date <= ?", *filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err == nil && cursor != nil {
			// DESC order: strictly older dates, ties broken by id.
			query = query.Where(
				"(sleep_date < ?) OR (sleep_date = ? AND id < ?)",
				cursor.SleepDate, cursor.SleepDate, cursor.ID,
			)
		}
	}

	// Fetch one extra row to detect whether more pages exist.
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var entries []domain.SleepEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *sleepEntryRepository) ListHistory(ctx context.Context, userID uuid.UUID) ([]domain.SleepEntry, error) {
	var entries []domain.SleepEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sleep_date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
