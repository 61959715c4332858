package repository

import (
	"context"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GoalRepository interface {
	// Upsert writes a goal keyed by (user_id, metric).
	Upsert(ctx context.Context, goal *domain.Goal) error
	GetByMetric(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) (*domain.Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error)
	Delete(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) error
}

type goalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Upsert(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "metric"}},
			DoUpdates: clause.AssignmentColumns([]string{"target", "updated_at"}),
		}).
		Create(goal).Error
}

func (r *goalRepository) GetByMetric(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND metric = ?", userID, metric).
		First(&goal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) List(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	var goals []domain.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("metric ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (r *goalRepository) Delete(ctx context.Context, userID uuid.UUID, metric domain.GoalMetric) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND metric = ?", userID, metric).
		Delete(&domain.Goal{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
