package service

import (
	"context"

	"github.com/blaisecz/sleep-sync/internal/domain"
	"github.com/blaisecz/sleep-sync/internal/repository"
	"github.com/blaisecz/sleep-sync/pkg/pagination"
	"github.com/google/uuid"
)

// SleepEntryService exposes the persisted sleep history.
type SleepEntryService interface {
	List(ctx context.Context, userID uuid.UUID, filter domain.SleepEntryFilter) (*domain.SleepEntryListResponse, error)
}

type sleepEntryService struct {
	repo     repository.SleepEntryRepository
	userRepo repository.UserRepository
}

// NewSleepEntryService creates a new SleepEntryService.
func NewSleepEntryService(repo repository.SleepEntryRepository, userRepo repository.UserRepository) SleepEntryService {
	return &sleepEntryService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *sleepEntryService) List(ctx context.Context, userID uuid.UUID, filter domain.SleepEntryFilter) (*domain.SleepEntryListResponse, error) {
	// Check if user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	entries, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(filter.Limit)
	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}

	response := &domain.SleepEntryListResponse{
		Data: make([]domain.SleepEntryResponse, len(entries)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}
	for i, entry := range entries {
		response.Data[i] = entry.ToResponse()
	}

	if hasMore && len(entries) > 0 {
		last := entries[len(entries)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			SleepDate: last.SleepDate,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}
