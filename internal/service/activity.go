package service

import (
	"context"
	"fmt"

	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/repository"
)

var ErrActivityNotFound = repository.ErrActivityNotFound

type ActivityRepository interface {
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	FindAll(ctx context.Context) ([]domain.Activity, error)
	FindAllActive(ctx context.Context) ([]domain.Activity, error)
	FindByID(ctx context.Context, id uint) (domain.Activity, error)
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, id uint) error
}

type ActivityService struct {
	repo ActivityRepository
}

func NewActivityService(repo ActivityRepository) *ActivityService {
	return &ActivityService{
		repo: repo,
	}
}

func (s *ActivityService) CreateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	created, err := s.repo.Create(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ActivityService) GetActivity(ctx context.Context, id uint) (domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return activity, nil
}

func (s *ActivityService) ListActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return activities, nil
}

// ListActiveActivities backs the new-transaction picker; inactive activities
// never show up there.
func (s *ActivityService) ListActiveActivities(ctx context.Context) ([]domain.Activity, error) {
	activities, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllActive -> %w", err)
	}

	return activities, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	updated, err := s.repo.Update(ctx, activity)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
