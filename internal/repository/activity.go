package repository

import (
	"context"
	"fmt"

	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/repository/dao"
)

var ErrActivityNotFound = dao.ErrActivityNotFound

type ActivityDAO interface {
	Insert(ctx context.Context, activity dao.Activity) (dao.Activity, error)
	FindAll(ctx context.Context) ([]dao.Activity, error)
	FindAllActive(ctx context.Context) ([]dao.Activity, error)
	FindByID(ctx context.Context, id uint) (dao.Activity, error)
	Update(ctx context.Context, activity dao.Activity) (dao.Activity, error)
	Delete(ctx context.Context, id uint) error
}

type ActivityRepository struct {
	dao ActivityDAO
}

func NewActivityRepository(dao ActivityDAO) *ActivityRepository {
	return &ActivityRepository{
		dao: dao,
	}
}

func (r *ActivityRepository) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ActivityRepository) FindAll(ctx context.Context) ([]domain.Activity, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *ActivityRepository) FindAllActive(ctx context.Context) ([]domain.Activity, error) {
	found, err := r.dao.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllActive -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id uint) (domain.Activity, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ActivityRepository) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(activity))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ActivityRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ActivityRepository) domainToDAO(a domain.Activity) dao.Activity {
	return dao.Activity{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		ImageURL:         a.ImageURL,
		PricePerHalfHour: a.PricePerHalfHour,
		PricePerHour:     a.PricePerHour,
		Available:        a.Available,
		IsActive:         a.IsActive,
	}
}

func (r *ActivityRepository) daoToDomain(a dao.Activity) domain.Activity {
	return domain.Activity{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		ImageURL:         a.ImageURL,
		PricePerHalfHour: a.PricePerHalfHour,
		PricePerHour:     a.PricePerHour,
		Available:        a.Available,
		IsActive:         a.IsActive,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (r *ActivityRepository) daoToDomainSlice(found []dao.Activity) []domain.Activity {
	activities := make([]domain.Activity, 0, len(found))
	for _, a := range found {
		activities = append(activities, r.daoToDomain(a))
	}

	return activities
}
