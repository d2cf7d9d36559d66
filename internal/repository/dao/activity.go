package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrActivityNotFound = errors.New("activity not found")

type Activity struct {
	ID uint `gorm:"primaryKey"`

	Name             string `gorm:"not null"`
	Description      string
	ImageURL         string
	PricePerHalfHour float64 `gorm:"not null"`
	PricePerHour     float64 `gorm:"not null"`
	Available        int     `gorm:"not null;default:1"`
	IsActive         bool    `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ActivityDAO struct {
	db *gorm.DB
}

func NewActivityDAO(db *gorm.DB) *ActivityDAO {
	return &ActivityDAO{
		db: db,
	}
}

func (d *ActivityDAO) Insert(ctx context.Context, activity Activity) (Activity, error) {
	result := d.db.WithContext(ctx).Create(&activity)
	if result.Error != nil {
		return Activity{}, result.Error
	}

	return activity, nil
}

func (d *ActivityDAO) FindAll(ctx context.Context) ([]Activity, error) {
	var activities []Activity

	result := d.db.WithContext(ctx).Order("id").Find(&activities)
	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}

func (d *ActivityDAO) FindAllActive(ctx context.Context) ([]Activity, error) {
	var activities []Activity

	result := d.db.WithContext(ctx).Where("is_active = ?", true).Order("id").Find(&activities)
	if result.Error != nil {
		return nil, result.Error
	}

	return activities, nil
}

func (d *ActivityDAO) FindByID(ctx context.Context, id uint) (Activity, error) {
	var activity Activity

	result := d.db.WithContext(ctx).First(&activity, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Activity{}, ErrActivityNotFound
		}

		return Activity{}, result.Error
	}

	return activity, nil
}

func (d *ActivityDAO) Update(ctx context.Context, activity Activity) (Activity, error) {
	result := d.db.WithContext(ctx).Model(&Activity{ID: activity.ID}).Updates(map[string]any{
		"name":                activity.Name,
		"description":         activity.Description,
		"image_url":           activity.ImageURL,
		"price_per_half_hour": activity.PricePerHalfHour,
		"price_per_hour":      activity.PricePerHour,
		"available":           activity.Available,
		"is_active":           activity.IsActive,
	})
	if result.Error != nil {
		return Activity{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Activity{}, ErrActivityNotFound
	}

	return d.FindByID(ctx, activity.ID)
}

func (d *ActivityDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Activity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}

	return nil
}

func (d *ActivityDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Activity{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
