package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type Transaction struct {
	ID uint `gorm:"primaryKey"`

	ReceiptNumber string `gorm:"not null;index"`

	ActivityID   uint   `gorm:"not null;index"`
	ActivityName string `gorm:"not null"` // denormalized; matching and grouping key on this copy

	TimeStart time.Time `gorm:"not null"`
	TimeEnd   time.Time `gorm:"not null;index"`
	Duration  int       `gorm:"not null"` // minutes

	Amount        float64 `gorm:"not null"`
	PaymentMethod string  `gorm:"not null"` // "cash" or "card"

	UserID   uint   `gorm:"not null;index"`
	UserName string `gorm:"not null"` // denormalized

	IsRefund bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
}

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

func (d *TransactionDAO) Insert(ctx context.Context, transaction Transaction) (Transaction, error) {
	result := d.db.WithContext(ctx).Create(&transaction)
	if result.Error != nil {
		return Transaction{}, result.Error
	}

	return transaction, nil
}

// FindAll returns transactions newest first, matching the ledger's display
// order.
func (d *TransactionDAO) FindAll(ctx context.Context) ([]Transaction, error) {
	var transactions []Transaction

	result := d.db.WithContext(ctx).Order("created_at DESC").Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

func (d *TransactionDAO) FindByID(ctx context.Context, id uint) (Transaction, error) {
	var transaction Transaction

	result := d.db.WithContext(ctx).First(&transaction, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Transaction{}, ErrTransactionNotFound
		}

		return Transaction{}, result.Error
	}

	return transaction, nil
}

func (d *TransactionDAO) FindByTimeStartBetween(ctx context.Context, start, end time.Time) ([]Transaction, error) {
	var transactions []Transaction

	result := d.db.WithContext(ctx).
		Where("time_start >= ? AND time_start <= ?", start, end).
		Order("created_at DESC").
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

func (d *TransactionDAO) FindByUserID(ctx context.Context, userID uint) ([]Transaction, error) {
	var transactions []Transaction

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

// FindEndingAfter returns transactions whose booked window is still open at
// the given instant. The availability sweep derives tile state from these.
func (d *TransactionDAO) FindEndingAfter(ctx context.Context, t time.Time) ([]Transaction, error) {
	var transactions []Transaction

	result := d.db.WithContext(ctx).
		Where("time_end > ?", t).
		Order("created_at DESC").
		Find(&transactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

// Update and Delete exist at this layer only; no API route exposes them. The
// ledger is append-only from the application's perspective.
func (d *TransactionDAO) Update(ctx context.Context, transaction Transaction) (Transaction, error) {
	result := d.db.WithContext(ctx).Save(&transaction)
	if result.Error != nil {
		return Transaction{}, result.Error
	}

	return transaction, nil
}

func (d *TransactionDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Transaction{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

func (d *TransactionDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Transaction{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
