package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/repository/dao"
)

var ErrTransactionNotFound = dao.ErrTransactionNotFound

type TransactionDAO interface {
	Insert(ctx context.Context, transaction dao.Transaction) (dao.Transaction, error)
	FindAll(ctx context.Context) ([]dao.Transaction, error)
	FindByID(ctx context.Context, id uint) (dao.Transaction, error)
	FindByTimeStartBetween(ctx context.Context, start, end time.Time) ([]dao.Transaction, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Transaction, error)
	FindEndingAfter(ctx context.Context, t time.Time) ([]dao.Transaction, error)
}

type TransactionRepository struct {
	dao TransactionDAO
}

func NewTransactionRepository(dao TransactionDAO) *TransactionRepository {
	return &TransactionRepository{
		dao: dao,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	created, err := r.dao.Insert(ctx, dao.Transaction{
		ReceiptNumber: transaction.ReceiptNumber,
		ActivityID:    transaction.ActivityID,
		ActivityName:  transaction.ActivityName,
		TimeStart:     transaction.TimeStart,
		TimeEnd:       transaction.TimeEnd,
		Duration:      transaction.Duration,
		Amount:        transaction.Amount,
		PaymentMethod: string(transaction.PaymentMethod),
		UserID:        transaction.UserID,
		UserName:      transaction.UserName,
		IsRefund:      transaction.IsRefund,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *TransactionRepository) FindAll(ctx context.Context) ([]domain.Transaction, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id uint) (domain.Transaction, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *TransactionRepository) FindByTimeStartBetween(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	found, err := r.dao.FindByTimeStartBetween(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByTimeStartBetween -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *TransactionRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Transaction, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *TransactionRepository) FindEndingAfter(ctx context.Context, t time.Time) ([]domain.Transaction, error) {
	found, err := r.dao.FindEndingAfter(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindEndingAfter -> %w", err)
	}

	return r.daoToDomainSlice(found), nil
}

func (r *TransactionRepository) daoToDomain(t dao.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:            t.ID,
		ReceiptNumber: t.ReceiptNumber,
		ActivityID:    t.ActivityID,
		ActivityName:  t.ActivityName,
		TimeStart:     t.TimeStart,
		TimeEnd:       t.TimeEnd,
		Duration:      t.Duration,
		Amount:        t.Amount,
		PaymentMethod: domain.PaymentMethod(t.PaymentMethod),
		UserID:        t.UserID,
		UserName:      t.UserName,
		IsRefund:      t.IsRefund,
		CreatedAt:     t.CreatedAt,
	}
}

func (r *TransactionRepository) daoToDomainSlice(found []dao.Transaction) []domain.Transaction {
	transactions := make([]domain.Transaction, 0, len(found))
	for _, t := range found {
		transactions = append(transactions, r.daoToDomain(t))
	}

	return transactions
}
