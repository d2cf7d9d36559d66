package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/repository"
)

var (
	ErrTransactionNotFound = repository.ErrTransactionNotFound
	ErrActivityInactive    = errors.New("activity is inactive")
	ErrTransactionRefunded = errors.New("transaction is already a refund")
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	FindAll(ctx context.Context) ([]domain.Transaction, error)
	FindByID(ctx context.Context, id uint) (domain.Transaction, error)
	FindByTimeStartBetween(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

// AvailabilityUpdater receives ledger writes that should be reflected on the
// dashboard tiles immediately, ahead of the next sweep.
type AvailabilityUpdater interface {
	OnTransactionCreated(ctx context.Context, activityID uint, endsAt time.Time)
}

type TransactionService struct {
	repo         TransactionRepository
	activityRepo ActivityRepository
	availability AvailabilityUpdater

	now func() time.Time
}

func NewTransactionService(repo TransactionRepository, activityRepo ActivityRepository, availability AvailabilityUpdater) *TransactionService {
	return &TransactionService{
		repo:         repo,
		activityRepo: activityRepo,
		availability: availability,
		now:          time.Now,
	}
}

// CreateTransaction records a booking. The activity name and attendant name
// are denormalized onto the record at this point and never updated again.
func (s *TransactionService) CreateTransaction(ctx context.Context, activityID uint, durationMinutes int, amount float64, method domain.PaymentMethod, attendant domain.User) (domain.Transaction, error) {
	activity, err := s.activityRepo.FindByID(ctx, activityID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.activityRepo.FindByID -> %w", err)
	}
	if !activity.IsActive {
		return domain.Transaction{}, ErrActivityInactive
	}

	start := s.now()
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	created, err := s.repo.Create(ctx, domain.Transaction{
		ReceiptNumber: uuid.NewString(),
		ActivityID:    activity.ID,
		ActivityName:  activity.Name,
		TimeStart:     start,
		TimeEnd:       end,
		Duration:      durationMinutes,
		Amount:        amount,
		PaymentMethod: method,
		UserID:        attendant.ID,
		UserName:      attendant.Name,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if s.availability != nil {
		s.availability.OnTransactionCreated(ctx, created.ActivityID, created.TimeEnd)
	}

	return created, nil
}

// RefundTransaction appends a negative-amount record mirroring the original.
// The original record is never modified; the ledger stays append-only.
func (s *TransactionService) RefundTransaction(ctx context.Context, transactionID uint, attendant domain.User) (domain.Transaction, error) {
	original, err := s.repo.FindByID(ctx, transactionID)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if original.Refund() {
		return domain.Transaction{}, ErrTransactionRefunded
	}

	now := s.now()

	refund, err := s.repo.Create(ctx, domain.Transaction{
		ReceiptNumber: uuid.NewString(),
		ActivityID:    original.ActivityID,
		ActivityName:  original.ActivityName,
		TimeStart:     now,
		TimeEnd:       now,
		Duration:      0,
		Amount:        -original.Amount,
		PaymentMethod: original.PaymentMethod,
		UserID:        attendant.ID,
		UserName:      attendant.Name,
		IsRefund:      true,
	})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return refund, nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (domain.Transaction, error) {
	transaction, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return transaction, nil
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return transactions, nil
}

// ListTransactionsInRange returns transactions whose start falls in one of
// the dashboard ranges: "today", "week", "month" or "all".
func (s *TransactionService) ListTransactionsInRange(ctx context.Context, rangeKey string) ([]domain.Transaction, error) {
	now := s.now()

	var start time.Time
	switch rangeKey {
	case "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		start = now.AddDate(0, 0, -7)
	case "month":
		start = now.AddDate(0, -1, 0)
	case "all", "":
		return s.ListTransactions(ctx)
	default:
		return nil, fmt.Errorf("unknown range %q", rangeKey)
	}

	transactions, err := s.repo.FindByTimeStartBetween(ctx, start, now)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByTimeStartBetween -> %w", err)
	}

	return transactions, nil
}
