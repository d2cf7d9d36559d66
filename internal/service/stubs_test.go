package service

import (
	"context"
	"sync"
	"time"

	"github.com/gameroom/gameroom-api/internal/domain"
	"github.com/gameroom/gameroom-api/internal/repository"
)

// testClock is a settable time source safe to share with countdown goroutines.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{t: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.t = c.t.Add(d)
}

type stubActivityRepo struct {
	mu         sync.Mutex
	activities []domain.Activity
}

func (r *stubActivityRepo) Create(_ context.Context, activity domain.Activity) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	activity.ID = uint(len(r.activities) + 1)
	r.activities = append(r.activities, activity)

	return activity, nil
}

func (r *stubActivityRepo) FindAll(_ context.Context) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.Activity(nil), r.activities...), nil
}

func (r *stubActivityRepo) FindAllActive(_ context.Context) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []domain.Activity
	for _, a := range r.activities {
		if a.IsActive {
			active = append(active, a)
		}
	}

	return active, nil
}

func (r *stubActivityRepo) FindByID(_ context.Context, id uint) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.activities {
		if a.ID == id {
			return a, nil
		}
	}

	return domain.Activity{}, repository.ErrActivityNotFound
}

func (r *stubActivityRepo) Update(_ context.Context, activity domain.Activity) (domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.activities {
		if a.ID == activity.ID {
			r.activities[i] = activity
			return activity, nil
		}
	}

	return domain.Activity{}, repository.ErrActivityNotFound
}

func (r *stubActivityRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.activities {
		if a.ID == id {
			r.activities = append(r.activities[:i], r.activities[i+1:]...)
			return nil
		}
	}

	return repository.ErrActivityNotFound
}

type stubTransactionRepo struct {
	mu           sync.Mutex
	transactions []domain.Transaction
}

func (r *stubTransactionRepo) Create(_ context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	transaction.ID = uint(len(r.transactions) + 1)
	transaction.CreatedAt = time.Now()
	r.transactions = append(r.transactions, transaction)

	return transaction, nil
}

func (r *stubTransactionRepo) FindAll(_ context.Context) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.Transaction(nil), r.transactions...), nil
}

func (r *stubTransactionRepo) FindByID(_ context.Context, id uint) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}

	return domain.Transaction{}, repository.ErrTransactionNotFound
}

func (r *stubTransactionRepo) FindByTimeStartBetween(_ context.Context, start, end time.Time) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.Transaction
	for _, t := range r.transactions {
		if !t.TimeStart.Before(start) && !t.TimeStart.After(end) {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

func (r *stubTransactionRepo) FindByUserID(_ context.Context, userID uint) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

func (r *stubTransactionRepo) FindEndingAfter(_ context.Context, instant time.Time) ([]domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.Transaction
	for _, t := range r.transactions {
		if t.TimeEnd.After(instant) {
			matched = append(matched, t)
		}
	}

	return matched, nil
}

type stubUserRepo struct {
	mu    sync.Mutex
	users []domain.User
}

func (r *stubUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, user)

	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}
