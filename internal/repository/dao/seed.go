package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates empty tables with the demo data set. Reading an empty store
// on first run yields the seeded collections; tables that already hold rows
// are left alone.
func Seed(ctx context.Context, db *gorm.DB) error {
	if err := seedUsers(ctx, db); err != nil {
		return fmt.Errorf("seedUsers -> %w", err)
	}
	if err := seedActivities(ctx, db); err != nil {
		return fmt.Errorf("seedActivities -> %w", err)
	}
	if err := seedTransactions(ctx, db); err != nil {
		return fmt.Errorf("seedTransactions -> %w", err)
	}

	return nil
}

func seedUsers(ctx context.Context, db *gorm.DB) error {
	userDAO := NewUserDAO(db)

	count, err := userDAO.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	demo := []struct {
		name     string
		email    string
		role     string
		password string
	}{
		{"Admin User", "admin@example.com", "admin", "admin123"},
		{"Developer User", "dev@example.com", "developer", "dev123"},
		{"Attendant User", "attendant@example.com", "attendant", "attendant123"},
	}

	for _, u := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		if _, err = userDAO.Insert(ctx, User{
			Name:     u.name,
			Email:    u.email,
			Role:     u.role,
			Password: string(hash),
		}); err != nil {
			return err
		}
	}

	return nil
}

func seedActivities(ctx context.Context, db *gorm.DB) error {
	activityDAO := NewActivityDAO(db)

	count, err := activityDAO.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	demo := []Activity{
		{
			Name:             "Billiards Table 1",
			Description:      "Professional 8-foot billiards table",
			ImageURL:         "/assets/images/billiards.webp",
			PricePerHalfHour: 2,
			PricePerHour:     4,
			Available:        4,
			IsActive:         true,
		},
		{
			Name:             "Nintendo Switch",
			Description:      "Nintendo Switch console with popular games",
			ImageURL:         "/assets/images/switch.webp",
			PricePerHalfHour: 2,
			PricePerHour:     4,
			Available:        2,
			IsActive:         true,
		},
		{
			Name:             "PlayStation 5",
			Description:      "PS5 console with latest games",
			ImageURL:         "/assets/images/ps5.webp",
			PricePerHalfHour: 2,
			PricePerHour:     4,
			Available:        1,
			IsActive:         true,
		},
		{
			Name:             "PlayStation 4",
			Description:      "PS4 console with various games",
			ImageURL:         "/assets/images/ps4.webp",
			PricePerHalfHour: 2,
			PricePerHour:     4,
			Available:        1,
			IsActive:         true,
		},
		{
			Name:             "Xbox Series X",
			Description:      "Xbox Series X with Game Pass games",
			ImageURL:         "/assets/images/xbox.webp",
			PricePerHalfHour: 2,
			PricePerHour:     4,
			Available:        1,
			IsActive:         true,
		},
		{
			Name:             "Board Game: Chess",
			Description:      "Free board game for guests",
			ImageURL:         "/assets/images/board-games.webp",
			PricePerHalfHour: 0,
			PricePerHour:     0,
			Available:        1,
			IsActive:         true,
		},
	}

	for _, a := range demo {
		if _, err = activityDAO.Insert(ctx, a); err != nil {
			return err
		}
	}

	return nil
}

func seedTransactions(ctx context.Context, db *gorm.DB) error {
	transactionDAO := NewTransactionDAO(db)

	count, err := transactionDAO.Count(ctx)
	if err != nil || count > 0 {
		return err
	}

	activities, err := NewActivityDAO(db).FindAllActive(ctx)
	if err != nil {
		return err
	}
	attendant, err := NewUserDAO(db).FindByEmail(ctx, "attendant@example.com")
	if err != nil {
		return err
	}

	// A handful of closed bookings spread over the last week, so reports and
	// charts have something to show on a fresh install.
	for i, a := range activities {
		if a.PricePerHalfHour == 0 {
			continue
		}

		start := time.Now().AddDate(0, 0, -(i + 1)).Truncate(time.Minute)
		method := "cash"
		if i%2 == 1 {
			method = "card"
		}

		if _, err = transactionDAO.Insert(ctx, Transaction{
			ReceiptNumber: uuid.NewString(),
			ActivityID:    a.ID,
			ActivityName:  a.Name,
			TimeStart:     start,
			TimeEnd:       start.Add(30 * time.Minute),
			Duration:      30,
			Amount:        a.PricePerHalfHour,
			PaymentMethod: method,
			UserID:        attendant.ID,
			UserName:      attendant.Name,
		}); err != nil {
			return err
		}
	}

	return nil
}
