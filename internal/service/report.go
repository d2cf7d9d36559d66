package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gameroom/gameroom-api/internal/domain"
)

var ErrInvalidShiftWindow = errors.New("invalid shift window")

type ReportTransactionRepository interface {
	FindAll(ctx context.Context) ([]domain.Transaction, error)
	FindByTimeStartBetween(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
}

type ReportService struct {
	repo ReportTransactionRepository
}

func NewReportService(repo ReportTransactionRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

// GenerateDailyReport aggregates the inclusive day window around date.
// Amounts are signed, so refunds net out of every total without special
// handling.
func (s *ReportService) GenerateDailyReport(ctx context.Context, date time.Time) (domain.DailyReport, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24*time.Hour - time.Nanosecond)

	transactions, err := s.repo.FindByTimeStartBetween(ctx, startOfDay, endOfDay)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("s.repo.FindByTimeStartBetween -> %w", err)
	}

	report := domain.DailyReport{
		Date:              startOfDay.Format("2006-01-02"),
		TotalTransactions: len(transactions),
		ActivityBreakdown: []domain.ActivityBreakdown{},
	}

	index := make(map[uint]int)
	for _, t := range transactions {
		report.TotalAmount += t.Amount
		switch t.PaymentMethod {
		case domain.PaymentCash:
			report.CashAmount += t.Amount
		case domain.PaymentCard:
			report.CardAmount += t.Amount
		}

		i, ok := index[t.ActivityID]
		if !ok {
			i = len(report.ActivityBreakdown)
			index[t.ActivityID] = i
			report.ActivityBreakdown = append(report.ActivityBreakdown, domain.ActivityBreakdown{
				ActivityID:   t.ActivityID,
				ActivityName: t.ActivityName,
			})
		}
		report.ActivityBreakdown[i].Count++
		report.ActivityBreakdown[i].Amount += t.Amount
	}

	return report, nil
}

// GenerateShiftReport aggregates one attendant's transactions between two
// HH:MM bounds on the given date. The attendant name is read off the first
// matching transaction; an empty shift reports "Unknown".
func (s *ReportService) GenerateShiftReport(ctx context.Context, userID uint, date time.Time, startTime, endTime string) (domain.ShiftReport, error) {
	startHour, startMinute, err := parseClock(startTime)
	if err != nil {
		return domain.ShiftReport{}, ErrInvalidShiftWindow
	}
	endHour, endMinute, err := parseClock(endTime)
	if err != nil {
		return domain.ShiftReport{}, ErrInvalidShiftWindow
	}

	shiftStart := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMinute, 0, 0, date.Location())
	shiftEnd := time.Date(date.Year(), date.Month(), date.Day(), endHour, endMinute, 59, int(999*time.Millisecond), date.Location())

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.ShiftReport{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	report := domain.ShiftReport{
		UserID:    userID,
		UserName:  "Unknown",
		Date:      shiftStart.Format("2006-01-02"),
		StartTime: startTime,
		EndTime:   endTime,
	}

	for _, t := range all {
		if t.UserID != userID || t.TimeStart.Before(shiftStart) || t.TimeStart.After(shiftEnd) {
			continue
		}

		if report.TotalTransactions == 0 {
			report.UserName = t.UserName
		}

		report.TotalTransactions++
		report.TotalAmount += t.Amount
		switch t.PaymentMethod {
		case domain.PaymentCash:
			report.CashAmount += t.Amount
		case domain.PaymentCard:
			report.CardAmount += t.Amount
		}
	}

	return report, nil
}

// TransactionsCSV renders raw transaction rows in the export layout: text
// fields double-quoted, duration with a "min" suffix.
func (s *ReportService) TransactionsCSV(transactions []domain.Transaction) []byte {
	var buf bytes.Buffer

	buf.WriteString("Activity,Date & Time,Duration,Amount,Payment,Attendant\n")
	for _, t := range transactions {
		fmt.Fprintf(&buf, "%q,%q,%d min,%v,%v,%q\n",
			t.ActivityName,
			t.TimeStart.Format("Jan 2, 2006, 3:04 PM"),
			t.Duration,
			t.Amount,
			t.PaymentMethod,
			t.UserName,
		)
	}

	return buf.Bytes()
}

func parseClock(value string) (hour, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock value %q", value)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("clock value %q out of range", value)
	}

	return hour, minute, nil
}
