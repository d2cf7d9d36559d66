package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameroom/gameroom-api/internal/domain"
)

func TestReportService_GenerateDailyReport(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	at := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	svc := NewReportService(&stubTransactionRepo{transactions: []domain.Transaction{
		{ID: 1, ActivityID: 1, ActivityName: "PS5 Station", TimeStart: at(10), Amount: 4, PaymentMethod: domain.PaymentCash},
		{ID: 2, ActivityID: 2, ActivityName: "Billiards Table 1", TimeStart: at(12), Amount: 10, PaymentMethod: domain.PaymentCard},
		{ID: 3, ActivityID: 1, ActivityName: "PS5 Station", TimeStart: at(14), Amount: 6, PaymentMethod: domain.PaymentCash},
		{ID: 4, ActivityID: 1, ActivityName: "PS5 Station", TimeStart: at(15), Amount: -2, PaymentMethod: domain.PaymentCash, IsRefund: true},
		{ID: 5, ActivityID: 3, ActivityName: "Switch Corner", TimeStart: at(15).Add(24 * time.Hour), Amount: 99, PaymentMethod: domain.PaymentCash},
	}})

	report, err := svc.GenerateDailyReport(context.Background(), day.Add(13*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15", report.Date)
	assert.Equal(t, 4, report.TotalTransactions, "the refund row counts as a transaction; the next day's row does not")
	assert.Equal(t, 18.0, report.TotalAmount, "refunds net out of the total")
	assert.Equal(t, 8.0, report.CashAmount)
	assert.Equal(t, 10.0, report.CardAmount)
	assert.Equal(t, report.TotalAmount, report.CashAmount+report.CardAmount)

	require.Len(t, report.ActivityBreakdown, 2)
	assert.Equal(t, "PS5 Station", report.ActivityBreakdown[0].ActivityName, "breakdown is ordered by first appearance")
	assert.Equal(t, 3, report.ActivityBreakdown[0].Count)
	assert.Equal(t, 8.0, report.ActivityBreakdown[0].Amount)
	assert.Equal(t, "Billiards Table 1", report.ActivityBreakdown[1].ActivityName)
	assert.Equal(t, 1, report.ActivityBreakdown[1].Count)
	assert.Equal(t, 10.0, report.ActivityBreakdown[1].Amount)
}

func TestReportService_GenerateDailyReport_Empty(t *testing.T) {
	svc := NewReportService(&stubTransactionRepo{})

	report, err := svc.GenerateDailyReport(context.Background(), time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Zero(t, report.TotalTransactions)
	assert.Zero(t, report.TotalAmount)
	assert.NotNil(t, report.ActivityBreakdown, "an empty day still serializes as an empty list")
	assert.Empty(t, report.ActivityBreakdown)
}

func TestReportService_GenerateShiftReport(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	at := func(hour, minute int) time.Time {
		return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}

	svc := NewReportService(&stubTransactionRepo{transactions: []domain.Transaction{
		{ID: 1, UserID: 7, UserName: "Jordan Reyes", TimeStart: at(9, 0), Amount: 5, PaymentMethod: domain.PaymentCash},
		{ID: 2, UserID: 7, UserName: "Jordan Reyes", TimeStart: at(16, 59), Amount: 12, PaymentMethod: domain.PaymentCard},
		{ID: 3, UserID: 7, UserName: "Jordan Reyes", TimeStart: at(17, 1), Amount: 3, PaymentMethod: domain.PaymentCash},
		{ID: 4, UserID: 8, UserName: "Sam Okafor", TimeStart: at(10, 0), Amount: 99, PaymentMethod: domain.PaymentCash},
	}})

	report, err := svc.GenerateShiftReport(context.Background(), 7, day, "09:00", "17:00")
	require.NoError(t, err)

	assert.Equal(t, uint(7), report.UserID)
	assert.Equal(t, "Jordan Reyes", report.UserName)
	assert.Equal(t, "2024-03-15", report.Date)
	assert.Equal(t, "09:00", report.StartTime)
	assert.Equal(t, "17:00", report.EndTime)
	assert.Equal(t, 2, report.TotalTransactions, "the shift window is inclusive of its bounds, minute-granular")
	assert.Equal(t, 17.0, report.TotalAmount)
	assert.Equal(t, 5.0, report.CashAmount)
	assert.Equal(t, 12.0, report.CardAmount)
}

func TestReportService_GenerateShiftReport_EmptyShift(t *testing.T) {
	svc := NewReportService(&stubTransactionRepo{})

	report, err := svc.GenerateShiftReport(context.Background(), 7, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), "09:00", "17:00")
	require.NoError(t, err)

	assert.Equal(t, "Unknown", report.UserName)
	assert.Zero(t, report.TotalTransactions)
}

func TestReportService_GenerateShiftReport_InvalidWindow(t *testing.T) {
	svc := NewReportService(&stubTransactionRepo{})
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, window := range [][2]string{
		{"nine", "17:00"},
		{"09:00", ""},
		{"25:00", "17:00"},
		{"09:00", "17:61"},
		{"9", "17:00"},
	} {
		_, err := svc.GenerateShiftReport(context.Background(), 7, day, window[0], window[1])
		assert.ErrorIs(t, err, ErrInvalidShiftWindow, "window %v", window)
	}
}

func TestReportService_TransactionsCSV(t *testing.T) {
	svc := NewReportService(&stubTransactionRepo{})

	csv := svc.TransactionsCSV([]domain.Transaction{
		{
			ActivityName:  "Billiards Table 1",
			TimeStart:     time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC),
			Duration:      60,
			Amount:        15.5,
			PaymentMethod: domain.PaymentCard,
			UserName:      "Jordan Reyes",
		},
		{
			ActivityName:  "PS5 Station",
			TimeStart:     time.Date(2024, 3, 15, 16, 0, 0, 0, time.UTC),
			Duration:      0,
			Amount:        -8,
			PaymentMethod: domain.PaymentCash,
			UserName:      "Sam Okafor",
			IsRefund:      true,
		},
	})

	want := "Activity,Date & Time,Duration,Amount,Payment,Attendant\n" +
		"\"Billiards Table 1\",\"Mar 15, 2024, 2:30 PM\",60 min,15.5,card,\"Jordan Reyes\"\n" +
		"\"PS5 Station\",\"Mar 15, 2024, 4:00 PM\",0 min,-8,cash,\"Sam Okafor\"\n"
	assert.Equal(t, want, string(csv))
}

func TestReportService_TransactionsCSV_Empty(t *testing.T) {
	svc := NewReportService(&stubTransactionRepo{})

	csv := svc.TransactionsCSV(nil)
	assert.Equal(t, "Activity,Date & Time,Duration,Amount,Payment,Attendant\n", string(csv))
}
