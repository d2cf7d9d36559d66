package domain

type ActivityBreakdown struct {
	ActivityID   uint    `json:"activity_id"`
	ActivityName string  `json:"activity_name"`
	Count        int     `json:"count"`
	Amount       float64 `json:"amount"`
}

type DailyReport struct {
	Date              string              `json:"date"` // YYYY-MM-DD
	TotalTransactions int                 `json:"total_transactions"`
	TotalAmount       float64             `json:"total_amount"`
	CashAmount        float64             `json:"cash_amount"`
	CardAmount        float64             `json:"card_amount"`
	ActivityBreakdown []ActivityBreakdown `json:"activity_breakdown"`
}

type ShiftReport struct {
	UserID            uint    `json:"user_id"`
	UserName          string  `json:"user_name"`
	Date              string  `json:"date"`       // YYYY-MM-DD
	StartTime         string  `json:"start_time"` // HH:MM
	EndTime           string  `json:"end_time"`   // HH:MM
	TotalTransactions int     `json:"total_transactions"`
	TotalAmount       float64 `json:"total_amount"`
	CashAmount        float64 `json:"cash_amount"`
	CardAmount        float64 `json:"card_amount"`
}
