package domain

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentCard
}

// Transaction is a revenue-bearing or refund record. ActivityName and UserName
// are denormalized copies taken at creation time; ActivityName is what
// availability matching and report grouping key on, even if the source
// activity is later renamed or deleted.
type Transaction struct {
	ID            uint          `json:"id"`
	ReceiptNumber string        `json:"receipt_number"`
	ActivityID    uint          `json:"activity_id"`
	ActivityName  string        `json:"activity_name"`
	TimeStart     time.Time     `json:"time_start"`
	TimeEnd       time.Time     `json:"time_end"`
	Duration      int           `json:"duration"` // minutes
	Amount        float64       `json:"amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	UserID        uint          `json:"user_id"`
	UserName      string        `json:"user_name"`
	IsRefund      bool          `json:"is_refund"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Refund reports whether the transaction nets revenue out. A negative amount
// and the explicit flag both count; historical records carry either.
func (t Transaction) Refund() bool {
	return t.IsRefund || t.Amount < 0
}
