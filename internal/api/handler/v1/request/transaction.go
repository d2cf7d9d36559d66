package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTransactionRequest struct {
	ActivityID      uint    `json:"activity_id"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"payment_method"`
	DurationMinutes int     `json:"duration_minutes"`
}

func (req *CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ActivityID, validation.Required),
		validation.Field(&req.Amount, validation.Required, validation.Min(1.0)),
		validation.Field(&req.PaymentMethod, validation.Required, validation.In("cash", "card")),
		validation.Field(&req.DurationMinutes, validation.Required, validation.Min(15), validation.Max(240)),
	)
}
