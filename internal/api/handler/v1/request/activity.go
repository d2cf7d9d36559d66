package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateActivityRequest struct {
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	ImageURL         string  `json:"image_url"`
	PricePerHalfHour float64 `json:"price_per_half_hour"`
	PricePerHour     float64 `json:"price_per_hour"`
	Available        int     `json:"available"`
	IsActive         *bool   `json:"is_active"`
}

func (req *CreateActivityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Description, validation.Length(0, 500)),
		validation.Field(&req.PricePerHalfHour, validation.Min(0.0)),
		validation.Field(&req.PricePerHour, validation.Min(0.0)),
		validation.Field(&req.Available, validation.Min(0)),
	)
}

type UpdateActivityRequest struct {
	CreateActivityRequest
}
