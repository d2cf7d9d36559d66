package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignupRequest_Validate(t *testing.T) {
	valid := SignupRequest{
		Email:           "jordan@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
		Name:            "Jordan Reyes",
		Role:            "attendant",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *SignupRequest)
	}{
		{"missing email", func(r *SignupRequest) { r.Email = "" }},
		{"malformed email", func(r *SignupRequest) { r.Email = "not-an-email" }},
		{"unknown role", func(r *SignupRequest) { r.Role = "manager" }},
		{"short password", func(r *SignupRequest) { r.Password = "pass1"; r.ConfirmPassword = "pass1" }},
		{"password without digit", func(r *SignupRequest) { r.Password = "passwords"; r.ConfirmPassword = "passwords" }},
		{"password without letter", func(r *SignupRequest) { r.Password = "12345678"; r.ConfirmPassword = "12345678" }},
		{"confirm mismatch", func(r *SignupRequest) { r.ConfirmPassword = "password2" }},
		{"short name", func(r *SignupRequest) { r.Name = "J" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateTransactionRequest_Validate(t *testing.T) {
	valid := CreateTransactionRequest{
		ActivityID:      1,
		Amount:          12.5,
		PaymentMethod:   "cash",
		DurationMinutes: 30,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(r *CreateTransactionRequest)
	}{
		{"missing activity", func(r *CreateTransactionRequest) { r.ActivityID = 0 }},
		{"zero amount", func(r *CreateTransactionRequest) { r.Amount = 0 }},
		{"negative amount", func(r *CreateTransactionRequest) { r.Amount = -5 }},
		{"unknown payment method", func(r *CreateTransactionRequest) { r.PaymentMethod = "crypto" }},
		{"duration too short", func(r *CreateTransactionRequest) { r.DurationMinutes = 10 }},
		{"duration too long", func(r *CreateTransactionRequest) { r.DurationMinutes = 300 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestCreateActivityRequest_Validate(t *testing.T) {
	valid := CreateActivityRequest{
		Name:             "PS5 Station",
		PricePerHalfHour: 5,
		PricePerHour:     9,
		Available:        1,
	}
	assert.NoError(t, valid.Validate())

	missingName := valid
	missingName.Name = ""
	assert.Error(t, missingName.Validate())

	negativePrice := valid
	negativePrice.PricePerHour = -1
	assert.Error(t, negativePrice.Validate())
}

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := CreateUserRequest{
		Name:     "Jordan Reyes",
		Email:    "jordan@example.com",
		Role:     "developer",
		Password: "password1",
	}
	assert.NoError(t, valid.Validate())

	badRole := valid
	badRole.Role = "owner"
	assert.Error(t, badRole.Validate())

	shortPassword := valid
	shortPassword.Password = "short"
	assert.Error(t, shortPassword.Validate())
}
