package dto

import "time"

// CustomerRegisterRequest payload for new customers.
type CustomerRegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password"`
}

// LoginRequest payload shared by the three login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UpdateCustomerProfileRequest payload; email is not editable.
type UpdateCustomerProfileRequest struct {
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

// CustomerProfile echoes the profile used to pre-fill inquiry forms.
type CustomerProfile struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}

// MemberSummary company staff account as seen by the operator console.
type MemberSummary struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Active    bool   `json:"active"`
}

// SetMemberActiveRequest payload.
type SetMemberActiveRequest struct {
	Active bool `json:"active"`
}
