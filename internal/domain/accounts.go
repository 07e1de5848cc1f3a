package domain

import "time"

// Admin is a platform operator account.
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Member is a company staff account, scoped to exactly one company.
type Member struct {
	ID           int64
	CompanyID    int64
	Name         string
	Email        string
	PasswordHash string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Customer is a registered requester account. Phone is optional and used to
// pre-fill company-directed inquiry forms.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
