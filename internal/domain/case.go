package domain

import "time"

// Case is a portfolio entry published by a company. Company-directed
// inquiries may reference the case that prompted them.
type Case struct {
	ID          int64
	CompanyID   int64
	Title       string
	Description string
	Published   bool
	TagIDs      []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
