package domain

import "time"

// Company is a home-construction company (工務店) listed in the directory.
// Deleting a company cascades its cases, members and inquiry history.
type Company struct {
	ID         int64
	Name       string
	Prefecture string
	Profile    string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
