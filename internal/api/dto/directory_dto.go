package dto

import "time"

// CompanySummary directory entry.
type CompanySummary struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Prefecture string `json:"prefecture"`
	Profile    string `json:"profile"`
}

// CaseSummary portfolio entry.
type CaseSummary struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"company_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TagIDs      []int64   `json:"tag_ids,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TagResponse taxonomy entry.
type TagResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// CreateCaseRequest payload for member case publishing.
type CreateCaseRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Published   bool    `json:"published"`
	TagIDs      []int64 `json:"tag_ids"`
}

// SetCaseTagsRequest payload.
type SetCaseTagsRequest struct {
	TagIDs []int64 `json:"tag_ids"`
}

// CreateTagRequest payload.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// RenameTagRequest payload.
type RenameTagRequest struct {
	Name string `json:"name"`
}

// MoveTagRequest payload; direction is UP or DOWN.
type MoveTagRequest struct {
	Direction string `json:"direction"`
}
