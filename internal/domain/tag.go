package domain

import "time"

// MoveDirection selects which neighbor a tag swaps display order with.
type MoveDirection string

const (
	MoveUp   MoveDirection = "UP"
	MoveDown MoveDirection = "DOWN"
)

// Tag is a taxonomy label for case browsing. Ordering is manual: a tag is
// reordered by swapping display_order with its immediate neighbor.
type Tag struct {
	ID           int64
	Name         string
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
