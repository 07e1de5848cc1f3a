package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/repository"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// TagService manages the tag taxonomy used for case browsing. Mutations are
// admin-only; ordering is manual via neighbor swaps.
type TagService struct {
	tags repository.TagRepository
}

// NewTagService constructs the service.
func NewTagService(tags repository.TagRepository) *TagService {
	return &TagService{tags: tags}
}

// List returns all tags in display order. Open to any caller.
func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

// Create appends a tag at the end of the display order.
func (s *TagService) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Tag, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	max, err := s.tags.MaxDisplayOrder(ctx)
	if err != nil {
		return nil, err
	}
	tag := &domain.Tag{Name: name, DisplayOrder: max + 1}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Rename changes a tag's name, keeping its position.
func (s *TagService) Rename(ctx context.Context, actor domain.Actor, id int64, name string) (*domain.Tag, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tag", nil)
		}
		return nil, err
	}
	tag.Name = name
	if err := s.tags.Update(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// Delete removes a tag; case links go away with it.
func (s *TagService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.tags.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("tag", nil)
		}
		return err
	}
	return nil
}

// Move swaps the tag's display order with its immediate neighbor in the
// given direction. Moving past the edge of the list is a validation error.
func (s *TagService) Move(ctx context.Context, actor domain.Actor, id int64, direction domain.MoveDirection) (*domain.Tag, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if direction != domain.MoveUp && direction != domain.MoveDown {
		return nil, apperrors.NewValidationError("direction must be UP or DOWN", nil)
	}

	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range tags {
		if tags[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFound("tag", nil)
	}

	neighbor := idx - 1
	if direction == domain.MoveDown {
		neighbor = idx + 1
	}
	if neighbor < 0 || neighbor >= len(tags) {
		return nil, apperrors.NewValidationError("tag is already at the edge", nil)
	}

	if err := s.tags.SwapDisplayOrder(ctx, &tags[idx], &tags[neighbor]); err != nil {
		return nil, err
	}
	return &tags[idx], nil
}

func requireAdmin(actor domain.Actor) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewAuthorizationError("admin required")
	}
	return nil
}
