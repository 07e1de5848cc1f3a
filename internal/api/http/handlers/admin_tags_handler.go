package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// AdminTagsHandler exposes the admin-only tag taxonomy mutations.
type AdminTagsHandler struct {
	tags *service.TagService
}

// NewAdminTagsHandler constructs handler.
func NewAdminTagsHandler(tagService *service.TagService) *AdminTagsHandler {
	return &AdminTagsHandler{tags: tagService}
}

// CreateTag POST /admin/tags.
func (h *AdminTagsHandler) CreateTag(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": err.Error()})
	}
	tag, err := h.tags.Create(c.Context(), actor, req.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": tagResponse(tag)})
}

// RenameTag PATCH /admin/tags/:id.
func (h *AdminTagsHandler) RenameTag(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.RenameTagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": err.Error()})
	}
	tag, err := h.tags.Rename(c.Context(), actor, id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tagResponse(tag)})
}

// MoveTag POST /admin/tags/:id/move.
func (h *AdminTagsHandler) MoveTag(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.MoveTagRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": err.Error()})
	}
	tag, err := h.tags.Move(c.Context(), actor, id, domain.MoveDirection(req.Direction))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tagResponse(tag)})
}

// DeleteTag DELETE /admin/tags/:id.
func (h *AdminTagsHandler) DeleteTag(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.tags.Delete(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
