package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// MemberCasesHandler lets company members publish portfolio cases.
type MemberCasesHandler struct {
	directory *service.DirectoryService
}

// NewMemberCasesHandler constructs handler.
func NewMemberCasesHandler(directoryService *service.DirectoryService) *MemberCasesHandler {
	return &MemberCasesHandler{directory: directoryService}
}

// CreateCase POST /member/cases.
func (h *MemberCasesHandler) CreateCase(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	kase, err := h.directory.CreateCase(c.Context(), actor, service.CaseInput{
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": caseSummary(kase)})
}

// SetCaseTags PUT /member/cases/:id/tags.
func (h *MemberCasesHandler) SetCaseTags(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetCaseTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	kase, err := h.directory.SetCaseTags(c.Context(), actor, id, req.TagIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseSummary(kase)})
}
