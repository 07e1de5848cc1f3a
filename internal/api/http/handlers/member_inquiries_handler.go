package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// MemberInquiriesHandler is the company-member console: inquiries addressed
// to the member's own company.
type MemberInquiriesHandler struct {
	inquiries *service.InquiryService
}

// NewMemberInquiriesHandler constructs handler.
func NewMemberInquiriesHandler(inquiryService *service.InquiryService) *MemberInquiriesHandler {
	return &MemberInquiriesHandler{inquiries: inquiryService}
}

// ListInquiries GET /member/inquiries.
func (h *MemberInquiriesHandler) ListInquiries(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	inquiries, err := h.inquiries.List(c.Context(), actor, parseListFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquirySummaries(inquiries)})
}

// GetInquiry GET /member/inquiries/:id.
func (h *MemberInquiriesHandler) GetInquiry(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	inquiry, thread, err := h.inquiries.Get(c.Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquiryDetail(inquiry, thread)})
}

// UpdateStatus PATCH /member/inquiries/:id/status.
func (h *MemberInquiriesHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	inquiry, err := h.inquiries.UpdateStatus(c.Context(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquirySummary(inquiry)})
}

// UpdateNotes PATCH /member/inquiries/:id/notes.
func (h *MemberInquiriesHandler) UpdateNotes(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	inquiry, err := h.inquiries.UpdateNotes(c.Context(), actor, id, req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquirySummary(inquiry)})
}

// AddResponse POST /member/inquiries/:id/responses.
func (h *MemberInquiriesHandler) AddResponse(c *fiber.Ctx) error {
	actor, err := memberActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AppendResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	response, err := h.inquiries.AppendResponse(c.Context(), actor, id, req.Message)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": responseBody(response)})
}

func memberActor(c *fiber.Ctx) (domain.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Member == nil {
		return domain.Actor{}, apperrors.NewUnauthorized("member required")
	}
	return principal.Actor, nil
}
