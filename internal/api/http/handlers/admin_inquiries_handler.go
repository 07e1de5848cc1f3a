package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// AdminInquiriesHandler is the platform operator console. The general and
// company-inquiry views are selected by the `directed` query parameter.
type AdminInquiriesHandler struct {
	inquiries *service.InquiryService
	directory *service.DirectoryService
}

// NewAdminInquiriesHandler constructs handler.
func NewAdminInquiriesHandler(inquiryService *service.InquiryService, directoryService *service.DirectoryService) *AdminInquiriesHandler {
	return &AdminInquiriesHandler{inquiries: inquiryService, directory: directoryService}
}

// ListInquiries GET /admin/inquiries?directed=true|false&company_id=&status=.
func (h *AdminInquiriesHandler) ListInquiries(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	filter := parseListFilter(c)
	if directed := c.Query("directed"); directed != "" {
		parsed, err := strconv.ParseBool(directed)
		if err != nil {
			return apperrors.NewValidationError("directed must be a boolean", nil)
		}
		filter.CompanyDirected = &parsed
	}
	if companyID := c.Query("company_id"); companyID != "" {
		parsed, err := strconv.ParseInt(companyID, 10, 64)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("invalid company_id", nil)
		}
		filter.CompanyID = &parsed
	}
	inquiries, err := h.inquiries.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	summaries := inquirySummaries(inquiries)
	if ids := summaryCompanyIDs(summaries); len(ids) > 0 {
		names, err := h.directory.CompanyNames(c.Context(), ids)
		if err != nil {
			return err
		}
		applyCompanyNames(summaries, names)
	}
	return c.JSON(fiber.Map{"data": summaries})
}

// summaryCompanyIDs collects the distinct company ids referenced by a page
// of inquiry summaries.
func summaryCompanyIDs(items []dto.InquirySummary) []int64 {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for i := range items {
		if id := items[i].CompanyID; id != nil && !seen[*id] {
			seen[*id] = true
			ids = append(ids, *id)
		}
	}
	return ids
}

func applyCompanyNames(items []dto.InquirySummary, names map[int64]string) {
	for i := range items {
		if id := items[i].CompanyID; id != nil {
			if name, ok := names[*id]; ok {
				items[i].CompanyName = &name
			}
		}
	}
}

// GetInquiry GET /admin/inquiries/:id.
func (h *AdminInquiriesHandler) GetInquiry(c *fiber.Ctx) error {
	actor, err := adminActor(c)
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

// UpdateStatus PATCH /admin/inquiries/:id/status.
func (h *AdminInquiriesHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := adminActor(c)
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

// UpdateNotes PATCH /admin/inquiries/:id/notes.
func (h *AdminInquiriesHandler) UpdateNotes(c *fiber.Ctx) error {
	actor, err := adminActor(c)
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

// AddResponse POST /admin/inquiries/:id/responses.
func (h *AdminInquiriesHandler) AddResponse(c *fiber.Ctx) error {
	actor, err := adminActor(c)
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

// DeleteCompany DELETE /admin/companies/:id. Cascades the company's cases,
// members and inquiry history.
func (h *AdminInquiriesHandler) DeleteCompany(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.directory.DeleteCompany(c.Context(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func adminActor(c *fiber.Ctx) (domain.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return domain.Actor{}, apperrors.NewUnauthorized("admin required")
	}
	return principal.Actor, nil
}
