package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// InquiriesHandler covers the public submission endpoint and the customer
// console.
type InquiriesHandler struct {
	inquiries *service.InquiryService
}

// NewInquiriesHandler constructs handler.
func NewInquiriesHandler(inquiryService *service.InquiryService) *InquiriesHandler {
	return &InquiriesHandler{inquiries: inquiryService}
}

// SubmitInquiry POST /inquiries. Anonymous for general inquiries; a bearer
// token links the record to the customer and pre-fills requester fields
// from the profile.
func (h *InquiriesHandler) SubmitInquiry(c *fiber.Ctx) error {
	var req dto.SubmitInquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.SubmitInput{
		InquirerName:  req.InquirerName,
		InquirerEmail: req.InquirerEmail,
		InquirerPhone: req.InquirerPhone,
		Message:       req.Message,
		CompanyID:     req.CompanyID,
		CaseID:        req.CaseID,
	}
	if principal, ok := auth.PrincipalFromContext(c); ok {
		if principal.Customer == nil {
			return apperrors.NewAuthorizationError("staff cannot submit inquiries")
		}
		input.Customer = principal.Customer
	}

	inquiry, err := h.inquiries.Submit(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": inquirySummary(inquiry)})
}

// LookupInquiry GET /inquiries/lookup/:key. Anonymous follow-up on a
// submission by its INQ- reference key; notes are never included.
func (h *InquiriesHandler) LookupInquiry(c *fiber.Ctx) error {
	inquiry, thread, err := h.inquiries.LookupByReference(c.Context(), c.Params("key"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquiryDetail(inquiry, thread)})
}

// ListMyInquiries GET /inquiries.
func (h *InquiriesHandler) ListMyInquiries(c *fiber.Ctx) error {
	actor, err := customerActor(c)
	if err != nil {
		return err
	}
	filter := parseListFilter(c)
	inquiries, err := h.inquiries.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": inquirySummaries(inquiries)})
}

// GetMyInquiry GET /inquiries/:id.
func (h *InquiriesHandler) GetMyInquiry(c *fiber.Ctx) error {
	actor, err := customerActor(c)
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

// AddMyResponse POST /inquiries/:id/responses.
func (h *InquiriesHandler) AddMyResponse(c *fiber.Ctx) error {
	actor, err := customerActor(c)
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

func customerActor(c *fiber.Ctx) (domain.Actor, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Customer == nil {
		return domain.Actor{}, apperrors.NewUnauthorized("customer required")
	}
	return principal.Actor, nil
}

func parseListFilter(c *fiber.Ctx) service.ListFilter {
	filter := service.ListFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.InquiryStatus(strings.TrimSpace(part)))
		}
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", nil)
	}
	return id, nil
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func inquirySummaries(inquiries []domain.Inquiry) []dto.InquirySummary {
	items := make([]dto.InquirySummary, 0, len(inquiries))
	for i := range inquiries {
		items = append(items, inquirySummary(&inquiries[i]))
	}
	return items
}

func inquirySummary(inquiry *domain.Inquiry) dto.InquirySummary {
	return dto.InquirySummary{
		ID:            inquiry.ID,
		ReferenceKey:  inquiry.ReferenceKey,
		CompanyID:     inquiry.CompanyID,
		CaseID:        inquiry.CaseID,
		InquirerName:  inquiry.InquirerName,
		InquirerEmail: inquiry.InquirerEmail,
		Status:        inquiry.Status,
		RespondedAt:   inquiry.RespondedAt,
		CreatedAt:     inquiry.CreatedAt,
		UpdatedAt:     inquiry.UpdatedAt,
	}
}

func inquiryDetail(inquiry *domain.Inquiry, thread []domain.Response) dto.InquiryDetailResponse {
	responses := make([]dto.ResponseBody, 0, len(thread))
	for i := range thread {
		responses = append(responses, responseBody(&thread[i]))
	}
	return dto.InquiryDetailResponse{
		ID:            inquiry.ID,
		ReferenceKey:  inquiry.ReferenceKey,
		CompanyID:     inquiry.CompanyID,
		CaseID:        inquiry.CaseID,
		CustomerID:    inquiry.CustomerID,
		InquirerName:  inquiry.InquirerName,
		InquirerEmail: inquiry.InquirerEmail,
		InquirerPhone: inquiry.InquirerPhone,
		Message:       inquiry.Message,
		Status:        inquiry.Status,
		InternalNotes: inquiry.InternalNotes,
		RespondedAt:   inquiry.RespondedAt,
		CreatedAt:     inquiry.CreatedAt,
		UpdatedAt:     inquiry.UpdatedAt,
		Responses:     responses,
	}
}

func responseBody(response *domain.Response) dto.ResponseBody {
	return dto.ResponseBody{
		ID:         response.ID,
		Sender:     response.Sender,
		SenderName: response.SenderName,
		Message:    response.Message,
		CreatedAt:  response.CreatedAt,
	}
}
