package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// DirectoryHandler serves the public company directory, case listings and
// tag taxonomy.
type DirectoryHandler struct {
	directory *service.DirectoryService
	tags      *service.TagService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directoryService *service.DirectoryService, tagService *service.TagService) *DirectoryHandler {
	return &DirectoryHandler{directory: directoryService, tags: tagService}
}

// ListCompanies GET /companies.
func (h *DirectoryHandler) ListCompanies(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	companies, err := h.directory.ListCompanies(c.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.CompanySummary, 0, len(companies))
	for i := range companies {
		items = append(items, companySummary(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetCompany GET /companies/:id.
func (h *DirectoryHandler) GetCompany(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	company, err := h.directory.GetCompany(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companySummary(company)})
}

// ListCompanyCases GET /companies/:id/cases.
func (h *DirectoryHandler) ListCompanyCases(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	cases, err := h.directory.ListCases(c.Context(), &id, nil, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseSummaries(cases)})
}

// ListCases GET /cases?tag_id=.
func (h *DirectoryHandler) ListCases(c *fiber.Ctx) error {
	var tagID *int64
	if raw := c.Query("tag_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return apperrors.NewValidationError("invalid tag_id", nil)
		}
		tagID = &parsed
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	cases, err := h.directory.ListCases(c.Context(), nil, tagID, pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseSummaries(cases)})
}

// GetCase GET /cases/:id.
func (h *DirectoryHandler) GetCase(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	kase, err := h.directory.GetCase(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": caseSummary(kase)})
}

// ListTags GET /tags.
func (h *DirectoryHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.tags.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TagResponse, 0, len(tags))
	for i := range tags {
		items = append(items, tagResponse(&tags[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func companySummary(company *domain.Company) dto.CompanySummary {
	return dto.CompanySummary{
		ID:         company.ID,
		Name:       company.Name,
		Prefecture: company.Prefecture,
		Profile:    company.Profile,
	}
}

func caseSummaries(cases []domain.Case) []dto.CaseSummary {
	items := make([]dto.CaseSummary, 0, len(cases))
	for i := range cases {
		items = append(items, caseSummary(&cases[i]))
	}
	return items
}

func caseSummary(kase *domain.Case) dto.CaseSummary {
	return dto.CaseSummary{
		ID:          kase.ID,
		CompanyID:   kase.CompanyID,
		Title:       kase.Title,
		Description: kase.Description,
		TagIDs:      kase.TagIDs,
		CreatedAt:   kase.CreatedAt,
	}
}

func tagResponse(tag *domain.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:           tag.ID,
		Name:         tag.Name,
		DisplayOrder: tag.DisplayOrder,
	}
}
