package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/iemarche/inquiry-service/internal/api/dto"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/service"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// AdminMembersHandler covers operator moderation of company staff accounts.
type AdminMembersHandler struct {
	auth *service.AuthService
}

// NewAdminMembersHandler constructs handler.
func NewAdminMembersHandler(authService *service.AuthService) *AdminMembersHandler {
	return &AdminMembersHandler{auth: authService}
}

// ListCompanyMembers GET /admin/companies/:id/members.
func (h *AdminMembersHandler) ListCompanyMembers(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	companyID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.auth.ListCompanyMembers(c.Context(), actor, companyID)
	if err != nil {
		return err
	}
	items := make([]dto.MemberSummary, 0, len(members))
	for i := range members {
		items = append(items, memberSummary(&members[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SetMemberActive PATCH /admin/members/:id/active.
func (h *AdminMembersHandler) SetMemberActive(c *fiber.Ctx) error {
	actor, err := adminActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.SetMemberActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]any{"body": err.Error()})
	}
	member, err := h.auth.SetMemberActive(c.Context(), actor, id, req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": memberSummary(member)})
}

func memberSummary(member *domain.Member) dto.MemberSummary {
	return dto.MemberSummary{
		ID:        member.ID,
		CompanyID: member.CompanyID,
		Name:      member.Name,
		Email:     member.Email,
		Active:    member.Active,
	}
}
