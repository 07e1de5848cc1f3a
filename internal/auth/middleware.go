package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/repository"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller. Exactly one of Admin,
// Member or Customer is set, matching Actor.Role.
type Principal struct {
	Actor    domain.Actor
	Admin    *domain.Admin
	Member   *domain.Member
	Customer *domain.Customer
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens    *TokenManager
	admins    repository.AdminRepository
	members   repository.MemberRepository
	customers repository.CustomerRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, admins repository.AdminRepository, members repository.MemberRepository, customers repository.CustomerRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, admins: admins, members: members, customers: customers}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

// HandleOptional loads a principal when a bearer token is present and lets
// anonymous requests through. Used by the public inquiry submission route,
// where a logged-in customer gets linked to the created record.
func (m *AuthMiddleware) HandleOptional(c *fiber.Ctx) error {
	if c.Get("Authorization") == "" {
		return c.Next()
	}
	principal, err := m.resolve(c)
	if err != nil {
		return err
	}
	c.Locals(principalKey, principal)
	return c.Next()
}

func (m *AuthMiddleware) resolve(c *fiber.Ctx) (*Principal, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	principal := &Principal{Actor: domain.Actor{Role: claims.Role, AccountID: claims.AccountID}}

	switch claims.Role {
	case domain.RoleAdmin:
		admin, err := m.admins.GetByID(c.Context(), claims.AccountID)
		if err != nil {
			return nil, mapLookupErr(err, "admin")
		}
		principal.Admin = admin
		principal.Actor.Name = admin.Name
	case domain.RoleMember:
		member, err := m.members.GetByID(c.Context(), claims.AccountID)
		if err != nil {
			return nil, mapLookupErr(err, "member")
		}
		if !member.Active {
			return nil, apperrors.NewUnauthorized("member deactivated")
		}
		principal.Member = member
		principal.Actor.Name = member.Name
		principal.Actor.CompanyID = &member.CompanyID
	case domain.RoleCustomer:
		customer, err := m.customers.GetByID(c.Context(), claims.AccountID)
		if err != nil {
			return nil, mapLookupErr(err, "customer")
		}
		principal.Customer = customer
		principal.Actor.Name = customer.Name
	default:
		return nil, apperrors.NewUnauthorized("unknown role")
	}

	return principal, nil
}

func mapLookupErr(err error, role string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewUnauthorized(role + " not found")
	}
	return apperrors.MapError(err)
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
