package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iemarche/inquiry-service/internal/auth"
	"github.com/iemarche/inquiry-service/internal/config"
	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/repository"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// AuthService coordinates customer registration and the three login flows.
type AuthService struct {
	admins     repository.AdminRepository
	members    repository.MemberRepository
	customers  repository.CustomerRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AdminRepo    repository.AdminRepository
	MemberRepo   repository.MemberRepository
	CustomerRepo repository.CustomerRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:     deps.AdminRepo,
		members:    deps.MemberRepo,
		customers:  deps.CustomerRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterCustomer creates a customer account. This backs the sign-up gate
// in front of company-directed inquiries: the resulting profile pre-fills
// the requester fields.
func (s *AuthService) RegisterCustomer(ctx context.Context, name, email, password string, phone *string) (*domain.Customer, string, time.Time, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("name, email and password required", nil)
	}

	if _, err := s.customers.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	customer := &domain.Customer{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, domain.RoleCustomer, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// LoginCustomer authenticates a customer.
func (s *AuthService) LoginCustomer(ctx context.Context, email, password string) (*domain.Customer, string, time.Time, error) {
	customer, err := s.customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, invalidCredentials(err)
	}
	if err := auth.ComparePassword(customer.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(customer.ID, domain.RoleCustomer, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return customer, token, exp, nil
}

// LoginMember authenticates a company member; the token carries the
// member's company scope.
func (s *AuthService) LoginMember(ctx context.Context, email, password string) (*domain.Member, string, time.Time, error) {
	member, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, invalidCredentials(err)
	}
	if !member.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("member deactivated")
	}
	if err := auth.ComparePassword(member.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(member.ID, domain.RoleMember, &member.CompanyID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return member, token, exp, nil
}

// LoginAdmin authenticates a platform operator.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, invalidCredentials(err)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(admin.ID, domain.RoleAdmin, nil)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// UpdateCustomerProfile changes the name and phone used to pre-fill
// company-directed inquiry forms. Email stays fixed; it is the login key.
func (s *AuthService) UpdateCustomerProfile(ctx context.Context, customerID int64, name string, phone *string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("customer", nil)
		}
		return nil, err
	}
	customer.Name = name
	customer.Phone = phone
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// ListCompanyMembers returns the staff accounts of one company. Admin only.
func (s *AuthService) ListCompanyMembers(ctx context.Context, actor domain.Actor, companyID int64) ([]domain.Member, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewAuthorizationError("admin required")
	}
	return s.members.ListByCompany(ctx, companyID)
}

// SetMemberActive toggles a member account. Deactivated members fail login
// and token resolution on their next request. Admin only.
func (s *AuthService) SetMemberActive(ctx context.Context, actor domain.Actor, memberID int64, active bool) (*domain.Member, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewAuthorizationError("admin required")
	}
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("member", nil)
		}
		return nil, err
	}
	member.Active = active
	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// invalidCredentials hides account existence behind a uniform login error.
func invalidCredentials(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	return err
}
