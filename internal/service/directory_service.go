package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/repository"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// DirectoryService serves the public company directory and case listings,
// plus the admin-side company deletion that cascades inquiry history.
type DirectoryService struct {
	companies repository.CompanyRepository
	cases     repository.CaseRepository
	logger    *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(companies repository.CompanyRepository, cases repository.CaseRepository, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{companies: companies, cases: cases, logger: logger}
}

// ListCompanies returns active companies for the public directory.
func (s *DirectoryService) ListCompanies(ctx context.Context, limit, offset int) ([]domain.Company, error) {
	return s.companies.List(ctx, true, limit, offset)
}

// GetCompany returns one directory entry.
func (s *DirectoryService) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("company", nil)
		}
		return nil, err
	}
	return company, nil
}

// CompanyNames resolves display names for the given company ids. Ids with
// no matching company are absent from the result.
func (s *DirectoryService) CompanyNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	return s.companies.NamesByIDs(ctx, ids)
}

// ListCases returns published cases, optionally narrowed to one company or
// one tag.
func (s *DirectoryService) ListCases(ctx context.Context, companyID, tagID *int64, limit, offset int) ([]domain.Case, error) {
	return s.cases.ListWithFilter(ctx, repository.CaseFilter{
		CompanyID:     companyID,
		TagID:         tagID,
		PublishedOnly: true,
		Limit:         limit,
		Offset:        offset,
	})
}

// GetCase returns one published case.
func (s *DirectoryService) GetCase(ctx context.Context, id int64) (*domain.Case, error) {
	kase, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", nil)
		}
		return nil, err
	}
	if !kase.Published {
		return nil, apperrors.NewNotFound("case", nil)
	}
	return kase, nil
}

// CaseInput describes a portfolio case to publish.
type CaseInput struct {
	Title       string
	Description string
	Published   bool
	TagIDs      []int64
}

// CreateCase publishes a portfolio case for the actor's company. Members
// write into their own company; admins must not use this path.
func (s *DirectoryService) CreateCase(ctx context.Context, actor domain.Actor, input CaseInput) (*domain.Case, error) {
	if actor.Role != domain.RoleMember || actor.CompanyID == nil {
		return nil, apperrors.NewAuthorizationError("company member required")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}

	kase := &domain.Case{
		CompanyID:   *actor.CompanyID,
		Title:       title,
		Description: input.Description,
		Published:   input.Published,
	}
	if err := s.cases.Create(ctx, kase); err != nil {
		return nil, err
	}
	if len(input.TagIDs) > 0 {
		if err := s.cases.SetTags(ctx, kase.ID, input.TagIDs); err != nil {
			return nil, err
		}
		kase.TagIDs = append([]int64{}, input.TagIDs...)
	}
	return kase, nil
}

// SetCaseTags replaces the tag links on one of the member's own cases.
func (s *DirectoryService) SetCaseTags(ctx context.Context, actor domain.Actor, caseID int64, tagIDs []int64) (*domain.Case, error) {
	if actor.Role != domain.RoleMember || actor.CompanyID == nil {
		return nil, apperrors.NewAuthorizationError("company member required")
	}
	kase, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("case", nil)
		}
		return nil, err
	}
	if kase.CompanyID != *actor.CompanyID {
		return nil, apperrors.NewAuthorizationError("case belongs to another company")
	}
	if err := s.cases.SetTags(ctx, caseID, tagIDs); err != nil {
		return nil, err
	}
	kase.TagIDs = append([]int64{}, tagIDs...)
	return kase, nil
}

// DeleteCompany removes a company and, by schema cascade, its members,
// cases and inquiry history. Admin only.
func (s *DirectoryService) DeleteCompany(ctx context.Context, actor domain.Actor, id int64) error {
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewAuthorizationError("admin required")
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("company", nil)
		}
		return err
	}
	s.logger.Info("company deleted with cascading inquiry history", zap.Int64("company_id", id))
	return nil
}
