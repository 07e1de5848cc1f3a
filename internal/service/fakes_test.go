package service_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/repository"
)

// In-memory repository fakes. They mirror the Postgres implementations
// closely enough for service semantics: pgx.ErrNoRows for misses,
// timestamps assigned at write time, thread ordering by insertion.

type memInquiryRepo struct {
	nextID    int64
	inquiries map[int64]*domain.Inquiry
}

func newMemInquiryRepo() *memInquiryRepo {
	return &memInquiryRepo{nextID: 1, inquiries: map[int64]*domain.Inquiry{}}
}

func (r *memInquiryRepo) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	inquiry.ID = r.nextID
	r.nextID++
	inquiry.CreatedAt = time.Now()
	inquiry.UpdatedAt = inquiry.CreatedAt
	clone := *inquiry
	r.inquiries[inquiry.ID] = &clone
	return nil
}

func (r *memInquiryRepo) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	stored, ok := r.inquiries[inquiry.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Status = inquiry.Status
	stored.InternalNotes = inquiry.InternalNotes
	stored.RespondedAt = inquiry.RespondedAt
	stored.UpdatedAt = time.Now()
	inquiry.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *memInquiryRepo) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	stored, ok := r.inquiries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memInquiryRepo) GetByReferenceKey(ctx context.Context, key string) (*domain.Inquiry, error) {
	for _, stored := range r.inquiries {
		if stored.ReferenceKey == key {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memInquiryRepo) ListWithFilter(ctx context.Context, filter repository.InquiryFilter) ([]domain.Inquiry, error) {
	var result []domain.Inquiry
	for id := int64(1); id < r.nextID; id++ {
		stored, ok := r.inquiries[id]
		if !ok {
			continue
		}
		if filter.CompanyID != nil && (stored.CompanyID == nil || *stored.CompanyID != *filter.CompanyID) {
			continue
		}
		if filter.CustomerID != nil && (stored.CustomerID == nil || *stored.CustomerID != *filter.CustomerID) {
			continue
		}
		if filter.GeneralOnly && stored.CompanyID != nil {
			continue
		}
		if filter.CompanyDirectedOnly && stored.CompanyID == nil {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, stored.Status) {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func containsStatus(statuses []domain.InquiryStatus, s domain.InquiryStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

type memResponseRepo struct {
	nextID    int64
	responses []domain.Response
}

func newMemResponseRepo() *memResponseRepo {
	return &memResponseRepo{nextID: 1}
}

func (r *memResponseRepo) Create(ctx context.Context, response *domain.Response) error {
	response.ID = r.nextID
	r.nextID++
	response.CreatedAt = time.Now()
	r.responses = append(r.responses, *response)
	return nil
}

func (r *memResponseRepo) ListByInquiry(ctx context.Context, inquiryID int64) ([]domain.Response, error) {
	var result []domain.Response
	for _, stored := range r.responses {
		if stored.InquiryID == inquiryID {
			result = append(result, stored)
		}
	}
	return result, nil
}

type memCompanyRepo struct {
	nextID    int64
	companies map[int64]*domain.Company
}

func newMemCompanyRepo() *memCompanyRepo {
	return &memCompanyRepo{nextID: 1, companies: map[int64]*domain.Company{}}
}

func (r *memCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	company.ID = r.nextID
	r.nextID++
	clone := *company
	r.companies[company.ID] = &clone
	return nil
}

func (r *memCompanyRepo) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	stored, ok := r.companies[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memCompanyRepo) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Company, error) {
	var result []domain.Company
	for id := int64(1); id < r.nextID; id++ {
		stored, ok := r.companies[id]
		if !ok {
			continue
		}
		if activeOnly && !stored.IsActive {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memCompanyRepo) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	for _, id := range ids {
		if stored, ok := r.companies[id]; ok {
			names[id] = stored.Name
		}
	}
	return names, nil
}

func (r *memCompanyRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.companies[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.companies, id)
	return nil
}

type memCaseRepo struct {
	nextID int64
	cases  map[int64]*domain.Case
}

func newMemCaseRepo() *memCaseRepo {
	return &memCaseRepo{nextID: 1, cases: map[int64]*domain.Case{}}
}

func (r *memCaseRepo) Create(ctx context.Context, c *domain.Case) error {
	c.ID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	clone := *c
	r.cases[c.ID] = &clone
	return nil
}

func (r *memCaseRepo) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	stored, ok := r.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memCaseRepo) ListWithFilter(ctx context.Context, filter repository.CaseFilter) ([]domain.Case, error) {
	var result []domain.Case
	for id := int64(1); id < r.nextID; id++ {
		stored, ok := r.cases[id]
		if !ok {
			continue
		}
		if filter.CompanyID != nil && stored.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.PublishedOnly && !stored.Published {
			continue
		}
		if filter.TagID != nil && !containsID(stored.TagIDs, *filter.TagID) {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *memCaseRepo) SetTags(ctx context.Context, caseID int64, tagIDs []int64) error {
	stored, ok := r.cases[caseID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.TagIDs = append([]int64{}, tagIDs...)
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

type memTagRepo struct {
	nextID int64
	tags   map[int64]*domain.Tag
}

func newMemTagRepo() *memTagRepo {
	return &memTagRepo{nextID: 1, tags: map[int64]*domain.Tag{}}
}

func (r *memTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	tag.ID = r.nextID
	r.nextID++
	clone := *tag
	r.tags[tag.ID] = &clone
	return nil
}

func (r *memTagRepo) Update(ctx context.Context, tag *domain.Tag) error {
	stored, ok := r.tags[tag.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Name = tag.Name
	stored.DisplayOrder = tag.DisplayOrder
	return nil
}

func (r *memTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	stored, ok := r.tags[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *memTagRepo) List(ctx context.Context) ([]domain.Tag, error) {
	var result []domain.Tag
	for _, stored := range r.tags {
		result = append(result, *stored)
	}
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].DisplayOrder < result[i].DisplayOrder {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *memTagRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tags[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tags, id)
	return nil
}

func (r *memTagRepo) MaxDisplayOrder(ctx context.Context) (int, error) {
	max := 0
	for _, stored := range r.tags {
		if stored.DisplayOrder > max {
			max = stored.DisplayOrder
		}
	}
	return max, nil
}

func (r *memTagRepo) SwapDisplayOrder(ctx context.Context, a, b *domain.Tag) error {
	storedA, okA := r.tags[a.ID]
	storedB, okB := r.tags[b.ID]
	if !okA || !okB {
		return pgx.ErrNoRows
	}
	storedA.DisplayOrder, storedB.DisplayOrder = storedB.DisplayOrder, storedA.DisplayOrder
	a.DisplayOrder, b.DisplayOrder = storedA.DisplayOrder, storedB.DisplayOrder
	return nil
}
