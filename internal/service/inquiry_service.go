package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/iemarche/inquiry-service/internal/domain"
	"github.com/iemarche/inquiry-service/internal/events"
	"github.com/iemarche/inquiry-service/internal/repository"
	apperrors "github.com/iemarche/inquiry-service/pkg/util"
)

// InquiryService coordinates the inquiry and response workflow shared by the
// admin, member and customer consoles.
type InquiryService struct {
	inquiries  repository.InquiryRepository
	responses  repository.ResponseRepository
	companies  repository.CompanyRepository
	cases      repository.CaseRepository
	dispatcher events.Dispatcher
	limiter    *SubmitLimiter
	logger     *zap.Logger
}

// InquiryDependencies bundles collaborators for the inquiry service.
type InquiryDependencies struct {
	InquiryRepo  repository.InquiryRepository
	ResponseRepo repository.ResponseRepository
	CompanyRepo  repository.CompanyRepository
	CaseRepo     repository.CaseRepository
	Dispatcher   events.Dispatcher
	Limiter      *SubmitLimiter
	Logger       *zap.Logger
}

// SubmitInput describes an inquiry submission. Customer is non-nil when the
// requester is authenticated; its profile then supplies the requester fields
// and the created record is linked to the account.
type SubmitInput struct {
	InquirerName  string
	InquirerEmail string
	InquirerPhone *string
	Message       string
	CompanyID     *int64
	CaseID        *int64
	Customer      *domain.Customer
}

// ListFilter narrows role-scoped listings. CompanyDirected selects between
// the admin console's general and company-inquiry views; it is ignored for
// member and customer actors, whose scope is fixed by their identity.
type ListFilter struct {
	Statuses        []domain.InquiryStatus
	CompanyDirected *bool
	CompanyID       *int64
	Limit           int
	Offset          int
}

// NewInquiryService constructs the service.
func NewInquiryService(deps InquiryDependencies) *InquiryService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InquiryService{
		inquiries:  deps.InquiryRepo,
		responses:  deps.ResponseRepo,
		companies:  deps.CompanyRepo,
		cases:      deps.CaseRepo,
		dispatcher: deps.Dispatcher,
		limiter:    deps.Limiter,
		logger:     logger,
	}
}

// Submit records a new inquiry in state NEW. General inquiries may be
// anonymous; company-directed inquiries require an authenticated customer.
func (s *InquiryService) Submit(ctx context.Context, input SubmitInput) (*domain.Inquiry, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}
	if input.CompanyID == nil && input.CaseID != nil {
		return nil, apperrors.NewValidationError("case_id requires company_id", nil)
	}

	inquiry := &domain.Inquiry{
		ReferenceKey: generateInquiryKey(),
		CompanyID:    input.CompanyID,
		CaseID:       input.CaseID,
		Message:      message,
		Status:       domain.InquiryStatusNew,
	}

	if input.Customer != nil {
		inquiry.CustomerID = &input.Customer.ID
		inquiry.InquirerName = input.Customer.Name
		inquiry.InquirerEmail = input.Customer.Email
		inquiry.InquirerPhone = input.Customer.Phone
	} else {
		inquiry.InquirerName = strings.TrimSpace(input.InquirerName)
		inquiry.InquirerEmail = strings.TrimSpace(input.InquirerEmail)
		inquiry.InquirerPhone = input.InquirerPhone
		if inquiry.InquirerName == "" || inquiry.InquirerEmail == "" {
			return nil, apperrors.NewValidationError("inquirer_name and inquirer_email required", nil)
		}
	}

	if input.CompanyID != nil {
		if input.Customer == nil {
			return nil, apperrors.NewAuthorizationError("company inquiries require a signed-in customer")
		}
		company, err := s.companies.GetByID(ctx, *input.CompanyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("company does not exist", map[string]any{"company_id": *input.CompanyID})
			}
			return nil, err
		}
		if !company.IsActive {
			return nil, apperrors.NewValidationError("company is not accepting inquiries", map[string]any{"company_id": company.ID})
		}
		if input.CaseID != nil {
			kase, err := s.cases.GetByID(ctx, *input.CaseID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return nil, apperrors.NewValidationError("case does not exist", map[string]any{"case_id": *input.CaseID})
				}
				return nil, err
			}
			if kase.CompanyID != *input.CompanyID {
				return nil, apperrors.NewValidationError("case does not belong to company", map[string]any{"case_id": kase.ID})
			}
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, inquiry.InquirerEmail); err != nil {
			return nil, err
		}
	}

	if err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventInquiryCreated,
		InquiryID: inquiry.ID,
		Actor:     submitActor(inquiry.CustomerID),
		Payload: events.InquiryCreatedPayload{
			ReferenceKey:  inquiry.ReferenceKey,
			CompanyID:     inquiry.CompanyID,
			CaseID:        inquiry.CaseID,
			InquirerEmail: inquiry.InquirerEmail,
		},
	})
	return inquiry, nil
}

// List returns inquiries visible to the actor, narrowed by filter.
// Internal notes are stripped from customer results.
func (s *InquiryService) List(ctx context.Context, actor domain.Actor, filter ListFilter) ([]domain.Inquiry, error) {
	for _, status := range filter.Statuses {
		if !domain.ValidInquiryStatus(status) {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
		}
	}

	repoFilter := repository.InquiryFilter{
		Statuses: filter.Statuses,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}

	switch actor.Role {
	case domain.RoleAdmin:
		repoFilter.CompanyID = filter.CompanyID
		if filter.CompanyDirected != nil {
			if *filter.CompanyDirected {
				repoFilter.CompanyDirectedOnly = true
			} else {
				if filter.CompanyID != nil {
					return nil, apperrors.NewValidationError("company_id cannot be combined with the general view", nil)
				}
				repoFilter.GeneralOnly = true
			}
		}
	case domain.RoleMember:
		if actor.CompanyID == nil {
			return nil, apperrors.NewAuthorizationError("member has no company scope")
		}
		repoFilter.CompanyID = actor.CompanyID
	case domain.RoleCustomer:
		customerID := actor.AccountID
		repoFilter.CustomerID = &customerID
	default:
		return nil, apperrors.NewAuthorizationError("unknown actor role")
	}

	result, err := s.inquiries.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleCustomer {
		for i := range result {
			result[i].InternalNotes = ""
		}
	}
	return result, nil
}

// Get fetches one inquiry with its full thread. Inquiries outside the
// actor's scope surface as not found so their existence is not leaked.
func (s *InquiryService) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Inquiry, []domain.Response, error) {
	inquiry, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("inquiry", nil)
		}
		return nil, nil, err
	}
	if !actor.CanAccessInquiry(inquiry) {
		return nil, nil, apperrors.NewNotFound("inquiry", nil)
	}
	thread, err := s.responses.ListByInquiry(ctx, inquiry.ID)
	if err != nil {
		return nil, nil, err
	}
	if actor.Role == domain.RoleCustomer {
		inquiry.InternalNotes = ""
	}
	return inquiry, thread, nil
}

// LookupByReference resolves an inquiry by its reference key, for requesters
// following up on an anonymous submission. Possession of the key is the
// credential; internal notes are always stripped.
func (s *InquiryService) LookupByReference(ctx context.Context, key string) (*domain.Inquiry, []domain.Response, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil, apperrors.NewValidationError("reference key required", nil)
	}
	inquiry, err := s.inquiries.GetByReferenceKey(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("inquiry", nil)
		}
		return nil, nil, err
	}
	thread, err := s.responses.ListByInquiry(ctx, inquiry.ID)
	if err != nil {
		return nil, nil, err
	}
	inquiry.InternalNotes = ""
	return inquiry, thread, nil
}

// UpdateStatus sets the inquiry status. Staff only; transitions between the
// four known statuses are unrestricted, and a same-status write succeeds
// without side effects.
func (s *InquiryService) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, newStatus domain.InquiryStatus) (*domain.Inquiry, error) {
	if !domain.ValidInquiryStatus(newStatus) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(newStatus)})
	}
	inquiry, err := s.staffInquiry(ctx, actor, id, "status changes are staff-only")
	if err != nil {
		return nil, err
	}
	if inquiry.Status == newStatus {
		return inquiry, nil
	}

	oldStatus := inquiry.Status
	inquiry.Status = newStatus
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventInquiryStatusChanged,
		InquiryID: inquiry.ID,
		Actor:     events.Actor{Role: actor.Role, AccountID: actor.AccountID},
		Payload: events.InquiryStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
	return inquiry, nil
}

// UpdateNotes overwrites the staff-only internal notes verbatim. No history
// of prior notes is retained.
func (s *InquiryService) UpdateNotes(ctx context.Context, actor domain.Actor, id int64, notes string) (*domain.Inquiry, error) {
	inquiry, err := s.staffInquiry(ctx, actor, id, "internal notes are staff-only")
	if err != nil {
		return nil, err
	}
	inquiry.InternalNotes = notes
	if err := s.inquiries.Update(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}

// AppendResponse appends one message to the inquiry's thread. The first
// staff response also sets responded_at as part of the same operation.
func (s *InquiryService) AppendResponse(ctx context.Context, actor domain.Actor, id int64, message string) (*domain.Response, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	inquiry, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inquiry", nil)
		}
		return nil, err
	}

	switch actor.Role {
	case domain.RoleAdmin:
		// platform staff may respond to any inquiry
	case domain.RoleMember:
		if actor.CompanyID == nil || inquiry.CompanyID == nil || *actor.CompanyID != *inquiry.CompanyID {
			return nil, apperrors.NewAuthorizationError("inquiry belongs to another company")
		}
	case domain.RoleCustomer:
		if inquiry.CustomerID == nil || *inquiry.CustomerID != actor.AccountID {
			return nil, apperrors.NewAuthorizationError("inquiry belongs to another customer")
		}
	default:
		return nil, apperrors.NewAuthorizationError("unknown actor role")
	}

	response := &domain.Response{
		InquiryID:  inquiry.ID,
		Sender:     actor.SenderRole(),
		SenderName: actor.Name,
		Message:    message,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, err
	}

	if domain.StaffSender(response.Sender) && inquiry.RespondedAt == nil {
		respondedAt := response.CreatedAt
		inquiry.RespondedAt = &respondedAt
		if err := s.inquiries.Update(ctx, inquiry); err != nil {
			return nil, err
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventInquiryResponseAdded,
		InquiryID: inquiry.ID,
		Actor:     events.Actor{Role: actor.Role, AccountID: actor.AccountID},
		Payload: events.InquiryResponseAddedPayload{
			ResponseID:     response.ID,
			Sender:         response.Sender,
			SenderName:     response.SenderName,
			MessagePreview: stringPreview(response.Message, 120),
		},
	})
	return response, nil
}

// staffInquiry loads an inquiry and verifies the actor may mutate it.
// Customers get an authorization failure; members of another company too.
func (s *InquiryService) staffInquiry(ctx context.Context, actor domain.Actor, id int64, denial string) (*domain.Inquiry, error) {
	if !actor.Staff() {
		return nil, apperrors.NewAuthorizationError(denial)
	}
	inquiry, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inquiry", nil)
		}
		return nil, err
	}
	if actor.Role == domain.RoleMember {
		if actor.CompanyID == nil || inquiry.CompanyID == nil || *actor.CompanyID != *inquiry.CompanyID {
			return nil, apperrors.NewAuthorizationError("inquiry belongs to another company")
		}
	}
	return inquiry, nil
}

// publishEvent delivers a domain event best-effort. Delivery failures are
// logged and never surfaced to the caller; the persisted write is the
// source of truth.
func (s *InquiryService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("notification delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Int64("inquiry_id", event.InquiryID),
			zap.Error(apperrors.NewDependencyError("notification", err)))
	}
}

func submitActor(customerID *int64) events.Actor {
	actor := events.Actor{Role: domain.RoleCustomer}
	if customerID != nil {
		actor.AccountID = *customerID
	}
	return actor
}

func generateInquiryKey() string {
	return "INQ-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// stringPreview truncates by rune so multibyte inquiry text is not split
// mid-character.
func stringPreview(body string, max int) string {
	runes := []rune(strings.TrimSpace(body))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "..."
}
