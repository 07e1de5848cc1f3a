package events

import (
	"time"

	"github.com/iemarche/inquiry-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventInquiryCreated       EventType = "inquiry_created"
	EventInquiryStatusChanged EventType = "inquiry_status_changed"
	EventInquiryResponseAdded EventType = "inquiry_response_added"
)

// Actor encapsulates actor metadata for an event. AccountID is zero for
// anonymous submissions.
type Actor struct {
	Role      domain.ActorRole `json:"role"`
	AccountID int64            `json:"account_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	InquiryID int64       `json:"inquiry_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// InquiryCreatedPayload payload.
type InquiryCreatedPayload struct {
	ReferenceKey  string `json:"reference_key"`
	CompanyID     *int64 `json:"company_id,omitempty"`
	CaseID        *int64 `json:"case_id,omitempty"`
	InquirerEmail string `json:"inquirer_email"`
}

// InquiryStatusChangedPayload payload.
type InquiryStatusChangedPayload struct {
	OldStatus domain.InquiryStatus `json:"old_status"`
	NewStatus domain.InquiryStatus `json:"new_status"`
}

// InquiryResponseAddedPayload payload.
type InquiryResponseAddedPayload struct {
	ResponseID     int64                 `json:"response_id"`
	Sender         domain.ResponseSender `json:"sender"`
	SenderName     string                `json:"sender_name"`
	MessagePreview string                `json:"message_preview"`
}
