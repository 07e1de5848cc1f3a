package dto

import (
	"time"

	"github.com/iemarche/inquiry-service/internal/domain"
)

// SubmitInquiryRequest payload. Requester fields are ignored for
// authenticated customers, whose profile supplies them.
type SubmitInquiryRequest struct {
	InquirerName  string  `json:"inquirer_name"`
	InquirerEmail string  `json:"inquirer_email"`
	InquirerPhone *string `json:"inquirer_phone"`
	Message       string  `json:"message"`
	CompanyID     *int64  `json:"company_id"`
	CaseID        *int64  `json:"case_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.InquiryStatus `json:"status"`
}

// UpdateNotesRequest payload.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// AppendResponseRequest payload.
type AppendResponseRequest struct {
	Message string `json:"message"`
}

// InquirySummary response. InternalNotes is omitted when empty, which
// includes every payload built for a customer actor.
type InquirySummary struct {
	ID            int64                `json:"id"`
	ReferenceKey  string               `json:"reference_key"`
	CompanyID     *int64               `json:"company_id"`
	CompanyName   *string              `json:"company_name,omitempty"`
	CaseID        *int64               `json:"case_id"`
	InquirerName  string               `json:"inquirer_name"`
	InquirerEmail string               `json:"inquirer_email"`
	Status        domain.InquiryStatus `json:"status"`
	RespondedAt   *time.Time           `json:"responded_at"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// InquiryDetailResponse provides full inquiry info with its thread.
type InquiryDetailResponse struct {
	ID            int64                `json:"id"`
	ReferenceKey  string               `json:"reference_key"`
	CompanyID     *int64               `json:"company_id"`
	CaseID        *int64               `json:"case_id"`
	CustomerID    *int64               `json:"customer_id,omitempty"`
	InquirerName  string               `json:"inquirer_name"`
	InquirerEmail string               `json:"inquirer_email"`
	InquirerPhone *string              `json:"inquirer_phone"`
	Message       string               `json:"message"`
	Status        domain.InquiryStatus `json:"status"`
	InternalNotes string               `json:"internal_notes,omitempty"`
	RespondedAt   *time.Time           `json:"responded_at"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Responses     []ResponseBody       `json:"responses"`
}

// ResponseBody represents one thread message.
type ResponseBody struct {
	ID         int64                 `json:"id"`
	Sender     domain.ResponseSender `json:"sender"`
	SenderName string                `json:"sender_name"`
	Message    string                `json:"message"`
	CreatedAt  time.Time             `json:"created_at"`
}
