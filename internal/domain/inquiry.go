package domain

import "time"

// InquiryStatus enumerates lifecycle states for inquiries.
type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "NEW"
	InquiryStatusInProgress InquiryStatus = "IN_PROGRESS"
	InquiryStatusResolved   InquiryStatus = "RESOLVED"
	InquiryStatusClosed     InquiryStatus = "CLOSED"
)

// ValidInquiryStatus reports whether s is one of the four known statuses.
// Transitions between known statuses are unrestricted; staff may move an
// inquiry backward (e.g. RESOLVED to IN_PROGRESS).
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

// Inquiry is the aggregate for contact requests. CompanyID nil means the
// inquiry is addressed to the platform operator (general inquiry); non-nil
// means it is directed at one company, optionally referencing one of that
// company's portfolio cases.
type Inquiry struct {
	ID            int64
	ReferenceKey  string
	CompanyID     *int64
	CaseID        *int64
	CustomerID    *int64
	InquirerName  string
	InquirerEmail string
	InquirerPhone *string
	Message       string
	Status        InquiryStatus
	InternalNotes string
	RespondedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CompanyDirected reports whether the inquiry targets a specific company.
func (i *Inquiry) CompanyDirected() bool {
	return i.CompanyID != nil
}
