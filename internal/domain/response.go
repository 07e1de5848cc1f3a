package domain

import "time"

// ResponseSender indicates who authored a thread response.
type ResponseSender string

const (
	SenderAdmin    ResponseSender = "ADMIN"
	SenderMember   ResponseSender = "MEMBER"
	SenderCustomer ResponseSender = "CUSTOMER"
)

// StaffSender reports whether the sender counts as staff for the purposes
// of responded_at bookkeeping.
func StaffSender(s ResponseSender) bool {
	return s == SenderAdmin || s == SenderMember
}

// Response is one message in an inquiry's append-only thread. SenderName is
// a snapshot taken at write time so the thread stays historically accurate
// when a profile name later changes.
type Response struct {
	ID         int64
	InquiryID  int64
	Sender     ResponseSender
	SenderName string
	Message    string
	CreatedAt  time.Time
}
