package domain

// ActorRole is the closed set of caller roles. Every service operation
// switches over all three; there is no ambient "current user".
type ActorRole string

const (
	RoleAdmin    ActorRole = "ADMIN"
	RoleMember   ActorRole = "MEMBER"
	RoleCustomer ActorRole = "CUSTOMER"
)

// Actor identifies the authenticated caller of a service operation.
// CompanyID is set only for members; AccountID is the id in the role's own
// table (admins, members or customers).
type Actor struct {
	Role      ActorRole
	AccountID int64
	CompanyID *int64
	Name      string
}

// Staff reports whether the actor may perform staff-only operations
// (status changes, internal notes).
func (a Actor) Staff() bool {
	return a.Role == RoleAdmin || a.Role == RoleMember
}

// CanAccessInquiry reports whether the actor may read or act on the inquiry.
// Admins see everything; members see their own company's inquiries;
// customers see inquiries linked to their own account.
func (a Actor) CanAccessInquiry(inq *Inquiry) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleMember:
		return a.CompanyID != nil && inq.CompanyID != nil && *a.CompanyID == *inq.CompanyID
	case RoleCustomer:
		return inq.CustomerID != nil && *inq.CustomerID == a.AccountID
	}
	return false
}

// SenderRole maps the actor role onto the thread sender enum.
func (a Actor) SenderRole() ResponseSender {
	switch a.Role {
	case RoleAdmin:
		return SenderAdmin
	case RoleMember:
		return SenderMember
	default:
		return SenderCustomer
	}
}
