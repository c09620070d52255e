package domain

import "time"

type Role string

const (
	RoleRenter Role = "RENTER"
	RoleStaff  Role = "STAFF"
	RoleAdmin  Role = "ADMIN"
)

type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type KycStatus string

const (
	KycStatusPending  KycStatus = "PENDING"
	KycStatusApproved KycStatus = "APPROVED"
	KycStatusRejected KycStatus = "REJECTED"
)

// KycRecord is the renter's identity verification document. Booking requires
// an APPROVED record verified within the configured validity window.
type KycRecord struct {
	ID         int32      `json:"id"`
	RenterID   int32      `json:"renter_id"`
	Status     KycStatus  `json:"status"`
	DocumentNo string     `json:"document_no"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedOn  time.Time  `json:"created_on"`
}
