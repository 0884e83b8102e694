package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile roles as stored in the profiles table.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// KYC verification states maintained by admin review.
const (
	KycPending  = "pending"
	KycApproved = "approved"
	KycRejected = "rejected"
)

// Payment modes: contract-salary vs per-task compensation.
const (
	PaymentModeContract = "vertragsbasis"
	PaymentModePerTask  = "verguetung"
)

// Profile represents the structure of a user profile in the database.
// The ID mirrors the auth user id.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   *string   `json:"first_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	Role        string    `json:"role"`
	KycStatus   string    `json:"kyc_status"`
	PaymentMode string    `json:"payment_mode"`
	Street      *string   `json:"street,omitempty"`
	PostalCode  *string   `json:"postal_code,omitempty"`
	City        *string   `json:"city,omitempty"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"` // DATE column, YYYY-MM-DD
	KycDocument *string   `json:"kyc_document,omitempty"`  // storage path of the uploaded id document
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName joins the optional name parts, falling back to the email address.
func (p *Profile) FullName() string {
	name := ""
	if p.FirstName != nil {
		name = *p.FirstName
	}
	if p.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *p.LastName
	}
	if name == "" {
		return p.Email
	}
	return name
}
