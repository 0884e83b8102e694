package models

import (
	"time"

	"github.com/google/uuid"
)

// Phone rental states. There is no background sweep; expiry is evaluated
// against expires_at when rentals are read.
const (
	RentalActive   = "active"
	RentalExpired  = "expired"
	RentalCanceled = "canceled"
)

// PhoneRental is a phone number rented from a third-party SMS provider for
// verification workflows.
type PhoneRental struct {
	ID          uuid.UUID  `json:"id"`
	Provider    string     `json:"provider"`
	ExternalID  string     `json:"external_id"` // provider-side rental id, needed to cancel
	PhoneNumber string     `json:"phone_number"`
	Country     string     `json:"country"`
	Service     string     `json:"service"`
	Status      string     `json:"status"`
	Cost        float64    `json:"cost"`
	RentedBy    uuid.UUID  `json:"rented_by"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Expired reports whether an active rental has passed its expiry time.
func (r *PhoneRental) Expired(now time.Time) bool {
	return r.Status == RentalActive && r.ExpiresAt != nil && r.ExpiresAt.Before(now)
}
