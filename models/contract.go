package models

import (
	"time"

	"github.com/google/uuid"
)

// Contract assignment states. A signed assignment always carries
// signature_data; a pending one never does.
const (
	ContractPending = "pending"
	ContractSigned  = "signed"
)

// Contract is a reusable contract template with {{placeholder}} variables in
// its body text.
type Contract struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContractAssignment binds a contract to a user.
type ContractAssignment struct {
	ID            uuid.UUID  `json:"id"`
	ContractID    uuid.UUID  `json:"contract_id"`
	UserID        uuid.UUID  `json:"user_id"`
	Status        string     `json:"status"`
	SignatureData *string    `json:"signature_data,omitempty"` // rendered signature image (data URL)
	DocumentPath  *string    `json:"document_path,omitempty"`  // storage path of the rendered signed document
	AssignedAt    time.Time  `json:"assigned_at"`
	SignedAt      *time.Time `json:"signed_at,omitempty"`

	// Contract is populated on joined selects (contracts(*)).
	Contract *Contract `json:"contracts,omitempty"`
}

// Signed reports whether the assignment is in the signed state with the
// signature present, which must always coincide.
func (ca *ContractAssignment) Signed() bool {
	return ca.Status == ContractSigned && ca.SignatureData != nil && *ca.SignatureData != ""
}
