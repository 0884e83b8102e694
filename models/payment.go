package models

import (
	"time"

	"github.com/google/uuid"
)

// Payout request states.
const (
	PayoutPending  = "pending"
	PayoutApproved = "approved"
	PayoutRejected = "rejected"
	PayoutPaid     = "paid"
)

// WorkerBalance is the per-worker aggregate of earned and paid-out amounts
// under per-task compensation.
type WorkerBalance struct {
	ID            uuid.UUID `json:"id"`
	WorkerID      uuid.UUID `json:"worker_id"`
	PendingAmount float64   `json:"pending_amount"`
	PaidAmount    float64   `json:"paid_amount"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Available is the amount the worker can still request a payout for.
func (b *WorkerBalance) Available() float64 {
	return b.PendingAmount
}

// PayoutRequest is a worker-initiated request to pay out part of the balance.
type PayoutRequest struct {
	ID          uuid.UUID  `json:"id"`
	WorkerID    uuid.UUID  `json:"worker_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	Notes       *string    `json:"notes,omitempty"`
	ProcessedBy *uuid.UUID `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	RequestedAt time.Time  `json:"requested_at"`
}
