package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Task assignment lifecycle states.
// pending -> submitted -> {completed | rejected}; rejected -> pending (restart).
const (
	AssignmentPending   = "pending"
	AssignmentSubmitted = "submitted"
	AssignmentCompleted = "completed"
	AssignmentRejected  = "rejected"
	AssignmentCanceled  = "canceled"
)

// Payment states of a completed assignment under per-task compensation.
const (
	PaymentStatusPending = "pending"
	PaymentStatusReady   = "ready"
	PaymentStatusPaid    = "paid"
)

// TaskAssignment represents one employee's instance of a TaskTemplate.
type TaskAssignment struct {
	ID                  uuid.UUID       `json:"id"`
	TaskTemplateID      uuid.UUID       `json:"task_template_id"`
	AssigneeID          uuid.UUID       `json:"assignee_id"`
	Status              string          `json:"status"`
	CurrentStep         int             `json:"current_step"`
	VideoChatStatus     *string         `json:"video_chat_status,omitempty"`
	SubmissionData      json.RawMessage `json:"submission_data,omitempty"` // Nullable JSONB
	RejectionReason     *string         `json:"rejection_reason,omitempty"`
	AdminNotes          *string         `json:"admin_notes,omitempty"`
	CustomPaymentAmount *float64        `json:"custom_payment_amount,omitempty"` // Overrides the template amount
	PaymentStatus       *string         `json:"payment_status,omitempty"`
	SubmittedAt         *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt          *time.Time      `json:"reviewed_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`

	// Template is populated on joined selects (task_templates(*)).
	Template *TaskTemplate `json:"task_templates,omitempty"`
}

// PaymentAmount resolves the effective payout for the assignment: a custom
// override wins over the template amount. Returns 0 when neither is set.
func (a *TaskAssignment) PaymentAmount() float64 {
	if a.CustomPaymentAmount != nil {
		return *a.CustomPaymentAmount
	}
	if a.Template != nil && a.Template.PaymentAmount != nil {
		return *a.Template.PaymentAmount
	}
	return 0
}
