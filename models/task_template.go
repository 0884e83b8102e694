package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskStep is one entry of a template's ordered step list (JSONB column).
type TaskStep struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// TaskTemplate represents the structure of a task template in the database.
// Templates are immutable from the employee side; only admins edit them.
type TaskTemplate struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	Steps          []TaskStep `json:"steps"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"` // Nullable NUMERIC
	PaymentAmount  *float64   `json:"payment_amount,omitempty"`  // Nullable NUMERIC
	Priority       string     `json:"priority"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
