package models

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntryApproved is the only status this pipeline ever writes: entries are
// derived from already-reviewed task assignments, so there is no pending state.
const TimeEntryApproved = "approved"

// EntryDateFormat is the date-only layout of the entry_date column.
const EntryDateFormat = "2006-01-02"

// TimeEntry is a record of hours worked, generated from an approved task
// assignment. At most one entry exists per assignment.
type TimeEntry struct {
	ID               uuid.UUID  `json:"id"`
	EmployeeID       uuid.UUID  `json:"employee_id"`
	TaskAssignmentID uuid.UUID  `json:"task_assignment_id"`
	Hours            float64    `json:"hours"`
	EntryDate        string     `json:"entry_date"` // DATE column, YYYY-MM-DD
	Description      string     `json:"description"`
	ApprovedBy       *uuid.UUID `json:"approved_by,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
