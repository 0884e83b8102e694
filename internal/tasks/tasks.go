// Package tasks implements the task-assignment lifecycle: employee progress
// and submission, admin review (approve/reject), restart of rejected
// assignments, and the payment side effects of approval.
package tasks

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"staffhub/api-gateway/models"
)

var (
	// ErrInvalidTransition is returned when an operation does not apply to
	// the assignment's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrReasonRequired is returned when a rejection carries no reason.
	ErrReasonRequired = errors.New("rejection reason must not be empty")
	// ErrNotOwner is returned when an employee operates on someone else's
	// assignment.
	ErrNotOwner = errors.New("assignment does not belong to this employee")
	// ErrStepOutOfRange is returned when advancing past the template's last
	// step.
	ErrStepOutOfRange = errors.New("no further steps in this task")
)

// AssignmentStore is the slice of the data layer the lifecycle operates on.
type AssignmentStore interface {
	GetTaskAssignment(id string) (*models.TaskAssignment, error)
	UpdateTaskAssignment(id string, fields map[string]interface{}) (*models.TaskAssignment, error)
}

// ProfileStore resolves assignees for the payment-mode check.
type ProfileStore interface {
	GetProfile(id string) (*models.Profile, error)
}

// BalanceStore credits per-task earnings on approval and settles them when
// the assignment is paid out directly.
type BalanceStore interface {
	CreditWorkerBalance(workerID string, amount float64) error
	SettleWorkerBalance(workerID string, amount float64) error
}

// TimeEntryCreator is the contract with the time-entry generator: call it
// after marking an assignment completed, before reporting success to the
// admin. It must be idempotent.
type TimeEntryCreator interface {
	CreateTimeEntryForApprovedTask(taskAssignmentID, approvedBy string) (*models.TimeEntry, error)
}

// Service drives assignment status transitions.
type Service struct {
	assignments AssignmentStore
	profiles    ProfileStore
	balances    BalanceStore
	timeEntries TimeEntryCreator
	log         *logrus.Logger
	now         func() time.Time
}

func NewService(assignments AssignmentStore, profiles ProfileStore, balances BalanceStore, timeEntries TimeEntryCreator, log *logrus.Logger) *Service {
	return &Service{
		assignments: assignments,
		profiles:    profiles,
		balances:    balances,
		timeEntries: timeEntries,
		log:         log,
		now:         time.Now,
	}
}
