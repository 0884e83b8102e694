// Package timetrack derives time-tracking records from approved task
// assignments and computes worked-hours statistics over them.
package timetrack

import (
	"time"

	"github.com/sirupsen/logrus"

	"staffhub/api-gateway/models"
)

// AssignmentStore is the slice of the data layer the generator reads
// assignments from. Implementations must return store.ErrNotFound for missing
// rows and embed the task template in the result.
type AssignmentStore interface {
	GetTaskAssignment(id string) (*models.TaskAssignment, error)
}

// EntryStore is the slice of the data layer holding time entries.
type EntryStore interface {
	// FindEntryByAssignment returns (nil, nil) when no entry exists.
	FindEntryByAssignment(assignmentID string) (*models.TimeEntry, error)
	InsertTimeEntry(entry models.TimeEntry) (*models.TimeEntry, error)
	ListApprovedEntriesSince(employeeID, since string) ([]models.TimeEntry, error)
}

// Service implements the time-entry generator and the worked-hours
// aggregator.
type Service struct {
	assignments AssignmentStore
	entries     EntryStore
	log         *logrus.Logger
	now         func() time.Time
}

func NewService(assignments AssignmentStore, entries EntryStore, log *logrus.Logger) *Service {
	return &Service{
		assignments: assignments,
		entries:     entries,
		log:         log,
		now:         time.Now,
	}
}
