package timetrack

import (
	"fmt"

	"github.com/google/uuid"

	"staffhub/api-gateway/models"
)

// CreateTimeEntryForApprovedTask converts an approved task assignment into at
// most one time entry.
//
// The assignment must exist. A template without a positive estimated_hours
// value yields (nil, nil): there is no time to record, which is a documented
// skip rather than an error. If an entry already exists for the assignment it
// is returned unchanged; double approval of the same assignment is the
// expected case this lookup guards against, so it runs on every call, not
// just as an optimization.
func (s *Service) CreateTimeEntryForApprovedTask(taskAssignmentID, approvedBy string) (*models.TimeEntry, error) {
	assignment, err := s.assignments.GetTaskAssignment(taskAssignmentID)
	if err != nil {
		return nil, err
	}

	if assignment.Template == nil || assignment.Template.EstimatedHours == nil || *assignment.Template.EstimatedHours <= 0 {
		s.log.WithField("task_assignment_id", taskAssignmentID).
			Info("Task template has no estimated hours, skipping time entry")
		return nil, nil
	}

	existing, err := s.entries.FindEntryByAssignment(taskAssignmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.WithFields(map[string]interface{}{
			"task_assignment_id": taskAssignmentID,
			"time_entry_id":      existing.ID,
		}).Info("Time entry already exists for assignment, returning existing")
		return existing, nil
	}

	approverID, err := uuid.Parse(approvedBy)
	if err != nil {
		return nil, fmt.Errorf("invalid approver id %q: %w", approvedBy, err)
	}

	entry := models.TimeEntry{
		EmployeeID:       assignment.AssigneeID,
		TaskAssignmentID: assignment.ID,
		Hours:            *assignment.Template.EstimatedHours,
		EntryDate:        s.now().Format(models.EntryDateFormat),
		Description:      fmt.Sprintf("Aufgabe abgeschlossen: %s", assignment.Template.Title),
		ApprovedBy:       &approverID,
		Status:           models.TimeEntryApproved,
	}

	created, err := s.entries.InsertTimeEntry(entry)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": taskAssignmentID,
		"employee_id":        assignment.AssigneeID,
		"hours":              entry.Hours,
	}).Info("Time entry created for approved task")
	return created, nil
}
