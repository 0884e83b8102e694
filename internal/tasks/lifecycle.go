package tasks

import (
	"encoding/json"
	"fmt"

	"staffhub/api-gateway/models"
)

// AdvanceStep moves the employee's step cursor forward by one. Only pending
// assignments progress, and the cursor never passes the template's last step.
func (s *Service) AdvanceStep(assignmentID, employeeID string) (*models.TaskAssignment, error) {
	assignment, err := s.ownedAssignment(assignmentID, employeeID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentPending {
		return nil, fmt.Errorf("%w: cannot advance assignment in status %q", ErrInvalidTransition, assignment.Status)
	}

	totalSteps := 0
	if assignment.Template != nil {
		totalSteps = len(assignment.Template.Steps)
	}
	if assignment.CurrentStep+1 >= totalSteps {
		return nil, ErrStepOutOfRange
	}

	return s.assignments.UpdateTaskAssignment(assignmentID, map[string]interface{}{
		"current_step": assignment.CurrentStep + 1,
	})
}

// Submit hands a pending assignment in for review.
func (s *Service) Submit(assignmentID, employeeID string, submissionData json.RawMessage) (*models.TaskAssignment, error) {
	assignment, err := s.ownedAssignment(assignmentID, employeeID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentPending {
		return nil, fmt.Errorf("%w: cannot submit assignment in status %q", ErrInvalidTransition, assignment.Status)
	}

	fields := map[string]interface{}{
		"status":       models.AssignmentSubmitted,
		"submitted_at": s.now(),
	}
	if len(submissionData) > 0 {
		fields["submission_data"] = submissionData
	}

	updated, err := s.assignments.UpdateTaskAssignment(assignmentID, fields)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": assignmentID,
		"employee_id":        employeeID,
	}).Info("Task assignment submitted for review")
	return updated, nil
}

// Restart takes a rejected assignment back to pending so the employee can
// rework it. A rejected assignment is not terminal. The rejection fields and
// the step cursor are cleared.
func (s *Service) Restart(assignmentID, employeeID string) (*models.TaskAssignment, error) {
	assignment, err := s.ownedAssignment(assignmentID, employeeID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentRejected {
		return nil, fmt.Errorf("%w: cannot restart assignment in status %q", ErrInvalidTransition, assignment.Status)
	}

	updated, err := s.assignments.UpdateTaskAssignment(assignmentID, map[string]interface{}{
		"status":           models.AssignmentPending,
		"current_step":     0,
		"rejection_reason": nil,
		"reviewed_at":      nil,
		"submitted_at":     nil,
		"submission_data":  nil,
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": assignmentID,
		"employee_id":        employeeID,
	}).Info("Rejected task assignment restarted")
	return updated, nil
}

func (s *Service) ownedAssignment(assignmentID, employeeID string) (*models.TaskAssignment, error) {
	assignment, err := s.assignments.GetTaskAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.AssigneeID.String() != employeeID {
		return nil, ErrNotOwner
	}
	return assignment, nil
}
