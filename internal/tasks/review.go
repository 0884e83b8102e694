package tasks

import (
	"fmt"
	"strings"

	"staffhub/api-gateway/models"
)

// ApprovalResult carries everything the admin response needs after an
// approval.
type ApprovalResult struct {
	Assignment *models.TaskAssignment
	TimeEntry  *models.TimeEntry
	// TimeEntrySkipped is true when the template carries no estimated hours.
	TimeEntrySkipped bool
}

// Approve marks a submitted assignment completed, then runs the downstream
// steps: time-entry generation and, for per-task workers with a payment
// amount, the balance credit.
//
// The store offers no multi-statement transaction, so the sequence is built
// to be re-runnable instead: approving an already-completed assignment is
// accepted and simply re-executes the downstream steps, each of which is
// idempotent. A partial failure is repaired by approving again.
func (s *Service) Approve(assignmentID, reviewerID string, adminNotes *string) (*ApprovalResult, error) {
	assignment, err := s.assignments.GetTaskAssignment(assignmentID)
	if err != nil {
		return nil, err
	}

	switch assignment.Status {
	case models.AssignmentSubmitted, models.AssignmentCompleted:
	default:
		return nil, fmt.Errorf("%w: cannot approve assignment in status %q", ErrInvalidTransition, assignment.Status)
	}

	if assignment.Status == models.AssignmentSubmitted {
		fields := map[string]interface{}{
			"status":      models.AssignmentCompleted,
			"reviewed_at": s.now(),
		}
		if adminNotes != nil {
			fields["admin_notes"] = *adminNotes
		}
		updated, err := s.assignments.UpdateTaskAssignment(assignmentID, fields)
		if err != nil {
			return nil, err
		}
		// The update representation has no embedded template; keep the one
		// from the initial fetch for the payment step.
		updated.Template = assignment.Template
		assignment = updated
	}

	entry, err := s.timeEntries.CreateTimeEntryForApprovedTask(assignmentID, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("assignment approved but time entry failed: %w", err)
	}

	assignment, err = s.settlePayment(assignment)
	if err != nil {
		return nil, fmt.Errorf("assignment approved but payment update failed: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": assignmentID,
		"reviewer_id":        reviewerID,
		"time_entry_skipped": entry == nil,
	}).Info("Task submission approved")

	return &ApprovalResult{
		Assignment:       assignment,
		TimeEntry:        entry,
		TimeEntrySkipped: entry == nil,
	}, nil
}

// settlePayment moves an approved assignment with a payment amount to
// payment_status ready and credits the worker balance, once. The
// payment_status guard makes the credit idempotent across repeated
// approvals.
func (s *Service) settlePayment(assignment *models.TaskAssignment) (*models.TaskAssignment, error) {
	amount := assignment.PaymentAmount()
	if amount <= 0 {
		return assignment, nil
	}
	if assignment.PaymentStatus != nil {
		switch *assignment.PaymentStatus {
		case models.PaymentStatusReady, models.PaymentStatusPaid:
			return assignment, nil
		}
	}

	profile, err := s.profiles.GetProfile(assignment.AssigneeID.String())
	if err != nil {
		return nil, err
	}
	if profile.PaymentMode != models.PaymentModePerTask {
		return assignment, nil
	}

	if err := s.balances.CreditWorkerBalance(assignment.AssigneeID.String(), amount); err != nil {
		return nil, err
	}

	updated, err := s.assignments.UpdateTaskAssignment(assignment.ID.String(), map[string]interface{}{
		"payment_status": models.PaymentStatusReady,
	})
	if err != nil {
		return nil, err
	}
	updated.Template = assignment.Template

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": assignment.ID,
		"worker_id":          assignment.AssigneeID,
		"amount":             amount,
	}).Info("Worker balance credited for completed task")
	return updated, nil
}

// MarkPaid moves an assignment's payment from ready to paid and settles the
// worker balance, so the amount cannot also be claimed through a payout
// request.
func (s *Service) MarkPaid(assignmentID string) (*models.TaskAssignment, error) {
	assignment, err := s.assignments.GetTaskAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.PaymentStatus == nil || *assignment.PaymentStatus != models.PaymentStatusReady {
		return nil, fmt.Errorf("%w: assignment payment is not in the ready state", ErrInvalidTransition)
	}

	updated, err := s.assignments.UpdateTaskAssignment(assignmentID, map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
	})
	if err != nil {
		return nil, err
	}
	updated.Template = assignment.Template

	// The amount comes from the pre-update fetch, which carries the template
	// embed the update representation lacks. Paid is already recorded, so a
	// settlement failure is logged for manual reconciliation rather than
	// surfaced; re-running mark-paid would settle twice.
	if err := s.balances.SettleWorkerBalance(assignment.AssigneeID.String(), assignment.PaymentAmount()); err != nil {
		s.log.WithError(err).WithFields(map[string]interface{}{
			"task_assignment_id": assignmentID,
			"worker_id":          assignment.AssigneeID,
		}).Error("Failed to settle worker balance after direct payment")
	}

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": assignmentID,
		"worker_id":          assignment.AssigneeID,
		"amount":             assignment.PaymentAmount(),
	}).Info("Assignment payment marked as paid")
	return updated, nil
}

// Reject moves a submitted assignment to rejected. The reason is a
// data-integrity requirement, not just UX, so it is enforced here and not
// only in the client.
func (s *Service) Reject(assignmentID, reviewerID, reason string, adminNotes *string) (*models.TaskAssignment, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}

	assignment, err := s.assignments.GetTaskAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentSubmitted {
		return nil, fmt.Errorf("%w: cannot reject assignment in status %q", ErrInvalidTransition, assignment.Status)
	}

	fields := map[string]interface{}{
		"status":           models.AssignmentRejected,
		"rejection_reason": reason,
		"reviewed_at":      s.now(),
	}
	if adminNotes != nil {
		fields["admin_notes"] = *adminNotes
	}

	updated, err := s.assignments.UpdateTaskAssignment(assignmentID, fields)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]interface{}{
		"task_assignment_id": assignmentID,
		"reviewer_id":        reviewerID,
	}).Info("Task submission rejected")
	return updated, nil
}
