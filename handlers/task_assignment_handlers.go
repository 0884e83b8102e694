package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/utils"
)

// AssignTaskRequest binds a template to an employee.
type AssignTaskRequest struct {
	TaskTemplateID string `json:"task_template_id" validate:"required,uuid"`
	AssigneeID     string `json:"assignee_id" validate:"required,uuid"`
}

func (h *ApplicationHandler) AssignTask(c *fiber.Ctx) error {
	req := new(AssignTaskRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	// Both referenced records must exist before the assignment is created.
	if _, err := h.DB.GetTaskTemplate(req.TaskTemplateID); err != nil {
		return h.respondServiceError(c, err)
	}
	if _, err := h.DB.GetProfile(req.AssigneeID); err != nil {
		return h.respondServiceError(c, err)
	}

	assignment, err := h.DB.CreateTaskAssignment(req.TaskTemplateID, req.AssigneeID)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusCreated, "Task assigned successfully", assignment)
}

// ListTaskAssignments is the admin view, filterable by status and assignee.
func (h *ApplicationHandler) ListTaskAssignments(c *fiber.Ctx) error {
	assignments, err := h.DB.ListTaskAssignments(store.AssignmentFilter{
		Status:     c.Query("status"),
		AssigneeID: c.Query("assignee"),
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task assignments retrieved successfully", assignments)
}

// ListMyTaskAssignments is the employee view of their own assignments.
func (h *ApplicationHandler) ListMyTaskAssignments(c *fiber.Ctx) error {
	assignments, err := h.DB.ListTaskAssignments(store.AssignmentFilter{
		Status:     c.Query("status"),
		AssigneeID: currentUserID(c),
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task assignments retrieved successfully", assignments)
}

func (h *ApplicationHandler) GetTaskAssignment(c *fiber.Ctx) error {
	assignment, err := h.DB.GetTaskAssignment(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task assignment retrieved successfully", assignment)
}

// AdvanceTaskStep moves the caller's step cursor forward by one.
func (h *ApplicationHandler) AdvanceTaskStep(c *fiber.Ctx) error {
	assignment, err := h.Tasks.AdvanceStep(c.Params("id"), currentUserID(c))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task step advanced", assignment)
}

// SubmitTaskRequest carries the optional free-form submission payload.
type SubmitTaskRequest struct {
	SubmissionData json.RawMessage `json:"submission_data,omitempty"`
}

func (h *ApplicationHandler) SubmitTaskAssignment(c *fiber.Ctx) error {
	req := new(SubmitTaskRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
		}
	}

	assignment, err := h.Tasks.Submit(c.Params("id"), currentUserID(c), req.SubmissionData)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task submitted for review", assignment)
}

// ReviewNotesRequest carries the optional admin notes of an approval.
type ReviewNotesRequest struct {
	AdminNotes *string `json:"admin_notes,omitempty"`
}

// ApproveTaskSubmission completes a submitted assignment and runs its
// downstream effects (time entry, payment). Safe to repeat.
func (h *ApplicationHandler) ApproveTaskSubmission(c *fiber.Ctx) error {
	req := new(ReviewNotesRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
		}
	}

	result, err := h.Tasks.Approve(c.Params("id"), currentUserID(c), req.AdminNotes)
	if err != nil {
		return h.respondServiceError(c, err)
	}

	message := "Task approved, time entry created"
	if result.TimeEntrySkipped {
		message = "Task approved, no estimated hours so no time entry was created"
	}
	return utils.RespondWithData(c, fiber.StatusOK, message, fiber.Map{
		"assignment": result.Assignment,
		"time_entry": result.TimeEntry,
	})
}

// RejectTaskRequest requires a reason; this is enforced server-side.
type RejectTaskRequest struct {
	RejectionReason string  `json:"rejection_reason" validate:"required"`
	AdminNotes      *string `json:"admin_notes,omitempty"`
}

func (h *ApplicationHandler) RejectTaskSubmission(c *fiber.Ctx) error {
	req := new(RejectTaskRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	assignment, err := h.Tasks.Reject(c.Params("id"), currentUserID(c), req.RejectionReason, req.AdminNotes)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task submission rejected", assignment)
}

// RestartTaskAssignment takes the caller's rejected assignment back to
// pending.
func (h *ApplicationHandler) RestartTaskAssignment(c *fiber.Ctx) error {
	assignment, err := h.Tasks.Restart(c.Params("id"), currentUserID(c))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Task assignment restarted", assignment)
}

// MarkAssignmentPaid moves a completed assignment's payment status from
// ready to paid and settles the worker balance.
func (h *ApplicationHandler) MarkAssignmentPaid(c *fiber.Ctx) error {
	updated, err := h.Tasks.MarkPaid(c.Params("id"))
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Assignment marked as paid", updated)
}
