package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/internal/timetrack"
	"staffhub/api-gateway/utils"
)

// CreateTimeEntryRequest is the body of POST /api/time-entries/create. Field
// names follow the legacy endpoint contract.
type CreateTimeEntryRequest struct {
	TaskAssignmentID string `json:"taskAssignmentId" validate:"required,uuid"`
	ApprovedBy       string `json:"approvedBy" validate:"required,uuid"`
}

// CreateTimeEntry manually triggers time-entry generation for an approved
// task assignment. The normal path runs inside task approval; this endpoint
// exists for administrative repair and is safe to repeat.
func (h *ApplicationHandler) CreateTimeEntry(c *fiber.Ctx) error {
	req := new(CreateTimeEntryRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse request JSON: %v", err))
	}
	if rejected, err := h.validateStruct(c, req); rejected {
		return err
	}

	entry, err := h.TimeTrack.CreateTimeEntryForApprovedTask(req.TaskAssignmentID, req.ApprovedBy)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	if entry == nil {
		return utils.RespondWithData(c, fiber.StatusOK, "Task has no estimated hours, time entry skipped", nil)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Time entry created successfully", entry)
}

// ListEmployeeTimeEntries returns an employee's time entries, newest first,
// paginated.
func (h *ApplicationHandler) ListEmployeeTimeEntries(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	if employeeID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "employeeId is required")
	}

	filter := store.EntryFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Limit:     c.QueryInt("limit", 50),
		Offset:    c.QueryInt("offset", 0),
	}

	entries, err := h.DB.ListTimeEntries(employeeID, filter)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Time entries retrieved successfully", entries)
}

// GetTimeEntryStats returns worked-hours statistics for one employee over a
// period (week, month, year or all; default month).
func (h *ApplicationHandler) GetTimeEntryStats(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	if employeeID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "employeeId is required")
	}

	period, err := timetrack.ParsePeriod(c.Query("period"))
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	stats, err := h.TimeTrack.CalculateWorkedHours(employeeID, period)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	return utils.RespondWithData(c, fiber.StatusOK, "Worked hours calculated successfully", stats)
}
