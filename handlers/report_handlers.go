package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"staffhub/api-gateway/internal/reports"
	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportEmployeeTimesheet streams an XLSX export of the employee's time
// entries, optionally restricted by startDate/endDate.
func (h *ApplicationHandler) ExportEmployeeTimesheet(c *fiber.Ctx) error {
	employeeID := c.Params("employeeId")
	if employeeID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "employeeId is required")
	}

	employee, err := h.DB.GetProfile(employeeID)
	if err != nil {
		return h.respondServiceError(c, err)
	}

	entries, err := h.DB.ListTimeEntries(employeeID, store.EntryFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Limit:     1000,
	})
	if err != nil {
		return h.respondServiceError(c, err)
	}

	file, err := reports.BuildTimesheet(employee, entries)
	if err != nil {
		return h.respondServiceError(c, err)
	}
	buf, err := file.WriteToBuffer()
	if err != nil {
		return h.respondServiceError(c, fmt.Errorf("write timesheet workbook: %w", err))
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="zeiterfassung-%s.xlsx"`, employeeID))
	return c.Send(buf.Bytes())
}
