// Package reports renders admin-facing exports of time-tracking data.
package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"staffhub/api-gateway/models"
)

const sheetName = "Sheet1"

// BuildTimesheet renders an employee's time entries into an XLSX workbook
// with a summary row.
func BuildTimesheet(employee *models.Profile, entries []models.TimeEntry) (*excelize.File, error) {
	f := excelize.NewFile()

	headers := []string{"Datum", "Stunden", "Beschreibung", "Status"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 3)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheetName, cell, header)
	}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Zeiterfassung: %s", employee.FullName()))
	f.SetCellValue(sheetName, "B2", employee.Email)
	f.SetCellValue(sheetName, "A2", "E-Mail")

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	f.SetCellStyle(sheetName, "A1", "A1", boldStyle)
	f.SetCellStyle(sheetName, "A3", "D3", boldStyle)

	var total float64
	for i, entry := range entries {
		row := i + 4
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.EntryDate)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.Hours)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), entry.Status)
		total += entry.Hours
	}

	summaryRow := len(entries) + 5
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Gesamt")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), total)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("B%d", summaryRow), boldStyle)

	f.SetColWidth(sheetName, "A", "A", 14)
	f.SetColWidth(sheetName, "C", "C", 48)

	return f, nil
}
