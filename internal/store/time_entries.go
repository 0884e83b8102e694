package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

// FindEntryByAssignment looks up the time entry keyed by task_assignment_id.
// Returns (nil, nil) when no entry exists; the at-most-one-per-assignment
// invariant is enforced by the callers through this lookup and backed by a
// unique index on the column.
func (s *Supabase) FindEntryByAssignment(assignmentID string) (*models.TimeEntry, error) {
	var rows []models.TimeEntry
	_, err := s.db.From(tableTimeEntries).
		Select("*", "", false).
		Eq("task_assignment_id", assignmentID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch time entry for assignment %s: %w", assignmentID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// InsertTimeEntry writes a new entry and returns the stored row.
func (s *Supabase) InsertTimeEntry(entry models.TimeEntry) (*models.TimeEntry, error) {
	record := map[string]interface{}{
		"employee_id":        entry.EmployeeID.String(),
		"task_assignment_id": entry.TaskAssignmentID.String(),
		"hours":              entry.Hours,
		"entry_date":         entry.EntryDate,
		"description":        entry.Description,
		"status":             entry.Status,
		"created_at":         time.Now(),
		"updated_at":         time.Now(),
	}
	if entry.ApprovedBy != nil {
		record["approved_by"] = entry.ApprovedBy.String()
	}

	var rows []models.TimeEntry
	_, err := s.db.From(tableTimeEntries).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("insert time entry: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("insert time entry: no record returned")
	}
	return &rows[0], nil
}

// ListApprovedEntriesSince returns all approved entries for the employee with
// entry_date >= since (YYYY-MM-DD).
func (s *Supabase) ListApprovedEntriesSince(employeeID, since string) ([]models.TimeEntry, error) {
	var rows []models.TimeEntry
	_, err := s.db.From(tableTimeEntries).
		Select("*", "", false).
		Eq("employee_id", employeeID).
		Eq("status", models.TimeEntryApproved).
		Gte("entry_date", since).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list approved entries for employee %s: %w", employeeID, err)
	}
	if rows == nil {
		rows = []models.TimeEntry{}
	}
	return rows, nil
}

// EntryFilter narrows ListTimeEntries. Dates are YYYY-MM-DD; empty means
// unbounded.
type EntryFilter struct {
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// ListTimeEntries returns the employee's entries ordered by entry_date
// descending, paginated.
func (s *Supabase) ListTimeEntries(employeeID string, filter EntryFilter) ([]models.TimeEntry, error) {
	query := s.db.From(tableTimeEntries).
		Select("*", "", false).
		Eq("employee_id", employeeID)
	if filter.StartDate != "" {
		query = query.Gte("entry_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Lte("entry_date", filter.EndDate)
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	var rows []models.TimeEntry
	_, err := query.
		Order("entry_date", &postgrest.OrderOpts{Ascending: false}).
		Range(filter.Offset, filter.Offset+filter.Limit-1, "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list time entries for employee %s: %w", employeeID, err)
	}
	if rows == nil {
		rows = []models.TimeEntry{}
	}
	return rows, nil
}
