package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

// GetTaskAssignment fetches one assignment with its template embedded.
func (s *Supabase) GetTaskAssignment(id string) (*models.TaskAssignment, error) {
	var rows []models.TaskAssignment
	_, err := s.db.From(tableTaskAssignments).
		Select("*, task_templates(*)", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch task assignment %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// UpdateTaskAssignment applies a partial update and returns the updated row.
// updated_at is always stamped.
func (s *Supabase) UpdateTaskAssignment(id string, fields map[string]interface{}) (*models.TaskAssignment, error) {
	fields["updated_at"] = time.Now()

	var rows []models.TaskAssignment
	_, err := s.db.From(tableTaskAssignments).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update task assignment %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// CreateTaskAssignment inserts a fresh assignment for a template/assignee pair.
func (s *Supabase) CreateTaskAssignment(templateID, assigneeID string) (*models.TaskAssignment, error) {
	record := map[string]interface{}{
		"task_template_id": templateID,
		"assignee_id":      assigneeID,
		"status":           models.AssignmentPending,
		"current_step":     0,
		"created_at":       time.Now(),
		"updated_at":       time.Now(),
	}

	var rows []models.TaskAssignment
	_, err := s.db.From(tableTaskAssignments).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create task assignment: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create task assignment: no record returned")
	}
	return &rows[0], nil
}

// AssignmentFilter narrows ListTaskAssignments. Zero values mean "any".
type AssignmentFilter struct {
	Status     string
	AssigneeID string
}

// ListTaskAssignments returns assignments with templates embedded, newest
// first.
func (s *Supabase) ListTaskAssignments(filter AssignmentFilter) ([]models.TaskAssignment, error) {
	query := s.db.From(tableTaskAssignments).
		Select("*, task_templates(*)", "", false)
	if filter.Status != "" {
		query = query.Eq("status", filter.Status)
	}
	if filter.AssigneeID != "" {
		query = query.Eq("assignee_id", filter.AssigneeID)
	}

	var rows []models.TaskAssignment
	_, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list task assignments: %w", err)
	}
	if rows == nil {
		rows = []models.TaskAssignment{}
	}
	return rows, nil
}
