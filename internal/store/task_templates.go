package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

// CreateTaskTemplate inserts a template from the admin-supplied fields.
func (s *Supabase) CreateTaskTemplate(fields map[string]interface{}) (*models.TaskTemplate, error) {
	fields["created_at"] = time.Now()
	fields["updated_at"] = time.Now()

	var rows []models.TaskTemplate
	_, err := s.db.From(tableTaskTemplates).
		Insert(fields, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create task template: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create task template: no record returned")
	}
	return &rows[0], nil
}

func (s *Supabase) GetTaskTemplate(id string) (*models.TaskTemplate, error) {
	var rows []models.TaskTemplate
	_, err := s.db.From(tableTaskTemplates).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch task template %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *Supabase) ListTaskTemplates() ([]models.TaskTemplate, error) {
	var rows []models.TaskTemplate
	_, err := s.db.From(tableTaskTemplates).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list task templates: %w", err)
	}
	if rows == nil {
		rows = []models.TaskTemplate{}
	}
	return rows, nil
}

func (s *Supabase) UpdateTaskTemplate(id string, fields map[string]interface{}) (*models.TaskTemplate, error) {
	fields["updated_at"] = time.Now()

	var rows []models.TaskTemplate
	_, err := s.db.From(tableTaskTemplates).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update task template %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *Supabase) DeleteTaskTemplate(id string) error {
	_, _, err := s.db.From(tableTaskTemplates).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("delete task template %s: %w", id, err)
	}
	return nil
}
