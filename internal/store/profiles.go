package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

func (s *Supabase) GetProfile(id string) (*models.Profile, error) {
	var rows []models.Profile
	_, err := s.db.From(tableProfiles).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch profile %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// ListProfiles returns profiles, optionally restricted to one role, newest
// first.
func (s *Supabase) ListProfiles(role string) ([]models.Profile, error) {
	query := s.db.From(tableProfiles).Select("*", "", false)
	if role != "" {
		query = query.Eq("role", role)
	}

	var rows []models.Profile
	_, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	if rows == nil {
		rows = []models.Profile{}
	}
	return rows, nil
}

func (s *Supabase) UpdateProfile(id string, fields map[string]interface{}) (*models.Profile, error) {
	fields["updated_at"] = time.Now()

	var rows []models.Profile
	_, err := s.db.From(tableProfiles).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update profile %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
