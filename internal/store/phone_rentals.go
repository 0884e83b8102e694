package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

func (s *Supabase) CreatePhoneRental(rental models.PhoneRental) (*models.PhoneRental, error) {
	record := map[string]interface{}{
		"provider":     rental.Provider,
		"external_id":  rental.ExternalID,
		"phone_number": rental.PhoneNumber,
		"country":      rental.Country,
		"service":      rental.Service,
		"status":       rental.Status,
		"cost":         rental.Cost,
		"rented_by":    rental.RentedBy.String(),
		"created_at":   time.Now(),
	}
	if rental.ExpiresAt != nil {
		record["expires_at"] = *rental.ExpiresAt
	}

	var rows []models.PhoneRental
	_, err := s.db.From(tablePhoneRentals).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create phone rental: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create phone rental: no record returned")
	}
	return &rows[0], nil
}

func (s *Supabase) GetPhoneRental(id string) (*models.PhoneRental, error) {
	var rows []models.PhoneRental
	_, err := s.db.From(tablePhoneRentals).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch phone rental %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *Supabase) ListPhoneRentals() ([]models.PhoneRental, error) {
	var rows []models.PhoneRental
	_, err := s.db.From(tablePhoneRentals).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list phone rentals: %w", err)
	}
	if rows == nil {
		rows = []models.PhoneRental{}
	}
	return rows, nil
}

func (s *Supabase) UpdatePhoneRental(id string, fields map[string]interface{}) (*models.PhoneRental, error) {
	var rows []models.PhoneRental
	_, err := s.db.From(tablePhoneRentals).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update phone rental %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
