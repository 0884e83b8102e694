package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

func (s *Supabase) CreateContract(title, content string) (*models.Contract, error) {
	record := map[string]interface{}{
		"title":      title,
		"content":    content,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	var rows []models.Contract
	_, err := s.db.From(tableContracts).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create contract: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create contract: no record returned")
	}
	return &rows[0], nil
}

func (s *Supabase) GetContract(id string) (*models.Contract, error) {
	var rows []models.Contract
	_, err := s.db.From(tableContracts).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch contract %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *Supabase) ListContracts() ([]models.Contract, error) {
	var rows []models.Contract
	_, err := s.db.From(tableContracts).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	if rows == nil {
		rows = []models.Contract{}
	}
	return rows, nil
}

// CreateContractAssignment binds a contract to a user in the pending state.
func (s *Supabase) CreateContractAssignment(contractID, userID string) (*models.ContractAssignment, error) {
	record := map[string]interface{}{
		"contract_id": contractID,
		"user_id":     userID,
		"status":      models.ContractPending,
		"assigned_at": time.Now(),
	}

	var rows []models.ContractAssignment
	_, err := s.db.From(tableContractAssignments).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create contract assignment: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create contract assignment: no record returned")
	}
	return &rows[0], nil
}

// GetContractAssignment fetches one assignment with the contract embedded.
func (s *Supabase) GetContractAssignment(id string) (*models.ContractAssignment, error) {
	var rows []models.ContractAssignment
	_, err := s.db.From(tableContractAssignments).
		Select("*, contracts(*)", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch contract assignment %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (s *Supabase) ListContractAssignmentsForUser(userID string) ([]models.ContractAssignment, error) {
	var rows []models.ContractAssignment
	_, err := s.db.From(tableContractAssignments).
		Select("*, contracts(*)", "", false).
		Eq("user_id", userID).
		Order("assigned_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list contract assignments for user %s: %w", userID, err)
	}
	if rows == nil {
		rows = []models.ContractAssignment{}
	}
	return rows, nil
}

func (s *Supabase) UpdateContractAssignment(id string, fields map[string]interface{}) (*models.ContractAssignment, error) {
	var rows []models.ContractAssignment
	_, err := s.db.From(tableContractAssignments).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update contract assignment %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
