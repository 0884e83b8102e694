package store

import (
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"

	"staffhub/api-gateway/models"
)

// GetWorkerBalance returns the balance row for the worker, or (nil, nil) when
// none exists yet.
func (s *Supabase) GetWorkerBalance(workerID string) (*models.WorkerBalance, error) {
	var rows []models.WorkerBalance
	_, err := s.db.From(tableWorkerBalances).
		Select("*", "", false).
		Eq("worker_id", workerID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch worker balance %s: %w", workerID, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CreditWorkerBalance adds amount to the worker's pending balance, creating
// the row on first credit.
func (s *Supabase) CreditWorkerBalance(workerID string, amount float64) error {
	balance, err := s.GetWorkerBalance(workerID)
	if err != nil {
		return err
	}

	if balance == nil {
		record := map[string]interface{}{
			"worker_id":      workerID,
			"pending_amount": amount,
			"paid_amount":    0,
			"updated_at":     time.Now(),
		}
		_, _, err := s.db.From(tableWorkerBalances).
			Insert(record, false, "", "minimal", "").
			Execute()
		if err != nil {
			return fmt.Errorf("create worker balance %s: %w", workerID, err)
		}
		return nil
	}

	update := map[string]interface{}{
		"pending_amount": balance.PendingAmount + amount,
		"updated_at":     time.Now(),
	}
	_, _, err = s.db.From(tableWorkerBalances).
		Update(update, "minimal", "").
		Eq("worker_id", workerID).
		Execute()
	if err != nil {
		return fmt.Errorf("credit worker balance %s: %w", workerID, err)
	}
	return nil
}

// SettleWorkerBalance moves amount from pending to paid after a payout.
func (s *Supabase) SettleWorkerBalance(workerID string, amount float64) error {
	balance, err := s.GetWorkerBalance(workerID)
	if err != nil {
		return err
	}
	if balance == nil {
		return ErrNotFound
	}

	update := map[string]interface{}{
		"pending_amount": balance.PendingAmount - amount,
		"paid_amount":    balance.PaidAmount + amount,
		"updated_at":     time.Now(),
	}
	_, _, err = s.db.From(tableWorkerBalances).
		Update(update, "minimal", "").
		Eq("worker_id", workerID).
		Execute()
	if err != nil {
		return fmt.Errorf("settle worker balance %s: %w", workerID, err)
	}
	return nil
}

func (s *Supabase) CreatePayoutRequest(workerID string, amount float64, notes *string) (*models.PayoutRequest, error) {
	record := map[string]interface{}{
		"worker_id":    workerID,
		"amount":       amount,
		"status":       models.PayoutPending,
		"requested_at": time.Now(),
	}
	if notes != nil {
		record["notes"] = *notes
	}

	var rows []models.PayoutRequest
	_, err := s.db.From(tablePayoutRequests).
		Insert(record, false, "", "representation", "").
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("create payout request: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("create payout request: no record returned")
	}
	return &rows[0], nil
}

func (s *Supabase) GetPayoutRequest(id string) (*models.PayoutRequest, error) {
	var rows []models.PayoutRequest
	_, err := s.db.From(tablePayoutRequests).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("fetch payout request %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

// PayoutFilter narrows ListPayoutRequests. Zero values mean "any".
type PayoutFilter struct {
	WorkerID string
	Status   string
}

func (s *Supabase) ListPayoutRequests(filter PayoutFilter) ([]models.PayoutRequest, error) {
	query := s.db.From(tablePayoutRequests).Select("*", "", false)
	if filter.WorkerID != "" {
		query = query.Eq("worker_id", filter.WorkerID)
	}
	if filter.Status != "" {
		query = query.Eq("status", filter.Status)
	}

	var rows []models.PayoutRequest
	_, err := query.
		Order("requested_at", &postgrest.OrderOpts{Ascending: false}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("list payout requests: %w", err)
	}
	if rows == nil {
		rows = []models.PayoutRequest{}
	}
	return rows, nil
}

func (s *Supabase) UpdatePayoutRequest(id string, fields map[string]interface{}) (*models.PayoutRequest, error) {
	var rows []models.PayoutRequest
	_, err := s.db.From(tablePayoutRequests).
		Update(fields, "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("update payout request %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}
