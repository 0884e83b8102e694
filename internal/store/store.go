// Package store wraps all Supabase table access behind typed methods. Every
// read re-fetches and every mutation is a direct write; the gateway keeps no
// authoritative state of its own.
package store

import (
	"errors"

	supa "github.com/supabase-community/supabase-go"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("record not found")

// Table names owned by the external store.
const (
	tableProfiles            = "profiles"
	tableTaskTemplates       = "task_templates"
	tableTaskAssignments     = "task_assignments"
	tableTimeEntries         = "time_entries"
	tableContracts           = "contracts"
	tableContractAssignments = "contract_assignments"
	tableWorkerBalances      = "worker_balances"
	tablePayoutRequests      = "payout_requests"
	tablePhoneRentals        = "phone_rentals"
)

// Supabase is the PostgREST-backed implementation used by handlers and the
// workflow services.
type Supabase struct {
	db *supa.Client
}

func New(client *supa.Client) *Supabase {
	return &Supabase{db: client}
}
