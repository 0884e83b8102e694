package config

import (
	"fmt"
	"log"

	supa "github.com/supabase-community/supabase-go"
)

var SupabaseClient *supa.Client

// InitSupabase initializes the shared Supabase client. The service key is
// preferred so the gateway can read and write across all tables regardless of
// row-level security; the anon key is accepted as a development fallback.
func InitSupabase() error {
	if AppSettings.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL must be set")
	}

	supabaseKey := AppSettings.SupabaseKey
	if supabaseKey == "" {
		supabaseKey = AppSettings.SupabaseAnonKey
		if supabaseKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY or SUPABASE_ANON_KEY must be set")
		}
		log.Println("Warning: Using anonymous key for Supabase. Set SUPABASE_SERVICE_KEY for full access.")
	}

	client, err := supa.NewClient(AppSettings.SupabaseURL, supabaseKey, nil)
	if err != nil {
		return fmt.Errorf("error initializing Supabase client: %w", err)
	}

	SupabaseClient = client
	log.Println("Supabase client initialized successfully.")
	return nil
}
