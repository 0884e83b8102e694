package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Settings holds all environment-driven configuration for the gateway.
type Settings struct {
	Port            string
	SupabaseURL     string
	SupabaseKey     string
	SupabaseAnonKey string
	JWTSecret       string
	LogLevel        string

	ChatAPIURL string
	ChatAPIKey string

	SMSProviderURL string
	SMSProviderKey string

	ContractBucket string
	KycBucket      string
	CompanyName    string
	CompanyAddress string
}

var AppSettings Settings

// LoadSettings reads the optional .env file and populates AppSettings from the
// environment. Missing optional values fall back to development defaults;
// SUPABASE_URL and at least one key are required.
func LoadSettings() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}

	AppSettings = Settings{
		Port:            getEnv("PORT", "8080"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseAnonKey: os.Getenv("SUPABASE_ANON_KEY"),
		JWTSecret:       os.Getenv("SUPABASE_JWT_SECRET"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ChatAPIURL:      os.Getenv("CHAT_API_URL"),
		ChatAPIKey:      os.Getenv("CHAT_API_KEY"),
		SMSProviderURL:  os.Getenv("SMS_PROVIDER_URL"),
		SMSProviderKey:  os.Getenv("SMS_PROVIDER_KEY"),
		ContractBucket:  getEnv("CONTRACT_BUCKET", "contracts"),
		KycBucket:       getEnv("KYC_BUCKET", "kyc-documents"),
		CompanyName:     getEnv("COMPANY_NAME", "Staffhub GmbH"),
		CompanyAddress:  getEnv("COMPANY_ADDRESS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
