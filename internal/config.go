package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/DukeRupert/courtside/internal/eventform"
)

type Config struct {
	Env         string
	Port        int
	LogLevel    string
	DatabaseUrl string

	// Public URL of the organizer dashboard (Stripe return links)
	BaseURL string

	// Storage Configuration
	StorageProvider string // "local" or "r2"

	// Local Storage (development)
	LocalStoragePath string // Base directory for local file storage
	LocalStorageURL  string // Base URL for accessing local files

	// R2 Storage (production)
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicURL       string // Optional custom domain URL

	// Worker Configuration
	WorkerEnabled      bool
	WorkerConcurrency  int
	WorkerPollInterval time.Duration
	WorkerJobTimeout   time.Duration

	// Stripe Connect
	// In development the payments gateway is reported as not ready when the
	// secret key is empty, so only free events can be created.
	StripeSecretKey      string // Stripe API secret key (sk_test_... or sk_live_...)
	StripeWebhookSecret  string // Stripe webhook signing secret (whsec_...)
	StripeAccountCountry string // Country of new connected accounts

	// Geocoder used by the location picker. Lookups are disabled when the
	// base URL is empty.
	GeocoderBaseURL    string
	GeocoderAPIKey     string
	LocationSearchRate int // requests per minute per client

	// Event form policy
	MinTicketPrice     float64
	FreeSplitThreshold int
	DisplayLanguage    string
	Timezone           string

	// Metrics endpoint authentication
	// If both are empty, the /metrics endpoint will be unprotected (not recommended)
	MetricsUsername string
	MetricsPassword string
}

func NewConfig() (*Config, error) {
	// Load .env file if it exists (ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		BaseURL: getEnv("BASE_URL", "http://localhost:8080"),

		// Storage defaults to local filesystem for development
		StorageProvider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalStoragePath: getEnv("LOCAL_STORAGE_PATH", "./storage"),
		LocalStorageURL:  getEnv("LOCAL_STORAGE_URL", "http://localhost:8080/files"),

		// R2 configuration (production only)
		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),

		// Worker defaults
		WorkerEnabled:      getEnvBool("WORKER_ENABLED", true),
		WorkerConcurrency:  getEnvInt("WORKER_CONCURRENCY", 2),
		WorkerPollInterval: getEnvDuration("WORKER_POLL_INTERVAL", 5*time.Second),
		WorkerJobTimeout:   getEnvDuration("WORKER_JOB_TIMEOUT", 2*time.Minute),

		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripeAccountCountry: strings.ToUpper(getEnv("STRIPE_ACCOUNT_COUNTRY", "PT")),

		GeocoderBaseURL:    getEnv("GEOCODER_BASE_URL", ""),
		GeocoderAPIKey:     getEnv("GEOCODER_API_KEY", ""),
		LocationSearchRate: getEnvInt("LOCATION_SEARCH_RATE", 60),

		MinTicketPrice:     getEnvFloat("MIN_TICKET_PRICE", 1.00),
		FreeSplitThreshold: getEnvInt("FREE_SPLIT_THRESHOLD", 1),
		DisplayLanguage:    getEnv("DISPLAY_LANGUAGE", "pt"),
		Timezone:           getEnv("TIMEZONE", "Europe/Lisbon"),

		// Metrics authentication
		MetricsUsername: getEnv("METRICS_USERNAME", ""),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),
	}

	// Required
	cfg.DatabaseUrl = os.Getenv("DATABASE_URL")
	if cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	// Validate storage configuration
	if cfg.StorageProvider == "r2" {
		if cfg.R2AccountID == "" {
			return nil, fmt.Errorf("R2_ACCOUNT_ID is required when STORAGE_PROVIDER is 'r2'")
		}
		if cfg.R2AccessKeyID == "" {
			return nil, fmt.Errorf("R2_ACCESS_KEY_ID is required when STORAGE_PROVIDER is 'r2'")
		}
		if cfg.R2SecretAccessKey == "" {
			return nil, fmt.Errorf("R2_SECRET_ACCESS_KEY is required when STORAGE_PROVIDER is 'r2'")
		}
		if cfg.R2BucketName == "" {
			return nil, fmt.Errorf("R2_BUCKET_NAME is required when STORAGE_PROVIDER is 'r2'")
		}
	} else if cfg.StorageProvider != "local" {
		return nil, fmt.Errorf("STORAGE_PROVIDER must be either 'local' or 'r2', got: %s", cfg.StorageProvider)
	}

	if cfg.StripeSecretKey != "" && cfg.StripeWebhookSecret == "" && cfg.Env != "development" {
		return nil, fmt.Errorf("STRIPE_WEBHOOK_SECRET is required when STRIPE_SECRET_KEY is set")
	}

	if cfg.MinTicketPrice < 0 {
		return nil, fmt.Errorf("MIN_TICKET_PRICE must not be negative, got: %v", cfg.MinTicketPrice)
	}
	if cfg.FreeSplitThreshold < 0 {
		return nil, fmt.Errorf("FREE_SPLIT_THRESHOLD must not be negative, got: %d", cfg.FreeSplitThreshold)
	}
	if _, err := cfg.FormPolicy(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FormPolicy returns the event form rules derived from the configuration.
func (c *Config) FormPolicy() (eventform.Policy, error) {
	p := eventform.DefaultPolicy()
	p.MinPaidPrice = c.MinTicketPrice
	p.SplitThreshold = c.FreeSplitThreshold

	tag, err := language.Parse(c.DisplayLanguage)
	if err != nil {
		return p, fmt.Errorf("DISPLAY_LANGUAGE %q: %w", c.DisplayLanguage, err)
	}
	p.Language = tag

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return p, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	p.Location = loc
	return p, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
