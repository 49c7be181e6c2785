package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// BaseCurrency is the process-wide currency all analytics totals are
	// expressed in. Fixed for the lifetime of every request.
	BaseCurrency string

	// OCRServiceURL points at the external text-recognition backend.
	OCRServiceURL string
	OCRTimeout    time.Duration

	// StorageTimeout bounds the expense listing call behind analytics/export.
	StorageTimeout time.Duration
	// RateLookupTimeout bounds each individual exchange-rate lookup.
	RateLookupTimeout time.Duration
	// NormalizeWorkers sizes the per-request normalization worker pool.
	NormalizeWorkers int

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// CORSAllowOrigins lists origins the browser frontend may call from.
	CORSAllowOrigins []string

	PosthogAPIKey string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("OCR_SERVICE_URL", "")
	viper.SetDefault("OCR_TIMEOUT", "15s")
	viper.SetDefault("STORAGE_TIMEOUT", "5s")
	viper.SetDefault("RATE_LOOKUP_TIMEOUT", "2s")
	viper.SetDefault("NORMALIZE_WORKERS", 8)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	if len(cfg.BaseCurrency) != 3 {
		log.Printf("Warning: Invalid BASE_CURRENCY ('%s'). Defaulting to USD.\n", cfg.BaseCurrency)
		cfg.BaseCurrency = "USD"
	}

	cfg.OCRServiceURL = viper.GetString("OCR_SERVICE_URL")
	if cfg.OCRServiceURL == "" {
		log.Println("Warning: OCR_SERVICE_URL not set. Receipt OCR will not function.")
	}
	cfg.OCRTimeout = durationOrDefault("OCR_TIMEOUT", 15*time.Second)
	cfg.StorageTimeout = durationOrDefault("STORAGE_TIMEOUT", 5*time.Second)
	cfg.RateLookupTimeout = durationOrDefault("RATE_LOOKUP_TIMEOUT", 2*time.Second)

	cfg.NormalizeWorkers = viper.GetInt("NORMALIZE_WORKERS")
	if cfg.NormalizeWorkers <= 0 {
		log.Printf("Warning: Invalid NORMALIZE_WORKERS (%d). Defaulting to 8.\n", cfg.NormalizeWorkers)
		cfg.NormalizeWorkers = 8
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return parsed
}
