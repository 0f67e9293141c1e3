package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Quote provider (Yahoo Finance)
	QuoteBaseURL           string
	QuoteSessionURL        string
	QuoteCrumbURL          string
	QuoteTimeout           time.Duration
	QuoteRequestsPerSecond float64

	// Currency-rate provider (Frankfurter)
	RateBaseURL string
	RateTimeout time.Duration

	// HTTP surface
	AllowedOrigins        []string
	APIRateLimitPerSecond float64
	APIRateLimitBurst     int
}

// Cfg is a global instance of the AppConfig.
var Cfg *AppConfig

// LoadConfig loads configuration from environment variables or a .env file.
func LoadConfig() {
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables.")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	Cfg = &AppConfig{
		Port:         getEnv("PORT", "8000"),
		DatabasePath: getEnv("DATABASE_PATH", "./bugetto.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		QuoteBaseURL:           getEnv("QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
		QuoteSessionURL:        getEnv("QUOTE_SESSION_URL", "https://fc.yahoo.com"),
		QuoteCrumbURL:          getEnv("QUOTE_CRUMB_URL", "https://query1.finance.yahoo.com/v1/test/getcrumb"),
		QuoteTimeout:           getEnvAsDuration("QUOTE_TIMEOUT", 10*time.Second),
		QuoteRequestsPerSecond: getEnvAsFloat("QUOTE_REQUESTS_PER_SECOND", 4),

		RateBaseURL: getEnv("RATE_BASE_URL", "https://api.frankfurter.app"),
		RateTimeout: getEnvAsDuration("RATE_TIMEOUT", 10*time.Second),

		AllowedOrigins:        getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://127.0.0.1:8000"}),
		APIRateLimitPerSecond: getEnvAsFloat("API_RATE_LIMIT_PER_SECOND", 10),
		APIRateLimitBurst:     getEnvAsInt("API_RATE_LIMIT_BURST", 30),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, QuoteBaseURL=%s, RateBaseURL=%s",
		Cfg.Port, Cfg.LogLevel, Cfg.DatabasePath, Cfg.QuoteBaseURL, Cfg.RateBaseURL)
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid integer value for %s ('%s'), using default: %d", key, valueStr, fallback)
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil && value > 0 {
		return value
	}
	log.Printf("Invalid numeric value for %s ('%s'), using default: %g", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback.String())
	return fallback
}

// getEnvAsList parses a comma-separated variable, dropping empty items.
func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if strings.TrimSpace(valueStr) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
