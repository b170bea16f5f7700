package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	minWahaTimeout = 1 * time.Second
	maxWahaTimeout = 60 * time.Second
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	HTTPAddr    string
	LogLevel    string
	Environment string

	BillingSheetPath      string
	ReminderDaysBeforeDue []int

	WahaBaseURL       string
	WahaAPIToken      string
	WahaDefaultSender string
	WahaTimeout       time.Duration

	EmailEnabled      bool
	EmailProvider     string // "smtp", "sendgrid" or "resend"
	EmailFrom         string
	EmailFromName     string
	EmailSMTPHost     string
	EmailSMTPPort     int
	EmailSMTPUser     string
	EmailSMTPPassword string
	EmailSMTPUseTLS   bool
	EmailAPIKey       string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.HTTPAddr = getEnv("API_HTTP_ADDR", ":8000")

	cfg.LogLevel = strings.ToLower(getEnv("API_LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getEnv("API_ENVIRONMENT", "development"))

	cfg.BillingSheetPath = getEnv("API_BILLING_SHEET_PATH", "data/clientes.xlsx")

	cfg.ReminderDaysBeforeDue, err = parseDayList(getEnv("API_REMINDER_DAYS_BEFORE_DUE", "3,1"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_REMINDER_DAYS_BEFORE_DUE: %w", err)
	}

	cfg.WahaBaseURL = getEnv("API_WAHA_BASE_URL", "http://localhost:3000")
	cfg.WahaAPIToken = os.Getenv("API_WAHA_API_TOKEN")
	cfg.WahaDefaultSender = os.Getenv("API_WAHA_DEFAULT_SENDER")

	timeoutSeconds, err := strconv.ParseFloat(getEnv("API_WAHA_TIMEOUT_SECONDS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid API_WAHA_TIMEOUT_SECONDS: %w", err)
	}
	cfg.WahaTimeout = time.Duration(timeoutSeconds * float64(time.Second))
	if cfg.WahaTimeout < minWahaTimeout || cfg.WahaTimeout > maxWahaTimeout {
		return nil, fmt.Errorf("API_WAHA_TIMEOUT_SECONDS must be between %s and %s", minWahaTimeout, maxWahaTimeout)
	}

	cfg.EmailEnabled, err = parseBool(getEnv("API_EMAIL_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_EMAIL_ENABLED: %w", err)
	}
	cfg.EmailProvider = strings.ToLower(os.Getenv("API_EMAIL_PROVIDER"))
	cfg.EmailFrom = getEnv("API_EMAIL_FROM", "noreply@example.com")
	cfg.EmailFromName = getEnv("API_EMAIL_FROM_NAME", "API Services")
	cfg.EmailSMTPHost = os.Getenv("API_EMAIL_SMTP_HOST")

	cfg.EmailSMTPPort, err = strconv.Atoi(getEnv("API_EMAIL_SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_EMAIL_SMTP_PORT: %w", err)
	}
	cfg.EmailSMTPUser = os.Getenv("API_EMAIL_SMTP_USER")
	cfg.EmailSMTPPassword = os.Getenv("API_EMAIL_SMTP_PASSWORD")

	cfg.EmailSMTPUseTLS, err = parseBool(getEnv("API_EMAIL_SMTP_USE_TLS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_EMAIL_SMTP_USE_TLS: %w", err)
	}
	cfg.EmailAPIKey = os.Getenv("API_EMAIL_API_KEY")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseBool(value string) (bool, error) {
	return strconv.ParseBool(strings.ToLower(value))
}

// parseDayList parses a comma-separated list of day offsets, e.g. "3,1" or
// "7, 3, 1".
func parseDayList(value string) ([]int, error) {
	parts := strings.Split(value, ",")
	days := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a day count", part)
		}
		days = append(days, day)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("at least one reminder day is required")
	}
	return days, nil
}
