package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	FrontendURL string
	// Email provider configuration (SendGrid)
	SendGridAPIKey string
	SenderEmail    string
	SenderName     string
	ContactEmailTo string // primary recipient, receives every notification
	ContactEmailCC string // optional secondary recipient, best-effort copy
	// Provider call budget so a hung provider cannot pin a request forever
	ProviderTimeout time.Duration
	// Redis Configuration (rate limiting + idempotency)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int
	RateLimitContactThreshold int
	// Idempotency key retention window
	IdempotencyRetention time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally; ignored in production when the
	// file does not exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Email provider configuration
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:     getEnv("EMAIL_FROM_ADDRESS", "noreply@devfolio.dev"), // must be a verified sender
		SenderName:      getEnv("EMAIL_FROM_NAME", "Portfolio Contact"),
		ContactEmailTo:  getEnv("CONTACT_EMAIL_TO", "hello@devfolio.dev"),
		ContactEmailCC:  getEnv("CONTACT_EMAIL_CC", ""),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		// Redis configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting (with sensible defaults)
		RateLimitWindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60), // 1 minute window
		RateLimitContactThreshold: getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", 5),
		// Idempotency
		IdempotencyRetention: getEnvDuration("IDEMPOTENCY_RETENTION", 24*time.Hour),
	}

	// Basic sanity warnings so local runs are debuggable
	if cfg.SendGridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY is missing. The contact endpoint will answer with a configuration error.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting and idempotency will use the in-memory fallback.")
	}

	return cfg, cfg.Validate()
}

// IsProduction reports whether the process runs with production policy.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate enforces the hard startup requirements. In production a missing
// provider credential is fatal: silently shipping a default credential or a
// dead contact form is worse than refusing to start.
func (c *Config) Validate() error {
	if !c.IsProduction() {
		return nil
	}

	required := map[string]string{
		"SENDGRID_API_KEY":   c.SendGridAPIKey,
		"EMAIL_FROM_ADDRESS": c.SenderEmail,
		"CONTACT_EMAIL_TO":   c.ContactEmailTo,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required in production", name)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration returns a duration environment variable or fallback if not set/invalid
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
