package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const (
	StorageAuto     = "auto"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port   string
	AppEnv string
	// Storage
	DBUrl         string
	StorageDriver string
	AutoMigrate   bool
	// BootstrapPasskey is seeded as an unused passkey when storage is in memory.
	BootstrapPasskey string
	// Session
	JWTSecret  string
	TokenTTL   time.Duration
	SignInPath string
	// SiteOwnerID is the user whose content is served on the public pages.
	SiteOwnerID     string
	FrontendOrigins []string
	// SMTP Configuration (contact relay)
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	ContactEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitGlobalThreshold int
	FailedLoginBlockMinutes  int
	FailedLoginMaxAttempts   int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		DBUrl:            getEnv("DATABASE_URL", ""),
		StorageDriver:    strings.ToLower(getEnv("STORAGE_DRIVER", StorageAuto)),
		AutoMigrate:      getEnvBool("DB_AUTO_MIGRATE", true),
		BootstrapPasskey: strings.TrimSpace(getEnv("BOOTSTRAP_PASSKEY", "")),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenTTL:         time.Duration(getEnvInt("TOKEN_TTL_HOURS", 7*24)) * time.Hour,
		SignInPath:       getEnv("SIGN_IN_PATH", "/sign-in"),
		SiteOwnerID:      strings.TrimSpace(getEnv("SITE_OWNER_ID", "")),
		FrontendOrigins:  getEnvList("FRONTEND_ORIGINS", []string{"http://localhost:3000"}),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", ""),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 120),
		FailedLoginBlockMinutes:  getEnvInt("FAILED_LOGIN_BLOCK_MINUTES", 15),
		FailedLoginMaxAttempts:   getEnvInt("FAILED_LOGIN_MAX_ATTEMPTS", 5),
	}

	if cfg.StorageDriver == StorageAuto || cfg.StorageDriver == "" {
		cfg.StorageDriver = StorageMemory
		if cfg.DBUrl != "" {
			cfg.StorageDriver = StoragePostgres
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SiteOwnerID == "" {
		log.Println("WARNING: SITE_OWNER_ID is not set. Default public pages will return 404.")
	}
	if cfg.BootstrapPasskey != "" && cfg.StorageDriver != StorageMemory {
		log.Println("WARNING: BOOTSTRAP_PASSKEY is ignored outside memory storage. Mint passkeys with cmd/passkey.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// Validate reports configuration that would make the server unusable or insecure.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("config: JWT_SECRET must be at least 32 bytes in production")
	}
	switch c.StorageDriver {
	case StoragePostgres:
		if c.DBUrl == "" {
			return errors.New("config: DATABASE_URL is required for the postgres storage driver")
		}
	case StorageMemory:
	default:
		return errors.New("config: unknown STORAGE_DRIVER " + strconv.Quote(c.StorageDriver))
	}
	if c.SiteOwnerID != "" {
		if _, err := uuid.Parse(c.SiteOwnerID); err != nil {
			return errors.New("config: SITE_OWNER_ID must be a user UUID")
		}
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL_HOURS must be positive")
	}
	return nil
}

// IsProduction controls the Secure cookie attribute and the log encoder.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping blanks and trailing slashes.
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
