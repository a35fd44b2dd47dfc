package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env        string // development | production
		Port       string
		BaseDomain string // tenant subdomains hang off this, e.g. "fieldhouse.app"
		UploadDir  string
		PublicURL  string // base URL prefix for stored media, e.g. "http://localhost:8090/uploads"
	}
	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	Clerk struct {
		SecretKey string
	}
	Invite struct {
		Secret      string
		ExpiryHours int
	}
}

// LoadConfig reads configuration from the environment (optionally via .env).
func LoadConfig() (*Config, error) {
	// Missing .env is fine; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on system environment")
	}

	cfg := &Config{}

	cfg.App.Env = getEnv("APP_ENV", "development")
	cfg.App.Port = getEnv("PORT", "8090")
	cfg.App.BaseDomain = getEnv("BASE_DOMAIN", "localhost")
	cfg.App.UploadDir = getEnv("UPLOAD_DIR", "./public/uploads")
	cfg.App.PublicURL = getEnv("PUBLIC_URL", "http://localhost:8090/uploads")

	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "password")
	cfg.DB.Name = getEnv("DB_NAME", "fieldhouse_db")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Clerk.SecretKey = getEnv("CLERK_SECRET_KEY", "")

	cfg.Invite.Secret = getEnv("INVITE_TOKEN_SECRET", "dev-invite-secret")

	var err error
	cfg.Invite.ExpiryHours, err = getEnvAsInt("INVITE_TOKEN_EXPIRY_HOURS", 72)
	if err != nil {
		return nil, fmt.Errorf("invalid INVITE_TOKEN_EXPIRY_HOURS: %w", err)
	}

	if cfg.Clerk.SecretKey == "" {
		log.Warn().Msg("CLERK_SECRET_KEY is not set; authenticated routes will reject all requests")
	}
	if cfg.Invite.Secret == "dev-invite-secret" && cfg.App.Env == "production" {
		log.Warn().Msg("using default INVITE_TOKEN_SECRET in production")
	}

	return cfg, nil
}

// ConnectDB opens the Postgres connection. The handle is passed explicitly to
// repositories; there is no package-level database state.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
	)

	gormConfig := &gorm.Config{
		// Unique-violation errors surface as gorm.ErrDuplicatedKey so handlers
		// can answer 409 instead of 500.
		TranslateError: true,
	}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("connected to database")
	return db, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback, fmt.Errorf("env var %s: expected integer, got '%s'", key, valueStr)
	}
	return value, nil
}
