package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL   string
	RunMigrations bool

	// Redis (session store)
	RedisURL string

	// Sessions
	SessionTTL        time.Duration
	SessionCookieName string

	// Auth0 (optional bearer JWT authentication)
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// External APIs
	ExchangeRateURL string
	ExchangeRateTTL time.Duration
	CoinGeckoURL    string
	MarketCacheTTL  time.Duration

	// Image storage
	StorageDriver string
	S3            S3Config
	MinIO         MinIOConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for LocalStack local dev
}

// MinIOConfig holds MinIO configuration
type MinIOConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// Storage drivers
const (
	StorageDriverS3    = "s3"
	StorageDriverMinIO = "minio"
)

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		RunMigrations:     getEnv("RUN_MIGRATIONS", "true") == "true",
		RedisURL:          getEnv("REDIS_URL", ""),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "wishflow_session"),
		Auth0Domain:       getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:     getEnv("AUTH0_AUDIENCE", ""),
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:               getEnv("ENV", "development"),
		ExchangeRateURL:   getEnv("EXCHANGE_RATE_URL", "https://api.exchangerate-api.com/v4/latest/USD"),
		CoinGeckoURL:      getEnv("COINGECKO_URL", "https://api.coingecko.com/api/v3"),
		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", "")),
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "wishflow-images"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:        getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretAccessKey: getEnv("MINIO_SECRET_KEY", ""),
			BucketName:      getEnv("MINIO_BUCKET", "wishflow-images"),
			UseSSL:          getEnv("MINIO_USE_SSL", "false") == "true",
		},
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", "720h"); err != nil {
		return nil, err
	}
	if cfg.ExchangeRateTTL, err = getDuration("EXCHANGE_RATE_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.MarketCacheTTL, err = getDuration("MARKET_CACHE_TTL", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with ENV=production
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Auth0Enabled reports whether bearer JWTs from Auth0 are accepted
func (c *Config) Auth0Enabled() bool {
	return c.Auth0Domain != "" && c.Auth0Audience != ""
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	switch c.StorageDriver {
	case "", StorageDriverS3, StorageDriverMinIO:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: s3, minio")
	}
	if (c.Auth0Domain == "") != (c.Auth0Audience == "") {
		return fmt.Errorf("AUTH0_DOMAIN and AUTH0_AUDIENCE must be set together")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
