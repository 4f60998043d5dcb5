// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string
	BaseURL  string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DraftTTL      time.Duration

	PricingConfigPath string

	GoogleCredentialsPath string
	GoogleCredentialsJSON string
	ChromePath            string
	ImageCacheDir         string
}

// Load reads the configuration. DATABASE_URL wins over the DB_* variables.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                   getEnv("ENV", "development"),
		Port:                  strings.TrimPrefix(getEnv("PORT", "8080"), ":"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		PricingConfigPath:     getEnv("PRICING_CONFIG_PATH", "pricing/rules.yaml"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
		ChromePath:            os.Getenv("CHROME_PATH"),
		ImageCacheDir:         getEnv("IMAGE_CACHE_DIR", "cache/images"),
	}
	cfg.BaseURL = strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:"+cfg.Port), "/")

	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	cfg.DatabaseURL = dbURL

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}

	ttl, err := time.ParseDuration(getEnv("DRAFT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DRAFT_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("DRAFT_TTL must be positive")
	}
	cfg.DraftTTL = ttl

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasDriveCredentials reports whether Google Drive can be reached.
func (c *Config) HasDriveCredentials() bool {
	return c.GoogleCredentialsJSON != "" || c.GoogleCredentialsPath != ""
}

func databaseURL() (string, error) {
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		return connStr, nil
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, getEnv("DB_PORT", "5432"), user, os.Getenv("DB_PASSWORD"), dbname,
		getEnv("DB_SSLMODE", "disable")), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
