// Package config builds process configuration from environment variables so
// main stays lean. Everything read here is immutable for the lifetime of the
// process.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	RecipientEmail string
	CORSOrigins    []string
	JWT            JWTConfig
	SMTP           SMTPConfig
	Redis          RedisConfig
	RateLimit      RateLimitConfig
	Stations       []StationCredential
	Drive          DriveConfig
}

type JWTConfig struct {
	SigningKey string
	Issuer     string
	TokenTTL   time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether outbound email is configured at all.
func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.Username != "" }

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// StationCredential pairs an observing station with the bcrypt hash of its
// login secret. Stations with an empty hash cannot obtain tokens.
type StationCredential struct {
	Name       string
	SecretHash string
}

type DriveConfig struct {
	AccessToken string
	BaseURL     string
	// Templates maps a form type to the template document id the resolver
	// copies when no static sheet entry exists.
	Templates map[string]string
}

func (c DriveConfig) Enabled() bool { return c.AccessToken != "" }

func FromEnv() Config {
	return Config{
		Addr:           envOr("METDESK_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RecipientEmail: os.Getenv("RECIPIENT_EMAIL"),
		CORSOrigins:    splitList(envOr("CORS_ORIGINS", "http://localhost:3001,http://localhost:5501")),
		JWT: JWTConfig{
			SigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:     envOr("JWT_ISSUER", "metdesk"),
			TokenTTL:   envDuration("JWT_TOKEN_TTL", 12*time.Hour),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     envInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     envOr("SMTP_FROM", os.Getenv("SMTP_USER")),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		RateLimit: RateLimitConfig{
			Requests: envInt("RATE_LIMIT_REQUESTS", 100),
			Window:   envDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
		Stations: []StationCredential{
			{Name: "Mab-Met", SecretHash: os.Getenv("STATION_SECRET_HASH_MAB_MET")},
			{Name: "Dagoretti", SecretHash: os.Getenv("STATION_SECRET_HASH_DAGORETTI")},
			{Name: "JKIA", SecretHash: os.Getenv("STATION_SECRET_HASH_JKIA")},
			{Name: "Wilson", SecretHash: os.Getenv("STATION_SECRET_HASH_WILSON")},
		},
		Drive: DriveConfig{
			AccessToken: os.Getenv("DRIVE_ACCESS_TOKEN"),
			BaseURL:     envOr("DRIVE_BASE_URL", "https://www.googleapis.com/drive/v3"),
			Templates: map[string]string{
				"FORM626":    os.Getenv("DRIVE_TEMPLATE_FORM626"),
				"CSHEET":     os.Getenv("DRIVE_TEMPLATE_CSHEET"),
				"FORM446":    os.Getenv("DRIVE_TEMPLATE_FORM446"),
				"WX_SUMMARY": os.Getenv("DRIVE_TEMPLATE_WX_SUMMARY"),
				"RCART":      os.Getenv("DRIVE_TEMPLATE_RCART"),
				"AGRO18_DEK": os.Getenv("DRIVE_TEMPLATE_AGRO18_DEK"),
			},
		},
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
