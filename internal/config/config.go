package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	APIKey             string
	AdminUsername      string
	AdminPassword      string
	AdminPasswordHash  string
	AllowOrigin        string
	RateLimitPerMinute int
	RateLimitBurst     int
	SkipMigrations     bool
	OTELEndpoint       string
	OTELInsecure       bool
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:               port,
		DatabaseURL:        os.Getenv("DB_DSN"),
		APIKey:             os.Getenv("API_KEY"),
		AdminUsername:      os.Getenv("ADMIN_USERNAME"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash:  os.Getenv("ADMIN_PASSWORD_HASH"),
		AllowOrigin:        os.Getenv("ALLOW_ORIGIN"),
		RateLimitPerMinute: readInt("RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:     readInt("RATE_LIMIT_BURST", 30),
		SkipMigrations:     readBool("SKIP_MIGRATIONS", false),
		OTELEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELInsecure:       readBool("OTEL_EXPORTER_OTLP_INSECURE", false),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
