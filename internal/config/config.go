package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the API server.
type Config struct {
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	TelegramToken string
	DigestTime    string
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:    strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:      parseHours(strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS"))),
		CORSOrigins:   parseOrigins(strings.TrimSpace(os.Getenv("CORS_ORIGINS"))),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DigestTime:    strings.TrimSpace(os.Getenv("DIGEST_TIME")),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "ultimate_todo.db"
	}

	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 30 * 24 * time.Hour
	}

	if cfg.DigestTime == "" {
		cfg.DigestTime = "08:00"
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func parseOrigins(raw string) []string {
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
