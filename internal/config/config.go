package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iankisali/digitwin/internal/twin"
)

type Config struct {
	Port          string
	TwinScriptURL string
	RateLimit     int
	CacheTTL      time.Duration
	LogLevel      slog.Level
}

// Load reads .env from the working directory when present and then the
// process environment. Variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		TwinScriptURL: getEnv("TWIN_SCRIPT_URL", twin.DefaultScriptURL),
	}

	limit, err := strconv.Atoi(getEnv("RATE_LIMIT", "500"))
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT %q: must be a positive integer", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = limit

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(getEnv("LOG_LEVEL", "info")))); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
