package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvServerURL    = "SKILLSHARE_SERVER_URL"
	EnvDatabasePath = "SKILLSHARE_DB"
	EnvTimeout      = "SKILLSHARE_TIMEOUT"
	EnvLogLevel     = "SKILLSHARE_LOG_LEVEL"
	EnvCohereAPIKey = "COHERE_API_KEY"
	EnvCohereURL    = "COHERE_URL"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first; variables already set win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()
	applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvServerURL); ok && v != "" {
		cfg.ServerURL = v
	}
	if v, ok := lookup(EnvDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvCohereAPIKey); ok {
		cfg.CohereAPIKey = v
	}
	if v, ok := lookup(EnvCohereURL); ok && v != "" {
		cfg.CohereURL = v
	}
}
