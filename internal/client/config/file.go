package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/skillshare/internal/flagx"
	"github.com/dmitrijs2005/skillshare/internal/timex"
	"github.com/goccy/go-yaml"
)

// FileConfig is a DTO used exclusively for decoding the config file. Durations
// go through timex.Duration so both "3s" and integer nanoseconds work. Zero
// values leave the corresponding Config field untouched.
type FileConfig struct {
	ServerURL      string         `json:"server_url" yaml:"server_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	RetryAttempts  int            `json:"retry_attempts" yaml:"retry_attempts"`
	RetryBaseDelay timex.Duration `json:"retry_base_delay" yaml:"retry_base_delay"`
	RateLimit      float64        `json:"rate_limit" yaml:"rate_limit"`
	RateBurst      int            `json:"rate_burst" yaml:"rate_burst"`
	CohereAPIKey   string         `json:"cohere_api_key" yaml:"cohere_api_key"`
	CohereURL      string         `json:"cohere_url" yaml:"cohere_url"`
	LogFile        string         `json:"log_file" yaml:"log_file"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c or -config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON. Read or decode
// errors panic, like flag errors do.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func decodeFile(path string, data []byte) (FileConfig, error) {
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return FileConfig{}, err
		}
	default:
		if err := json.Unmarshal(data, &fc); err != nil {
			return FileConfig{}, err
		}
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.RetryAttempts > 0 {
		cfg.RetryAttempts = fc.RetryAttempts
	}
	if fc.RetryBaseDelay.Duration > 0 {
		cfg.RetryBaseDelay = fc.RetryBaseDelay.Duration
	}
	if fc.RateLimit > 0 {
		cfg.RateLimit = fc.RateLimit
	}
	if fc.RateBurst > 0 {
		cfg.RateBurst = fc.RateBurst
	}
	if fc.CohereAPIKey != "" {
		cfg.CohereAPIKey = fc.CohereAPIKey
	}
	if fc.CohereURL != "" {
		cfg.CohereURL = fc.CohereURL
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
