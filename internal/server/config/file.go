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

// FileConfig is the on-disk shape of the configuration. Durations accept
// strings such as "1h" or integer nanoseconds. Zero values are ignored.
type FileConfig struct {
	Addr                        string         `json:"addr" yaml:"addr"`
	SecretKey                   string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	ResetTokenValidityDuration  timex.Duration `json:"reset_token_validity_duration" yaml:"reset_token_validity_duration"`
	FrontendURL                 string         `json:"frontend_url" yaml:"frontend_url"`
	ShutdownTimeout             timex.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel                    string         `json:"log_level" yaml:"log_level"`
	DatabaseDSN                 string         `json:"database_dsn" yaml:"database_dsn"`
	S3RootUser                  string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                    string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
}

// parseFile loads the file given with -c or -config. The extension selects
// YAML (.yaml, .yml) or JSON. Read and decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenValidityDuration.Duration > 0 {
		cfg.AccessTokenValidityDuration = fc.AccessTokenValidityDuration.Duration
	}
	if fc.ResetTokenValidityDuration.Duration > 0 {
		cfg.ResetTokenValidityDuration = fc.ResetTokenValidityDuration.Duration
	}
	if fc.FrontendURL != "" {
		cfg.FrontendURL = fc.FrontendURL
	}
	if fc.ShutdownTimeout.Duration > 0 {
		cfg.ShutdownTimeout = fc.ShutdownTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	overlay(&cfg.DatabaseDSN, fc.DatabaseDSN)
	overlay(&cfg.S3RootUser, fc.S3RootUser)
	overlay(&cfg.S3RootPassword, fc.S3RootPassword)
	overlay(&cfg.S3Bucket, fc.S3Bucket)
	overlay(&cfg.S3Region, fc.S3Region)
	overlay(&cfg.S3BaseEndpoint, fc.S3BaseEndpoint)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
