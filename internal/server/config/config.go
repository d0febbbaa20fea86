// Package config handles configuration for the reference API server,
// including defaults, environment, a JSON or YAML overlay, and command-line
// flags.
package config

import "time"

// Config holds runtime settings for the SkillShare API server.
//
// Fields:
//   - Addr: HTTP bind address.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - ResetTokenValidityDuration: lifetime of password reset tokens.
//   - FrontendURL: base of the links the server hands out (password reset).
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - LogLevel: debug, info, warn or error.
//   - DatabaseDSN: PostgreSQL DSN. Empty keeps everything in memory.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage for images. An
//     empty S3Bucket keeps images inline as data: URLs.
type Config struct {
	Addr                        string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	ResetTokenValidityDuration  time.Duration
	FrontendURL                 string
	ShutdownTimeout             time.Duration
	LogLevel                    string
	DatabaseDSN                 string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = time.Hour
	c.ResetTokenValidityDuration = 30 * time.Minute
	c.FrontendURL = "http://localhost:3000"
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
}

// LoadConfig builds a Config from defaults, the environment, an optional
// config file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
