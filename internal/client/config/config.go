package config

import "time"

// Config holds runtime settings for the SkillShare CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the /api prefix.
//   - RequestTimeout: per-attempt HTTP timeout.
//   - DatabasePath: SQLite file that keeps the session between runs.
//   - RetryAttempts / RetryBaseDelay: retries after the first call for
//     retryable reads, and the first backoff delay.
//   - RateLimit / RateBurst: outgoing requests per second.
//   - CohereAPIKey / CohereURL: embedding provider for AI course search.
//   - LogFile / LogLevel: rotated JSON log output.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RateLimit      float64
	RateBurst      int
	CohereAPIKey   string
	CohereURL      string
	LogFile        string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "skillshare.db"
	c.RetryAttempts = 3
	c.RetryBaseDelay = 500 * time.Millisecond
	c.RateLimit = 10
	c.RateBurst = 5
	c.LogFile = "skillshare.log"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config: defaults, then environment (.env included),
// then the optional config file, then command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
