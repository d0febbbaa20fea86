package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvAddr        = "SKILLSHARE_ADDR"
	EnvSecretKey   = "SKILLSHARE_SECRET_KEY"
	EnvFrontendURL = "SKILLSHARE_FRONTEND_URL"
	EnvDatabaseDSN = "SKILLSHARE_DATABASE_DSN"
	EnvS3User      = "SKILLSHARE_S3_ROOT_USER"
	EnvS3Password  = "SKILLSHARE_S3_ROOT_PASSWORD"
	EnvS3Bucket    = "SKILLSHARE_S3_BUCKET"
	EnvS3Region    = "SKILLSHARE_S3_REGION"
	EnvS3Endpoint  = "SKILLSHARE_S3_ENDPOINT"
)

// parseEnv overlays values from the environment after loading an optional
// .env file.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv(EnvSecretKey); v != "" {
		cfg.SecretKey = v
	}
	if v := os.Getenv(EnvFrontendURL); v != "" {
		cfg.FrontendURL = v
	}
	for env, dst := range map[string]*string{
		EnvDatabaseDSN: &cfg.DatabaseDSN,
		EnvS3User:      &cfg.S3RootUser,
		EnvS3Password:  &cfg.S3RootPassword,
		EnvS3Bucket:    &cfg.S3Bucket,
		EnvS3Region:    &cfg.S3Region,
		EnvS3Endpoint:  &cfg.S3BaseEndpoint,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}
