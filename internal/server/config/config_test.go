package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
	assert.Equal(t, 30*time.Minute, c.ResetTokenValidityDuration)
	assert.Equal(t, "http://localhost:3000", c.FrontendURL)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_EnvThenFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	t.Setenv(EnvAddr, ":9000")
	t.Setenv(EnvSecretKey, "from-env")
	os.Args = []string{"cmd", "-s", "from-flag"}

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "from-flag", c.SecretKey)
	assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
}

func TestLoadConfig_StorageFromEnv(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"cmd"}

	t.Setenv(EnvDatabaseDSN, "postgres://env/skillshare")
	t.Setenv(EnvS3Bucket, "images")
	t.Setenv(EnvS3User, "minio")

	c := LoadConfig()
	assert.Equal(t, "postgres://env/skillshare", c.DatabaseDSN)
	assert.Equal(t, "images", c.S3Bucket)
	assert.Equal(t, "minio", c.S3RootUser)
	assert.Empty(t, c.S3RootPassword)
}
