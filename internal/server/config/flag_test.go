package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-s", "secret", "-t", "5", "-f", "http://front", "-l", "debug", "-d", "postgres://db/skillshare"},
			expected: &Config{
				Addr:                        "127.0.0.1:9090",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 5 * time.Minute,
				FrontendURL:                 "http://front",
				LogLevel:                    "debug",
				DatabaseDSN:                 "postgres://db/skillshare",
			},
		},
		{
			name: "foreign flags ignored",
			args: []string{"cmd", "-c", "cfg.yaml", "-a", ":1"},
			expected: &Config{
				Addr: ":1",
			},
		},
		{name: "bad minutes", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
