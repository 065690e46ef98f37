package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pogo/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pogo.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_OverlaysDefinedKeysOnly(t *testing.T) {
	path := writeConfig(t, `
timeout = "5s"
max_retries = 1
insecure_skip_verify = true
home = "/tmp/pogo-home"

[backoff]
initial = "100ms"
jitter = false

[location]
latitude = 40.7589
longitude = -73.9851
altitude = 10.0
`)
	cfg, err := config.Load(path, false)
	require.NoError(t, err)

	def := config.Default()
	require.Equal(t, def.BootstrapURL, cfg.BootstrapURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, 1, cfg.MaxRetries)
	require.True(t, cfg.InsecureSkipVerify)
	require.Equal(t, "/tmp/pogo-home", cfg.Home)
	require.Equal(t, 100*time.Millisecond, cfg.Backoff.Initial)
	require.Equal(t, def.Backoff.Max, cfg.Backoff.Max)
	require.Equal(t, def.Backoff.Multiplier, cfg.Backoff.Multiplier)
	require.False(t, cfg.Backoff.Jitter)
	require.NotNil(t, cfg.Location)
	require.InDelta(t, -73.9851, cfg.Location.Longitude, 1e-9)
}

func TestLoad_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := config.Load(missing, true)
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.Nil(t, cfg.Location)

	_, err = config.Load(missing, false)
	require.Error(t, err)
}

func TestLoad_Rejects(t *testing.T) {
	cases := map[string]string{
		"plain http":    `bootstrap_url = "http://example.com/rpc"`,
		"bad duration":  `timeout = "soon"`,
		"negative":      `max_retries = -1`,
		"unknown key":   `retries = 3`,
		"bad latitude":  "[location]\nlatitude = 123.0\nlongitude = 0.0",
		"small backoff": "[backoff]\nmultiplier = 0.5",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body), false)
			require.Error(t, err)
		})
	}
}
