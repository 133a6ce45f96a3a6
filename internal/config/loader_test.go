package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"COUNTDOWN_ENDPOINT",
	"COUNTDOWN_REMOTE_ENABLED",
	"COUNTDOWN_TICK_INTERVAL",
	"COUNTDOWN_DEFAULT_DATE",
	"LOG_LEVEL",
	"METRICS_ADDR",
}

// clearEnv unsets every key for the test; t.Setenv restores the originals afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "https://digidates.de/api/v1/countdown", cfg.Endpoint)
	assert.True(t, cfg.RemoteEnabled)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsAddr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "COUNTDOWN_ENDPOINT=http://localhost:8080/countdown\n" +
		"COUNTDOWN_REMOTE_ENABLED=false\n" +
		"COUNTDOWN_DEFAULT_DATE=2031-05-06\n" +
		"METRICS_ADDR=127.0.0.1:9464\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/countdown", cfg.Endpoint)
	assert.False(t, cfg.RemoteEnabled)
	assert.Equal(t, "2031-05-06", cfg.DefaultDate)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := Config{
		Endpoint:     "https://example.com/countdown",
		TickInterval: time.Second,
		LogLevel:     "debug",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "relative endpoint", mutate: func(c *Config) { c.Endpoint = "/countdown" }, wantErr: "COUNTDOWN_ENDPOINT"},
		{name: "ftp endpoint", mutate: func(c *Config) { c.Endpoint = "ftp://example.com" }, wantErr: "COUNTDOWN_ENDPOINT"},
		{name: "tick too fast", mutate: func(c *Config) { c.TickInterval = time.Millisecond }, wantErr: "COUNTDOWN_TICK_INTERVAL"},
		{name: "bad default date", mutate: func(c *Config) { c.DefaultDate = "soon" }, wantErr: "COUNTDOWN_DEFAULT_DATE"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitialDate(t *testing.T) {
	now := time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-11-15", (&Config{}).InitialDate(now))
	assert.Equal(t, "2027-01-01", (&Config{DefaultDate: "2027-01-01"}).InitialDate(now))
}

func TestConfigureLogger(t *testing.T) {
	logger := logrus.New()

	(&Config{LogLevel: "warn"}).ConfigureLogger(logger)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	(&Config{LogLevel: "nonsense"}).ConfigureLogger(logger)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
