package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transactioncloud/transactioncloud-go/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tcloud.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
api_key: key
api_key_password: password
sandbox: true
database_url: postgres://localhost/changefeed
poll_interval: 1m
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, "password", cfg.APIKeyPassword)
	assert.True(t, cfg.Sandbox)
	assert.Equal(t, "postgres://localhost/changefeed", cfg.DatabaseURL)
	assert.Equal(t, time.Minute, cfg.Interval())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
api_key: from-file
api_key_password: from-file
`)

	t.Setenv("TRANSACTION_CLOUD_API_KEY", "from-env")
	t.Setenv("TRANSACTION_CLOUD_API_KEY_PASSWORD", "also-from-env")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "also-from-env", cfg.APIKeyPassword)
}

func TestLoadMissingCredentials(t *testing.T) {
	path := writeConfig(t, `sandbox: true`)

	t.Setenv("TRANSACTION_CLOUD_API_KEY", "")
	t.Setenv("TRANSACTION_CLOUD_API_KEY_PASSWORD", "")

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "api_key is required")
}

func TestLoadBadInterval(t *testing.T) {
	path := writeConfig(t, `
api_key: key
api_key_password: password
poll_interval: soon
`)

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "invalid poll_interval")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
