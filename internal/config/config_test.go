package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv(ServiceKeyEnv, "")

	path := writeConfig(t, `
[kopis]
service_key = abc123
requests_per_second = 2

[server]
addr = 127.0.0.1:8080
`)

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", c.Kopis.ServiceKey)
	assert.Equal(t, defaultBaseURL, c.Kopis.BaseURL)
	assert.Equal(t, 2, c.Kopis.RequestsPerSecond)
	assert.Equal(t, "127.0.0.1:8080", c.Server.Addr)
	assert.Equal(t, "info", c.Log.Level)
	assert.NoError(t, c.Validate())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ServiceKeyEnv, "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.ErrorIs(t, c.Validate(), ErrMissingServiceKey)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(ServiceKeyEnv, "from-env")

	c, err := Load(writeConfig(t, "[kopis]\nservice_key = from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.Kopis.ServiceKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	assert.Error(t, err)
}

func TestValidateRate(t *testing.T) {
	c := Default()
	c.Kopis.ServiceKey = "k"
	c.Kopis.RequestsPerSecond = -1
	assert.Error(t, c.Validate())
}

func TestValidateReportsAll(t *testing.T) {
	c := Default()
	c.Kopis.BaseURL = "kopis.or.kr"
	c.Kopis.RequestsPerSecond = -1

	err := c.Validate()
	assert.ErrorIs(t, err, ErrMissingServiceKey)
	assert.Len(t, multierr.Errors(err), 3)
}
