package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"GEMINI_API_KEY", "GEMINI_MODEL", "PORT", "PUBLIC_URL", "CENSUS_API_KEY",
	"CENSUS_BASE_URL", "CENSUS_YEAR", "REDIS_URL", "CACHE_TTL", "LOG_LEVEL",
	"LLM_RATE_PER_MINUTE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "twin.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.ModelEnabled())
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())

	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
}

func TestLoadMissingDefaultFileIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load(DefaultFile)
	assert.NoError(t, err)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
log_level = "debug"

[server]
port = "9090"
public_url = "https://twin.example.com"

[gemini]
model = "gemini-pro"
rate_per_minute = 10

[cache]
ttl = "15m"
`)
	t.Setenv("PORT", "7070")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("LLM_RATE_PER_MINUTE", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "https://twin.example.com", cfg.BaseURL())
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, 5, cfg.Gemini.RatePerMinute)
	assert.True(t, cfg.ModelEnabled())
	assert.Equal(t, "https://api.census.gov/data", cfg.Census.BaseURL)

	ttl, err := cfg.CacheTTL()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("LLM_RATE_PER_MINUTE", "fast")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("LLM_RATE_PER_MINUTE", "")
	t.Setenv("CACHE_TTL", "soon")
	_, err = Load("")
	assert.Error(t, err)

	_, err = Load(writeFile(t, "[server\nport = 1"))
	assert.Error(t, err)
}
