package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultServerLogLevel, cfg.Server.LogLevel)
	assert.Equal(t, DefaultFallbackProvider, cfg.Fallback.Provider)
	assert.Equal(t, DefaultFallbackMaxTokens, cfg.Fallback.MaxTokens)
	assert.Equal(t, DefaultFallbackTemperature, cfg.Fallback.Temperature)
	assert.Empty(t, cfg.Fallback.APIKey)
	assert.True(t, cfg.Stats.Enabled)
	assert.Equal(t, DefaultStatsInterval, cfg.Stats.Interval)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RAILVOICE_SERVER_PORT", "9090")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".railvoice")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 7070\nstats:\n  enabled: false\n"), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.False(t, cfg.Stats.Enabled)
}

func TestLoad_APIKeyInjection(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Fallback.APIKey)
}

func TestDurationOrDefault(t *testing.T) {
	d, err := DurationOrDefault("250ms", "10s")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, d)

	d, err = DurationOrDefault("", "10s")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, d)

	_, err = DurationOrDefault("soon", "10s")
	assert.Error(t, err)

	_, err = DurationOrDefault("", "")
	assert.Error(t, err)
}
