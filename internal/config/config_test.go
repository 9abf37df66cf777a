package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{}})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, "./images", cfg.ImagesDir)
	assert.True(t, cfg.VisitsEnabled())
	assert.False(t, cfg.AdminEnabled())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse(env.Options{Environment: map[string]string{
		"PORT":           "9000",
		"APP_ENV":        "production",
		"TRACK_VISITS":   "false",
		"ADMIN_PASSWORD": "secret",
	}})
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.VisitsEnabled())
	assert.False(t, cfg.AdminEnabled())
}

func TestRouterMode(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    string
	}{
		{"local default", map[string]string{}, "debug"},
		{"production default", map[string]string{"APP_ENV": "production"}, "release"},
		{"explicit wins", map[string]string{"APP_ENV": "production", "GIN_MODE": "debug"}, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(env.Options{Environment: tt.environ})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.RouterMode())
		})
	}
}

func TestLoadReadsGinModeFromDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GIN_MODE=release\n"), 0o644))
	t.Setenv("GIN_MODE", "")
	os.Unsetenv("GIN_MODE")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.RouterMode())
}

func TestParseRejectsInvalid(t *testing.T) {
	for name, environ := range map[string]map[string]string{
		"port":      {"PORT": "http"},
		"app env":   {"APP_ENV": "Prod"},
		"log level": {"LOG_LEVEL": "verbose"},
		"gin mode":  {"GIN_MODE": "fast"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(env.Options{Environment: environ})
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CONTENT_FILE=profile.toml\n"), 0o644))
	t.Setenv("CONTENT_FILE", "")
	os.Unsetenv("CONTENT_FILE")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "profile.toml", cfg.ContentFile)
}
