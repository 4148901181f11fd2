package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPageFormat, EnvSizeLimitMB, EnvOverheadMB, EnvMaxDimension, EnvOutputDir, EnvLogLevel, EnvLogFormat} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "a4", cfg.PageFormat)
	assert.Equal(t, 10.0, cfg.SizeLimitMB)
	assert.Equal(t, int64(629146), cfg.OverheadBytes())
	assert.Equal(t, 2000, cfg.Policy.MaxDimension)
	assert.Equal(t, DefaultDatabasePath, cfg.DatabasePath)
	assert.False(t, strings.HasPrefix(cfg.OutputDir, "~"))
	assert.NotNil(t, cfg.Logger)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	out := t.TempDir()
	t.Setenv(EnvPageFormat, " Letter ")
	t.Setenv(EnvSizeLimitMB, "4.5")
	t.Setenv(EnvOverheadMB, "0")
	t.Setenv(EnvMaxDimension, "1600")
	t.Setenv(EnvOutputDir, out)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "letter", cfg.PageFormat)
	assert.Equal(t, 4.5, cfg.SizeLimitMB)
	assert.Zero(t, cfg.OverheadBytes())
	assert.Equal(t, 1600, cfg.Policy.MaxDimension)
	assert.Equal(t, out, cfg.OutputDir)
}

func TestLoad_YAMLFileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `page_format: a3
size_limit_mb: 25
policy:
  max_dimension: 3000
  quality_start: 0.9
  quality_step: 0.1
  quality_floor: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv(EnvSizeLimitMB, "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "a3", cfg.PageFormat)
	assert.Equal(t, 12.0, cfg.SizeLimitMB)
	assert.Equal(t, 3000, cfg.Policy.MaxDimension)
	assert.Equal(t, []float64{0.9, 0.8, 0.7, 0.6, 0.5}, cfg.Policy.Levels())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown page format", key: EnvPageFormat, value: "b9"},
		{name: "non-numeric limit", key: EnvSizeLimitMB, value: "ten"},
		{name: "zero limit", key: EnvSizeLimitMB, value: "0"},
		{name: "negative overhead", key: EnvOverheadMB, value: "-1"},
		{name: "bad dimension", key: EnvMaxDimension, value: "wide"},
		{name: "zero dimension", key: EnvMaxDimension, value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("warn", "json", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "images", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"images":3`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}
