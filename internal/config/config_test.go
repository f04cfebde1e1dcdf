package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pixel-canvas.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Canvas.Width)
	assert.Equal(t, 10, cfg.Canvas.Height)
	assert.Equal(t, 50, cfg.Canvas.CellSize)
	assert.True(t, cfg.Canvas.ShowGrid)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvMetricsAddr, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidFile(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvMetricsAddr, "")

	path := writeConfig(t, `log_level: debug
metrics_addr: "127.0.0.1:9464"
max_sessions: 8
canvas:
  width: 32
  height: 16
  cell_size: 12
  show_grid: false
  grid_color: "#FFFFFF"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:9464", cfg.MetricsAddr)
	assert.Equal(t, 8, cfg.MaxSessions)
	assert.Equal(t, 32, cfg.Canvas.Width)
	assert.Equal(t, 16, cfg.Canvas.Height)
	assert.Equal(t, 12, cfg.Canvas.CellSize)
	assert.False(t, cfg.Canvas.ShowGrid)
	assert.Equal(t, "#FFFFFF", cfg.Canvas.GridColor)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvMetricsAddr, "")

	cfg, err := Load(writeConfig(t, "canvas:\n  width: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Canvas.Width)
	assert.Equal(t, 10, cfg.Canvas.Height)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, " WARN ")
	t.Setenv(EnvMetricsAddr, "localhost:9000")

	cfg, err := Load(writeConfig(t, "log_level: debug\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "localhost:9000", cfg.MetricsAddr)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load("/nonexistent/pixel-canvas.yml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "canvas: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "LogLevel"},
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, "Width"},
		{"huge height", func(c *Config) { c.Canvas.Height = 5000 }, "Height"},
		{"zero cell size", func(c *Config) { c.Canvas.CellSize = 0 }, "CellSize"},
		{"bad grid color", func(c *Config) { c.Canvas.GridColor = "black" }, "GridColor"},
		{"bad metrics addr", func(c *Config) { c.MetricsAddr = "not an address" }, "MetricsAddr"},
		{"negative sessions", func(c *Config) { c.MaxSessions = -1 }, "MaxSessions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
