// Package config loads server settings from an optional YAML file and the
// environment.
//
// Precedence, lowest to highest: built-in defaults, the YAML file, then
// PIXEL_CANVAS_* environment variables. Command-line flags are applied by the
// caller after Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by Load.
const (
	EnvLogLevel    = "PIXEL_CANVAS_LOG_LEVEL"
	EnvMetricsAddr = "PIXEL_CANVAS_METRICS_ADDR"
)

// CanvasConfig holds defaults for newly created canvases and their renders.
type CanvasConfig struct {
	Width     int    `yaml:"width" validate:"min=1,max=4096"`
	Height    int    `yaml:"height" validate:"min=1,max=4096"`
	CellSize  int    `yaml:"cell_size" validate:"min=1,max=256"`
	ShowGrid  bool   `yaml:"show_grid"`
	GridColor string `yaml:"grid_color" validate:"hexcolor"`
}

// Config is the top-level configuration file.
type Config struct {
	LogLevel    string       `yaml:"log_level" validate:"oneof=debug info warn error"`
	MetricsAddr string       `yaml:"metrics_addr,omitempty" validate:"omitempty,hostname_port"`
	MaxSessions int          `yaml:"max_sessions" validate:"min=0"` // 0 = unlimited
	Canvas      CanvasConfig `yaml:"canvas"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the configuration used when no file is given: a 10x10
// canvas drawn with 50px cells and a black grid.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		MaxSessions: 0,
		Canvas: CanvasConfig{
			Width:     10,
			Height:    10,
			CellSize:  50,
			ShowGrid:  true,
			GridColor: "#000000",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.MetricsAddr = strings.TrimSpace(v)
	}
}

// Validate checks every field against its constraints and reports all
// failures in one error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
