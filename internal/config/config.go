// Package config holds the viper-backed configuration for planweave.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete planweave configuration
type Config struct {
	Planner   PlannerConfig   `mapstructure:"planner"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Templates TemplatesConfig `mapstructure:"templates"`
}

// PlannerConfig controls duration estimation and milestone pacing
type PlannerConfig struct {
	// HoursPerDay is the divisor converting estimated hours to working days (default: 8)
	HoursPerDay float64 `mapstructure:"hours_per_day"`
	// BufferFactor scales the critical path to account for coordination and review (default: 1.2)
	BufferFactor float64 `mapstructure:"buffer_factor"`
	// DefaultTaskHours is assumed for tasks with no estimate (default: 16)
	DefaultTaskHours float64 `mapstructure:"default_task_hours"`
	// MilestonePacingDivisor spreads milestone due dates over task count (default: 6)
	MilestonePacingDivisor int `mapstructure:"milestone_pacing_divisor"`
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	// Level is the minimum log level: DEBUG, INFO, WARN, ERROR (default: INFO)
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// TemplatesConfig controls task template overrides
type TemplatesConfig struct {
	// File is an optional YAML file of hand-authored task template sets
	// that replaces the built-in templates for matching project types
	File string `mapstructure:"file"`
}

// ConfigDir returns the planweave configuration directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "planweave")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "planweave")
}

// SetDefaults registers default values with viper. Call before ReadInConfig
// so defaults apply even without a config file.
func SetDefaults() {
	viper.SetDefault("planner.hours_per_day", 8.0)
	viper.SetDefault("planner.buffer_factor", 1.2)
	viper.SetDefault("planner.default_task_hours", 16.0)
	viper.SetDefault("planner.milestone_pacing_divisor", 6)
	viper.SetDefault("logging.level", "INFO")
	viper.SetDefault("logging.file", "")
	viper.SetDefault("templates.file", "")
}

// Load unmarshals the current viper state into a Config.
// Out-of-range planner values fall back to their defaults rather than
// failing, so a bad config file cannot produce a zero-length work day.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Planner.HoursPerDay <= 0 {
		cfg.Planner.HoursPerDay = 8.0
	}
	if cfg.Planner.BufferFactor < 1.0 {
		cfg.Planner.BufferFactor = 1.2
	}
	if cfg.Planner.DefaultTaskHours <= 0 {
		cfg.Planner.DefaultTaskHours = 16.0
	}
	if cfg.Planner.MilestonePacingDivisor <= 0 {
		cfg.Planner.MilestonePacingDivisor = 6
	}
	return &cfg, nil
}
