// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process configuration for the concierge.
type Config struct {
	// StorePath is the path of the persisted guild-state document.
	// Default: concierge-state.json in the working directory.
	StorePath string `yaml:"store_path"`

	// AnnounceTime is the local wall-clock time, formatted "HH:MM",
	// at which the daily birthday announcement fires.
	// Default: "09:00".
	AnnounceTime string `yaml:"announce_time"`

	// Timezone is the IANA name of the reference time zone for the
	// announcement schedule. Default: "Europe/Paris".
	Timezone string `yaml:"timezone"`

	// LogLevel is one of "debug", "info", "warn", "error".
	// Default: "info".
	LogLevel string `yaml:"log_level"`
}

// Default returns the default configuration. These defaults are applied
// as a base before the config file is loaded, so a partial file only
// needs to name the fields it overrides. An entirely absent file is
// still an error — see LoadFile.
func Default() *Config {
	return &Config{
		StorePath:    "concierge-state.json",
		AnnounceTime: "09:00",
		Timezone:     "Europe/Paris",
		LogLevel:     "info",
	}
}

// LoadFile loads configuration from the given YAML file path. The file
// must exist: a missing config file is a startup error, not an
// invitation to guess.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field parses. It is called by LoadFile;
// callers constructing a Config by hand (tests, Default) may call it
// directly.
func (c *Config) Validate() error {
	if c.StorePath == "" {
		return fmt.Errorf("store_path is required")
	}
	if _, _, err := c.AnnounceHourMinute(); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// AnnounceHourMinute parses AnnounceTime into hour and minute.
func (c *Config) AnnounceHourMinute() (hour, minute int, err error) {
	parts := strings.SplitN(c.AnnounceTime, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("announce_time %q is not HH:MM", c.AnnounceTime)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("announce_time %q: hour out of range", c.AnnounceTime)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("announce_time %q: minute out of range", c.AnnounceTime)
	}
	return hour, minute, nil
}

// Location resolves Timezone to a *time.Location.
func (c *Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return location, nil
}

// Level resolves LogLevel to a slog.Level.
func (c *Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level %q is not one of debug, info, warn, error", c.LogLevel)
}
