//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.bug.st/imagefetcher"
)

// Settings holds the configuration of the command
type Settings struct {
	OutputDir   string          `mapstructure:"output_dir"`
	UserAgent   string          `mapstructure:"user_agent"`
	MaxSize     string          `mapstructure:"max_size"`     // e.g. "100MiB", "0" for no limit
	ConfirmSize string          `mapstructure:"confirm_size"` // e.g. "50MiB", "0" to never ask
	Timeout     time.Duration   `mapstructure:"timeout"`      // inactivity timeout
	Pause       time.Duration   `mapstructure:"pause"`
	Logging     LoggingSettings `mapstructure:"logging"`
}

// LoggingSettings holds logging configuration
type LoggingSettings struct {
	File  string `mapstructure:"file"` // empty logs to stderr
	Level string `mapstructure:"level"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	config := imagefetcher.GetDefaultConfig()
	return &Settings{
		OutputDir:   imagefetcher.DefaultOutputDir,
		UserAgent:   imagefetcher.DefaultUserAgent,
		MaxSize:     humanize.IBytes(uint64(config.MaxSize)),
		ConfirmSize: humanize.IBytes(uint64(config.ConfirmSize)),
		Timeout:     config.InactivityTimeout,
		Pause:       config.Pause,
		Logging: LoggingSettings{
			Level: "WARN",
		},
	}
}

// defaultConfigPath returns the directory searched for imagefetcher.yaml
// besides the current one.
func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "imagefetcher")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "imagefetcher")
}

// LoadSettings loads configuration from file and environment
func LoadSettings() (*Settings, error) {
	defaults := DefaultSettings()

	v := viper.New()
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("max_size", defaults.MaxSize)
	v.SetDefault("confirm_size", defaults.ConfirmSize)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("pause", defaults.Pause)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.level", defaults.Logging.Level)

	v.SetConfigName("imagefetcher")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	// Environment variable overrides, IMAGEFETCHER_LOGGING_LEVEL for logging.level
	v.SetEnvPrefix("IMAGEFETCHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return &settings, nil
}

// FetcherConfig turns the settings into the configuration of a session.
func (s *Settings) FetcherConfig(logger *slog.Logger) (imagefetcher.Config, error) {
	config := imagefetcher.GetDefaultConfig()

	maxSize, err := parseSize(s.MaxSize)
	if err != nil {
		return config, fmt.Errorf("invalid max_size: %w", err)
	}
	confirmSize, err := parseSize(s.ConfirmSize)
	if err != nil {
		return config, fmt.Errorf("invalid confirm_size: %w", err)
	}
	if s.Timeout < 0 || s.Pause < 0 {
		return config, errors.New("timeout and pause must not be negative")
	}

	if s.UserAgent != "" {
		config.ExtraHeaders["User-Agent"] = s.UserAgent
	}
	config.MaxSize = maxSize
	config.ConfirmSize = confirmSize
	config.InactivityTimeout = s.Timeout
	config.Pause = s.Pause
	config.Logger = logger
	return config, nil
}

func parseSize(size string) (int64, error) {
	n, err := humanize.ParseBytes(size)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%s is too big", size)
	}
	return int64(n), nil
}
