//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.bug.st/imagefetcher"
)

func TestDefaultSettings(t *testing.T) {
	isolate(t)
	os.Unsetenv("IMAGEFETCHER_OUTPUT_DIR")
	os.Unsetenv("IMAGEFETCHER_PAUSE")

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, imagefetcher.DefaultOutputDir, settings.OutputDir)
	require.Equal(t, "WARN", settings.Logging.Level)

	config, err := settings.FetcherConfig(nil)
	require.NoError(t, err)
	require.Equal(t, int64(100*1024*1024), config.MaxSize)
	require.Equal(t, int64(50*1024*1024), config.ConfirmSize)
	require.Equal(t, 15*time.Second, config.InactivityTimeout)
	require.Equal(t, time.Second, config.Pause)
	require.Equal(t, imagefetcher.DefaultUserAgent, config.ExtraHeaders["User-Agent"])
}

func TestSettingsFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("IMAGEFETCHER_MAX_SIZE", "2MiB")
	t.Setenv("IMAGEFETCHER_CONFIRM_SIZE", "0")
	t.Setenv("IMAGEFETCHER_TIMEOUT", "3s")
	t.Setenv("IMAGEFETCHER_USER_AGENT", "test-agent/1.0")
	t.Setenv("IMAGEFETCHER_LOGGING_LEVEL", "debug")

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "debug", settings.Logging.Level)

	logger := slog.New(slog.DiscardHandler)
	config, err := settings.FetcherConfig(logger)
	require.NoError(t, err)
	require.Equal(t, int64(2*1024*1024), config.MaxSize)
	require.Equal(t, int64(0), config.ConfirmSize)
	require.Equal(t, 3*time.Second, config.InactivityTimeout)
	require.Equal(t, time.Duration(0), config.Pause)
	require.Equal(t, "test-agent/1.0", config.ExtraHeaders["User-Agent"])
	require.Same(t, logger, config.Logger)
}

func TestSettingsFromFile(t *testing.T) {
	isolate(t)
	os.Unsetenv("IMAGEFETCHER_OUTPUT_DIR")
	require.NoError(t, os.WriteFile("imagefetcher.yaml", []byte("output_dir: Pictures\npause: 250ms\nlogging:\n  level: error\n"), 0644))

	settings, err := LoadSettings()
	require.NoError(t, err)
	require.Equal(t, "Pictures", settings.OutputDir)
	require.Equal(t, "error", settings.Logging.Level)
	// Environment wins over the file
	require.Equal(t, time.Duration(0), settings.Pause)
}

func TestBrokenSettingsFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("imagefetcher.yaml", []byte("output_dir: [unterminated\n"), 0644))

	_, err := LoadSettings()
	require.Error(t, err)
}

func TestFetcherConfigRejectsBadValues(t *testing.T) {
	for _, s := range []Settings{
		{MaxSize: "huge", ConfirmSize: "1MiB"},
		{MaxSize: "1MiB", ConfirmSize: "-"},
		{MaxSize: "1MiB", ConfirmSize: "1MiB", Timeout: -time.Second},
	} {
		_, err := s.FetcherConfig(nil)
		require.Error(t, err)
	}
}
