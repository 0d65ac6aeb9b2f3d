//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	for level, expected := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"chatty":  slog.LevelWarn,
	} {
		require.Equal(t, expected, parseLogLevel(level), level)
	}
}

func TestSetupLoggerStderr(t *testing.T) {
	var stderr bytes.Buffer
	logger, closeLog, err := SetupLogger(LoggingSettings{Level: "INFO"}, &stderr)
	require.NoError(t, err)
	defer closeLog()

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")
	require.NotContains(t, stderr.String(), "hidden")
	require.Contains(t, stderr.String(), "msg=shown k=v")
}

func TestSetupLoggerFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "imagefetcher.log")
	var stderr bytes.Buffer
	logger, closeLog, err := SetupLogger(LoggingSettings{File: logPath, Level: "DEBUG"}, &stderr)
	require.NoError(t, err)

	logger.Debug("to file", "n", 1)
	closeLog()
	require.Empty(t, stderr.String())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	require.Equal(t, "to file", entry["msg"])
	require.Equal(t, "DEBUG", entry["level"])
}
