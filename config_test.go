//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"bytes"
	"context"
	"image/color"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := GetDefaultConfig()
	require.Equal(t, DefaultUserAgent, config.ExtraHeaders["User-Agent"])
	require.Equal(t, int64(100*1024*1024), config.MaxSize)
	require.Equal(t, int64(50*1024*1024), config.ConfirmSize)
	require.Equal(t, 15*time.Second, config.InactivityTimeout)
	require.Equal(t, time.Second, config.Pause)
	require.Nil(t, config.ConfirmFunc)
}

func TestDefaultConfigIsCopied(t *testing.T) {
	saved := GetDefaultConfig()
	t.Cleanup(func() { SetDefaultConfig(saved) })

	config := GetDefaultConfig()
	config.ExtraHeaders["User-Agent"] = "changed"
	require.Equal(t, DefaultUserAgent, GetDefaultConfig().ExtraHeaders["User-Agent"])

	config.Pause = 0
	SetDefaultConfig(config)
	config.ExtraHeaders["User-Agent"] = "changed again"
	require.Equal(t, "changed", GetDefaultConfig().ExtraHeaders["User-Agent"])
	require.Equal(t, time.Duration(0), GetDefaultConfig().Pause)
}

func TestLoggerReceivesRequests(t *testing.T) {
	srv := httptest.NewServer(serveBytes("image/png", makePNG(t, 1, 1, color.White)))
	defer srv.Close()

	var logs bytes.Buffer
	s := newTestSession(t, func(c *Config) {
		c.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})
	require.NoError(t, s.Fetch(context.Background(), srv.URL+"/x.png").Err)
	require.Contains(t, logs.String(), "msg=\"http request\"")
	require.Contains(t, logs.String(), "url="+srv.URL+"/x.png")
	require.Contains(t, logs.String(), "msg=\"image saved\"")
}
