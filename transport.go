//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"log/slog"
	"net/http"
)

// withLogging returns a copy of client that logs every request at Debug level.
func withLogging(client http.Client, logger *slog.Logger) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client.Transport = &loggingTransport{base: base, logger: logger}
	return &client
}

type loggingTransport struct {
	base   http.RoundTripper
	logger *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.Debug("http request", "method", req.Method, "url", req.URL.String())
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Debug("http request failed", "url", req.URL.String(), "error", err)
		return nil, err
	}
	t.logger.Debug("http response", "url", req.URL.String(), "status", resp.StatusCode, "content_type", resp.Header.Get("Content-Type"), "content_length", resp.ContentLength)
	return resp, nil
}
