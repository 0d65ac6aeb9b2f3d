//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// Session downloads images into a single output directory, remembering
// the content it saved so that duplicates are skipped.
// A Session is not safe for concurrent use.
type Session struct {
	dir     string
	config  Config
	client  *http.Client
	seen    *HashSet
	summary Summary
	logger  *slog.Logger
}

// NewSession creates the output directory, if missing, and returns a
// Session using the default configuration.
func NewSession(dir string) (*Session, error) {
	return NewSessionWithConfig(dir, GetDefaultConfig())
}

// NewSessionWithConfig creates the output directory, if missing, and
// returns a Session using config. Unless config.DoNotSeedFromOutputDir is
// set, the content of the files already in dir counts as already seen.
func NewSessionWithConfig(dir string, config Config) (*Session, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	logger := config.logger()
	s := &Session{
		dir:    dir,
		config: config,
		client: withLogging(config.HttpClient, logger),
		seen:   NewHashSet(),
		logger: logger,
	}
	if !config.DoNotSeedFromOutputDir {
		n, err := s.seen.SeedFromDir(dir, logger)
		if err != nil {
			logger.Warn("could not load existing files, duplicate detection limited to this run", "error", err)
		} else {
			logger.Debug("loaded existing files", "dir", dir, "count", n)
		}
	}
	return s, nil
}

// Dir returns the output directory.
func (s *Session) Dir() string {
	return s.dir
}

// Summary returns the tally of every URL fetched so far.
func (s *Session) Summary() Summary {
	return s.summary
}

// Fetch runs the whole pipeline for a single URL and records the result
// in the session summary. It never fails: any problem is reported in the
// returned Result.
func (s *Session) Fetch(ctx context.Context, rawURL string) Result {
	res := Result{URL: rawURL}
	res.Err = s.download(ctx, strings.TrimSpace(rawURL), &res)
	res.Outcome = OutcomeFor(res.Err)
	s.summary.Add(res)

	switch res.Outcome {
	case Success:
		s.logger.Info("image saved", "url", rawURL, "path", res.Path, "size", res.Size)
	case Duplicate:
		s.logger.Info("duplicate skipped", "url", rawURL)
	default:
		s.logger.Warn("image not saved", "url", rawURL, "outcome", res.Outcome, "error", res.Err)
	}
	return res
}

// Run fetches urls in order, writing a status line for each of them to
// out, and waits Config.Pause between two consecutive URLs. It returns
// the session summary. If ctx is cancelled the remaining URLs fail
// immediately, so every URL is still accounted for.
func (s *Session) Run(ctx context.Context, urls []string, out io.Writer) Summary {
	for i, u := range urls {
		if i > 0 {
			sleep(ctx, s.config.Pause)
		}
		fmt.Fprintf(out, "\n[%d/%d] %s\n", i+1, len(urls), u)
		WriteStatus(out, s.Fetch(ctx, u))
	}
	return s.Summary()
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
