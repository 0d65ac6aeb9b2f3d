//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"io"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"
)

// DefaultOutputDir is the directory used when none is given.
const DefaultOutputDir = "Fetched_Images"

// DefaultUserAgent identifies the fetcher to the remote servers.
const DefaultUserAgent = "imagefetcher/1.0 (+https://go.bug.st/imagefetcher)"

// Progress receives the body of a download while it is streamed.
// It is satisfied by *progressbar.ProgressBar.
type Progress interface {
	io.Writer
	Finish() error
}

// Config contains the configuration for the fetcher
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called after the
	// response headers have passed the built-in checks, before reading
	// the body. If the function returns an error, the download is aborted.
	AcceptFunc func(resp *http.Response) error
	// MaxSize is the hard limit on the body size in bytes. 0 means no limit.
	MaxSize int64
	// ConfirmSize is the declared size above which ConfirmFunc is asked
	// before downloading. 0 disables the confirmation.
	ConfirmSize int64
	// ConfirmFunc asks the user a yes/no question. If nil, downloads that
	// need a confirmation are rejected.
	ConfirmFunc func(message string) bool
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
	// Pause is waited between two consecutive URLs.
	Pause time.Duration
	// ProgressFunc, if set, is called when the body of a download starts
	// streaming. size is -1 if the server did not send it.
	ProgressFunc func(url string, size int64) Progress
	// DoNotSeedFromOutputDir set to true to start with an empty seen-hash
	// set instead of hashing the files already in the output directory.
	DoNotSeedFromOutputDir bool
	// Logger receives diagnostic messages. If nil, nothing is logged.
	Logger *slog.Logger
}

var defaultConfig Config = Config{
	ExtraHeaders:      map[string]string{"User-Agent": DefaultUserAgent},
	MaxSize:           100 * 1024 * 1024,
	ConfirmSize:       50 * 1024 * 1024,
	InactivityTimeout: 15 * time.Second,
	Pause:             time.Second,
}
var defaultConfigLock sync.Mutex

// SetDefaultConfig sets the configuration that will be used by NewSession.
func SetDefaultConfig(newConfig Config) {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	defaultConfig = newConfig
	defaultConfig.ExtraHeaders = maps.Clone(newConfig.ExtraHeaders)
}

// GetDefaultConfig returns a copy of the default configuration. The default
// configuration can be changed using the SetDefaultConfig function.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()

	res := defaultConfig
	res.ExtraHeaders = maps.Clone(defaultConfig.ExtraHeaders)
	return res
}

func (c *Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
