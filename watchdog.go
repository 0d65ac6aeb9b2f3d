//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"context"
	"io"
	"os"
	"time"
)

// watchdog cancels its context with os.ErrDeadlineExceeded if it is not
// kicked within timeout. A zero timeout disables it.
type watchdog struct {
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

func newWatchdog(parent context.Context, timeout time.Duration) (context.Context, *watchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	wd := &watchdog{
		cancel:  cancel,
		timeout: timeout,
	}
	if timeout > 0 {
		wd.timer = time.AfterFunc(timeout, func() {
			cancel(os.ErrDeadlineExceeded)
		})
	}
	return ctx, wd
}

// Kick restarts the countdown.
func (wd *watchdog) Kick() {
	if wd.timer != nil {
		wd.timer.Reset(wd.timeout)
	}
}

// Suspend stops the countdown until the next Kick. Used while waiting
// for the user.
func (wd *watchdog) Suspend() {
	if wd.timer != nil {
		wd.timer.Stop()
	}
}

// Stop releases the watchdog and cancels its context.
func (wd *watchdog) Stop() {
	wd.Suspend()
	wd.cancel(nil)
}

// Reader wraps r so that every successful read kicks the watchdog.
func (wd *watchdog) Reader(r io.Reader) io.Reader {
	return &kickingReader{r: r, wd: wd}
}

type kickingReader struct {
	r  io.Reader
	wd *watchdog
}

func (k *kickingReader) Read(p []byte) (int, error) {
	n, err := k.r.Read(p)
	if n > 0 {
		k.wd.Kick()
	}
	return n, err
}
