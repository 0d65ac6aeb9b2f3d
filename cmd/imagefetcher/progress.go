//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.bug.st/imagefetcher"
)

const maxDescriptionLength = 24

// newProgressFunc returns an imagefetcher.Config.ProgressFunc drawing a
// byte progress bar on w. Unknown sizes get a spinner.
func newProgressFunc(w io.Writer) func(rawURL string, size int64) imagefetcher.Progress {
	return func(rawURL string, size int64) imagefetcher.Progress {
		return progressbar.NewOptions64(
			size,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetDescription(describe(rawURL)),
			progressbar.OptionThrottle(80*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w)
			}),
		)
	}
}

func describe(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
		name = path.Base(u.Path)
	}
	if r := []rune(name); len(r) > maxDescriptionLength {
		name = string(r[:maxDescriptionLength-1]) + "…"
	}
	return name
}
