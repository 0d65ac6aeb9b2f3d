//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// WriteStatus writes the one-line outcome of a single URL.
func WriteStatus(w io.Writer, r Result) {
	switch r.Outcome {
	case Success:
		details := humanize.IBytes(uint64(r.Size))
		if r.Width > 0 && r.Height > 0 {
			details += fmt.Sprintf(", %dx%d", r.Width, r.Height)
		}
		fmt.Fprintf(w, "✓ Saved %s (%s)\n", r.Path, details)
	case Duplicate:
		fmt.Fprintln(w, "= Already downloaded, duplicate skipped")
	case Rejected:
		fmt.Fprintf(w, "✗ Rejected: %v\n", r.Err)
	default:
		fmt.Fprintf(w, "✗ Failed: %v\n", r.Err)
	}
}

// WriteSummary writes the tally of a run.
func WriteSummary(w io.Writer, s Summary) {
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(w, "\n%s\nDOWNLOAD SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(w, "Total URLs processed:    %d\n", s.Total)
	fmt.Fprintf(w, "Successfully downloaded: %d\n", s.Succeeded)
	fmt.Fprintf(w, "Duplicates skipped:      %d\n", s.Duplicate)
	fmt.Fprintf(w, "Failed:                  %d\n", s.Unsuccessful())
	if s.Rejected > 0 {
		fmt.Fprintf(w, "  of which rejected:     %d\n", s.Rejected)
	}
}
