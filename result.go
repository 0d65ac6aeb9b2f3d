//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

// Outcome is the final state of a single URL.
type Outcome int

const (
	// Success means the image was saved.
	Success Outcome = iota
	// Duplicate means identical content was already saved; nothing was written.
	Duplicate
	// Rejected means the URL failed validation before any network call.
	Rejected
	// Failed means the download or the write did not complete.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Duplicate:
		return "duplicate"
	case Rejected:
		return "rejected"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes what happened to a single URL
type Result struct {
	URL     string
	Outcome Outcome
	// Filename and Path are set only on Success.
	Filename string
	Path     string
	// Size is the number of bytes received.
	Size int64
	// Width and Height are the image dimensions, when the format allowed
	// reading them from the first bytes of the body. Zero otherwise.
	Width  int
	Height int
	// Err is nil on Success.
	Err error
}

// Summary is the tally of all the results of a run.
type Summary struct {
	Total     int
	Succeeded int
	Duplicate int
	Rejected  int
	Failed    int
}

// Add records a result in the summary.
func (s *Summary) Add(r Result) {
	s.Total++
	switch r.Outcome {
	case Success:
		s.Succeeded++
	case Duplicate:
		s.Duplicate++
	case Rejected:
		s.Rejected++
	default:
		s.Failed++
	}
}

// Unsuccessful returns the number of URLs that were rejected or failed.
func (s Summary) Unsuccessful() int {
	return s.Rejected + s.Failed
}
