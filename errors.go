//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import "errors"

// Errors returned (wrapped) by the fetch pipeline. Use errors.Is to
// classify them, or OutcomeFor to map them to an Outcome.
var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrUnsafeFilename   = errors.New("unsafe filename")
	ErrConnection       = errors.New("connection error")
	ErrBadStatus        = errors.New("bad HTTP status")
	ErrWrongContentType = errors.New("not an image")
	ErrTooLarge         = errors.New("file too large")
	ErrDuplicateContent = errors.New("duplicate content")
	ErrWrite            = errors.New("write error")
)

// OutcomeFor returns the Outcome a pipeline error is recorded as. A nil
// error is a Success; errors outside the taxonomy count as Failed.
func OutcomeFor(err error) Outcome {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrDuplicateContent):
		return Duplicate
	case errors.Is(err, ErrInvalidURL), errors.Is(err, ErrUnsafeFilename):
		return Rejected
	default:
		return Failed
	}
}
