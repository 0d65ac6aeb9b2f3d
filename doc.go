//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// Package imagefetcher downloads images from a list of URLs into a single
// output directory. Each URL is validated, streamed with size and
// inactivity limits, deduplicated by content hash and saved under a
// sanitized filename. Failures are recorded per URL and never stop the run.
package imagefetcher
