//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// sniffLen is how much of the body is looked at before streaming the rest.
const sniffLen = 4096

type sniffResult struct {
	// contentType as detected by http.DetectContentType
	contentType string
	// htmlTag is set when the head contains an <html> or doctype tag
	htmlTag bool
	// format as registered in the image package, empty if the header
	// could not be decoded from the sniffed bytes
	format string
	width  int
	height int
}

func sniff(head []byte) sniffResult {
	res := sniffResult{contentType: http.DetectContentType(head)}
	lower := bytes.ToLower(head)
	res.htmlTag = bytes.Contains(lower, []byte("<html")) || bytes.Contains(lower, []byte("<!doctype html"))
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(head)); err == nil {
		res.format = format
		res.width = cfg.Width
		res.height = cfg.Height
	}
	return res
}

// looksLikeHTML reports whether a body declared as mediaType is an HTML
// page. XML based images (SVG) may start with a comment, which alone is
// detected as HTML, so they need an explicit <html> or doctype tag.
func (s sniffResult) looksLikeHTML(mediaType string) bool {
	if !strings.HasPrefix(s.contentType, "text/html") {
		return false
	}
	if strings.HasSuffix(mediaType, "+xml") {
		return s.htmlTag
	}
	return true
}

// extension guessed from the body, empty if unknown.
func (s sniffResult) extension() string {
	switch s.format {
	case "":
	case "jpeg":
		return ".jpg"
	default:
		return "." + s.format
	}
	mediaType, _, _ := strings.Cut(s.contentType, ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return ""
	}
	return extensionForContentType(mediaType)
}
