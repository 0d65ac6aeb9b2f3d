//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// FallbackFilename is used when sanitizing leaves nothing of a filename.
const FallbackFilename = "downloaded_image.jpg"

const defaultExtension = ".jpg"

// maxFilenameLength is in bytes, the common limit of most filesystems.
const maxFilenameLength = 255

// preferred extensions, mime.ExtensionsByType returns them sorted
// alphabetically (".jfif" for image/jpeg).
var imageExtensions = map[string]string{
	"image/jpeg":               ".jpg",
	"image/pjpeg":              ".jpg",
	"image/png":                ".png",
	"image/apng":               ".png",
	"image/gif":                ".gif",
	"image/webp":               ".webp",
	"image/bmp":                ".bmp",
	"image/x-ms-bmp":           ".bmp",
	"image/tiff":               ".tiff",
	"image/svg+xml":            ".svg",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
	"image/avif":               ".avif",
	"image/heic":               ".heic",
	"image/heif":               ".heif",
}

// ValidateURL parses rawURL and checks that it is an absolute http or
// https URL with a host.
func ValidateURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q, only http and https are allowed", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return u, nil
}

// FilenameFromURL returns the last element of the URL path, or an empty
// string if the path does not name a file. The result is not sanitized.
func FilenameFromURL(u *url.URL) string {
	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		return ""
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

// SanitizeFilename reduces name to a plain basename made of letters,
// digits, spaces, '-', '_' and '.', with no leading dots. If nothing is
// left FallbackFilename is returned.
func SanitizeFilename(name string) string {
	if clean := cleanFilename(name); clean != "" {
		return clean
	}
	return FallbackFilename
}

func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := strings.TrimLeft(b.String(), ". ")
	clean = strings.TrimRight(clean, ". ")
	return truncateFilename(clean)
}

// truncateFilename shortens name to maxFilenameLength bytes keeping the
// extension and valid UTF-8.
func truncateFilename(name string) string {
	if len(name) <= maxFilenameLength {
		return name
	}
	ext := path.Ext(name)
	if len(ext) > 16 {
		ext = ""
	}
	base := name[:maxFilenameLength-len(ext)]
	for !utf8.ValidString(base) {
		base = base[:len(base)-1]
	}
	return base + ext
}

// generatedFilename builds a name for images whose URL does not name a file.
func generatedFilename(ext string) string {
	return "image_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8] + ext
}

// extensionForContentType returns the extension for an image media type,
// or an empty string if unknown.
func extensionForContentType(mediaType string) string {
	if ext, ok := imageExtensions[mediaType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// safeJoin joins name to dir, failing if the result would not be an
// immediate child of dir.
func safeJoin(dir, name string) (string, error) {
	if name == "" || !filepath.IsLocal(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q would be written outside of %s", ErrUnsafeFilename, name, dir)
	}
	return filepath.Join(dir, name), nil
}

// uniquePath finds a free name in dir, appending _1, _2, ... before the
// extension if name is already taken.
func uniquePath(dir, name string) (string, string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for i := 1; ; i++ {
		p, err := safeJoin(dir, candidate)
		if err != nil {
			return "", "", err
		}
		if _, err := os.Lstat(p); errors.Is(err, fs.ErrNotExist) {
			return candidate, p, nil
		} else if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrWrite, err)
		}
		candidate = withSuffix(base, fmt.Sprintf("_%d", i), ext)
	}
}

// withSuffix builds base+suffix+ext, shortening base so that the result
// fits in maxFilenameLength bytes.
func withSuffix(base, suffix, ext string) string {
	if room := maxFilenameLength - len(suffix) - len(ext); len(base) > room {
		base = base[:max(room, 0)]
		for !utf8.ValidString(base) {
			base = base[:len(base)-1]
		}
	}
	return base + suffix + ext
}
