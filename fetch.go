//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// in-progress downloads are hidden files in the output directory
const tempPattern = ".imagefetcher-*.part"

// download runs the pipeline for a single URL, filling res as it goes.
// The returned error is classified by OutcomeFor.
func (s *Session) download(ctx context.Context, rawURL string, res *Result) error {
	// Nothing touches the network before the URL and the name it maps to
	// are known to be safe.
	u, err := ValidateURL(rawURL)
	if err != nil {
		return err
	}
	urlName := cleanFilename(FilenameFromURL(u))
	// cleanFilename drops separators, so this only trips on names that are
	// not local on the current OS (e.g. reserved device names on Windows).
	if urlName != "" {
		if _, err := safeJoin(s.dir, urlName); err != nil {
			return err
		}
	}

	ctx, wd := newWatchdog(ctx, s.config.InactivityTimeout)
	defer wd.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: setting up HTTP request: %w", ErrInvalidURL, err)
	}
	for k, v := range s.config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	s.logger.Info("connecting", "host", u.Host)
	resp, err := s.client.Do(req)
	if err != nil {
		return connectionError(ctx, err)
	}
	defer resp.Body.Close()
	wd.Kick()

	mediaType, err := checkResponse(resp)
	if err != nil {
		return err
	}
	wd.Suspend()
	err = s.checkSize(resp.ContentLength)
	wd.Kick()
	if err != nil {
		return err
	}
	if s.config.AcceptFunc != nil {
		if err := s.config.AcceptFunc(resp); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(s.dir, tempPattern)
	if err != nil {
		return fmt.Errorf("%w: creating temporary file: %w", ErrWrite, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	in := wd.Reader(resp.Body)
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(in, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return connectionError(ctx, err)
	}
	head = head[:n]
	if n == 0 {
		return fmt.Errorf("%w: empty response body", ErrWrongContentType)
	}
	sniffed := sniff(head)
	if sniffed.looksLikeHTML(mediaType) {
		return fmt.Errorf("%w: declared %s but the body looks like HTML", ErrWrongContentType, mediaType)
	}

	var progress Progress
	if s.config.ProgressFunc != nil {
		progress = s.config.ProgressFunc(rawURL, resp.ContentLength)
	}
	hash := newContentHash()
	res.Size, err = stream(ctx, io.MultiReader(bytes.NewReader(head), in), io.MultiWriter(tmp, hash), progress, s.config.MaxSize)
	if progress != nil {
		_ = progress.Finish()
	}
	if err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	sum := hexSum(hash)
	if s.seen.Seen(sum) {
		return fmt.Errorf("%w: same content already saved", ErrDuplicateContent)
	}

	filename, target, err := uniquePath(s.dir, s.filename(urlName, mediaType, sniffed))
	if err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	committed = true
	s.seen.Add(sum)

	res.Filename = filename
	res.Path = target
	res.Width, res.Height = sniffed.width, sniffed.height
	return nil
}

// stream copies in to out, also feeding progress, and fails as soon as
// more than limit bytes are received. A limit of 0 means no limit.
func stream(ctx context.Context, in io.Reader, out io.Writer, progress Progress, limit int64) (int64, error) {
	var completed int64
	buff := make([]byte, 32*1024)
	for {
		n, err := in.Read(buff)
		if n > 0 {
			completed += int64(n)
			if limit > 0 && completed > limit {
				return completed, fmt.Errorf("%w: more than %s received", ErrTooLarge, humanize.IBytes(uint64(limit)))
			}
			if _, err := out.Write(buff[:n]); err != nil {
				return completed, fmt.Errorf("%w: %w", ErrWrite, err)
			}
			if progress != nil {
				_, _ = progress.Write(buff[:n])
			}
		}
		if err == io.EOF {
			return completed, nil
		}
		if err != nil {
			return completed, connectionError(ctx, err)
		}
	}
}

// checkResponse verifies the status code and the content type, returning
// the image media type.
func checkResponse(resp *http.Response) (string, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: invalid Content-Type %q", ErrWrongContentType, contentType)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: Content-Type is %q", ErrWrongContentType, mediaType)
	}
	return mediaType, nil
}

// checkSize applies MaxSize and ConfirmSize to the size declared by the
// server. Unknown sizes (-1) are only checked while streaming.
func (s *Session) checkSize(size int64) error {
	if size < 0 {
		return nil
	}
	if s.config.MaxSize > 0 && size > s.config.MaxSize {
		return fmt.Errorf("%w: %s exceeds the %s limit", ErrTooLarge, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(s.config.MaxSize)))
	}
	if s.config.ConfirmSize > 0 && size > s.config.ConfirmSize {
		msg := fmt.Sprintf("File is large (%s). Continue?", humanize.IBytes(uint64(size)))
		if s.config.ConfirmFunc == nil || !s.config.ConfirmFunc(msg) {
			return fmt.Errorf("%w: %s, download not confirmed", ErrTooLarge, humanize.IBytes(uint64(size)))
		}
	}
	return nil
}

// filename picks the name to save under: the one from the URL when it has
// an image extension, the URL one plus an extension, or a generated one.
func (s *Session) filename(urlName, mediaType string, sniffed sniffResult) string {
	ext := extensionForContentType(mediaType)
	if ext == "" {
		ext = sniffed.extension()
	}
	if ext == "" {
		ext = defaultExtension
	}
	switch {
	case urlName == "":
		return generatedFilename(ext)
	case isImageExtension(filepath.Ext(urlName)):
		return urlName
	default:
		return truncateFilename(urlName + ext)
	}
}

func isImageExtension(ext string) bool {
	if ext == "" {
		return false
	}
	ext = strings.ToLower(ext)
	if ext == ".jpeg" || slices.Contains(slices.Collect(maps.Values(imageExtensions)), ext) {
		return true
	}
	return strings.HasPrefix(mime.TypeByExtension(ext), "image/")
}

func connectionError(ctx context.Context, err error) error {
	if errors.Is(context.Cause(ctx), os.ErrDeadlineExceeded) {
		return fmt.Errorf("%w: no data received within the inactivity timeout: %w", ErrConnection, os.ErrDeadlineExceeded)
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}
