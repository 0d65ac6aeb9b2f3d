//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// HashSet is the set of content digests seen during a run.
// It is not safe for concurrent use.
type HashSet struct {
	seen map[string]struct{}
}

// NewHashSet returns an empty set
func NewHashSet() *HashSet {
	return &HashSet{seen: map[string]struct{}{}}
}

// Seen reports whether sum is in the set.
func (h *HashSet) Seen(sum string) bool {
	_, ok := h.seen[sum]
	return ok
}

// Add puts sum in the set.
func (h *HashSet) Add(sum string) {
	h.seen[sum] = struct{}{}
}

// Len returns the number of digests in the set.
func (h *HashSet) Len() int {
	return len(h.seen)
}

// SeedFromDir adds the digest of every regular file in dir, skipping
// hidden files (which include in-progress downloads). Files that cannot be
// read are logged and skipped. It returns the number of files added.
func (h *HashSet) SeedFromDir(dir string, logger *slog.Logger) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", dir, err)
	}
	added := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		p := filepath.Join(dir, entry.Name())
		sum, err := hashFile(p)
		if err != nil {
			logger.Debug("skipping unreadable file", "path", p, "error", err)
			continue
		}
		h.Add(sum)
		added++
	}
	return added, nil
}

func newContentHash() hash.Hash {
	return sha256.New()
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

func hashFile(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := newContentHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hexSum(h), nil
}
