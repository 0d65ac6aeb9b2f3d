//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package imagefetcher

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadURLs reads one URL per line. Blank lines before the first URL are
// skipped, the first blank line after it (or EOF) ends the list.
func ReadURLs(in *bufio.Reader) ([]string, error) {
	var urls []string
	for {
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return urls, err
		}
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		} else if len(urls) > 0 {
			return urls, nil
		}
		if err != nil {
			return urls, nil
		}
	}
}

// PromptConfirm returns a function, usable as Config.ConfirmFunc, that
// asks the question on out and reads the answer from in. Only "y" and
// "yes" confirm.
func PromptConfirm(in *bufio.Reader, out io.Writer) func(message string) bool {
	return func(message string) bool {
		fmt.Fprintf(out, "%s (y/N): ", message)
		answer, err := in.ReadString('\n')
		if err != nil && answer == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}
