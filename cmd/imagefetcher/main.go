//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.bug.st/imagefetcher"
	"golang.org/x/term"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "imagefetcher",
		Short: "Download images from a list of URLs",
		Long: `Download images from a list of URLs typed (or piped) one per line.
An empty line ends the list.

Images are saved in the Fetched_Images directory. Content already saved
there is not saved twice. Settings are read from imagefetcher.yaml
(in ~/.config/imagefetcher or in the current directory) and from
IMAGEFETCHER_* environment variables.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return run(c)
		},
	}
}

func run(cmd *cobra.Command) error {
	settings, err := LoadSettings()
	if err != nil {
		return err
	}
	logger, closeLog, err := SetupLogger(settings.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	config, err := settings.FetcherConfig(logger)
	if err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()
	if isTerminal(cmd.InOrStdin()) {
		config.ConfirmFunc = imagefetcher.PromptConfirm(in, out)
	}
	if isTerminal(cmd.ErrOrStderr()) {
		config.ProgressFunc = newProgressFunc(cmd.ErrOrStderr())
	}

	rule := strings.Repeat("=", 60)
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "imagefetcher: collect images from the web")
	fmt.Fprintln(out, rule)

	session, err := imagefetcher.NewSessionWithConfig(settings.OutputDir, config)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Directory '%s' is ready\n", session.Dir())

	fmt.Fprintln(out, "\nEnter image URLs (one per line). Press Enter on an empty line to finish:")
	urls, err := imagefetcher.ReadURLs(in)
	if err != nil {
		return fmt.Errorf("reading URLs: %w", err)
	}
	if len(urls) == 0 {
		fmt.Fprintln(out, "No URLs provided.")
		return nil
	}
	fmt.Fprintf(out, "\nStarting download of %d image(s)...\n", len(urls))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	summary := session.Run(ctx, urls, out)
	imagefetcher.WriteSummary(out, summary)
	if ctx.Err() != nil {
		fmt.Fprintln(out, "\nInterrupted, remaining URLs were not downloaded.")
	}
	return nil
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
