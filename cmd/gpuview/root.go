// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/gpuview"
	"github.com/gogpu/gpuview/backend"
	"github.com/gogpu/gpuview/internal/imageenc"

	// Registers the soft backend.
	_ "github.com/gogpu/gpuview/backend/soft"
)

// version is injected with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gpuview",
		Short:         "Render gpuview scenes off-screen",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	root.AddCommand(newCaptureCmd())
	root.AddCommand(newFormatsCmd())
	return root
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List capture formats and registered backends",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formats:  %s\n", strings.Join(imageenc.Formats(), ", "))
			fmt.Fprintf(out, "backends: %s\n", strings.Join(backend.Available(), ", "))
			return nil
		},
	}
}

// newLogger returns a charm logger writing to w at the given level.
func newLogger(w io.Writer, level string) *charmlog.Logger {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		lvl = charmlog.InfoLevel
	}
	return charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
		Prefix:          "gpuview",
	})
}

// installLogger routes the library's slog output through l.
func installLogger(l *charmlog.Logger) {
	gpuview.SetLogger(slog.New(l))
}
