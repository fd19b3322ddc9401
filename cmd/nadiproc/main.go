// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the nadiproc command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nadi-gis/nadiproc"
	"github.com/nadi-gis/nadiproc/cmd/nadiproc/run"
	"github.com/nadi-gis/nadiproc/cmd/nadiproc/show"
	"github.com/nadi-gis/nadiproc/internal/algorithmregistry"
	"github.com/nadi-gis/nadiproc/internal/algorithms/connection"
	"github.com/nadi-gis/nadiproc/internal/ctxlog"
	"github.com/nadi-gis/nadiproc/internal/signalbroker"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.Cmd,
		show.Cmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "nadiproc",
	Description: `Nadiproc is a processing toolbox host for the Nadi river-network
analysis tools. It declares each tool's parameters, assembles and runs the
external nadi executable, and relays its streamed progress output to the
terminal or an interactive display.`,
	Usage:     "nadiproc run -f job.yaml",
	Copyright: "Copyright (c) nadi-gis 2025. All rights reserved.",
	Authors: []any{
		"nadi-gis",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", nadiproc.Version, nadiproc.Commit)

	registry, err := algorithmregistry.New(
		connection.New(),
	)
	if err != nil {
		ctxlog.Logger(ctx).Error("failed to build algorithm registry", "error", err)
		os.Exit(1)
	}

	ctx = context.WithValue(ctx, algorithmregistry.ContextKey{}, registry)

	err = rootCmd.Run(ctx, os.Args)

	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("command terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		os.Exit(1)
	}
}
