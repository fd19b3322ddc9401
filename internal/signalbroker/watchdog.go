// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/nadi-gis/nadiproc/internal/ctxlog"
)

// Watch drains sigCh and cancels the root context when a second signal
// of the same type arrives. A single signal is left to the process
// runner, which forwards it to the external tool; the repeat means the
// user wants out now.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, repeat := seen[sig]; repeat {
			ctxlog.Info(ctx, "repeated signal, shutting down", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		seen[sig] = struct{}{}

		ctxlog.Info(ctx, "signal received, waiting for tool to exit", "signal", sig.String())
	}
}
