// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker delivers termination signals to the process
// runner. The first signal of a type is forwarded to the running
// external tool so it can shut down cleanly; repeated signals escalate
// (see Watch and the runproc watchdog).
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nadi-gis/nadiproc/internal/ctxlog"
)

// terminationSignals are subscribed to when the caller names none.
var terminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New subscribes a buffered channel to the given signals, defaulting
// to the usual termination set.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = terminationSignals
	}

	ctxlog.Debug(ctx, "subscribing to signals", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}
