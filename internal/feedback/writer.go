// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package feedback

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/nadi-gis/nadiproc/internal/color"
)

var _ Feedback = (*Writer)(nil)

// Writer is a Feedback implementation for headless runs. It prints
// events as plain lines to an io.Writer and observes cancellation
// through the supplied context.
type Writer struct {
	ctx     context.Context
	w       io.Writer
	mu      sync.Mutex
	text    string
	pct     int
	errored bool
}

// NewWriter creates a Writer feedback. Cancellation follows ctx.
func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w, pct: -1}
}

// SetProgress implements Feedback.SetProgress. Repeated updates that
// round to the same whole percentage are not printed again.
func (wf *Writer) SetProgress(pct float64) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	rounded := int(math.Round(pct))
	if rounded == wf.pct {
		return
	}

	wf.pct = rounded

	if wf.text == "" {
		fmt.Fprintf(wf.w, "%d%%\n", rounded) //nolint:errcheck
		return
	}

	fmt.Fprintf(wf.w, "%s: %d%%\n", wf.text, rounded) //nolint:errcheck
}

// SetProgressText implements Feedback.SetProgressText.
func (wf *Writer) SetProgressText(text string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	wf.text = text
	wf.pct = -1
	fmt.Fprintf(wf.w, "-- %s\n", text) //nolint:errcheck
}

// PushInfo implements Feedback.PushInfo.
func (wf *Writer) PushInfo(msg string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	fmt.Fprintln(wf.w, msg) //nolint:errcheck
}

// PushCommandInfo implements Feedback.PushCommandInfo.
func (wf *Writer) PushCommandInfo(cmd string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	fmt.Fprintln(wf.w, color.Colorize("$ "+cmd, color.Bold)) //nolint:errcheck
}

// PushWarning implements Feedback.PushWarning.
func (wf *Writer) PushWarning(msg string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	fmt.Fprintln(wf.w, color.Colorize("warning: "+msg, color.FgYellow)) //nolint:errcheck
}

// ReportError implements Feedback.ReportError.
func (wf *Writer) ReportError(msg string) {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	wf.errored = true

	fmt.Fprintln(wf.w, color.Colorize("error: "+msg, color.FgRed)) //nolint:errcheck
}

// Errored reports whether any error has been reported through this
// Writer.
func (wf *Writer) Errored() bool {
	wf.mu.Lock()
	defer wf.mu.Unlock()

	return wf.errored
}

// Canceled implements Feedback.Canceled.
func (wf *Writer) Canceled() bool {
	return wf.ctx.Err() != nil
}
