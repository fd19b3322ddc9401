// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package linebuffer

import (
	"strconv"
	"strings"

	"github.com/nadi-gis/nadiproc/internal/feedback"
)

// ProgressRelay dispatches complete stdout lines from an external tool
// into a feedback channel. Lines of the form "label:percent" become
// progress updates; the progress text is refreshed only when the label
// changes. Anything else is forwarded as an informational message.
//
// A ProgressRelay holds the carry-over buffer and the last-seen label
// for one process invocation; create a fresh one per run.
type ProgressRelay struct {
	buf   Buffer
	label string
	fb    feedback.Feedback
}

// NewProgressRelay creates a ProgressRelay reporting to fb.
func NewProgressRelay(fb feedback.Feedback) *ProgressRelay {
	return &ProgressRelay{fb: fb}
}

// Feed accepts the next stdout chunk and dispatches any complete lines.
func (r *ProgressRelay) Feed(chunk []byte) {
	for _, line := range r.buf.Feed(string(chunk)) {
		r.dispatch(line)
	}
}

// Flush dispatches the trailing partial line, if any. Call once after
// the stream has ended.
func (r *ProgressRelay) Flush() {
	if rest := r.buf.Flush(); rest != "" {
		r.dispatch(rest)
	}
}

func (r *ProgressRelay) dispatch(line string) {
	label, value, found := strings.Cut(strings.TrimSpace(line), ":")
	if found {
		if pct, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			if label != r.label {
				r.fb.SetProgressText(label)
				r.label = label
			}

			r.fb.SetProgress(float64(pct))

			return
		}
	}

	// Not a progress line, degrade to a plain log message.
	r.fb.PushInfo(line)
}

// WarningRelay dispatches complete stderr lines from an external tool
// as warnings, verbatim. Create a fresh one per run.
type WarningRelay struct {
	buf Buffer
	fb  feedback.Feedback
}

// NewWarningRelay creates a WarningRelay reporting to fb.
func NewWarningRelay(fb feedback.Feedback) *WarningRelay {
	return &WarningRelay{fb: fb}
}

// Feed accepts the next stderr chunk and dispatches any complete lines.
func (r *WarningRelay) Feed(chunk []byte) {
	for _, line := range r.buf.Feed(string(chunk)) {
		r.fb.PushWarning(line)
	}
}

// Flush dispatches the trailing partial line, if any. Call once after
// the stream has ended.
func (r *WarningRelay) Flush() {
	if rest := r.buf.Flush(); rest != "" {
		r.fb.PushWarning(rest)
	}
}
