// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package feedback

import (
	"sync"
	"time"
)

var _ Feedback = (*Recorder)(nil)

// Recorder is a Feedback implementation that records every event in
// order. It is intended for tests and for post-run inspection.
type Recorder struct {
	mu       sync.Mutex
	events   []Event
	canceled bool
}

// NewRecorder creates a new Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) record(t EventType, msg string, pct float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Event{Type: t, Message: msg, Percent: pct, Timestamp: time.Now()})
}

// SetProgress implements Feedback.SetProgress.
func (r *Recorder) SetProgress(pct float64) { r.record(EventProgress, "", pct) }

// SetProgressText implements Feedback.SetProgressText.
func (r *Recorder) SetProgressText(text string) { r.record(EventProgressText, text, 0) }

// PushInfo implements Feedback.PushInfo.
func (r *Recorder) PushInfo(msg string) { r.record(EventInfo, msg, 0) }

// PushCommandInfo implements Feedback.PushCommandInfo.
func (r *Recorder) PushCommandInfo(cmd string) { r.record(EventCommand, cmd, 0) }

// PushWarning implements Feedback.PushWarning.
func (r *Recorder) PushWarning(msg string) { r.record(EventWarning, msg, 0) }

// ReportError implements Feedback.ReportError.
func (r *Recorder) ReportError(msg string) { r.record(EventError, msg, 0) }

// Canceled implements Feedback.Canceled.
func (r *Recorder) Canceled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.canceled
}

// Cancel marks the recorder as canceled.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.canceled = true
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// OfType returns the recorded events of the given type, in order.
func (r *Recorder) OfType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event

	for _, ev := range r.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}

	return out
}
