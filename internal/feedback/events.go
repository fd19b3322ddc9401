// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package feedback

import (
	"time"
)

// EventType represents the type of feedback event.
type EventType int

const (
	// EventProgress indicates an updated completion percentage.
	EventProgress EventType = iota
	// EventProgressText indicates the progress label has changed.
	EventProgressText
	// EventInfo indicates an informational message.
	EventInfo
	// EventCommand indicates the command line about to be executed.
	EventCommand
	// EventWarning indicates a warning message.
	EventWarning
	// EventError indicates an error message.
	EventError
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventProgress:
		return "progress"
	case EventProgressText:
		return "progress-text"
	case EventInfo:
		return "info"
	case EventCommand:
		return "command"
	case EventWarning:
		return "warning"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event represents a real-time update from a running algorithm.
// Events are emitted throughout the run to drive progress displays
// and log sinks.
type Event struct {
	Type      EventType // What happened
	Message   string    // Label, log line or error text
	Percent   float64   // Completion percentage, for EventProgress
	Timestamp time.Time // When the event occurred
}

// Feedback is the channel through which a running algorithm reports
// progress, messages and errors, and through which cancellation is
// observed. Implementations must be safe for use from the goroutines
// that service a subprocess's output streams.
type Feedback interface {
	// SetProgress reports the completion percentage (0-100).
	SetProgress(pct float64)
	// SetProgressText updates the label shown alongside the progress bar.
	SetProgressText(text string)
	// PushInfo forwards an informational message.
	PushInfo(msg string)
	// PushCommandInfo forwards the command line about to be executed.
	PushCommandInfo(cmd string)
	// PushWarning forwards a warning message.
	PushWarning(msg string)
	// ReportError forwards an error message. The run is not aborted.
	ReportError(msg string)
	// Canceled reports whether the user has requested cancellation.
	Canceled() bool
}

// Null is a no-op implementation of Feedback.
type Null struct{}

// NewNull creates a new Null feedback.
func NewNull() *Null { return &Null{} }

// SetProgress implements Feedback by doing nothing.
func (*Null) SetProgress(float64) {}

// SetProgressText implements Feedback by doing nothing.
func (*Null) SetProgressText(string) {}

// PushInfo implements Feedback by doing nothing.
func (*Null) PushInfo(string) {}

// PushCommandInfo implements Feedback by doing nothing.
func (*Null) PushCommandInfo(string) {}

// PushWarning implements Feedback by doing nothing.
func (*Null) PushWarning(string) {}

// ReportError implements Feedback by doing nothing.
func (*Null) ReportError(string) {}

// Canceled implements Feedback; a Null feedback is never canceled.
func (*Null) Canceled() bool { return false }
