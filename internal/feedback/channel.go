// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package feedback

import (
	"context"
	"sync"
	"time"
)

var _ Feedback = (*Channel)(nil)

// Channel is a channel-backed Feedback implementation. Events are
// delivered to consumers through Events(); sends never block the
// producing goroutine. A Channel is scoped to a single algorithm run.
type Channel struct {
	ch     chan Event
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewChannel creates a new Channel with the specified buffer size.
// A larger buffer size reduces the chance of dropped events when the
// consumer is slow.
func NewChannel(ctx context.Context, bufferSize int) *Channel {
	runCtx, cancel := context.WithCancel(ctx)

	return &Channel{
		ch:     make(chan Event, bufferSize),
		done:   make(chan struct{}),
		ctx:    runCtx,
		cancel: cancel,
	}
}

// send delivers the event in a non-blocking manner. If the channel is
// full or already closed, the event is dropped. Cancellation does not
// stop delivery; the run still reports how it ended.
func (c *Channel) send(t EventType, msg string, pct float64) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.ch <- Event{Type: t, Message: msg, Percent: pct, Timestamp: time.Now()}:
	default:
		// Consumer is not keeping up, drop the event rather than block.
	}
}

// SetProgress implements Feedback.SetProgress.
func (c *Channel) SetProgress(pct float64) {
	c.send(EventProgress, "", pct)
}

// SetProgressText implements Feedback.SetProgressText.
func (c *Channel) SetProgressText(text string) {
	c.send(EventProgressText, text, 0)
}

// PushInfo implements Feedback.PushInfo.
func (c *Channel) PushInfo(msg string) {
	c.send(EventInfo, msg, 0)
}

// PushCommandInfo implements Feedback.PushCommandInfo.
func (c *Channel) PushCommandInfo(cmd string) {
	c.send(EventCommand, cmd, 0)
}

// PushWarning implements Feedback.PushWarning.
func (c *Channel) PushWarning(msg string) {
	c.send(EventWarning, msg, 0)
}

// ReportError implements Feedback.ReportError.
func (c *Channel) ReportError(msg string) {
	c.send(EventError, msg, 0)
}

// Canceled implements Feedback.Canceled. It reports true once Cancel
// has been called or the parent context is done.
func (c *Channel) Canceled() bool {
	return c.ctx.Err() != nil
}

// Cancel requests cancellation of the run this Channel belongs to.
func (c *Channel) Cancel() {
	c.cancel()
}

// Context returns the run-scoped context. It is done once Cancel has
// been called or the parent context is done.
func (c *Channel) Context() context.Context {
	return c.ctx
}

// Events returns the read-only event stream for consumers.
func (c *Channel) Events() <-chan Event {
	return c.ch
}

// Close releases the channel. No events may be sent after Close.
func (c *Channel) Close() {
	c.once.Do(func() {
		c.cancel()
		close(c.done)
		close(c.ch)
	})
}
