// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/processing"
)

// eventBufferSize is the feedback channel buffer. Subprocess output can
// arrive in bursts faster than the terminal repaints.
const eventBufferSize = 256

// ErrRunFailed is returned when the algorithm reported an error.
var ErrRunFailed = errors.New("run failed")

// Run executes alg under an interactive progress display and blocks
// until the user exits it. Pressing q while the algorithm is running
// requests cancellation through the feedback channel; the subprocess is
// killed via the run context.
func Run(
	ctx context.Context, alg processing.Algorithm, params processing.Parameters,
) (processing.Outputs, error) {
	fb := feedback.NewChannel(ctx, eventBufferSize)
	model := NewModel(alg.DisplayName(), fb)
	program := tea.NewProgram(model, tea.WithAltScreen())

	go runAlgorithm(fb.Context(), alg, params, fb, program.Send)

	final, err := program.Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(*Model)
	if !ok {
		return nil, errors.New("unexpected model type")
	}

	if m.Err() != nil {
		return m.Outputs(), m.Err()
	}

	if m.Failed() {
		return m.Outputs(), ErrRunFailed
	}

	return m.Outputs(), nil
}

// runAlgorithm executes alg under fb and forwards every feedback event
// to send. The doneMsg is sent only after the event channel has been
// fully drained, so the completion footer never renders ahead of the
// final log lines.
func runAlgorithm(
	ctx context.Context,
	alg processing.Algorithm,
	params processing.Parameters,
	fb *feedback.Channel,
	send func(tea.Msg),
) {
	var result doneMsg

	go func() {
		result.outputs, result.err = alg.Run(ctx, params, fb)
		fb.Close()
	}()

	for ev := range fb.Events() {
		send(eventMsg{event: ev})
	}

	send(result)
}
