// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/processing"
)

type fakeCanceler struct {
	canceled bool
}

func (f *fakeCanceler) Cancel() { f.canceled = true }

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()

	next, _ := m.Update(msg)

	out, ok := next.(*Model)
	require.True(t, ok)

	return out
}

func TestModelTracksProgress(t *testing.T) {
	t.Parallel()

	m := NewModel("Nadi Connection", &fakeCanceler{})

	m = update(t, m, eventMsg{event: feedback.Event{Type: feedback.EventProgressText, Message: "reading"}})
	m = update(t, m, eventMsg{event: feedback.Event{Type: feedback.EventProgress, Percent: 42}})

	assert.Equal(t, "reading", m.label)
	assert.InDelta(t, 42, m.percent, 0.001)

	view := m.View()
	assert.Contains(t, view, "Nadi Connection")
	assert.Contains(t, view, "reading")
	assert.Contains(t, view, "42%")
}

func TestModelKeepsLogTail(t *testing.T) {
	t.Parallel()

	m := NewModel("Nadi Connection", &fakeCanceler{})

	for range logTailLines * 2 {
		m = update(t, m, eventMsg{event: feedback.Event{Type: feedback.EventInfo, Message: "line"}})
	}

	assert.Len(t, m.lines, logTailLines)
}

func TestModelQuitCancelsRunningAlgorithm(t *testing.T) {
	t.Parallel()

	fb := &fakeCanceler{}
	m := NewModel("Nadi Connection", fb)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	assert.Nil(t, cmd, "running model must not quit on first q")
	assert.True(t, fb.canceled)
	assert.True(t, next.(*Model).canceling)
}

func TestModelQuitAfterDone(t *testing.T) {
	t.Parallel()

	m := NewModel("Nadi Connection", &fakeCanceler{})
	m = update(t, m, doneMsg{outputs: processing.Outputs{"CONNECTIONS": "out.gpkg"}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelReportsFailure(t *testing.T) {
	t.Parallel()

	m := NewModel("Nadi Connection", &fakeCanceler{})

	m = update(t, m, eventMsg{event: feedback.Event{Type: feedback.EventError, Message: "boom"}})
	m = update(t, m, doneMsg{outputs: processing.Outputs{}})

	assert.True(t, m.Failed())
	assert.Contains(t, m.View(), "Run failed")
}
