// Copyright (c) nadi-gis 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nadi-gis/nadiproc/internal/feedback"
	"github.com/nadi-gis/nadiproc/internal/processing"
)

const (
	// logTailLines is how many recent log lines stay visible.
	logTailLines = 12
	// barPadding is the horizontal space reserved around the progress bar.
	barPadding = 4
)

// eventMsg wraps a feedback event for the tea framework.
type eventMsg struct {
	event feedback.Event
}

// doneMsg indicates the algorithm has finished.
type doneMsg struct {
	outputs processing.Outputs
	err     error
}

// canceler is the slice of the feedback surface the TUI needs.
type canceler interface {
	Cancel()
}

// Styles contains the styling for the TUI.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Info    lipgloss.Style
	Command lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the default styling for the TUI.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Command: lipgloss.NewStyle().
			Foreground(lipgloss.Color("13")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			MarginTop(1),
	}
}

// Model is the TUI state for one algorithm run: a progress bar with
// its current label and a tail of recent log lines.
type Model struct {
	title     string
	fb        canceler
	bar       progress.Model
	label     string
	percent   float64
	lines     []string
	errored   bool
	canceling bool
	done      bool
	outputs   processing.Outputs
	runErr    error
	width     int
	styles    *Styles
}

// NewModel creates a TUI model for an algorithm run. Key presses that
// request cancellation are forwarded to fb.
func NewModel(title string, fb canceler) *Model {
	return &Model{
		title:  title,
		fb:     fb,
		bar:    progress.New(progress.WithDefaultGradient()),
		styles: NewStyles(),
	}
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = msg.Width - barPadding

		return m, nil

	case eventMsg:
		m.processEvent(msg.event)
		return m, nil

	case doneMsg:
		m.done = true
		m.outputs = msg.outputs
		m.runErr = msg.err

		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input. The first quit request
// cancels the run; once the run has finished it exits the TUI.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.done {
			return m, tea.Quit
		}

		if !m.canceling {
			m.canceling = true
			m.fb.Cancel()
		}

		return m, nil
	case "enter":
		if m.done {
			return m, tea.Quit
		}
	}

	return m, nil
}

// processEvent folds one feedback event into the display state.
func (m *Model) processEvent(ev feedback.Event) {
	switch ev.Type {
	case feedback.EventProgress:
		m.percent = ev.Percent
	case feedback.EventProgressText:
		m.label = ev.Message
	case feedback.EventInfo:
		m.appendLine(m.styles.Info.Render(ev.Message))
	case feedback.EventCommand:
		m.appendLine(m.styles.Command.Render("$ " + ev.Message))
	case feedback.EventWarning:
		m.appendLine(m.styles.Warning.Render(ev.Message))
	case feedback.EventError:
		m.errored = true
		m.appendLine(m.styles.Error.Render(ev.Message))
	}
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if len(m.lines) > logTailLines {
		m.lines = m.lines[len(m.lines)-logTailLines:]
	}
}

// Failed reports whether the run reported an error or failed outright.
func (m *Model) Failed() bool {
	return m.errored || m.runErr != nil
}

// Outputs returns the outputs of the finished run.
func (m *Model) Outputs() processing.Outputs { return m.outputs }

// Err returns the run error, if any.
func (m *Model) Err() error { return m.runErr }

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var view strings.Builder

	view.WriteString(m.styles.Title.Render(m.title))
	view.WriteString("\n\n")

	if m.label != "" {
		view.WriteString(m.styles.Label.Render(m.label))
		view.WriteString("\n")
	}

	view.WriteString(m.bar.ViewAs(m.percent / 100))
	view.WriteString(fmt.Sprintf(" %3.0f%%\n\n", m.percent))

	for _, line := range m.lines {
		view.WriteString(line)
		view.WriteString("\n")
	}

	if m.done {
		view.WriteString("\n")

		switch {
		case m.canceling:
			view.WriteString(m.styles.Warning.Render("Run canceled"))
		case m.Failed():
			view.WriteString(m.styles.Error.Render("Run failed"))
		default:
			view.WriteString(m.styles.Success.Render("Run completed"))
		}

		view.WriteString("\n")
		view.WriteString(m.styles.Help.Render("press q to exit"))
	} else if m.canceling {
		view.WriteString("\n")
		view.WriteString(m.styles.Warning.Render("Canceling..."))
	} else {
		view.WriteString(m.styles.Help.Render("press q to cancel"))
	}

	view.WriteString("\n")

	return view.String()
}
