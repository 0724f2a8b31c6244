package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xangelkai/audioconv/internal/batch"
	"github.com/xangelkai/audioconv/internal/model"
)

// Message types delivered from the batch controller.
type (
	// LogMsg carries one log line.
	LogMsg struct {
		Entry model.LogEntry
	}

	// ProgressMsg is sent after every finished job.
	ProgressMsg struct {
		Completed int
		Total     int
	}

	// FinishedMsg is sent once when a batch ends.
	FinishedMsg struct {
		State batch.State
	}

	// SummaryMsg carries the final summary of the batch that just ended.
	SummaryMsg struct {
		Summary batch.Summary
	}
)

// eventSink forwards controller notifications into the Bubble Tea loop.
type eventSink struct {
	events chan<- tea.Msg
}

func (s eventSink) Log(entry model.LogEntry) {
	s.events <- LogMsg{Entry: entry}
}

func (s eventSink) Progress(completed, total int) {
	s.events <- ProgressMsg{Completed: completed, Total: total}
}

func (s eventSink) BatchFinished(state batch.State) {
	s.events <- FinishedMsg{State: state}
}

// waitForEvent returns a command that delivers the next controller event.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

// waitForSummary returns a command that delivers the summary of run.
func waitForSummary(run *batch.Run) tea.Cmd {
	return func() tea.Msg {
		return SummaryMsg{Summary: run.Wait()}
	}
}

// quitWhenDone returns a command that quits once run has fully finished.
func quitWhenDone(run *batch.Run) tea.Cmd {
	return func() tea.Msg {
		if run != nil {
			<-run.Done()
		}
		return tea.Quit()
	}
}
