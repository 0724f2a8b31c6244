// Package tui provides a Bubble Tea terminal user interface for audioconv.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xangelkai/audioconv/internal/batch"
	"github.com/xangelkai/audioconv/internal/config"
	ioutils "github.com/xangelkai/audioconv/internal/io"
	"github.com/xangelkai/audioconv/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// maxLogLines is how many log lines stay on screen.
const maxLogLines = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateConverting
	StateComplete
	StateCanceled
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []model.LogEntry

	// Batch plumbing
	controller *batch.Controller
	events     chan tea.Msg
	run        *batch.Run
	summary    batch.Summary
	canceling  bool
	quitting   bool

	// Batch progress
	completed int
	total     int

	// Options
	formatIdx  int
	bitrateIdx int
	jobs       int
	verbose    bool

	width  int
	height int
}

// NewModel creates a new TUI model from settings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "/path/to/file.wav, /path/to/folder, /path/*.flac"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	events := make(chan tea.Msg, 256)

	m := Model{
		state:      StateInput,
		textInput:  ti,
		spinner:    sp,
		progress:   prog,
		settings:   settings,
		logs:       make([]model.LogEntry, 0),
		controller: settings.NewController(eventSink{events: events}),
		events:     events,
		jobs:       settings.MaxConcurrentJobs,
		verbose:    settings.Verbose,
	}
	m.selectFormat(model.Format(settings.TargetFormat), settings.Bitrate)
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Format returns the selected target format.
func (m Model) Format() model.Format {
	return model.Formats()[m.formatIdx]
}

// Bitrate returns the selected bitrate, BitrateNA for lossless formats.
func (m Model) Bitrate() string {
	choices := m.Format().BitrateChoices()
	return choices[m.bitrateIdx%len(choices)]
}

// selectFormat selects f and, if it is one of its choices, bitrate.
// Otherwise the bitrate falls back to 192k when offered, else the first
// choice.
func (m *Model) selectFormat(f model.Format, bitrate string) {
	for i, candidate := range model.Formats() {
		if candidate == f {
			m.formatIdx = i
		}
	}

	m.bitrateIdx = 0
	choices := m.Format().BitrateChoices()
	for _, want := range []string{bitrate, "192k"} {
		for i, c := range choices {
			if c == want {
				m.bitrateIdx = i
				return
			}
		}
	}
}

func (m *Model) cycleFormat(step int) {
	n := len(model.Formats())
	next := model.Formats()[(m.formatIdx+step+n)%n]
	m.selectFormat(next, m.Bitrate())
}

func (m *Model) cycleBitrate(step int) {
	n := len(m.Format().BitrateChoices())
	m.bitrateIdx = (m.bitrateIdx + step + n) % n
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.state != StateConverting {
				return m, tea.Quit
			}
			// Running encoders must be stopped and reaped before exiting.
			m.quitting = true
			m.requestCancel()
			return m, nil

		case "esc":
			switch m.state {
			case StateInput, StateComplete, StateCanceled:
				return m, tea.Quit
			case StateConverting:
				m.requestCancel()
			}
			return m, nil

		case "enter":
			if m.state == StateInput {
				return m.startBatch()
			}
			return m, nil

		case "tab", "shift+tab":
			if m.state == StateInput {
				step := 1
				if msg.String() == "shift+tab" {
					step = -1
				}
				m.cycleFormat(step)
			}
			return m, nil

		case "up", "down":
			if m.state == StateInput {
				step := 1
				if msg.String() == "up" {
					step = -1
				}
				m.cycleBitrate(step)
			}
			return m, nil

		case "pgup", "pgdown":
			if m.state == StateInput {
				if msg.String() == "pgup" && m.jobs < 64 {
					m.jobs++
				}
				if msg.String() == "pgdown" && m.jobs > 1 {
					m.jobs--
				}
			}
			return m, nil

		case "ctrl+l":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}
			return m, nil

		case "q":
			if m.state == StateComplete || m.state == StateCanceled {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateCanceled {
				m.reset()
				return m, nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case LogMsg:
		if msg.Entry.Level != model.LevelVerbose || m.verbose {
			m.appendLog(msg.Entry)
		}
		return m, waitForEvent(m.events)

	case ProgressMsg:
		m.completed = msg.Completed
		m.total = msg.Total
		var percent float64
		if msg.Total > 0 {
			percent = float64(msg.Completed) / float64(msg.Total)
		}
		return m, tea.Batch(m.progress.SetPercent(percent), waitForEvent(m.events))

	case FinishedMsg:
		if msg.State == batch.StateCanceled {
			m.state = StateCanceled
		} else {
			m.state = StateComplete
		}
		m.canceling = false
		if m.quitting {
			return m, quitWhenDone(m.run)
		}
		if m.run != nil {
			return m, waitForSummary(m.run)
		}
		return m, nil

	case SummaryMsg:
		m.summary = msg.Summary
		m.run = nil
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// startBatch builds jobs from the input field and starts the controller.
func (m Model) startBatch() (tea.Model, tea.Cmd) {
	inputs := ioutils.SplitInputList(m.textInput.Value())
	if len(inputs) == 0 {
		m.appendLog(model.LogEntry{Message: "No files selected for conversion!", Level: model.LevelWarning, Job: -1})
		return m, nil
	}

	files, err := ioutils.ExpandInputs(inputs)
	if err != nil {
		m.appendLog(model.LogEntry{Message: err.Error(), Level: model.LevelError, Job: -1})
		return m, nil
	}

	jobs := make([]model.Job, 0, len(files))
	for _, f := range files {
		job, err := model.NewJob(f, string(m.Format()), m.Bitrate())
		if err != nil {
			m.appendLog(model.LogEntry{Message: err.Error(), Level: model.LevelError, Job: -1})
			return m, nil
		}
		jobs = append(jobs, job)
	}

	run, err := m.controller.Start(jobs, m.jobs)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, batch.ErrNothingToConvert) {
			msg = "No files selected for conversion!"
		}
		m.appendLog(model.LogEntry{Message: msg, Level: model.LevelWarning, Job: -1})
		return m, nil
	}

	m.run = run
	m.state = StateConverting
	m.logs = nil
	m.completed = 0
	m.total = run.Total()
	m.textInput.Blur()

	return m, tea.Batch(waitForEvent(m.events), m.spinner.Tick, m.progress.SetPercent(0))
}

// requestCancel cancels the running batch once.
func (m *Model) requestCancel() {
	if err := m.controller.Cancel(); err == nil && !m.canceling {
		m.canceling = true
		m.appendLog(model.LogEntry{Message: "Canceling...", Level: model.LevelWarning, Job: -1})
	}
}

func (m *Model) reset() {
	m.state = StateInput
	m.logs = nil
	m.run = nil
	m.summary = batch.Summary{}
	m.completed = 0
	m.total = 0
	m.canceling = false
	m.quitting = false
	m.textInput.SetValue("")
	m.textInput.Focus()
}

func (m *Model) appendLog(entry model.LogEntry) {
	m.logs = append(m.logs, entry)
	// Keep only the last lines
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 Audio Converter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Batch-convert audio files with " + m.settings.EncoderPath))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewFinished(false))
	case StateCanceled:
		b.WriteString(m.viewFinished(true))
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Files, folders or patterns (comma-separated):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Format:  %s  (tab)\n", optionStyle.Render(m.Format().String())))
	b.WriteString(fmt.Sprintf("  Bitrate: %s  (↑/↓)\n", optionStyle.Render(m.Bitrate())))
	b.WriteString(fmt.Sprintf("  Jobs:    %s  (pgup/pgdn)\n", optionStyle.Render(fmt.Sprintf("%d", m.jobs))))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (ctrl+l)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Output: c_<name>." + m.Format().String() + " next to each source file"))
	b.WriteString("\n")

	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	if m.quitting {
		b.WriteString(warningStyle.Render("Stopping running jobs before quitting..."))
	} else if m.canceling {
		b.WriteString(warningStyle.Render("Canceling, waiting for running jobs..."))
	} else {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Converting %d file(s) to %s...", m.total, m.Format())))
	}
	b.WriteString("\n\n")

	var percent float64
	if m.total > 0 {
		percent = float64(m.completed) / float64(m.total)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d | Jobs: %d", m.completed, m.total, m.jobs)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewFinished(canceled bool) string {
	var b strings.Builder

	heading := "✨ Conversion Complete!"
	if canceled {
		heading = "⏹ Conversion Canceled"
	}

	s := m.summary
	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Converted: %d\n"+
			"Failed: %d\n"+
			"Canceled: %d\n"+
			"Time: %s\n"+
			"Run: %s",
		heading,
		s.Succeeded,
		s.Failed,
		s.Canceled,
		s.Elapsed.Round(100*time.Millisecond),
		dimStyle.Render(s.RunID),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case model.LevelError:
			style = errorStyle
			prefix = "✗"
		case model.LevelWarning:
			style = warningStyle
			prefix = "!"
		case model.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case model.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: convert • tab: format • ↑/↓: bitrate • pgup/pgdn: jobs • ctrl+l: verbose • esc: quit"
	case StateConverting:
		return "esc: cancel • ctrl+c: cancel and quit"
	case StateComplete, StateCanceled:
		return "r: new batch • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
