package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xangelkai/audioconv/internal/batch"
	"github.com/xangelkai/audioconv/internal/config"
	"github.com/xangelkai/audioconv/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	settings := config.DefaultSettings()
	settings.MaxConcurrentJobs = 2
	settings.EncoderPath = filepath.Join(t.TempDir(), "missing-encoder")
	return NewModel(settings)
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "pgup":
		msg = tea.KeyMsg{Type: tea.KeyPgUp}
	case "pgdown":
		msg = tea.KeyMsg{Type: tea.KeyPgDown}
	case "ctrl+l":
		msg = tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_Defaults(t *testing.T) {
	m := newTestModel(t)

	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if m.Format() != model.FormatMP3 {
		t.Errorf("Format() = %q, want mp3", m.Format())
	}
	if m.Bitrate() != "192k" {
		t.Errorf("Bitrate() = %q, want 192k", m.Bitrate())
	}
	if m.jobs != 2 {
		t.Errorf("jobs = %d, want 2", m.jobs)
	}
}

func TestModel_FormatCycling(t *testing.T) {
	m := newTestModel(t)

	formats := model.Formats()
	for i := 1; i <= len(formats); i++ {
		m = press(m, "tab")
		want := formats[i%len(formats)]
		if m.Format() != want {
			t.Fatalf("after %d tabs Format() = %q, want %q", i, m.Format(), want)
		}
		if !want.Lossless() && m.Bitrate() == model.BitrateNA {
			t.Errorf("lossy format %q shows %q", want, m.Bitrate())
		}
		if want.Lossless() && m.Bitrate() != model.BitrateNA {
			t.Errorf("lossless format %q shows bitrate %q", want, m.Bitrate())
		}
	}

	m = press(m, "shift+tab")
	if m.Format() != formats[len(formats)-1] {
		t.Errorf("shift+tab Format() = %q, want %q", m.Format(), formats[len(formats)-1])
	}
}

func TestModel_BitrateCycling(t *testing.T) {
	m := newTestModel(t)
	before := m.Bitrate()

	m = press(m, "down")
	if m.Bitrate() == before {
		t.Errorf("down did not change bitrate from %q", before)
	}
	if !m.Format().ValidBitrate(m.Bitrate()) {
		t.Errorf("bitrate %q not a preset of %q", m.Bitrate(), m.Format())
	}

	m = press(m, "up")
	if m.Bitrate() != before {
		t.Errorf("up Bitrate() = %q, want %q", m.Bitrate(), before)
	}
}

func TestModel_JobsBounds(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < 5; i++ {
		m = press(m, "pgdown")
	}
	if m.jobs != 1 {
		t.Errorf("jobs = %d, want 1", m.jobs)
	}

	m = press(m, "pgup")
	if m.jobs != 2 {
		t.Errorf("jobs = %d, want 2", m.jobs)
	}
}

func TestModel_VerboseToggle(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "ctrl+l")
	if !m.verbose {
		t.Error("ctrl+l did not enable verbose")
	}
	m = press(m, "ctrl+l")
	if m.verbose {
		t.Error("ctrl+l did not disable verbose")
	}
}

func TestModel_TypingQDoesNotQuit(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "q")
	if m.textInput.Value() != "q" {
		t.Errorf("input = %q, want %q", m.textInput.Value(), "q")
	}
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
}

func TestModel_EmptyStart(t *testing.T) {
	m := newTestModel(t)

	m = press(m, "enter")
	if m.state != StateInput {
		t.Errorf("state = %v, want StateInput", m.state)
	}
	if len(m.logs) != 1 || m.logs[0].Message != "No files selected for conversion!" {
		t.Errorf("logs = %+v", m.logs)
	}
	if m.controller.State() != batch.StateIdle {
		t.Errorf("controller state = %v, want idle", m.controller.State())
	}
}

func TestModel_LogWindow(t *testing.T) {
	m := newTestModel(t)

	for i := 0; i < maxLogLines+5; i++ {
		m.appendLog(model.LogEntry{Message: strings.Repeat("x", i+1), Job: -1})
	}
	if len(m.logs) != maxLogLines {
		t.Fatalf("len(logs) = %d, want %d", len(m.logs), maxLogLines)
	}
	if got := len(m.logs[0].Message); got != 6 {
		t.Errorf("oldest kept line length = %d, want 6", got)
	}
}

func TestModel_VerboseLinesFiltered(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(LogMsg{Entry: model.LogEntry{Message: "hidden", Level: model.LevelVerbose}})
	m = next.(Model)
	if len(m.logs) != 0 {
		t.Errorf("verbose line shown with verbose off: %+v", m.logs)
	}

	m.verbose = true
	next, _ = m.Update(LogMsg{Entry: model.LogEntry{Message: "shown", Level: model.LevelVerbose}})
	m = next.(Model)
	if len(m.logs) != 1 {
		t.Errorf("verbose line hidden with verbose on: %+v", m.logs)
	}
}

func TestModel_FullRunWithMissingEncoder(t *testing.T) {
	m := newTestModel(t)

	src := filepath.Join(t.TempDir(), "song.wav")
	if err := os.WriteFile(src, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	m.textInput.SetValue(src)

	m = press(m, "enter")
	if m.state != StateConverting {
		t.Fatalf("state = %v, want StateConverting; logs: %+v", m.state, m.logs)
	}
	if m.total != 1 {
		t.Errorf("total = %d, want 1", m.total)
	}

	deadline := time.After(10 * time.Second)
	for m.state == StateConverting {
		select {
		case msg := <-m.events:
			next, _ := m.Update(msg)
			m = next.(Model)
		case <-deadline:
			t.Fatal("batch did not finish")
		}
	}

	if m.state != StateComplete {
		t.Errorf("state = %v, want StateComplete", m.state)
	}
	if m.completed != 1 {
		t.Errorf("completed = %d, want 1", m.completed)
	}

	var sawException, sawDone bool
	for _, l := range m.logs {
		if strings.HasPrefix(l.Message, "Exception during conversion "+src) {
			sawException = true
		}
		if l.Message == "Conversion completed!" {
			sawDone = true
		}
	}
	if !sawException || !sawDone {
		t.Errorf("logs = %+v", m.logs)
	}

	next, _ := m.Update(SummaryMsg{Summary: m.run.Wait()})
	m = next.(Model)
	if m.summary.Failed != 1 {
		t.Errorf("summary.Failed = %d, want 1", m.summary.Failed)
	}

	m = press(m, "r")
	if m.state != StateInput || len(m.logs) != 0 {
		t.Errorf("reset: state = %v, logs = %+v", m.state, m.logs)
	}
}

func TestModel_CtrlCWhileConvertingStopsJobsBeforeQuit(t *testing.T) {
	t.Setenv(fakeEncoderEnv, "hang")

	settings := config.DefaultSettings()
	settings.EncoderPath = os.Args[0]
	settings.PollInterval = 10 * time.Millisecond
	settings.TerminationGrace = 2 * time.Second
	m := NewModel(settings)

	src := filepath.Join(t.TempDir(), "song.wav")
	if err := os.WriteFile(src, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(filepath.Dir(src), "c_song.mp3")
	m.textInput.SetValue(src)

	m = press(m, "enter")
	if m.state != StateConverting {
		t.Fatalf("state = %v, want StateConverting; logs: %+v", m.state, m.logs)
	}
	run := m.run

	deadline := time.Now().Add(10 * time.Second)
	for {
		if _, err := os.Stat(output); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("encoder never started writing")
		}
		time.Sleep(10 * time.Millisecond)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if cmd != nil {
		t.Fatal("ctrl+c returned a command while jobs were running")
	}
	if !m.quitting || m.state != StateConverting {
		t.Fatalf("quitting = %v, state = %v", m.quitting, m.state)
	}

	timeout := time.After(10 * time.Second)
	for m.state == StateConverting {
		select {
		case msg := <-m.events:
			next, cmd = m.Update(msg)
			m = next.(Model)
		case <-timeout:
			t.Fatal("batch did not finish after ctrl+c")
		}
	}

	if m.state != StateCanceled {
		t.Errorf("state = %v, want StateCanceled", m.state)
	}
	if cmd == nil {
		t.Fatal("no quit command after the batch finished")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("finished batch did not quit")
	}

	select {
	case <-run.Done():
	default:
		t.Error("quit before the run was done")
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("partial output still present: %v", err)
	}
	if s := run.Wait(); s.Canceled != 1 {
		t.Errorf("summary = %+v, want one canceled job", s)
	}
}

func TestModel_CtrlCWhenIdleQuits(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit while idle")
	}
}
