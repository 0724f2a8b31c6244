package encoder

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/xangelkai/audioconv/internal/model"
)

const (
	// DefaultPollInterval is how often a running job checks the cancel flag.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultTerminationGrace is how long a terminated encoder may take to
	// exit before it is killed.
	DefaultTerminationGrace = 5 * time.Second
)

// Tagger post-processes a successfully converted output file.
type Tagger interface {
	TagOutput(job model.Job) error
}

// Options configures an Executor. Zero values fall back to defaults.
type Options struct {
	// EncoderPath is the encoder program, looked up in PATH if not absolute.
	EncoderPath string

	// PollInterval is the cancel-flag check period while a process runs.
	PollInterval time.Duration

	// TerminationGrace bounds the wait for a terminated process.
	TerminationGrace time.Duration

	// Env is appended to the inherited environment of the encoder.
	Env []string

	// Tagger, if set, is applied to successful mp3 outputs.
	Tagger Tagger
}

// Executor runs one job at a time per Execute call. It holds no per-job
// state, so one Executor may serve any number of concurrent Execute calls.
type Executor struct {
	opts Options
}

// NewExecutor creates an Executor with defaults applied to opts.
func NewExecutor(opts Options) *Executor {
	if opts.EncoderPath == "" {
		opts.EncoderPath = DefaultEncoder
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.TerminationGrace <= 0 {
		opts.TerminationGrace = DefaultTerminationGrace
	}
	return &Executor{opts: opts}
}

// Args returns the argv the executor would run for job.
func (e *Executor) Args(job model.Job) []string {
	return BuildArgs(e.opts.EncoderPath, job)
}

// Execute converts job and returns its outcome. Log lines are passed to
// emit in order, all before Execute returns. canceled is only read.
func (e *Executor) Execute(job model.Job, canceled *atomic.Bool, emit func(model.LogEntry)) model.Outcome {
	started := time.Now()
	out := model.Outcome{Job: job, ExitCode: -1}
	logf := func(level model.ProgressLevel, format string, args ...any) {
		if emit != nil {
			emit(model.LogEntry{Message: fmt.Sprintf(format, args...), Level: level})
		}
	}
	finish := func(status model.Status, detail string, err error) model.Outcome {
		out.Status = status
		out.Detail = detail
		out.Err = err
		out.Elapsed = time.Since(started)
		return out
	}

	if canceled == nil {
		canceled = new(atomic.Bool)
	}
	if canceled.Load() {
		logf(model.LevelVerbose, "Canceled before start: %s", job.Source())
		return finish(model.StatusCanceled, "canceled before start", ErrCanceled)
	}

	args := e.Args(job)
	out.Command = CommandLine(args)
	logf(model.LevelInfo, "Converting: %s -> %s", job.Source(), job.OutputPath())
	logf(model.LevelVerbose, "Executing command: %s", out.Command)

	cmd := exec.Command(args[0], args[1:]...)
	if len(e.opts.Env) > 0 {
		cmd.Env = append(os.Environ(), e.opts.Env...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return finish(model.StatusFailed, err.Error(), fmt.Errorf("%w: %v", ErrSpawn, err))
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	ticker := time.NewTicker(e.opts.PollInterval)
	defer ticker.Stop()

	exited := func(err error) model.Outcome {
		if err == nil {
			out.ExitCode = 0
			e.tag(job, logf)
			return finish(model.StatusSucceeded, out.Command, nil)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return finish(model.StatusFailed, detail, fmt.Errorf("%w: %v", ErrNonZeroExit, err))
	}

	for {
		select {
		case err := <-done:
			return exited(err)

		case <-ticker.C:
			if !canceled.Load() {
				continue
			}
			// A process that already finished keeps its real result.
			select {
			case err := <-done:
				return exited(err)
			default:
			}

			e.terminate(cmd, done)
			if err := os.Remove(job.OutputPath()); err == nil {
				logf(model.LevelVerbose, "Removed partial output: %s", job.OutputPath())
			}
			return finish(model.StatusCanceled, "canceled during conversion", ErrCanceled)
		}
	}
}

// terminate stops a running encoder and waits for it to be reaped.
func (e *Executor) terminate(cmd *exec.Cmd, done <-chan error) {
	stopProcess(cmd.Process)

	timer := time.NewTimer(e.opts.TerminationGrace)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		_ = cmd.Process.Kill()
		<-done
	}
}

// signaler is the part of *os.Process used to stop an encoder.
type signaler interface {
	Signal(sig os.Signal) error
	Kill() error
}

// stopProcess asks p to exit with SIGTERM, falls back to an interrupt where
// SIGTERM is unsupported and kills p if neither can be delivered. It returns
// the signal that was delivered, or nil when p was killed.
func stopProcess(p signaler) os.Signal {
	for _, sig := range []os.Signal{syscall.SIGTERM, os.Interrupt} {
		if err := p.Signal(sig); err == nil {
			return sig
		}
	}
	_ = p.Kill()
	return nil
}

func (e *Executor) tag(job model.Job, logf func(model.ProgressLevel, string, ...any)) {
	if e.opts.Tagger == nil || job.Format() != model.FormatMP3 {
		return
	}
	if err := e.opts.Tagger.TagOutput(job); err != nil {
		logf(model.LevelWarning, "Error tagging %s: %v", job.OutputPath(), err)
	}
}
