package batch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/xangelkai/audioconv/internal/audio"
	"github.com/xangelkai/audioconv/internal/encoder"
	"github.com/xangelkai/audioconv/internal/model"
	"github.com/xangelkai/audioconv/internal/pool"
)

var (
	// ErrNothingToConvert is returned by Start for an empty job list.
	ErrNothingToConvert = errors.New("no files selected for conversion")

	// ErrBatchInProgress is returned by Start while another run is active.
	ErrBatchInProgress = errors.New("batch already in progress")

	// ErrInvalidConcurrency is returned by Start for a limit below one.
	ErrInvalidConcurrency = errors.New("concurrency limit must be at least 1")

	// ErrNoRunningBatch is returned by Cancel when no run is active.
	ErrNoRunningBatch = errors.New("no running batch")
)

// State is the controller lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCanceled
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithPlaylist makes every finished run write the succeeded outputs to a
// playlist at path. The format follows the file extension.
func WithPlaylist(path string) Option {
	return func(c *Controller) {
		c.playlistPath = path
	}
}

// Controller runs one batch at a time and reports to a Sink.
type Controller struct {
	executor     pool.Executor
	sink         Sink
	playlistPath string

	mu    sync.Mutex
	state State
	run   *Run
}

// NewController creates an idle Controller. A nil sink discards events.
func NewController(executor pool.Executor, sink Sink, opts ...Option) *Controller {
	if sink == nil {
		sink = SinkFuncs{}
	}
	c := &Controller{
		executor: executor,
		sink:     sink,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the active run, or nil when idle.
func (c *Controller) Current() *Run {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.run
}

// Start begins a run over jobs with at most limit concurrent executions.
// It never waits for a job. Errors are reported synchronously and leave the
// controller state unchanged.
func (c *Controller) Start(jobs []model.Job, limit int) (*Run, error) {
	if len(jobs) == 0 {
		return nil, ErrNothingToConvert
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, limit)
	}

	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return nil, ErrBatchInProgress
	}
	run := newRun(jobs, limit)
	c.state = StateRunning
	c.run = run
	c.mu.Unlock()

	events := pool.New(c.executor, limit).Submit(run.jobs, &run.canceled)
	go c.drive(run, events)

	return run, nil
}

// Cancel requests cancellation of the active run. Running jobs stop at
// their next poll; jobs not yet started finish as canceled without work.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || c.run == nil {
		return ErrNoRunningBatch
	}
	c.run.canceled.Store(true)
	return nil
}

// drive consumes the pool events of run. It is the only place that
// touches the run's completed count.
func (c *Controller) drive(run *Run, events <-chan pool.Event) {
	total := run.Total()
	c.sink.Log(model.LogEntry{
		Message: fmt.Sprintf("Starting batch %s: %d file(s), %d concurrent job(s)", run.ID(), total, run.Limit()),
		Level:   model.LevelVerbose,
		Job:     -1,
	})

	for ev := range events {
		switch {
		case ev.Log != nil:
			c.sink.Log(*ev.Log)
		case ev.Outcome != nil:
			completed := run.record(*ev.Outcome)
			c.sink.Progress(completed, total)
			for _, entry := range outcomeLog(*ev.Outcome) {
				c.sink.Log(entry)
			}
		}
	}

	c.mu.Lock()
	final := StateCompleted
	if run.canceled.Load() {
		final = StateCanceled
	}
	c.state = final
	c.mu.Unlock()

	run.summary = run.summarize(final)
	c.writePlaylist(run.summary)

	if final == StateCanceled {
		c.sink.Log(model.LogEntry{Message: "Conversion canceled.", Level: model.LevelWarning, Job: -1})
	} else {
		c.sink.Log(model.LogEntry{Message: "Conversion completed!", Level: model.LevelSuccess, Job: -1})
	}

	c.mu.Lock()
	c.state = StateIdle
	c.run = nil
	c.mu.Unlock()

	c.sink.BatchFinished(final)
	close(run.done)
}

func (c *Controller) writePlaylist(s Summary) {
	if c.playlistPath == "" {
		return
	}
	paths := s.OutputPaths()
	if len(paths) == 0 {
		return
	}
	if err := audio.WritePlaylist(c.playlistPath, paths); err != nil {
		c.sink.Log(model.LogEntry{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: model.LevelWarning, Job: -1})
		return
	}
	c.sink.Log(model.LogEntry{Message: fmt.Sprintf("Created playlist %s", c.playlistPath), Level: model.LevelSuccess, Job: -1})
}

// outcomeLog renders the user-facing lines for one outcome.
func outcomeLog(o model.Outcome) []model.LogEntry {
	src := o.Job.Source()
	switch o.Status {
	case model.StatusSucceeded:
		return []model.LogEntry{
			{Message: "Successfully converted: " + o.Job.OutputPath(), Level: model.LevelSuccess, Job: o.Index},
		}
	case model.StatusCanceled:
		return []model.LogEntry{
			{Message: fmt.Sprintf("Canceled: %s (%s)", src, o.Detail), Level: model.LevelWarning, Job: o.Index},
		}
	default:
		if errors.Is(o.Err, encoder.ErrSpawn) || o.Command == "" {
			return []model.LogEntry{
				{Message: fmt.Sprintf("Exception during conversion %s: %s", src, o.Detail), Level: model.LevelError, Job: o.Index},
			}
		}
		return []model.LogEntry{
			{Message: "Error converting file: " + src, Level: model.LevelError, Job: o.Index},
			{Message: "stderr: " + o.Detail, Level: model.LevelError, Job: o.Index},
		}
	}
}
