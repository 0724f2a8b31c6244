package batch

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/xangelkai/audioconv/internal/model"
)

// Run is one started batch. Its cancel flag and counters live exactly as
// long as the run.
type Run struct {
	id      string
	jobs    []model.Job
	limit   int
	started time.Time

	canceled atomic.Bool

	// Only touched by the controller goroutine driving the run.
	completed int
	outcomes  []model.Outcome

	summary Summary
	done    chan struct{}
}

func newRun(jobs []model.Job, limit int) *Run {
	return &Run{
		id:       uuid.NewString(),
		jobs:     append([]model.Job(nil), jobs...),
		limit:    limit,
		started:  time.Now(),
		outcomes: make([]model.Outcome, len(jobs)),
		done:     make(chan struct{}),
	}
}

// ID returns the unique run identifier.
func (r *Run) ID() string {
	return r.id
}

// Total returns the number of jobs in the run.
func (r *Run) Total() int {
	return len(r.jobs)
}

// Limit returns the concurrency limit of the run.
func (r *Run) Limit() int {
	return r.limit
}

// CancelRequested reports whether cancellation was requested for the run.
func (r *Run) CancelRequested() bool {
	return r.canceled.Load()
}

// Done is closed after BatchFinished has been delivered.
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run is finished and returns its summary.
func (r *Run) Wait() Summary {
	<-r.done
	return r.summary
}

// record stores an outcome and returns the new completed count.
func (r *Run) record(out model.Outcome) int {
	if out.Index >= 0 && out.Index < len(r.outcomes) {
		r.outcomes[out.Index] = out
	}
	r.completed++
	return r.completed
}

func (r *Run) summarize(state State) Summary {
	s := Summary{
		RunID:    r.id,
		State:    state,
		Total:    len(r.jobs),
		Outcomes: r.outcomes,
		Elapsed:  time.Since(r.started),
	}
	for _, o := range r.outcomes {
		switch o.Status {
		case model.StatusSucceeded:
			s.Succeeded++
		case model.StatusFailed:
			s.Failed++
		case model.StatusCanceled:
			s.Canceled++
		}
	}
	return s
}

// Summary is the final account of a run.
type Summary struct {
	RunID     string
	State     State
	Total     int
	Succeeded int
	Failed    int
	Canceled  int

	// Outcomes are in submission order.
	Outcomes []model.Outcome
	Elapsed  time.Duration
}

// OutputPaths returns the output files of the succeeded jobs in submission
// order.
func (s Summary) OutputPaths() []string {
	var paths []string
	for _, o := range s.Outcomes {
		if o.Status == model.StatusSucceeded {
			paths = append(paths, o.Job.OutputPath())
		}
	}
	return paths
}
