package pool

import (
	"fmt"
	"sync/atomic"

	"github.com/xangelkai/audioconv/internal/model"
	"golang.org/x/sync/errgroup"
)

// Executor runs a single job. Implementations must return exactly one
// outcome and may call emit any number of times before returning.
type Executor interface {
	Execute(job model.Job, canceled *atomic.Bool, emit func(model.LogEntry)) model.Outcome
}

// Event is either a log line or a job outcome. Exactly one of Log and
// Outcome is set.
type Event struct {
	Log     *model.LogEntry
	Outcome *model.Outcome
}

// Pool runs jobs on an Executor with at most Limit executions in flight.
type Pool struct {
	executor Executor
	limit    int
}

// New creates a Pool. A limit below one is treated as one.
func New(executor Executor, limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{executor: executor, limit: limit}
}

// Limit returns the concurrency limit.
func (p *Pool) Limit() int {
	return p.limit
}

// Submit starts dispatching jobs and returns immediately. All log lines and
// outcomes are delivered on the returned channel, which is closed once every
// job has produced its outcome. Jobs are started in submission order;
// completions may arrive in any order. The caller must drain the channel.
//
// Lines of one job always precede that job's outcome. A job whose turn
// comes after canceled was set is still handed to the executor, which
// reports it as canceled without doing any work.
func (p *Pool) Submit(jobs []model.Job, canceled *atomic.Bool) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		var g errgroup.Group
		g.SetLimit(p.limit)

		for i, job := range jobs {
			i, job := i, job
			g.Go(func() error {
				out := p.run(i, job, canceled, events)
				events <- Event{Outcome: &out}
				return nil
			})
		}

		_ = g.Wait()
	}()

	return events
}

// run executes one job, converting a panic into a failed outcome so it can
// not take down sibling jobs.
func (p *Pool) run(index int, job model.Job, canceled *atomic.Bool, events chan<- Event) (out model.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = model.Outcome{
				Job:      job,
				Status:   model.StatusFailed,
				Detail:   fmt.Sprintf("panic: %v", r),
				ExitCode: -1,
				Err:      fmt.Errorf("executor panic: %v", r),
			}
		}
		out.Index = index
	}()

	emit := func(entry model.LogEntry) {
		entry.Job = index
		events <- Event{Log: &entry}
	}
	return p.executor.Execute(job, canceled, emit)
}
