package model

import "time"

// Status is the terminal state of one job.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusCanceled
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Outcome is the result of running one job. Exactly one Outcome is
// produced per submitted job.
type Outcome struct {
	// Job is the job this outcome belongs to.
	Job Job

	// Index is the position of the job in the submitted batch.
	Index int

	// Status is the terminal state.
	Status Status

	// Detail is human-readable context: the executed command on success,
	// the captured stderr on a failed exit, or the error text otherwise.
	Detail string

	// Command is the encoder invocation, empty if none was built.
	Command string

	// ExitCode is the process exit code, or -1 when no process exited.
	ExitCode int

	// Err wraps the failure or cancellation cause. Nil on success.
	Err error

	// Elapsed is the wall time spent in the executor.
	Elapsed time.Duration
}
