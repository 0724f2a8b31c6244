// Package batch orchestrates one conversion batch at a time.
//
// # Controller
//
// The Controller owns the lifecycle of a batch run:
//
//	Idle -> Running -> Completed | Canceled -> Idle
//
// Start validates the request, creates a Run with its own cancel flag and
// dispatches the jobs through a bounded worker pool. It returns without
// waiting for any job. Cancel sets the run's cancel flag; executors notice
// it on their next poll, so cancellation is advisory rather than immediate.
//
//	ctrl := batch.NewController(executor, sink)
//	run, err := ctrl.Start(jobs, 4)
//	if err != nil {
//	    return err // ErrNothingToConvert, ErrBatchInProgress, ...
//	}
//	summary := run.Wait()
//
// # Events
//
// All notifications go to a Sink from a single goroutine per run, so a Sink
// does not need to be safe for concurrent use within one run:
//
//   - Log: executor lines and one summary line per job outcome
//   - Progress: completed/total after each outcome, strictly increasing
//   - BatchFinished: once per run, with StateCompleted or StateCanceled
//
// A run that saw Cancel finishes as StateCanceled even when every job
// happened to succeed; individual outcomes always report what the encoder
// actually did.
package batch
