// Package pool dispatches batches of jobs to an Executor with a bounded
// number of concurrent executions.
//
// All log lines and outcomes of a submitted batch arrive on one channel, so
// a single consumer sees every event of a job in order:
//
//	events := pool.New(executor, 4).Submit(jobs, &canceled)
//	for ev := range events {
//	    if ev.Outcome != nil {
//	        // one per job
//	    }
//	}
package pool
