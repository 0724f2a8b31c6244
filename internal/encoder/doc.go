// Package encoder runs single conversion jobs by invoking an external
// encoder process (ffmpeg by default).
//
// # Command Line
//
// Every job becomes one invocation of the form
//
//	<encoder> -i <source> -y [-b:a <bitrate>] <output>
//
// The bitrate argument is only present for lossy formats with a bitrate
// set. The encoder is treated as a black box: exit code 0 is success, any
// other code is failure and stderr is kept as diagnostic text.
//
// # Cancellation
//
// Execute takes a shared *atomic.Bool. The flag is checked before the
// process is spawned and then on every poll tick while it runs. Once the
// flag is observed the process receives SIGTERM (kill where signals are not
// supported) and is killed if it outlives the termination grace period.
//
// # Errors
//
// Execute never returns an error. Spawn failures, non-zero exits and
// cancellations are folded into the returned model.Outcome, with Err
// wrapping ErrSpawn, ErrNonZeroExit or ErrCanceled.
package encoder
