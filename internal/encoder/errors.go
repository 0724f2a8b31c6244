package encoder

import "errors"

var (
	// ErrSpawn means the encoder process could not be launched.
	ErrSpawn = errors.New("encoder could not be started")

	// ErrNonZeroExit means the encoder ran but reported failure.
	ErrNonZeroExit = errors.New("encoder exited with failure")

	// ErrCanceled means the job was canceled before or while running.
	ErrCanceled = errors.New("conversion canceled")
)
