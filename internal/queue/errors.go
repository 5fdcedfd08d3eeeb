package queue

import "errors"

var (
	// ErrDuplicateJob is returned when the source path already has an active job.
	ErrDuplicateJob = errors.New("job already exists")
	// ErrNotPending is returned when an admission races a concurrent transition.
	ErrNotPending = errors.New("job is not pending")
	// ErrJobLocked is returned when mutating a job that is currently processing.
	ErrJobLocked = errors.New("job is processing")
	// ErrJobNotFound is returned when the job id does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrNotRunning is returned when cancelling a job with no live engine.
	ErrNotRunning = errors.New("job is not running")
	// ErrInvalidStrategy is returned for an unknown sort strategy name.
	ErrInvalidStrategy = errors.New("unknown sort strategy")
)
