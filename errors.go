package strata

import "errors"

var (
	// ErrInvalidConfig is returned when the worker count, worker ID, or
	// overwrite flag form an invalid combination. It is always returned
	// before any work starts.
	ErrInvalidConfig = errors.New("invalid build configuration")

	// ErrOutputExists is returned when the output dataset directory already
	// exists and the build is neither incremental, overwriting, nor pinned
	// to a single worker ID.
	ErrOutputExists = errors.New("output dataset already exists")

	// ErrPartitionExists is returned when a worker's computed partition file
	// already exists. This guards against double-invocation with identical
	// parameters within the same second; a worker never overwrites a
	// published partition.
	ErrPartitionExists = errors.New("partition file already exists")

	// ErrTooManyFailures is returned when extraction failures exceed the
	// configured budget and the worker aborts without committing.
	ErrTooManyFailures = errors.New("too many extraction failures")
)
