package strata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default configuration values.
const (
	// DefaultBufferSize is the number of records buffered before a parquet
	// row group is flushed.
	DefaultBufferSize = 1024

	// DefaultProgressInterval is how often (in input files) workers log a
	// progress line.
	DefaultProgressInterval = 10000
)

// AllCores requests one worker per available CPU core.
// Pass it to [Builder.WithWorkers].
const AllCores = -1

// NoFailureLimit disables the extraction failure budget: every failure is
// tolerated and the run completes. Pass it to [Builder.WithMaxFailures].
const NoFailureLimit = -1

// Builder configures and runs a partitioned dataset build. Construct with
// [New], adjust with the chainable With* methods, then call [Builder.Run].
//
// A Builder is not safe for concurrent mutation; configure it fully before
// running.
type Builder[T any] struct {
	source  Source
	extract Extractor[T]
	output  string

	workers     int
	workerID    *int
	incremental bool
	overwrite   bool
	maxFailures int
	bufferSize  int
	progress    int
	logger      *slog.Logger

	now func() time.Time
}

// New creates a Builder that extracts records from source into a parquet
// dataset directory at output.
func New[T any](source Source, extract Extractor[T], output string) *Builder[T] {
	return &Builder[T]{
		source:     source,
		extract:    extract,
		output:     output,
		workers:    1,
		bufferSize: DefaultBufferSize,
		progress:   DefaultProgressInterval,
		logger:     slog.Default(),
		now:        time.Now,
	}
}

// WithWorkers sets the number of parallel workers. The default is 1 (run in
// the calling goroutine). [AllCores] resolves to the number of available CPU
// cores at run time. Any other value below 1 is rejected by Run with
// [ErrInvalidConfig].
func (b *Builder[T]) WithWorkers(n int) *Builder[T] {
	b.workers = n
	return b
}

// WithWorkerID pins the build to a single worker identity. Run then executes
// exactly that worker synchronously in the current process, which supports
// externally scheduled fan-out: launch one process per worker (for example
// one job-array task each), all configured with the same worker count and
// distinct IDs. Incompatible with overwrite.
func (b *Builder[T]) WithWorkerID(id int) *Builder[T] {
	b.workerID = &id
	return b
}

// WithIncremental updates an existing dataset with only new or changed
// inputs, determined by comparing modification times against the
// [SourceMeta] columns of existing partitions. Existing partitions are left
// untouched; new partitions are added alongside them.
func (b *Builder[T]) WithIncremental(incremental bool) *Builder[T] {
	b.incremental = incremental
	return b
}

// WithOverwrite recursively deletes a pre-existing output directory before
// building. Incompatible with WithWorkerID.
func (b *Builder[T]) WithOverwrite(overwrite bool) *Builder[T] {
	b.overwrite = overwrite
	return b
}

// WithMaxFailures sets the number of extraction failures a worker tolerates.
// The default of 0 aborts on the first failure. A positive n skips up to n
// failed inputs before aborting. [NoFailureLimit] tolerates everything.
func (b *Builder[T]) WithMaxFailures(n int) *Builder[T] {
	b.maxFailures = n
	return b
}

// WithBufferSize overrides the number of records buffered per parquet row
// group. Values less than 1 are ignored.
func (b *Builder[T]) WithBufferSize(n int) *Builder[T] {
	if n >= 1 {
		b.bufferSize = n
	}
	return b
}

// WithProgressInterval overrides how often (in input files) a worker logs
// progress. Values less than 1 are ignored.
func (b *Builder[T]) WithProgressInterval(n int) *Builder[T] {
	if n >= 1 {
		b.progress = n
	}
	return b
}

// WithLogger sets the logger used by the orchestrator and passed down to
// every worker. The default is slog.Default. Workers always log through an
// explicit logger handed to them at spawn time rather than ambient state, so
// the configuration survives external scheduling.
func (b *Builder[T]) WithLogger(logger *slog.Logger) *Builder[T] {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// resolveWorkers returns the effective worker count.
func (b *Builder[T]) resolveWorkers() (int, error) {
	switch {
	case b.workers == AllCores:
		return runtime.NumCPU(), nil
	case b.workers < 1:
		return 0, fmt.Errorf("%w: workers %d; expected %d or a positive count",
			ErrInvalidConfig, b.workers, AllCores)
	default:
		return b.workers, nil
	}
}

// validate checks the full configuration and returns the resolved worker
// count. It runs before any I/O against the output other than existence
// checks.
func (b *Builder[T]) validate() (int, error) {
	workers, err := b.resolveWorkers()
	if err != nil {
		return 0, err
	}
	if b.workerID != nil {
		id := *b.workerID
		if id < 0 || id >= workers {
			return 0, fmt.Errorf("%w: worker ID %d; expected 0 <= ID < %d",
				ErrInvalidConfig, id, workers)
		}
		if b.overwrite {
			return 0, fmt.Errorf("%w: overwrite is incompatible with a pinned worker ID",
				ErrInvalidConfig)
		}
	}
	return workers, nil
}

// Run validates the configuration, prepares the output directory, and
// executes the build.
//
// With a pinned worker ID or a single worker, Run executes synchronously and
// returns the worker's error directly. With multiple workers and no pinned
// ID, Run spawns one independent task per worker, waits for all of them, and
// returns nil regardless of individual outcomes: each worker failure is
// logged with its worker ID but neither halts the siblings nor propagates.
// Completeness of a parallel build is inferred from the dataset contents and
// the logs. This best-effort contract keeps a crashed worker from discarding
// everyone else's finished partitions.
func (b *Builder[T]) Run(ctx context.Context) error {
	workers, err := b.validate()
	if err != nil {
		return err
	}

	inplace := b.incremental || b.workerID != nil
	if _, err := os.Stat(b.output); err == nil && !inplace {
		if !b.overwrite {
			return fmt.Errorf("%w: %s", ErrOutputExists, b.output)
		}
		if err := os.RemoveAll(b.output); err != nil {
			return fmt.Errorf("remove output %s: %w", b.output, err)
		}
	}

	switch {
	case b.workerID != nil:
		_, err := b.RunWorker(ctx, *b.workerID)
		return err

	case workers > 1:
		g := new(errgroup.Group)
		for id := range workers {
			g.Go(func() error {
				if _, err := b.RunWorker(ctx, id); err != nil {
					b.logger.Warn("worker failed",
						"worker_id", id, "error", err)
				}
				return nil
			})
		}
		return g.Wait()

	default:
		_, err := b.RunWorker(ctx, 0)
		return err
	}
}
