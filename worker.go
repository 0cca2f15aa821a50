package strata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PartitionExt is the file extension of partition files.
const PartitionExt = ".parquet"

const partTimeFormat = "20060102150405"

// partitionName computes the deterministic partition filename for a run that
// started at start. The triple (timestamp, worker ID, worker count) makes
// names unique across incremental loads and across concurrent siblings.
func partitionName(start time.Time, workerID, workers int) string {
	return fmt.Sprintf("part-%s-%04d-of-%04d%s",
		start.Format(partTimeFormat), workerID, workers, PartitionExt)
}

// RunWorker executes a single partition worker synchronously and returns its
// run counts. Run dispatches here; call it directly when an external
// scheduler owns the fan-out and this process is exactly one worker.
//
// The worker resolves its own slice of the source (incremental filter first,
// then hash partitioning), writes one partition file through an atomic
// staging file, and publishes it only on clean completion. Killing the
// process before commit leaves no published partition, at most an invisible
// temp file.
func (b *Builder[T]) RunWorker(ctx context.Context, workerID int) (Counts, error) {
	workers, err := b.resolveWorkers()
	if err != nil {
		return Counts{}, err
	}
	if workerID < 0 || workerID >= workers {
		return Counts{}, fmt.Errorf("%w: worker ID %d; expected 0 <= ID < %d",
			ErrInvalidConfig, workerID, workers)
	}

	log := b.logger.With("worker_id", workerID)
	start := b.now()

	paths := b.source.Paths(ctx)

	if b.incremental {
		if _, err := os.Stat(b.output); err == nil {
			// Racy against sibling workers publishing partitions while the
			// index is scanned. Accepted: each worker owns a disjoint slice,
			// so a mid-scan partition at worst delays one file to the next
			// incremental run.
			index, err := LoadModIndex(b.output)
			if err != nil {
				return Counts{}, fmt.Errorf("load incremental index: %w", err)
			}
			paths = filterSeq(paths, index.Changed)
		}
	}

	if workers > 1 {
		paths = filterSeq(paths, HashPartitioner(workerID, workers))
	}

	dst := filepath.Join(b.output, partitionName(start, workerID, workers))
	if _, err := os.Stat(dst); err == nil {
		return Counts{}, fmt.Errorf("%w: %s", ErrPartitionExists, dst)
	}

	af, err := createAtomic(dst)
	if err != nil {
		return Counts{}, fmt.Errorf("open partition %s: %w", dst, err)
	}
	defer af.Discard()

	writer := newPartitionWriter[T](af, b.bufferSize)

	counts, err := runExtract(ctx, paths, b.extract, writer.Append, b.maxFailures,
		b.progress, func(c Counts) {
			log.Info("progress", "counts", c)
		})
	if err != nil {
		return counts, err
	}

	if err := writer.Close(); err != nil {
		return counts, fmt.Errorf("finalize partition %s: %w", dst, err)
	}
	if err := af.Commit(); err != nil {
		return counts, fmt.Errorf("publish partition %s: %w", dst, err)
	}

	log.Info("partition complete",
		"path", dst, "elapsed", time.Since(start), "counts", counts)
	return counts, nil
}
