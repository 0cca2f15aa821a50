package strata

import (
	"context"
	"fmt"
	"iter"
)

// runExtract drives the extraction loop: for each surviving input path it
// invokes extract, appends the resulting records to sink, and counts
// failures against the budget. A budget of 0 aborts on the first failure, a
// positive budget skips up to that many failed inputs, and a negative budget
// tolerates everything.
//
// Errors yielded by the path sequence itself and errors from the sink are
// always fatal; they are not extraction failures and do not count against
// the budget.
func runExtract[T any](
	ctx context.Context,
	paths iter.Seq2[string, error],
	extract Extractor[T],
	sink func([]T) error,
	maxFailures int,
	progressEvery int,
	onProgress func(Counts),
) (Counts, error) {
	var counts Counts

	for path, err := range paths {
		if cerr := ctx.Err(); cerr != nil {
			return counts, cerr
		}
		if err != nil {
			return counts, fmt.Errorf("resolve source: %w", err)
		}

		counts.Total++

		records, err := extract(ctx, path)
		if err != nil {
			counts.Failed++
			if maxFailures >= 0 && counts.Failed > int64(maxFailures) {
				return counts, fmt.Errorf("%w: %d failures exceed budget of %d, last %q: %w",
					ErrTooManyFailures, counts.Failed, maxFailures, path, err)
			}
			continue
		}

		counts.Succeeded++
		if len(records) > 0 {
			if err := sink(records); err != nil {
				return counts, fmt.Errorf("sink %q: %w", path, err)
			}
		}

		if onProgress != nil && progressEvery > 0 && counts.Total%int64(progressEvery) == 0 {
			onProgress(counts)
		}
	}

	return counts, nil
}
