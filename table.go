package strata

import "context"

// BuildTable extracts records from a stream of files into an in-memory
// slice, in arbitrary order. It shares the extraction loop and failure
// budget semantics with [Builder.Run] but performs no partitioning, no
// incremental filtering, and no persistence.
//
// maxFailures follows [Builder.WithMaxFailures]: 0 aborts on the first
// failure, a positive value skips up to that many failed inputs, and
// [NoFailureLimit] tolerates everything.
func BuildTable[T any](ctx context.Context, source Source, extract Extractor[T], maxFailures int) ([]T, Counts, error) {
	var rows []T
	counts, err := runExtract(ctx, source.Paths(ctx), extract,
		func(records []T) error {
			rows = append(rows, records...)
			return nil
		},
		maxFailures, 0, nil)
	if err != nil {
		return nil, counts, err
	}
	return rows, counts, nil
}
