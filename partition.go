package strata

import (
	"hash/fnv"
	"io"
)

// HashPartitioner returns a predicate assigning input paths to one of
// workers buckets via an FNV-1a hash of the path, keeping only the bucket
// matching workerID. For a fixed worker count, the predicates for worker IDs
// 0..workers-1 partition any path set: every path matches exactly one of
// them, so independently filtered workers cover the full source with no
// overlap and no coordination.
//
// The assignment depends only on the path string, not on worker scheduling,
// so it is stable across processes and machines.
func HashPartitioner(workerID, workers int) func(path string) bool {
	return func(path string) bool {
		h := fnv.New64a()
		_, _ = io.WriteString(h, path)
		return h.Sum64()%uint64(workers) == uint64(workerID)
	}
}
