// Package strata builds partitioned parquet datasets by applying a
// user-supplied extraction function to a stream of input files.
//
// A build takes a [Source] of file paths, an [Extractor] that maps each path
// to zero or more records, and an output directory. Records are written as a
// directory of parquet partition files that grows by accretion across
// invocations; individual partitions are immutable once published.
//
// # Quick Start
//
//	type Record struct {
//	    strata.SourceMeta
//	    Subject string `parquet:"subject"`
//	    Size    int64  `parquet:"size"`
//	}
//
//	func extract(ctx context.Context, path string) ([]Record, error) {
//	    meta, err := strata.Stat(path)
//	    if err != nil {
//	        return nil, err
//	    }
//	    info, _ := os.Stat(path)
//	    return []Record{{SourceMeta: meta, Subject: subjectOf(path), Size: info.Size()}}, nil
//	}
//
//	err := strata.New(strata.Glob("data/**/*.json"), extract, "dataset").
//	    WithWorkers(strata.AllCores).
//	    Run(ctx)
//
// # Partitioned execution
//
// With multiple workers, each worker independently resolves the source and
// keeps only the paths assigned to it by [HashPartitioner]. Ownership is
// determined by hashing the path itself, so the workers' slices are disjoint
// and complete without any coordinator, locks, or shared state: concurrent
// writers never contend because each writes a single file that embeds its own
// identity:
//
//	part-{YYYYMMDDHHMMSS}-{worker_id:04d}-of-{workers:04d}.parquet
//
// The same property makes external fan-out possible. A job scheduler can run
// one process per worker, each pinned with WithWorkerID:
//
//	// task $i of an N-task job array
//	err := strata.New(src, extract, "dataset").
//	    WithWorkers(n).
//	    WithWorkerID(i).
//	    Run(ctx)
//
// # Incremental builds
//
// WithIncremental(true) skips inputs that are unchanged since a previous
// build. Freshness is judged against the [SourceMeta] columns recorded in
// existing partitions, so incremental datasets require record types that
// embed [SourceMeta]. New and modified files are written to new partitions;
// existing partitions are never touched.
//
// # Crash safety
//
// Each partition is written through a temp file and renamed into place only
// on clean completion. A worker killed mid-run leaves no published partition
// and the dataset remains consistent for readers. Partitions are atomic
// individually; the dataset as a whole is not a transaction.
//
// # Failure handling
//
// Extraction failures count against a per-worker budget
// (WithMaxFailures). In orchestrated parallel runs a failed worker is
// logged and isolated; sibling workers keep their partitions. Serial runs
// and externally scheduled single-worker runs return errors directly.
//
// For a quick non-persistent extraction, [BuildTable] applies the same
// extraction loop and collects records in memory.
package strata
