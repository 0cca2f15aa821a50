package strata

import (
	"context"
	"iter"
	"os"
)

// Extractor maps one input file to zero or more records. Returning an error
// marks the file as failed; whether that aborts the run depends on the
// configured failure budget (see [Builder.WithMaxFailures]).
//
// The record type T must be a struct so that a parquet schema can be derived
// from it. Fields may carry `parquet:"..."` tags to control column names.
//
// Extractors that should participate in incremental builds must embed
// [SourceMeta] in T and fill it, typically via [Stat]:
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
//	    return []Record{{SourceMeta: meta, Subject: parseSubject(path)}}, nil
//	}
type Extractor[T any] func(ctx context.Context, path string) ([]T, error)

// Source yields the input file paths for a build.
//
// Paths returns a lazy, finite, one-pass sequence. It may be called more than
// once, but each call re-derives the sequence from scratch: parallel workers
// never share an iterator, they each resolve the source independently and
// keep only the paths they own.
type Source interface {
	Paths(ctx context.Context) iter.Seq2[string, error]
}

// SourceFunc adapts a plain function to the [Source] interface.
type SourceFunc func(ctx context.Context) iter.Seq2[string, error]

func (f SourceFunc) Paths(ctx context.Context) iter.Seq2[string, error] {
	return f(ctx)
}

// SourceMeta records where a record came from and how fresh the input was at
// extraction time. Embed it in record types to make datasets eligible for
// incremental rebuilds: [ModIndex] reads these two columns back out of
// existing partitions to decide which inputs can be skipped.
type SourceMeta struct {
	// SourcePath is the input file the record was extracted from.
	SourcePath string `parquet:"_source_path"`

	// SourceMTime is the input's modification time in Unix nanoseconds.
	SourceMTime int64 `parquet:"_source_mtime"`
}

// Stat builds a [SourceMeta] for path from the filesystem.
func Stat(path string) (SourceMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SourceMeta{}, err
	}
	return SourceMeta{
		SourcePath:  path,
		SourceMTime: info.ModTime().UnixNano(),
	}, nil
}
