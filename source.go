package strata

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob returns a Source that lazily expands a shell-style pattern. Patterns
// containing `**` match any number of path segments, including zero, so
// `data/**/*.json` matches both `data/a.json` and `data/sub/dir/a.json`.
// Only files are yielded, never directories.
//
// Expansion walks the filesystem as the sequence is consumed; a large tree is
// never materialized up front.
func Glob(pattern string) Source {
	return globSource{pattern: pattern}
}

type globSource struct {
	pattern string
}

func (g globSource) Paths(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		base, pattern := doublestar.SplitPattern(filepath.ToSlash(g.pattern))
		err := doublestar.GlobWalk(os.DirFS(base), pattern,
			func(path string, d fs.DirEntry) error {
				if err := ctx.Err(); err != nil {
					return err
				}
				if !yield(filepath.Join(base, filepath.FromSlash(path)), nil) {
					return fs.SkipAll
				}
				return nil
			},
			doublestar.WithFilesOnly(),
		)
		if err != nil {
			yield("", err)
		}
	}
}

// Files returns a Source over a fixed list of paths.
func Files(paths ...string) Source {
	return SourceFunc(func(ctx context.Context) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			for _, p := range paths {
				if err := ctx.Err(); err != nil {
					yield("", err)
					return
				}
				if !yield(p, nil) {
					return
				}
			}
		}
	})
}

// filterSeq keeps only the paths for which keep returns true. Errors pass
// through unfiltered.
func filterSeq(seq iter.Seq2[string, error], keep func(string) bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for path, err := range seq {
			if err == nil && !keep(path) {
				continue
			}
			if !yield(path, err) {
				return
			}
		}
	}
}
