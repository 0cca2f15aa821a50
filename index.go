package strata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// ModIndex maps input paths to the last modification time recorded in an
// existing dataset. It is a read-only snapshot rebuilt from the dataset's
// partition files on every incremental run, never persisted separately and
// never refreshed mid-run.
type ModIndex struct {
	mtimes map[string]int64
}

// LoadModIndex scans the partition files in a dataset directory and indexes
// the [SourceMeta] columns of their records. Partitions whose records carry
// no source metadata contribute nothing, which degrades an incremental build
// into a full one rather than skipping the wrong files.
func LoadModIndex(dir string) (*ModIndex, error) {
	parts, err := filepath.Glob(filepath.Join(dir, "part-*"+PartitionExt))
	if err != nil {
		return nil, fmt.Errorf("scan dataset %s: %w", dir, err)
	}

	index := &ModIndex{mtimes: make(map[string]int64)}
	for _, part := range parts {
		metas, err := parquet.ReadFile[SourceMeta](part)
		if err != nil {
			return nil, fmt.Errorf("read partition %s: %w", part, err)
		}
		for _, m := range metas {
			if m.SourcePath == "" {
				continue
			}
			if last, ok := index.mtimes[m.SourcePath]; !ok || m.SourceMTime > last {
				index.mtimes[m.SourcePath] = m.SourceMTime
			}
		}
	}
	return index, nil
}

// Len returns the number of distinct input paths recorded in the index.
func (x *ModIndex) Len() int {
	return len(x.mtimes)
}

// Changed reports whether path is new or has been modified since the dataset
// last recorded it. Paths that cannot be stat'd count as changed so the
// extraction loop, not the filter, surfaces the failure.
func (x *ModIndex) Changed(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return true
	}
	last, ok := x.mtimes[path]
	return !ok || info.ModTime().UnixNano() > last
}
