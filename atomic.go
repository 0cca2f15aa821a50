package strata

import (
	"os"
	"path/filepath"
)

// atomicFile stages writes in a dot-prefixed temp file next to the
// destination and publishes via rename on Commit. Until then the final path
// does not exist, so readers and the incremental index never observe a
// partially written partition.
type atomicFile struct {
	f         *os.File
	dst       string
	published bool
}

func createAtomic(dst string) (*atomicFile, error) {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dst)+"-")
	if err != nil {
		return nil, err
	}
	return &atomicFile{f: f, dst: dst}, nil
}

func (a *atomicFile) Write(p []byte) (int, error) {
	return a.f.Write(p)
}

// Commit flushes the staged file to disk and renames it to the final path.
func (a *atomicFile) Commit() error {
	if err := a.f.Sync(); err != nil {
		a.f.Close()
		return err
	}
	if err := a.f.Close(); err != nil {
		return err
	}
	if err := os.Rename(a.f.Name(), a.dst); err != nil {
		return err
	}
	a.published = true
	return nil
}

// Discard removes the staged file. It is a no-op after Commit, so callers
// can defer it unconditionally.
func (a *atomicFile) Discard() {
	if a.published {
		return
	}
	a.f.Close()
	os.Remove(a.f.Name())
}
