package strata_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/strataset/strata"
)

func TestBuild_Incremental_NewFilesOnly(t *testing.T) {
	dir := t.TempDir()
	initial := writeInputs(t, dir, 4)
	output := filepath.Join(t.TempDir(), "dataset")

	first := &recordingExtractor{}
	require.NoError(t,
		strata.New(strata.Glob(filepath.Join(dir, "*.txt")), first.extract, output).
			Run(context.Background()))
	require.Equal(t, initial, first.paths())

	firstParts := partitionFiles(t, output)
	require.Len(t, firstParts, 1)
	firstInfo, err := os.Stat(firstParts[0])
	require.NoError(t, err)

	// Grow the source, then rebuild incrementally one second later so the
	// new partition name cannot collide with the first.
	time.Sleep(1100 * time.Millisecond)
	extra := filepath.Join(dir, "zz-extra.txt")
	require.NoError(t, os.WriteFile(extra, []byte("late arrival"), 0o644))

	second := &recordingExtractor{}
	require.NoError(t,
		strata.New(strata.Glob(filepath.Join(dir, "*.txt")), second.extract, output).
			WithIncremental(true).
			Run(context.Background()))

	// Exactly the new file is processed.
	require.Equal(t, []string{extra}, second.paths())

	// A new partition is added; the pre-existing one is untouched.
	parts := partitionFiles(t, output)
	require.Len(t, parts, 2)
	info, err := os.Stat(firstParts[0])
	require.NoError(t, err)
	require.Equal(t, firstInfo.ModTime(), info.ModTime())
	require.Equal(t, firstInfo.Size(), info.Size())

	rows := readDataset(t, output)
	require.Len(t, rows, len(initial)+1)
}

func TestBuild_Incremental_ModifiedFile(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir, 3)
	output := filepath.Join(t.TempDir(), "dataset")

	require.NoError(t,
		strata.New(strata.Files(inputs...), extractFile, output).Run(context.Background()))

	// Bump one input's mtime well past what the dataset recorded.
	time.Sleep(1100 * time.Millisecond)
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(inputs[1], future, future))

	ext := &recordingExtractor{}
	require.NoError(t,
		strata.New(strata.Files(inputs...), ext.extract, output).
			WithIncremental(true).
			Run(context.Background()))

	require.Equal(t, []string{inputs[1]}, ext.paths())
}

func TestBuild_Incremental_FreshOutput(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir, 3)
	output := filepath.Join(t.TempDir(), "dataset")

	// Incremental against a dataset that does not exist yet is simply a
	// full build.
	ext := &recordingExtractor{}
	require.NoError(t,
		strata.New(strata.Files(inputs...), ext.extract, output).
			WithIncremental(true).
			Run(context.Background()))

	require.Equal(t, inputs, ext.paths())
	require.Len(t, readDataset(t, output), len(inputs))
}

func TestBuild_Incremental_NothingChanged(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir, 3)
	output := filepath.Join(t.TempDir(), "dataset")

	require.NoError(t,
		strata.New(strata.Files(inputs...), extractFile, output).Run(context.Background()))

	time.Sleep(1100 * time.Millisecond)
	ext := &recordingExtractor{}
	require.NoError(t,
		strata.New(strata.Files(inputs...), ext.extract, output).
			WithIncremental(true).
			Run(context.Background()))

	require.Empty(t, ext.paths())
	require.Len(t, readDataset(t, output), len(inputs), "no duplicate records")
}
