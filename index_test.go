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

func TestLoadModIndex(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir, 3)
	output := filepath.Join(t.TempDir(), "dataset")

	require.NoError(t,
		strata.New(strata.Files(inputs...), extractFile, output).Run(context.Background()))

	index, err := strata.LoadModIndex(output)
	require.NoError(t, err)
	require.Equal(t, len(inputs), index.Len())

	// Recorded and unchanged: not changed.
	for _, p := range inputs {
		require.False(t, index.Changed(p), "unchanged input %q", p)
	}

	// Never recorded: changed.
	fresh := filepath.Join(dir, "new.txt")
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o644))
	require.True(t, index.Changed(fresh))

	// Recorded but touched since: changed.
	future := time.Now().Add(5 * time.Second)
	require.NoError(t, os.Chtimes(inputs[0], future, future))
	require.True(t, index.Changed(inputs[0]))

	// Not stat-able: treated as changed so extraction reports the failure.
	require.True(t, index.Changed(filepath.Join(dir, "gone.txt")))
}

func TestLoadModIndex_EmptyDirectory(t *testing.T) {
	index, err := strata.LoadModIndex(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, 0, index.Len())
	require.True(t, index.Changed("anything"))
}

func TestLoadModIndex_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir, 2)
	output := filepath.Join(t.TempDir(), "dataset")

	require.NoError(t,
		strata.New(strata.Files(inputs...), extractFile, output).Run(context.Background()))

	// Stray non-partition files must not be parsed as parquet.
	require.NoError(t, os.WriteFile(filepath.Join(output, "README"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(output, ".tmp-part-junk"), []byte("x"), 0o644))

	index, err := strata.LoadModIndex(output)
	require.NoError(t, err)
	require.Equal(t, len(inputs), index.Len())
}
