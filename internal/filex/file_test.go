package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNested(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a", "b", "state.db")

	require.NoError(t, EnsureParentDir(path))

	info, err := os.Stat(filepath.Join(root, "a", "b"))
	require.NoError(t, err)
	require.True(t, info.IsDir())

	require.NoError(t, EnsureParentDir(path), "existing dir is fine")
}

func TestEnsureParentDir_SkipsSpecialPaths(t *testing.T) {
	for _, p := range []string{"", "state.db", ":memory:", "file:x.db?mode=memory"} {
		require.NoError(t, EnsureParentDir(p), p)
	}
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	root := t.TempDir()
	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "state.db"))
	require.ErrorContains(t, err, "mkdir")
}
