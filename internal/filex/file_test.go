package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "nested", "session.db")

	require.NoError(t, EnsureParentDir(target))

	fi, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	// idempotent
	require.NoError(t, EnsureParentDir(target))
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	require.NoError(t, EnsureParentDir("session.db"))
}

func TestEnsureParentDir_FailsWhenParentIsFile(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(blocker, "sub", "session.db"))
	require.Error(t, err)
}

func TestEnsurePrivateFile_KeepsContent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	p := filepath.Join(t.TempDir(), "session.db")
	require.NoError(t, os.WriteFile(p, []byte("data"), 0o644))

	require.NoError(t, EnsurePrivateFile(p))

	fi, err := os.Stat(p)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	require.Equal(t, "data", string(b))
}

func TestReadFile(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "clip.mp4")
	require.NoError(t, os.WriteFile(p, []byte("0123456789"), 0o600))

	data, err := ReadFile(p, 0)
	require.NoError(t, err)
	require.Equal(t, []byte("0123456789"), data)

	_, err = ReadFile(p, 5)
	require.ErrorIs(t, err, ErrFileTooLarge)

	empty := filepath.Join(tmp, "empty.mp4")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = ReadFile(empty, 0)
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = ReadFile(tmp, 0)
	require.ErrorIs(t, err, ErrNotRegularFile)

	_, err = ReadFile(filepath.Join(tmp, "missing.mp4"), 0)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}
