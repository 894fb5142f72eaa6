package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gosym/internal/fileutil"
)

func TestCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "in.txt.enc")

	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o755))

	tc, err := fileutil.NewTempContext(src, out)
	require.NoError(t, err)
	assert.True(t, tc.IsExec)

	_, err = tc.TmpFile.WriteString("world")
	require.NoError(t, err)
	require.NoError(t, tc.Commit(out, tc.IsExec))

	tc.CleanupOnError(&err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o711), info.Mode().Perm())

	_, err = os.Stat(tc.TmpName)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanupOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.txt")

	require.NoError(t, os.WriteFile(src, nil, 0o600))

	tc, err := fileutil.NewTempContext(src, filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.False(t, tc.IsExec)

	failed := errors.New("write failed")
	tc.CleanupOnError(&failed)

	_, err = os.Stat(tc.TmpName)
	assert.True(t, os.IsNotExist(err))
}

func TestNewTempContextMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := fileutil.NewTempContext(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	require.Error(t, err)

	_, err = fileutil.NewTempContext(dir, filepath.Join(dir, "out"))
	require.Error(t, err)
}

func TestFinalizeOutput(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(out, []byte("12345"), 0o600))

	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)

	size, err := fileutil.FinalizeOutput(out, true, stamp)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(stamp))
}
