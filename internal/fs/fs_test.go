package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const createFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC

func TestLocalFS(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, Default.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "lists.json")
	f, err := Default.OpenFile(path+".tmp", createFlags, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	require.NoError(t, Default.Rename(path+".tmp", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	require.NoError(t, Default.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp", Fault{FailAfterBytes: 4})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "a.tmp"), createFlags, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte("abcd"))
	require.NoError(t, err)
	_, err = f.Write([]byte("e"))
	assert.ErrorIs(t, err, ErrInjected)
}

func TestFaultyFS_Unmatched(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule(".tmp", Fault{FailAfterBytes: 0})

	f, err := ffs.OpenFile(filepath.Join(t.TempDir(), "a.json"), createFlags, 0o644)
	require.NoError(t, err)
	_, err = f.Write([]byte("fine"))
	assert.NoError(t, err)
	assert.NoError(t, f.Close())
}

func TestFaultyFS_Operations(t *testing.T) {
	custom := errors.New("disk on fire")
	dir := t.TempDir()

	t.Run("open", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("x", Fault{FailOnOpen: true, Err: custom})
		_, err := ffs.OpenFile(filepath.Join(dir, "x"), createFlags, 0o644)
		assert.ErrorIs(t, err, custom)
	})

	t.Run("sync and close", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("y", Fault{FailAfterBytes: -1, FailOnSync: true, FailOnClose: true})
		f, err := ffs.OpenFile(filepath.Join(dir, "y"), createFlags, 0o644)
		require.NoError(t, err)
		assert.ErrorIs(t, f.Sync(), ErrInjected)
		assert.ErrorIs(t, f.Close(), ErrInjected)
	})

	t.Run("rename", func(t *testing.T) {
		ffs := NewFaultyFS(nil)
		ffs.AddRule("z", Fault{FailAfterBytes: -1, FailOnRename: true})
		src := filepath.Join(dir, "z")
		require.NoError(t, os.WriteFile(src, nil, 0o644))
		err := ffs.Rename(src, filepath.Join(dir, "w"))
		assert.ErrorIs(t, err, ErrInjected)
		require.NoError(t, ffs.Remove(src))
	})
}
