package filedict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filedict/filedict/internal/fs"
)

// budgetFS wraps a real filesystem, handing out fs.FaultFile-wrapped
// handles that stop accepting writes once budget bytes have been
// written through them, simulating a process killed mid-write.
type budgetFS struct {
	fs.FS
	budget int64
}

func (b *budgetFS) OpenFile(path string, flag int, perm os.FileMode) (fs.File, error) {
	f, err := b.FS.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}

	return &fs.FaultFile{File: f, Budget: b.budget}, nil
}

func TestSet_TornWrite_RecoversToPreviousValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.fdict")
	real := fs.NewReal()

	d, err := open(real, path, nil)
	require.NoError(t, err)
	require.NoError(t, d.Set("a", "original"))
	require.NoError(t, d.Close())

	stat, err := os.Stat(path)
	require.NoError(t, err)

	// FaultFile counts only bytes written through the reopened handle, so
	// this budget (30 bytes of file plus 6) lets through the shadow
	// write's leading '#' and part of the 55-byte "b" line, but not the
	// full line: the write is torn before it ever reaches a trailing
	// newline, and the commit byte that follows is refused.
	budget := stat.Size() + 6

	faulty := &budgetFS{FS: real, budget: budget}

	d2, err := open(faulty, path, nil)
	require.NoError(t, err)

	err = d2.Set("b", "a value long enough to run past the fault budget")
	require.Error(t, err)
	require.NoError(t, d2.file.Close())

	d3, err := open(real, path, nil)
	require.NoError(t, err)

	defer func() { _ = d3.Close() }()

	v, err := d3.Get("a")
	require.NoError(t, err)
	require.Equal(t, "original", v)

	require.False(t, d3.Contains("b"))
}

func TestSet_DiffGreaterThanOne_RegistersResidualFreeSlot(t *testing.T) {
	d := openTest(t)

	require.NoError(t, d.Set("k", "0123456789012345678901234567890123456789"))
	require.NoError(t, d.Delete("k"))
	require.Equal(t, 1, d.free.Len())

	require.NoError(t, d.Set("k2", "short"))

	// The short value leaves a large residual tombstone behind in the
	// same slot, which must still be tracked.
	require.Equal(t, 1, d.free.Len())

	v, err := d.Get("k2")
	require.NoError(t, err)
	require.Equal(t, "short", v)
}
