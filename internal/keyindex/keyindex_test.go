package keyindex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	idx := New()
	idx.Set("a", 10)
	require.True(t, idx.Contains("a"))

	off, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, int64(10), off)

	idx.Delete("a")
	require.False(t, idx.Contains("a"))
	require.Equal(t, 0, idx.Len())
}

func TestSet_Overwrites(t *testing.T) {
	idx := New()
	idx.Set("a", 1)
	idx.Set("a", 2)

	off, _ := idx.Get("a")
	require.Equal(t, int64(2), off)
	require.Equal(t, 1, idx.Len())
}

func TestClear(t *testing.T) {
	idx := New()
	idx.Set("a", 1)
	idx.Set("b", 2)
	idx.Clear()
	require.Equal(t, 0, idx.Len())
}
