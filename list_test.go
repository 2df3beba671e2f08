package filedict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newListTest(t *testing.T) *List {
	t.Helper()
	return NewList(openTest(t))
}

func TestList_AppendAndGet(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))
	require.NoError(t, l.Append("c"))

	require.Equal(t, 3, l.Len())

	v, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "a", v)

	v, err = l.Get(2)
	require.NoError(t, err)
	require.Equal(t, "c", v)
}

func TestList_Extend(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Extend([]any{"x", "y", "z"}))
	require.Equal(t, 3, l.Len())

	v, err := l.Get(1)
	require.NoError(t, err)
	require.Equal(t, "y", v)
}

func TestList_InsertAtEnd(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Insert(1, "b"))

	v, err := l.Get(1)
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestList_InsertAtFront(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("b"))
	require.NoError(t, l.Append("c"))
	require.NoError(t, l.Insert(0, "a"))

	require.Equal(t, 3, l.Len())

	v, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "a", v)

	v, err = l.Get(2)
	require.NoError(t, err)
	require.Equal(t, "c", v)
}

func TestList_InsertMiddleUnsupported(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("c"))

	err := l.Insert(1, "b")
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestList_Set(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Set(0, "z"))

	v, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "z", v)
}

func TestList_DeleteAt_ShiftsSubsequentIndices(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))
	require.NoError(t, l.Append("c"))

	require.NoError(t, l.DeleteAt(0))
	require.Equal(t, 2, l.Len())

	v, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestList_Pop_DefaultsToLast(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))

	v, err := l.Pop()
	require.NoError(t, err)
	require.Equal(t, "b", v)
	require.Equal(t, 1, l.Len())
}

func TestList_PopAtIndex(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))
	require.NoError(t, l.Append("c"))

	v, err := l.Pop(0)
	require.NoError(t, err)
	require.Equal(t, "a", v)
	require.Equal(t, 2, l.Len())
}

func TestList_RemoveAndContains(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Append("a"))
	require.NoError(t, l.Append("b"))

	ok, err := l.Contains("b")
	require.NoError(t, err)
	require.True(t, ok)

	removed, err := l.Remove("b")
	require.NoError(t, err)
	require.True(t, removed)

	ok, err = l.Contains("b")
	require.NoError(t, err)
	require.False(t, ok)

	removed, err = l.Remove("missing")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestList_Slice(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Extend([]any{"a", "b", "c", "d"}))

	got, err := l.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, []any{"b", "c"}, got)
}

func TestList_Values_InIndexOrder(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Extend([]any{"a", "b", "c"}))

	var got []any
	for v := range l.Values() {
		got = append(got, v)
	}

	require.Equal(t, []any{"a", "b", "c"}, got)
}

func TestList_Clear(t *testing.T) {
	l := newListTest(t)

	require.NoError(t, l.Extend([]any{"a", "b"}))
	require.NoError(t, l.Clear())
	require.Equal(t, 0, l.Len())
}

func TestList_GetOutOfRange(t *testing.T) {
	l := newListTest(t)

	_, err := l.Get(0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}
