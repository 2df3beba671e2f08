package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetMiss(t *testing.T) {
	c := New(4)
	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestInstallThenGet(t *testing.T) {
	c := New(4)
	c.Install("a", "1")

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestInvalidate(t *testing.T) {
	c := New(4)
	c.Install("a", "1")
	c.Invalidate("a")

	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestRotation_PromotesFromOldGen(t *testing.T) {
	c := New(2)
	c.Install("a", "1")
	c.Install("b", "2") // new_gen now has 2 entries, at limit -> rotates to old_gen

	// a and b now live in old_gen; new_gen is empty.
	c.Install("c", "3") // installs into the now-empty new_gen

	v, ok := c.Get("a")
	require.True(t, ok, "a should still be reachable via old_gen promotion")
	require.Equal(t, "1", v)

	// The Get above promoted a into new_gen, which then held {c, a} and
	// rotated, so a is found again through old_gen.
	v, ok = c.Get("a")
	require.True(t, ok)
	require.Equal(t, "1", v)
}

func TestResidenceBoundedByTwoRotations(t *testing.T) {
	c := New(1)
	c.Install("a", "1") // new_gen={a} hits limit -> rotate: old_gen={a}, new_gen={}
	c.Install("b", "2") // new_gen={b} hits limit -> rotate: old_gen={b}, new_gen={}
	// "a" was never touched between the two rotations and must now be gone.
	_, ok := c.Get("a")
	require.False(t, ok)
}

func TestClear(t *testing.T) {
	c := New(4)
	c.Install("a", "1")
	c.Clear()

	_, ok := c.Get("a")
	require.False(t, ok)
}
