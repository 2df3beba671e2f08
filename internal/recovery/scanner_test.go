package recovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func scanBody(t *testing.T, body string) *Result {
	t.Helper()

	res, err := Scan(strings.NewReader(body), 5)
	require.NoError(t, err)

	return res
}

func TestScan_EmptyBody(t *testing.T) {
	res := scanBody(t, "")
	require.Equal(t, 0, res.Keys.Len())
	require.Equal(t, 0, res.FreeSlots.Len())
	require.Equal(t, HeaderSize, res.ValidSize)
}

func TestScan_LiveRecords(t *testing.T) {
	res := scanBody(t, `"a":1`+"\n"+`"b":2`+"\n")
	require.Equal(t, 2, res.Keys.Len())

	off, ok := res.Keys.Get("a")
	require.True(t, ok)
	require.Equal(t, HeaderSize, off)

	off, ok = res.Keys.Get("b")
	require.True(t, ok)
	require.Equal(t, HeaderSize+int64(len(`"a":1`+"\n")), off)
}

func TestScan_TombstonesTracked(t *testing.T) {
	tombstone := "#" + strings.Repeat(".", 10) + "\n"
	res := scanBody(t, tombstone)
	require.Equal(t, 1, res.FreeSlots.Len())

	slot, ok := res.FreeSlots.Find(len(tombstone))
	require.True(t, ok)
	require.Equal(t, HeaderSize, slot.Offset)
}

func TestScan_SmallTombstoneNotTracked(t *testing.T) {
	res := scanBody(t, "#\n")
	require.Equal(t, 0, res.FreeSlots.Len())
}

func TestScan_EmptyLinesIgnored(t *testing.T) {
	res := scanBody(t, "\n\n"+`"a":1`+"\n")
	require.Equal(t, 1, res.Keys.Len())

	off, _ := res.Keys.Get("a")
	require.Equal(t, HeaderSize+2, off)
}

func TestScan_MalformedLiveLineDowngradesToTombstone(t *testing.T) {
	res := scanBody(t, `"broken`+"\n")
	require.Equal(t, 0, res.Keys.Len())
	require.Equal(t, 1, res.FreeSlots.Len())
}

func TestScan_TornTrailingLineStopsBeforeIt(t *testing.T) {
	full := `"a":1` + "\n"
	torn := `#deadbeefcafe` // no trailing newline: simulates a crash mid shadow-write

	res := scanBody(t, full+torn)
	require.Equal(t, 1, res.Keys.Len())
	require.Equal(t, HeaderSize+int64(len(full)), res.ValidSize)
}

func TestScan_LastKeyWins(t *testing.T) {
	res := scanBody(t, `"a":1`+"\n"+`"a":2`+"\n")
	require.Equal(t, 1, res.Keys.Len())

	off, _ := res.Keys.Get("a")
	require.Equal(t, HeaderSize+int64(len(`"a":1`+"\n")), off)
}
