// Package recovery implements the Recovery Scanner: a single linear pass
// over the file at open time that reconstructs the Key Index and the
// Free-Space Index.
package recovery

import (
	"bufio"
	"io"

	"github.com/filedict/filedict/internal/freespace"
	"github.com/filedict/filedict/internal/keyindex"
	"github.com/filedict/filedict/internal/record"
)

// HeaderMagic is the fixed first line of every filedict file.
const HeaderMagic = "# FILE-DICT v1\n"

// HeaderSize is len(HeaderMagic), the offset at which records begin.
const HeaderSize = int64(len(HeaderMagic))

// Result is the outcome of scanning a file from just after its header.
type Result struct {
	Keys      *keyindex.Index
	FreeSlots *freespace.Index

	// ValidSize is the number of bytes, counted from the start of the
	// file, that form a well-formed sequence of the header plus live
	// records, tombstones, and ignorable empty lines. If the file ends
	// mid-line (no trailing newline — the signature of a process dying
	// during a Set's shadow write, see spec.md §4.5.2), everything past
	// ValidSize is that torn write's dangling tail and the caller should
	// truncate the file down to ValidSize before treating it as open.
	ValidSize int64
}

// Scan reads r, which must be positioned at HeaderSize (i.e. the caller
// has already consumed and verified the magic header), and reconstructs
// the Key Index and Free-Space Index. minFreeSlot is the tombstone size
// at or below which a slot is not tracked, forwarded to [freespace.New].
func Scan(r io.Reader, minFreeSlot int) (*Result, error) {
	keys := keyindex.New()
	free := freespace.New(minFreeSlot)

	br := bufio.NewReader(r)
	offset := HeaderSize
	validSize := HeaderSize

	for {
		line, err := br.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		complete := err == nil

		if len(line) == 0 {
			break
		}

		if !complete {
			// Torn trailing write: stop here, don't count these bytes.
			break
		}

		switch {
		case len(line) == 1:
			// An ignorable blank line; never advance either index.
		case line[0] == record.TombstoneLeader:
			free.Insert(len(line), offset)
		default:
			key, _, decodeErr := record.Decode(line)
			if decodeErr != nil {
				// Degraded recovery: a line that looks live but fails to
				// decode is treated as a tombstone rather than surfaced.
				free.Insert(len(line), offset)
			} else {
				keys.Set(key, offset)
			}
		}

		offset += int64(len(line))
		validSize = offset
	}

	return &Result{Keys: keys, FreeSlots: free, ValidSize: validSize}, nil
}
