package filedict

import (
	"errors"
	"fmt"

	"github.com/filedict/filedict/internal/record"
)

// Set stores value under key, replacing any existing value. Set never
// leaves the file in a state where key's value is missing or
// half-written: a crash at any point during the write recovers to
// either the old value or the new one, never neither.
//
// See spec.md §4.5.2 for the shadow-write protocol this implements:
// the new record is written with its leading byte masked as a
// tombstone, flushed, and only then does a single-byte write flip it
// live.
func (d *Dict) Set(key string, value any) error {
	if d.closed {
		return ErrClosed
	}

	line, err := record.Encode(key, value)
	if err != nil {
		if errors.Is(err, record.ErrTooLarge) {
			return fmt.Errorf("%w: %w", ErrSizeLimitExceeded, err)
		}

		return err
	}

	need := len(line)

	off, slotSize := d.allocate(need)
	diff := slotSize - need

	shadow := make([]byte, len(line))
	copy(shadow, line)
	shadow[0] = record.TombstoneLeader

	if err := d.writeAt(off, shadow); err != nil {
		return err
	}

	padStart := off + int64(need)

	if diff > 1 {
		if err := d.writeAt(padStart, []byte{record.TombstoneLeader}); err != nil {
			return err
		}

		padStart++
	}

	if _, err := d.padContinuation(padStart); err != nil {
		return err
	}

	if err := d.flush(); err != nil {
		return err
	}

	// Commit: a single-byte write flips the shadow line live. This is
	// the only step that can't be torn by a crash.
	if err := d.writeAt(off, []byte{record.RecordLeader}); err != nil {
		return err
	}

	if err := d.flush(); err != nil {
		return err
	}

	if diff > 1 {
		d.free.Insert(diff, off+int64(need))
	}

	if oldOff, existed := d.keys.Get(key); existed {
		if err := d.freeLine(oldOff); err != nil {
			return err
		}
	}

	d.keys.Set(key, off)
	d.vals.Invalidate(key)
	d.growTo(off + int64(slotSize))

	d.log.Debug("filedict: set", "key", key, "offset", off, "size", need, "reused_slot", slotSize != need)

	return nil
}
