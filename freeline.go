package filedict

import "github.com/filedict/filedict/internal/record"

// freeLine overwrites the record at off with a tombstone: it masks the
// leading byte, pads any UTF-8 continuation byte that would otherwise
// follow, flushes, then reports the line's total length to the
// Free-Space Index so the space can be reused by a later Set.
func (d *Dict) freeLine(off int64) error {
	if err := d.writeAt(off, []byte{record.TombstoneLeader}); err != nil {
		return err
	}

	if _, err := d.padContinuation(off + 1); err != nil {
		return err
	}

	if err := d.flush(); err != nil {
		return err
	}

	line, err := d.readLineAt(off)
	if err != nil {
		return err
	}

	d.free.Insert(len(line), off)

	return nil
}
