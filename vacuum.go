package filedict

import (
	"bytes"
	"os"

	natomic "github.com/natefinch/atomic"

	"github.com/filedict/filedict/internal/cache"
	"github.com/filedict/filedict/internal/keyindex"
	"github.com/filedict/filedict/internal/recovery"
)

// Vacuum rewrites the file with every tombstone dropped, compacting
// live records back-to-back after the header. It publishes the result
// with a temp-file-plus-rename so a crash mid-vacuum never corrupts the
// original file; the Dict only observes the rewrite once it's complete.
func (d *Dict) Vacuum() error {
	if d.closed {
		return ErrClosed
	}

	entries := d.sortedOffsets()

	var buf bytes.Buffer

	buf.WriteString(recovery.HeaderMagic)

	newOffsets := make(map[string]int64, len(entries))
	writeOff := recovery.HeaderSize

	for _, e := range entries {
		line, err := d.readLineAt(e.off)
		if err != nil {
			return err
		}

		buf.Write(line)
		newOffsets[e.key] = writeOff
		writeOff += int64(len(line))
	}

	if err := natomic.WriteFile(d.path, bytes.NewReader(buf.Bytes())); err != nil {
		return ioErr("vacuum", err)
	}

	if err := d.file.Close(); err != nil {
		return ioErr("close", err)
	}

	file, err := d.fsys.OpenFile(d.path, os.O_RDWR, 0o644)
	if err != nil {
		return ioErr("reopen", err)
	}

	d.file = file

	keys := keyindex.New()
	for k, off := range newOffsets {
		keys.Set(k, off)
	}

	d.keys = keys
	d.free.Clear()
	d.vals = cache.New(d.cfg.CacheSize)
	d.size = writeOff

	d.log.Info("filedict: vacuumed", "path", d.path, "keys", len(newOffsets), "size", d.size)

	return nil
}
