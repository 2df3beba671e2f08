// Package filedict implements an embedded, append-mostly, single-file
// persistent key-value store. Records are JSON-encoded lines; mutations
// go through a crash-safe shadow-write protocol so an interrupted write
// is always recoverable as either the old or the new value, never a
// half-written one.
package filedict

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/filedict/filedict/internal/cache"
	"github.com/filedict/filedict/internal/config"
	"github.com/filedict/filedict/internal/freespace"
	"github.com/filedict/filedict/internal/fs"
	"github.com/filedict/filedict/internal/keyindex"
	"github.com/filedict/filedict/internal/recovery"
)

// Durability controls when Set and Delete call Sync on the underlying
// file. See Config.
const (
	DurabilitySync  = config.DurabilitySync
	DurabilityAsync = config.DurabilityAsync
)

// Config holds the tunables accepted by OpenWithConfig. The zero value
// is not valid; use DefaultConfig.
type Config struct {
	// Durability is DurabilitySync (default) or DurabilityAsync. Sync
	// calls file.Sync() at every durability point in the shadow-write
	// protocol; async skips them, trading crash-safety for throughput.
	Durability string

	// CacheSize is the generation limit L of the Two-Generation Cache.
	CacheSize int

	// FreeSlotMin is the tombstone size at or below which a slot is not
	// tracked in the Free-Space Index; such slots are abandoned as dead
	// space.
	FreeSlotMin int

	// Logger receives Debug/Info/Warn records describing engine
	// activity. Defaults to slog.Default() when nil.
	Logger *slog.Logger
}

// DefaultConfig returns sync durability, a 256-entry cache, and a
// 5-byte free-slot threshold.
func DefaultConfig() Config {
	d := config.Default()

	return Config{
		Durability:  d.Durability,
		CacheSize:   d.CacheSize,
		FreeSlotMin: d.FreeSlotMin,
	}
}

// Dict is an open filedict file. The zero value is not usable; construct
// one with Open or OpenWithConfig. Dict is not safe for concurrent use.
type Dict struct {
	fsys fs.FS
	path string
	file fs.File
	log  *slog.Logger

	cfg  Config
	keys *keyindex.Index
	free *freespace.Index
	vals *cache.Cache

	size   int64
	closed bool
}

// Open opens path, creating it with a fresh header if it doesn't exist,
// using DefaultConfig.
func Open(path string) (*Dict, error) {
	return OpenWithConfig(path, nil)
}

// OpenWithConfig opens path like Open, using cfg in place of the
// defaults. A nil cfg is equivalent to calling Open.
func OpenWithConfig(path string, cfg *Config) (*Dict, error) {
	return open(fs.NewReal(), path, cfg)
}

func open(fsys fs.FS, path string, cfg *Config) (*Dict, error) {
	resolved := DefaultConfig()
	if cfg != nil {
		resolved = *cfg
	}

	if resolved.Logger == nil {
		resolved.Logger = slog.Default()
	}

	log := resolved.Logger

	existed, err := fsys.Exists(path)
	if err != nil {
		return nil, ioErr("stat", err)
	}

	file, err := fsys.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, ioErr("open", err)
	}

	d := &Dict{
		fsys: fsys,
		path: path,
		file: file,
		log:  log,
		cfg:  resolved,
		vals: cache.New(resolved.CacheSize),
	}

	if !existed {
		log.Info("filedict: creating new file", "path", path)

		if err := d.initEmpty(); err != nil {
			file.Close()
			return nil, err
		}

		return d, nil
	}

	if err := d.recover(); err != nil {
		file.Close()
		return nil, err
	}

	log.Info("filedict: opened", "path", path, "keys", d.keys.Len(), "size", d.size)

	return d, nil
}

func (d *Dict) initEmpty() error {
	if err := d.writeAt(0, []byte(recovery.HeaderMagic)); err != nil {
		return err
	}

	if err := d.flush(); err != nil {
		return err
	}

	d.keys = keyindex.New()
	d.free = freespace.New(d.cfg.FreeSlotMin)
	d.size = recovery.HeaderSize

	return nil
}

func (d *Dict) recover() error {
	header := make([]byte, recovery.HeaderSize)

	if _, err := d.file.Seek(0, io.SeekStart); err != nil {
		return ioErr("seek", err)
	}

	n, err := io.ReadFull(d.file, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return ioErr("read header", err)
	}

	if int64(n) < recovery.HeaderSize || string(header) != recovery.HeaderMagic {
		return corruptRecordErr(0, ErrCorruptRecord)
	}

	stat, err := d.file.Stat()
	if err != nil {
		return ioErr("stat", err)
	}

	if _, err := d.file.Seek(recovery.HeaderSize, io.SeekStart); err != nil {
		return ioErr("seek", err)
	}

	result, err := recovery.Scan(d.file, d.cfg.FreeSlotMin)
	if err != nil {
		return ioErr("scan", err)
	}

	if result.ValidSize < stat.Size() {
		d.log.Warn("filedict: truncating torn trailing write",
			"path", d.path, "valid_size", result.ValidSize, "file_size", stat.Size())

		if err := d.file.Truncate(result.ValidSize); err != nil {
			return ioErr("truncate", err)
		}
	}

	d.keys = result.Keys
	d.free = result.FreeSlots
	d.size = result.ValidSize

	return nil
}

// Close releases the underlying file descriptor. After Close, Get, Set,
// Delete, Clear and Vacuum return ErrClosed; a second Close returns nil.
func (d *Dict) Close() error {
	if d.closed {
		return nil
	}

	d.closed = true

	if err := d.file.Close(); err != nil {
		return ioErr("close", err)
	}

	return nil
}

// Flush calls Sync on the underlying file, regardless of the configured
// durability mode.
func (d *Dict) Flush() error {
	if err := d.file.Sync(); err != nil {
		return ioErr("sync", err)
	}

	return nil
}

// Len returns the number of live keys.
func (d *Dict) Len() int {
	return d.keys.Len()
}

// Contains reports whether key has a live value.
func (d *Dict) Contains(key string) bool {
	return d.keys.Contains(key)
}

// Size returns the current file size in bytes.
func (d *Dict) Size() int64 {
	return d.size
}

// FreeSlots returns the number of tombstoned slots tracked for reuse.
func (d *Dict) FreeSlots() int {
	return d.free.Len()
}

func (d *Dict) flush() error {
	if d.cfg.Durability == DurabilityAsync {
		return nil
	}

	return d.Flush()
}

func (d *Dict) writeAt(pos int64, data []byte) error {
	if _, err := d.file.Seek(pos, io.SeekStart); err != nil {
		return ioErr("seek", err)
	}

	if _, err := d.file.Write(data); err != nil {
		return ioErr("write", err)
	}

	return nil
}

func (d *Dict) readByteAt(pos int64) (byte, error) {
	if _, err := d.file.Seek(pos, io.SeekStart); err != nil {
		return 0, ioErr("seek", err)
	}

	var buf [1]byte

	n, err := d.file.Read(buf[:])
	if n == 1 {
		return buf[0], nil
	}

	if err == nil {
		err = io.EOF
	}

	return 0, err
}

// readLineAt reads the line starting at pos, including its trailing
// newline. A torn trailing line (no newline before EOF) is returned
// without error; callers that require a complete line check for one.
func (d *Dict) readLineAt(pos int64) ([]byte, error) {
	if _, err := d.file.Seek(pos, io.SeekStart); err != nil {
		return nil, ioErr("seek", err)
	}

	line, err := bufio.NewReader(d.file).ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, ioErr("read", err)
	}

	return line, nil
}

// padContinuation overwrites every UTF-8 continuation byte (10xxxxxx)
// starting at pos with '.', stopping at the first byte that isn't one.
// Used after a shadow-write boundary to guarantee the byte immediately
// following it never starts mid-codepoint.
func (d *Dict) padContinuation(pos int64) (int, error) {
	padded := 0

	for {
		b, err := d.readByteAt(pos)
		if err == io.EOF {
			return padded, nil
		}

		if err != nil {
			return padded, err
		}

		if b&0xC0 != 0x80 {
			return padded, nil
		}

		if err := d.writeAt(pos, []byte{'.'}); err != nil {
			return padded, err
		}

		pos++
		padded++
	}
}

// allocate returns where a record of need bytes should be written: a
// reused tombstone slot if one is large enough, otherwise the current
// end of file. slotSize is >= need; the caller writes the residue.
func (d *Dict) allocate(need int) (off int64, slotSize int) {
	if slot, ok := d.free.Find(need); ok {
		d.log.Debug("filedict: reusing free slot", "offset", slot.Offset, "slot_size", slot.Size, "need", need)
		return slot.Offset, slot.Size
	}

	return d.size, need
}

func (d *Dict) growTo(end int64) {
	if end > d.size {
		d.size = end
	}
}

// sortedOffsets returns every live key paired with its offset, sorted
// by offset ascending, the file order of live records.
func (d *Dict) sortedOffsets() []keyOffset {
	var out []keyOffset

	d.keys.Range(func(key string, off int64) bool {
		out = append(out, keyOffset{key: key, off: off})
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].off < out[j].off })

	return out
}

type keyOffset struct {
	key string
	off int64
}
