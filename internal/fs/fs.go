// Package fs abstracts the file operations the engine needs from the
// database file, so that crash-safety tests can intercept writes to it.
//
//   - [FS]: the operations the engine performs against the data file.
//   - [File]: an open file descriptor, satisfied by [os.File].
//   - [Real]: production implementation, a thin wrapper over [os].
//
// Production code always uses [Real]; tests wrap its files in a
// [FaultFile] that cuts writes off mid-write to exercise the recovery
// scanner.
package fs

import (
	"io"
	"os"
)

// File is an open file descriptor. [os.File] satisfies it directly, so
// [Real] just returns the values os functions hand back.
type File interface {
	io.ReadWriteCloser
	io.Seeker

	// Stat returns file metadata. See [os.File.Stat].
	Stat() (os.FileInfo, error)

	// Sync flushes file contents to stable storage. See [os.File.Sync].
	// The mutation engine calls this at every durability point described
	// by the shadow-write protocol.
	Sync() error

	// Truncate changes the file's size. See [os.File.Truncate]. Recovery
	// uses this to drop a torn write's dangling tail.
	Truncate(size int64) error
}

// FS is the subset of filesystem operations the engine relies on. All
// methods mirror their [os] counterparts; a test double can wrap a real
// file while still observing or truncating the bytes as they're written.
type FS interface {
	// Open opens path for reading. See [os.Open].
	Open(path string) (File, error)

	// OpenFile opens path with the given flags and permissions, creating
	// it first if O_CREATE is set. See [os.OpenFile].
	OpenFile(path string, flag int, perm os.FileMode) (File, error)

	// Create truncates path (or creates it) for writing. See [os.Create].
	Create(path string) (File, error)

	// Stat returns file metadata. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether path is present, without distinguishing
	// file from directory.
	Exists(path string) (bool, error)

	// Remove deletes path. See [os.Remove].
	Remove(path string) error

	// Rename moves oldpath to newpath, replacing newpath if it exists
	// and both are on the same filesystem. See [os.Rename].
	Rename(oldpath, newpath string) error
}

var _ File = (*os.File)(nil)
