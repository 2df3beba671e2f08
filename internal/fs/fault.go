package fs

import (
	"io"
)

// FaultFile wraps a [File] and simulates a process dying mid-write: once
// the total number of bytes written through it reaches Budget, further
// writes are silently truncated to whatever fits in the budget and every
// later Write returns [io.ErrClosedPipe], mimicking a file descriptor that
// stopped accepting data when the process was killed.
//
// A Budget of zero (or negative) never cuts writes off.
//
// This is the tool crash-safety tests use to recreate the scenario in the
// mutation engine's shadow-write protocol: truncate the file at an
// arbitrary byte inside a Set's shadow-written region, then reopen and
// assert that recovery drops the torn, newline-less tail and leaves the
// previously committed records as they were.
type FaultFile struct {
	File
	Budget  int64
	written int64
}

// Write implements [io.Writer], honoring Budget.
func (f *FaultFile) Write(p []byte) (int, error) {
	if f.Budget <= 0 {
		return f.File.Write(p)
	}

	remaining := f.Budget - f.written
	if remaining <= 0 {
		return 0, io.ErrClosedPipe
	}

	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := f.File.Write(p)
	f.written += int64(n)

	return n, err
}

var _ File = (*FaultFile)(nil)
