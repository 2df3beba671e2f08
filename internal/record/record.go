// Package record implements the on-disk line format used by filedict: a
// single `<json-key>:<json-value>\n` record, and the tombstone lines that
// replace deleted or reclaimed records.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MaxKeySize and MaxValueSize bound the encoded (JSON) size of a key and
// value respectively, per spec.
const (
	MaxKeySize   = 1 << 16
	MaxValueSize = 1 << 32
)

// TombstoneLeader and RecordLeader are the first byte of a tombstone line
// and a live record line, respectively.
const (
	TombstoneLeader = '#'
	RecordLeader    = '"'
	Newline         = '\n'
)

// ErrCorrupt is returned when a line believed to hold a live record
// cannot be decoded as a well-formed single-entry JSON object.
var ErrCorrupt = errors.New("record: corrupt record")

// ErrTooLarge is returned by Encode when the key or value exceeds the
// size limits the format allows.
var ErrTooLarge = errors.New("record: key or value exceeds size limit")

// Encode serializes key and value to a single line:
// `<json-key>:<json-value>\n`. Both are encoded with HTML-escaping
// disabled so that non-ASCII bytes and characters like '<', '>', '&'
// appear literally rather than as \uXXXX escapes.
func Encode(key string, value any) ([]byte, error) {
	keyJSON, err := encodeJSON(key)
	if err != nil {
		return nil, fmt.Errorf("record: encoding key: %w", err)
	}

	if len(keyJSON) > MaxKeySize {
		return nil, fmt.Errorf("%w: key is %d bytes", ErrTooLarge, len(keyJSON))
	}

	valueJSON, err := encodeJSON(value)
	if err != nil {
		return nil, fmt.Errorf("record: encoding value: %w", err)
	}

	if uint64(len(valueJSON)) > MaxValueSize {
		return nil, fmt.Errorf("%w: value is %d bytes", ErrTooLarge, len(valueJSON))
	}

	line := make([]byte, 0, len(keyJSON)+1+len(valueJSON)+1)
	line = append(line, keyJSON...)
	line = append(line, ':')
	line = append(line, valueJSON...)
	line = append(line, Newline)

	return line, nil
}

// encodeJSON marshals v the way [json.Encoder] does but without the
// HTML-escaping [json.Marshal] applies, and without the trailing newline
// [json.Encoder] appends.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte{Newline}), nil
}

// Decode parses a live record line (including its trailing newline, which
// is trimmed) and returns the key and the raw, still-encoded value.
// Returns [ErrCorrupt] if the line is not a well-formed single-entry JSON
// object of the form `"key":value`.
func Decode(line []byte) (key string, value json.RawMessage, err error) {
	line = bytes.TrimSuffix(line, []byte{Newline})

	if len(line) == 0 || line[0] != RecordLeader {
		return "", nil, fmt.Errorf("%w: does not start with %q", ErrCorrupt, string(RecordLeader))
	}

	wrapped := make([]byte, 0, len(line)+2)
	wrapped = append(wrapped, '{')
	wrapped = append(wrapped, line...)
	wrapped = append(wrapped, '}')

	var entry map[string]json.RawMessage

	dec := json.NewDecoder(bytes.NewReader(wrapped))
	dec.UseNumber()

	if err := dec.Decode(&entry); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if len(entry) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one entry, got %d", ErrCorrupt, len(entry))
	}

	for k, v := range entry {
		return k, v, nil
	}

	panic("unreachable")
}
