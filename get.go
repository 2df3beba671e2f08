package filedict

import (
	"encoding/json"
	"errors"

	"github.com/filedict/filedict/internal/record"
)

// Get returns the value stored under key, decoded into a Go value
// (map[string]any, []any, string, float64, bool, or nil — the same
// shape encoding/json produces for any). Returns ErrKeyNotFound if key
// has no live value.
func (d *Dict) Get(key string) (any, error) {
	if d.closed {
		return nil, ErrClosed
	}

	if v, ok := d.vals.Get(key); ok {
		d.log.Debug("filedict: cache hit", "key", key)
		return v, nil
	}

	off, ok := d.keys.Get(key)
	if !ok {
		return nil, keyNotFoundErr(key)
	}

	v, _, err := d.readRecordAt(key, off)
	if err != nil {
		return nil, err
	}

	d.vals.Install(key, v)

	return v, nil
}

// readRecordAt reads and decodes the record at off, which must belong
// to key. Returns the decoded value and its raw JSON form.
func (d *Dict) readRecordAt(key string, off int64) (any, json.RawMessage, error) {
	line, err := d.readLineAt(off)
	if err != nil {
		return nil, nil, err
	}

	decodedKey, raw, err := record.Decode(line)
	if err != nil {
		return nil, nil, corruptRecordErr(off, err)
	}

	if decodedKey != key {
		return nil, nil, corruptRecordErr(off, ErrCorruptRecord)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, nil, corruptRecordErr(off, err)
	}

	return v, raw, nil
}

// GetOr returns the value for key, or fallback if key has no live
// value. Any other error (corruption, I/O) is still returned.
func (d *Dict) GetOr(key string, fallback any) (any, error) {
	v, err := d.Get(key)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, ErrKeyNotFound) {
		return fallback, nil
	}

	return nil, err
}
