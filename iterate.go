package filedict

import (
	"iter"

	"github.com/filedict/filedict/internal/recovery"
)

// Items returns an iterator over live key/value pairs in file order
// (ascending byte offset; since a Set may reuse an earlier freed slot,
// this is neither insertion order nor the order of writes). Keys
// deleted or overwritten after Items is called are skipped rather than
// yielded stale; the iterator re-checks the Key Index before each read.
func (d *Dict) Items() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, ko := range d.sortedOffsets() {
			off, ok := d.keys.Get(ko.key)
			if !ok || off != ko.off {
				continue
			}

			v, err := d.Get(ko.key)
			if err != nil {
				continue
			}

			if !yield(ko.key, v) {
				return
			}
		}
	}
}

// Keys returns an iterator over live keys in file order.
func (d *Dict) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range d.Items() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over live values in file order.
func (d *Dict) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range d.Items() {
			if !yield(v) {
				return
			}
		}
	}
}

// Clear removes every key, truncating the file back to its header.
func (d *Dict) Clear() error {
	if d.closed {
		return ErrClosed
	}

	if err := d.file.Truncate(recovery.HeaderSize); err != nil {
		return ioErr("truncate", err)
	}

	if err := d.flush(); err != nil {
		return err
	}

	d.keys.Clear()
	d.free.Clear()
	d.vals.Clear()
	d.size = recovery.HeaderSize

	d.log.Info("filedict: cleared", "path", d.path)

	return nil
}

// Update copies every entry of src into d via Set.
func (d *Dict) Update(src map[string]any) error {
	for k, v := range src {
		if err := d.Set(k, v); err != nil {
			return err
		}
	}

	return nil
}

// SetDefault returns the current value for key, setting it to fallback
// first if key has no live value.
func (d *Dict) SetDefault(key string, fallback any) (any, error) {
	if v, err := d.Get(key); err == nil {
		return v, nil
	}

	if err := d.Set(key, fallback); err != nil {
		return nil, err
	}

	return fallback, nil
}
