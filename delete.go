package filedict

// Delete removes key, returning ErrKeyNotFound if it has no live value.
// The record is overwritten with a tombstone and its space returned to
// the Free-Space Index rather than the file shrinking.
func (d *Dict) Delete(key string) error {
	if d.closed {
		return ErrClosed
	}

	off, ok := d.keys.Get(key)
	if !ok {
		return keyNotFoundErr(key)
	}

	if err := d.freeLine(off); err != nil {
		return err
	}

	d.keys.Delete(key)
	d.vals.Invalidate(key)

	d.log.Debug("filedict: delete", "key", key, "offset", off)

	return nil
}

// Pop removes key and returns its value. If key is absent and a
// fallback is given, Pop returns it instead of ErrKeyNotFound.
func (d *Dict) Pop(key string, fallback ...any) (any, error) {
	v, err := d.Get(key)
	if err != nil {
		if len(fallback) > 0 {
			return fallback[0], nil
		}

		return nil, err
	}

	if err := d.Delete(key); err != nil {
		return nil, err
	}

	return v, nil
}
