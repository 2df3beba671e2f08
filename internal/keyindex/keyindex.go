// Package keyindex implements the Key Index: an in-memory mapping of key
// to the byte offset of its live record.
package keyindex

// Index maps key to the offset of its live record. Iteration order is
// unspecified, matching spec.
type Index struct {
	offsets map[string]int64
}

// New returns an empty Index.
func New() *Index {
	return &Index{offsets: make(map[string]int64)}
}

// Get returns the offset for key and whether it was present.
func (idx *Index) Get(key string) (int64, bool) {
	off, ok := idx.offsets[key]
	return off, ok
}

// Set records key at offset, overwriting any previous offset.
func (idx *Index) Set(key string, offset int64) {
	idx.offsets[key] = offset
}

// Delete removes key, if present.
func (idx *Index) Delete(key string) {
	delete(idx.offsets, key)
}

// Contains reports whether key is present.
func (idx *Index) Contains(key string) bool {
	_, ok := idx.offsets[key]
	return ok
}

// Len returns the number of keys tracked.
func (idx *Index) Len() int {
	return len(idx.offsets)
}

// Keys returns all keys, in unspecified order.
func (idx *Index) Keys() []string {
	keys := make([]string, 0, len(idx.offsets))
	for k := range idx.offsets {
		keys = append(keys, k)
	}

	return keys
}

// Clear empties the index.
func (idx *Index) Clear() {
	idx.offsets = make(map[string]int64)
}

// Range calls fn for every (key, offset) pair, in unspecified order.
// Stops early if fn returns false.
func (idx *Index) Range(fn func(key string, offset int64) bool) {
	for k, off := range idx.offsets {
		if !fn(k, off) {
			return
		}
	}
}
