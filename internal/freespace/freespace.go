// Package freespace implements the Free-Space Index: a sorted multiset of
// reclaimed tombstone slots, queried by best fit.
package freespace

import "sort"

// Slot is a reclaimed tombstone: size bytes of line (including its
// trailing newline) available for reuse starting at offset.
type Slot struct {
	Size   int
	Offset int64
}

// MinSize is the threshold at or below which a tombstone is not worth tracking;
// it is abandoned permanently. Exposed so callers can compare against the
// spec's fixed rule, but the Index itself is built with whatever minimum
// its owner configures (see [New]).
const MinSize = 5

// Index is a slice of [Slot] kept sorted by Size ascending, giving
// O(log n) best-fit lookup via binary search and O(n) insert/remove. A
// size-bucketed free list would give O(1) best fit, but complicates both
// vacuum (which must invalidate slots whose offsets moved) and recovery
// (which discovers slots in file order, not size order); the sorted-slice
// trade-off favors that simplicity over the constant factor.
type Index struct {
	min   int
	slots []Slot
}

// New returns an empty Index. min is the largest tombstone size (in
// bytes, including the trailing newline) not worth tracking; slots at
// or below min are silently dropped by Insert. Pass [MinSize] for the
// spec's default.
func New(min int) *Index {
	return &Index{min: min}
}

// Len reports the number of tracked free slots.
func (idx *Index) Len() int {
	return len(idx.slots)
}

// Insert records a reclaimed slot. No-op if size <= the configured
// minimum.
func (idx *Index) Insert(size int, offset int64) {
	if size <= idx.min {
		return
	}

	i := sort.Search(len(idx.slots), func(i int) bool { return idx.slots[i].Size >= size })
	idx.slots = append(idx.slots, Slot{})
	copy(idx.slots[i+1:], idx.slots[i:])
	idx.slots[i] = Slot{Size: size, Offset: offset}
}

// Find returns the tracked slot with the smallest size >= need, removing
// it from the index. Returns ok=false if no slot is large enough.
func (idx *Index) Find(need int) (slot Slot, ok bool) {
	i := sort.Search(len(idx.slots), func(i int) bool { return idx.slots[i].Size >= need })
	if i == len(idx.slots) {
		return Slot{}, false
	}

	slot = idx.slots[i]
	idx.slots = append(idx.slots[:i], idx.slots[i+1:]...)

	return slot, true
}

// Remove deletes the slot at offset, if tracked, by a linear scan.
func (idx *Index) Remove(offset int64) {
	for i, s := range idx.slots {
		if s.Offset == offset {
			idx.slots = append(idx.slots[:i], idx.slots[i+1:]...)
			return
		}
	}
}

// Clear empties the index, used by vacuum once the rewritten file has no
// tombstones left.
func (idx *Index) Clear() {
	idx.slots = nil
}

// Slots returns the tracked slots in ascending size order. The returned
// slice is owned by the caller; mutating it does not affect the index.
func (idx *Index) Slots() []Slot {
	out := make([]Slot, len(idx.slots))
	copy(out, idx.slots)

	return out
}
