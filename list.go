package filedict

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"strconv"
)

// List is an ordered-sequence view over a Dict, using synthetic integer
// keys that preserve insertion order: appends get a key one past the
// highest in use, and an Insert at the front (the one position Insert
// supports besides the end) gets a key one before the lowest. Reading by index sorts the
// live keys numerically rather than tracking positions directly, so
// Delete and Pop never require renumbering anything.
//
// A List assumes exclusive ownership of its Dict's key namespace; don't
// mix List operations with direct Dict.Set calls using non-integer keys.
type List struct {
	dict *Dict
}

// NewList adapts dict as a List.
func NewList(dict *Dict) *List {
	return &List{dict: dict}
}

// Len returns the number of elements.
func (l *List) Len() int {
	return l.dict.Len()
}

// orderedKeys returns every live synthetic key, parsed and sorted
// numerically ascending: index i of the list is orderedKeys()[i].
func (l *List) orderedKeys() []int64 {
	raw := l.dict.keys.Keys()

	keys := make([]int64, 0, len(raw))

	for _, k := range raw {
		n, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}

		keys = append(keys, n)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

func indexErr(i int) error {
	return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
}

// Append adds v to the end of the list.
func (l *List) Append(v any) error {
	keys := l.orderedKeys()

	var next int64
	if len(keys) > 0 {
		next = keys[len(keys)-1] + 1
	}

	return l.dict.Set(strconv.FormatInt(next, 10), v)
}

// Extend appends every element of vs, in order.
func (l *List) Extend(vs []any) error {
	for _, v := range vs {
		if err := l.Append(v); err != nil {
			return err
		}
	}

	return nil
}

// Insert places v at index i. Only i == 0 and i == Len() are supported;
// any other index fails with ErrUnsupported, since an interior insert
// would require renumbering every higher index.
func (l *List) Insert(i int, v any) error {
	n := l.Len()

	if i == n {
		return l.Append(v)
	}

	if i != 0 {
		return fmt.Errorf("%w: insert at index %d of %d", ErrUnsupported, i, n)
	}

	keys := l.orderedKeys()

	prev := int64(0)
	if len(keys) > 0 {
		prev = keys[0] - 1
	}

	return l.dict.Set(strconv.FormatInt(prev, 10), v)
}

// Get returns the element at index i.
func (l *List) Get(i int) (any, error) {
	keys := l.orderedKeys()
	if i < 0 || i >= len(keys) {
		return nil, indexErr(i)
	}

	return l.dict.Get(strconv.FormatInt(keys[i], 10))
}

// Set replaces the element at index i.
func (l *List) Set(i int, v any) error {
	keys := l.orderedKeys()
	if i < 0 || i >= len(keys) {
		return indexErr(i)
	}

	return l.dict.Set(strconv.FormatInt(keys[i], 10), v)
}

// DeleteAt removes the element at index i.
func (l *List) DeleteAt(i int) error {
	keys := l.orderedKeys()
	if i < 0 || i >= len(keys) {
		return indexErr(i)
	}

	return l.dict.Delete(strconv.FormatInt(keys[i], 10))
}

// Pop removes and returns the element at index i, defaulting to the
// last element if i is omitted.
func (l *List) Pop(i ...int) (any, error) {
	keys := l.orderedKeys()

	idx := len(keys) - 1
	if len(i) > 0 {
		idx = i[0]
	}

	if idx < 0 || idx >= len(keys) {
		return nil, indexErr(idx)
	}

	key := strconv.FormatInt(keys[idx], 10)

	v, err := l.dict.Get(key)
	if err != nil {
		return nil, err
	}

	if err := l.dict.Delete(key); err != nil {
		return nil, err
	}

	return v, nil
}

// Remove deletes the first element equal to v, reporting whether one
// was found.
func (l *List) Remove(v any) (bool, error) {
	for _, k := range l.orderedKeys() {
		key := strconv.FormatInt(k, 10)

		cur, err := l.dict.Get(key)
		if err != nil {
			return false, err
		}

		if reflect.DeepEqual(cur, v) {
			return true, l.dict.Delete(key)
		}
	}

	return false, nil
}

// Contains reports whether v is present.
func (l *List) Contains(v any) (bool, error) {
	for _, k := range l.orderedKeys() {
		cur, err := l.dict.Get(strconv.FormatInt(k, 10))
		if err != nil {
			return false, err
		}

		if reflect.DeepEqual(cur, v) {
			return true, nil
		}
	}

	return false, nil
}

// Slice returns the elements in [start, end).
func (l *List) Slice(start, end int) ([]any, error) {
	keys := l.orderedKeys()
	if start < 0 || end > len(keys) || start > end {
		return nil, fmt.Errorf("%w: slice [%d:%d] of %d", ErrIndexOutOfRange, start, end, len(keys))
	}

	out := make([]any, 0, end-start)

	for _, k := range keys[start:end] {
		v, err := l.dict.Get(strconv.FormatInt(k, 10))
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

// Clear removes every element.
func (l *List) Clear() error {
	return l.dict.Clear()
}

// Values returns an iterator over elements in index order.
func (l *List) Values() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, k := range l.orderedKeys() {
			v, err := l.dict.Get(strconv.FormatInt(k, 10))
			if err != nil {
				return
			}

			if !yield(v) {
				return
			}
		}
	}
}
