package runtime

import "sort"

// Collections are copy-on-write: every operation here returns a new value and
// leaves its receiver untouched.

// NewList wraps elements in a list. The slice is owned by the list afterwards.
func NewList(elements []Value) *ListValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ListValue{Elements: elements}
}

// Append returns a new list with v added at the end.
func (l *ListValue) Append(v Value) *ListValue {
	out := make([]Value, len(l.Elements), len(l.Elements)+1)
	copy(out, l.Elements)
	return NewList(append(out, v))
}

// Concat returns a new list holding l's elements followed by other's.
func (l *ListValue) Concat(other *ListValue) *ListValue {
	out := make([]Value, 0, len(l.Elements)+len(other.Elements))
	out = append(out, l.Elements...)
	return NewList(append(out, other.Elements...))
}

func errDictInSet() *ErrorValue {
	return NewError("Unable to include a Dictionary within a Set")
}

func errDictAsKey() *ErrorValue {
	return NewError("Unable to use a Dictionary as a Dictionary key")
}

// NewSet builds a set, dropping structural duplicates.
func NewSet(elements []Value) (*SetValue, *ErrorValue) {
	set := &SetValue{Elements: make([]Value, 0, len(elements))}
	for _, elem := range elements {
		if elem.Kind() == KindDict {
			return nil, errDictInSet()
		}
		set.Elements = insertSorted(set.Elements, elem)
	}
	return set, nil
}

// searchRange returns the run of positions whose elements compare equal to v.
func searchRange(n int, at func(int) Value, v Value) (int, int) {
	lo := sort.Search(n, func(i int) bool { return Compare(at(i), v) >= 0 })
	hi := sort.Search(n, func(i int) bool { return Compare(at(i), v) > 0 })
	return lo, hi
}

func indexInSorted(elements []Value, v Value) int {
	lo, hi := searchRange(len(elements), func(i int) Value { return elements[i] }, v)
	for i := lo; i < hi; i++ {
		if Equal(elements[i], v) {
			return i
		}
	}
	return -1
}

// insertSorted adds v in canonical position unless an equal element exists.
// elements is modified in place, so callers pass a private slice.
func insertSorted(elements []Value, v Value) []Value {
	if indexInSorted(elements, v) >= 0 {
		return elements
	}
	_, hi := searchRange(len(elements), func(i int) Value { return elements[i] }, v)
	elements = append(elements, nil)
	copy(elements[hi+1:], elements[hi:])
	elements[hi] = v
	return elements
}

// Contains reports whether an element structurally equal to v is present.
func (s *SetValue) Contains(v Value) bool {
	return indexInSorted(s.Elements, v) >= 0
}

// With returns a new set that also holds v.
func (s *SetValue) With(v Value) (*SetValue, *ErrorValue) {
	if v.Kind() == KindDict {
		return nil, errDictInSet()
	}
	out := make([]Value, len(s.Elements), len(s.Elements)+1)
	copy(out, s.Elements)
	return &SetValue{Elements: insertSorted(out, v)}, nil
}

// Union returns a new set holding the members of both sets.
func (s *SetValue) Union(other *SetValue) *SetValue {
	out := make([]Value, len(s.Elements), len(s.Elements)+len(other.Elements))
	copy(out, s.Elements)
	for _, elem := range other.Elements {
		out = insertSorted(out, elem)
	}
	return &SetValue{Elements: out}
}

// NewDict builds a dictionary; a later entry for an existing key wins.
func NewDict(entries []DictEntry) (*DictValue, *ErrorValue) {
	dict := &DictValue{Entries: make([]DictEntry, 0, len(entries))}
	for _, entry := range entries {
		if entry.Key.Kind() == KindDict {
			return nil, errDictAsKey()
		}
		dict.Entries = putEntry(dict.Entries, entry.Key, entry.Value)
	}
	return dict, nil
}

func (d *DictValue) index(key Value) (int, int) {
	at := func(i int) Value { return d.Entries[i].Key }
	lo, hi := searchRange(len(d.Entries), at, key)
	for i := lo; i < hi; i++ {
		if Equal(d.Entries[i].Key, key) {
			return i, hi
		}
	}
	return -1, hi
}

// putEntry sets key to value in canonical position, in place.
func putEntry(entries []DictEntry, key, value Value) []DictEntry {
	d := &DictValue{Entries: entries}
	idx, insertAt := d.index(key)
	if idx >= 0 {
		entries[idx].Value = value
		return entries
	}
	entries = append(entries, DictEntry{})
	copy(entries[insertAt+1:], entries[insertAt:])
	entries[insertAt] = DictEntry{Key: key, Value: value}
	return entries
}

// Lookup finds the value stored under a structurally equal key.
func (d *DictValue) Lookup(key Value) (Value, bool) {
	idx, _ := d.index(key)
	if idx < 0 {
		return nil, false
	}
	return d.Entries[idx].Value, true
}

// With returns a new dictionary with key bound to value.
func (d *DictValue) With(key, value Value) (*DictValue, *ErrorValue) {
	if key.Kind() == KindDict {
		return nil, errDictAsKey()
	}
	out := make([]DictEntry, len(d.Entries), len(d.Entries)+1)
	copy(out, d.Entries)
	return &DictValue{Entries: putEntry(out, key, value)}, nil
}

// Merge returns a new dictionary; entries from other win on key collisions.
func (d *DictValue) Merge(other *DictValue) *DictValue {
	out := make([]DictEntry, len(d.Entries), len(d.Entries)+len(other.Entries))
	copy(out, d.Entries)
	for _, entry := range other.Entries {
		out = putEntry(out, entry.Key, entry.Value)
	}
	return &DictValue{Entries: out}
}
