package common

import "sort"

// OrderedMap is a sorted, map-like entry array: an ordered array of
// (key, value) pairs maintained in ascending order by a caller-supplied
// comparator. Spec.md §3/§9 describes this as "sort-on-insert" — after
// every insert the backing array is re-sorted, and CBOR output preserves
// iteration order, which equals sort order (spec.md §5 ordering
// guarantees). Deferred sorting via Freeze is available for callers that
// build the container in bulk (spec.md §9 "sort-on-insert → sort-on-freeze").
type OrderedMap[K any, V any] struct {
	cmp     func(a, b K) int
	entries []orderedEntry[K, V]
	dirty   bool
}

type orderedEntry[K any, V any] struct {
	Key   K
	Value V
}

// NewOrderedMap constructs an empty ordered map using cmp to order keys.
func NewOrderedMap[K any, V any](cmp func(a, b K) int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{cmp: cmp}
}

// Insert adds or replaces the value for key, then re-sorts the container
// (invariant 6: sorted containers remain sorted after every mutation).
func (m *OrderedMap[K, V]) Insert(key K, value V) {
	for i := range m.entries {
		if m.cmp(m.entries[i].Key, key) == 0 {
			m.entries[i].Value = value
			return
		}
	}
	m.entries = append(m.entries, orderedEntry[K, V]{Key: key, Value: value})
	m.sort()
}

// InsertDeferred adds key/value without re-sorting; callers performing a
// bulk build should call Freeze once before reading or serializing.
func (m *OrderedMap[K, V]) InsertDeferred(key K, value V) {
	m.entries = append(m.entries, orderedEntry[K, V]{Key: key, Value: value})
	m.dirty = true
}

// Freeze sorts the container if a deferred insert left it dirty. Safe to
// call unconditionally before iteration or serialization.
func (m *OrderedMap[K, V]) Freeze() {
	if m.dirty {
		m.sort()
		m.dirty = false
	}
}

func (m *OrderedMap[K, V]) sort() {
	sort.SliceStable(m.entries, func(i, j int) bool {
		return m.cmp(m.entries[i].Key, m.entries[j].Key) < 0
	})
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	m.Freeze()
	for _, e := range m.entries {
		if m.cmp(e.Key, key) == 0 {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.entries)
}

// Each iterates entries in ascending key order, equal to CBOR emission
// order.
func (m *OrderedMap[K, V]) Each(f func(key K, value V)) {
	m.Freeze()
	for _, e := range m.entries {
		f(e.Key, e.Value)
	}
}

// Keys returns the keys in ascending order.
func (m *OrderedMap[K, V]) Keys() []K {
	m.Freeze()
	keys := make([]K, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}
