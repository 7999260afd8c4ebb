package markit

import "sort"

// Pair is a single key-value entry of a [Map].
type Pair struct {
	Key   string
	Value any
}

// Map is a string-keyed associative collection that preserves insertion
// order. Native Go maps iterate in randomized order, which is useless for
// reproducible documents; ordered data is carried as a Map instead.
//
// The zero value is ready to use. A Map is not safe for concurrent use.
type Map struct {
	pairs []Pair
	index map[string]int
}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{}
}

// MapOf creates an ordered map from pairs, keeping first-write order when
// keys repeat.
func MapOf(pairs ...Pair) *Map {
	m := NewMap()
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Set adds key with value, or replaces the value in place when key already
// exists. The original insertion position is kept on replacement.
func (m *Map) Set(key string, value any) *Map {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[key]; ok {
		m.pairs[i].Value = value
		return m
	}
	m.index[key] = len(m.pairs)
	m.pairs = append(m.pairs, Pair{Key: key, Value: value})
	return m
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil || m.index == nil {
		return nil, false
	}
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.pairs[i].Value, true
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if m == nil || m.index == nil {
		return false
	}
	i, ok := m.index[key]
	if !ok {
		return false
	}
	m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
	delete(m.index, key)
	for k, j := range m.index {
		if j > i {
			m.index[k] = j - 1
		}
	}
	return true
}

// Len returns the number of entries. Safe on a nil Map.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns a copy of the entries in insertion order.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, len(m.pairs))
	copy(out, m.pairs)
	return out
}

// SortedPairs returns a copy of the entries sorted by key.
func (m *Map) SortedPairs() []Pair {
	out := m.Pairs()
	sortPairs(out)
	return out
}

// Clone returns an independent copy preserving insertion order. Values are
// copied shallowly. Clone on a nil Map returns an empty Map.
func (m *Map) Clone() *Map {
	out := NewMap()
	if m == nil {
		return out
	}
	for _, p := range m.pairs {
		out.Set(p.Key, p.Value)
	}
	return out
}

// sortPairs orders pairs by key, keeping relative order of equal keys.
func sortPairs(pairs []Pair) {
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
}
