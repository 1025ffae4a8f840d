// Package index holds the bookkeeping structures the event manager keeps in
// lockstep: the listener set, the listener-type index, the listener-to-handler
// index and the per-event-type handler queues.
//
// None of the types here are safe for concurrent use; the manager serializes
// access to them. Every method that returns a collection returns a copy.
package index

// Multimap maps a key to a set of values. A key whose set becomes empty is
// dropped, so Keys never reports an empty set.
type Multimap[K, V comparable] struct {
	sets map[K]map[V]struct{}
	// order keeps values in insertion order per key, so reads are deterministic.
	order map[K][]V
}

// NewMultimap returns an empty multimap.
func NewMultimap[K, V comparable]() *Multimap[K, V] {
	return &Multimap[K, V]{
		sets:  make(map[K]map[V]struct{}),
		order: make(map[K][]V),
	}
}

// Add associates v with k and reports whether the pair was new.
func (m *Multimap[K, V]) Add(k K, v V) bool {
	set, ok := m.sets[k]
	if !ok {
		set = make(map[V]struct{})
		m.sets[k] = set
	}
	if _, dup := set[v]; dup {
		return false
	}
	set[v] = struct{}{}
	m.order[k] = append(m.order[k], v)
	return true
}

// Remove dissociates v from k and reports whether the pair was present.
func (m *Multimap[K, V]) Remove(k K, v V) bool {
	set, ok := m.sets[k]
	if !ok {
		return false
	}
	if _, ok := set[v]; !ok {
		return false
	}
	delete(set, v)
	if len(set) == 0 {
		delete(m.sets, k)
		delete(m.order, k)
		return true
	}
	vs := m.order[k]
	for i, x := range vs {
		if x == v {
			m.order[k] = append(vs[:i:i], vs[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether v is associated with k.
func (m *Multimap[K, V]) Contains(k K, v V) bool {
	_, ok := m.sets[k][v]
	return ok
}

// ContainsKey reports whether k has at least one value.
func (m *Multimap[K, V]) ContainsKey(k K) bool {
	_, ok := m.sets[k]
	return ok
}

// Get returns a copy of k's values in insertion order.
func (m *Multimap[K, V]) Get(k K) []V {
	vs := m.order[k]
	if len(vs) == 0 {
		return nil
	}
	out := make([]V, len(vs))
	copy(out, vs)
	return out
}

// Keys returns every key with at least one value, in no particular order.
func (m *Multimap[K, V]) Keys() []K {
	out := make([]K, 0, len(m.sets))
	for k := range m.sets {
		out = append(out, k)
	}
	return out
}

// Len returns the total number of key/value pairs.
func (m *Multimap[K, V]) Len() int {
	n := 0
	for _, set := range m.sets {
		n += len(set)
	}
	return n
}

// LenFor returns the number of values associated with k.
func (m *Multimap[K, V]) LenFor(k K) int { return len(m.sets[k]) }

// KeyCount returns the number of keys.
func (m *Multimap[K, V]) KeyCount() int { return len(m.sets) }

// IsEmpty reports whether the multimap holds no pairs.
func (m *Multimap[K, V]) IsEmpty() bool { return len(m.sets) == 0 }

// ClearFor drops k and all its values, reporting whether k was present.
func (m *Multimap[K, V]) ClearFor(k K) bool {
	if _, ok := m.sets[k]; !ok {
		return false
	}
	delete(m.sets, k)
	delete(m.order, k)
	return true
}

// Clear drops every pair.
func (m *Multimap[K, V]) Clear() {
	clear(m.sets)
	clear(m.order)
}
