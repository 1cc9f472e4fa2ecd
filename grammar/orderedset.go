package grammar

import "github.com/emirpasic/gods/sets/treeset"

// stringSet is a deterministically-ordered set of strings (production names,
// literal bodies, lookahead characters), backed by emirpasic/gods's
// red-black-tree Set. Plain Go maps would make the iteration order of
// reachable sets, FIRST sets and the literal catalogue (and therefore
// diagnostic and emission output order) depend on map randomization; a
// sorted set keeps every run of the compiler byte-for-byte reproducible.
type stringSet struct {
	s *treeset.Set
}

func newStringSet(items ...string) *stringSet {
	s := treeset.NewWithStringComparator()
	for _, it := range items {
		s.Add(it)
	}
	return &stringSet{s: s}
}

// Add reports whether v was newly added (false if already present).
func (ss *stringSet) Add(v string) bool {
	if ss.s.Contains(v) {
		return false
	}
	ss.s.Add(v)
	return true
}

func (ss *stringSet) Remove(v string) {
	ss.s.Remove(v)
}

func (ss *stringSet) Contains(v string) bool {
	return ss.s.Contains(v)
}

func (ss *stringSet) Len() int {
	return ss.s.Size()
}

// Values returns the set's members in sorted order.
func (ss *stringSet) Values() []string {
	raw := ss.s.Values()
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = v.(string)
	}
	return out
}

func (ss *stringSet) AsMap() map[string]bool {
	m := make(map[string]bool, ss.Len())
	for _, v := range ss.Values() {
		m[v] = true
	}
	return m
}
