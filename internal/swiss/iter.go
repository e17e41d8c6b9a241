package swiss

import "iter"

// All walks the control region sequentially from slot 0 upward, yielding
// the (key, value) pair at every occupied slot in physical order. It is
// not key order, and it is not guaranteed stable across any mutation;
// All operates over a snapshot of the storage reference taken when it is
// called, not when iteration actually runs, matching
// github.com/crn4/swiss's Map.All.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	s := t.storage
	return func(yield func(K, V) bool) {
		for gi := range s.groups {
			g := &s.groups[gi]
			m := nonEmpties(&g.ctrl)
			for m != 0 {
				i := m.first()
				m = m.next()
				if !yield(g.entries[i].key, g.entries[i].value) {
					return
				}
			}
		}
	}
}
