package swiss

// grow replaces t.storage with a fresh buffer of at least newCapacity
// slots and reinserts every occupied entry, recomputing each one's
// destination group under the new group count from its stored hash (the
// hash is reused, never recomputed from the key).
//
// If a destination group saturates during the copy (expected occupancy
// after one doubling is ~16/32, so this is extraordinarily unlikely but
// not impossible), the buffer is discarded and a larger one tried,
// rather than assuming one doubling always suffices.
func (t *Table[K, V]) grow(newCapacity uint64) {
	for {
		next := newStorage[K, V](newCapacity)
		if migrateInto(next, t.storage) {
			t.storage = next
			return
		}
		newCapacity *= 2
	}
}

// fork is the copy-on-write path: migrate into a buffer of the *current*
// capacity (no doubling), then the caller holds the sole reference and
// is free to mutate.
func (t *Table[K, V]) fork() {
	t.grow(t.storage.capacity())
}

// migrateInto copies every occupied entry of src into dst, installing
// each into the first empty slot of its recomputed destination group, in
// ascending intra-group order of the source group's nonEmpties bitmask
// (an implementation detail, not a visible guarantee). Returns false if
// some destination group saturated mid-copy, in which case dst must be
// discarded and a larger capacity tried.
func migrateInto[K comparable, V any](dst, src *storage[K, V]) bool {
	dstGroupCount := dst.groupCount()

	for gi := range src.groups {
		g := &src.groups[gi]
		m := nonEmpties(&g.ctrl)
		for m != 0 {
			i := m.first()
			m = m.next()
			e := g.entries[i]

			dgi := groupIndex(e.hash, dstGroupCount)
			dg := &dst.groups[dgi]

			empty := empties(&dg.ctrl)
			if empty == 0 {
				return false
			}
			di := empty.first()
			dg.entries[di] = e
			dg.ctrl[di] = fingerprint(e.hash)
		}
	}
	return true
}
