package swiss

// Table is the Swiss table engine: a handle over a possibly shared
// storage buffer. Table behaves like a value type — Clone is
// cheap (no entries are copied) and mutating a clone never affects the
// original — by forking storage on first write after a Clone.
//
// Table never hashes a key and never compares keys itself beyond Go's
// built-in == for the comparable constraint; the hash is always supplied
// by the caller.
type Table[K comparable, V any] struct {
	storage *storage[K, V]
	count   int
}

// New constructs a handle whose capacity is the smallest power of two
// >= max(minCapacity, 32).
func New[K comparable, V any](minCapacity int) *Table[K, V] {
	cap := capacityFor(minCapacity)
	return &Table[K, V]{storage: newStorage[K, V](cap)}
}

// Count returns the number of occupied slots.
func (t *Table[K, V]) Count() int {
	return t.count
}

// Capacity returns the current number of slots (groupCount * groupSize).
func (t *Table[K, V]) Capacity() uint64 {
	return t.storage.capacity()
}

// Lookup returns the value stored for key under hash h, and whether it
// was found. Lookup never probes beyond the hash's home group: a key
// that would overflow its group is guaranteed (by InsertOrUpdate) to have
// triggered a rehash instead of spilling into a neighbor.
func (t *Table[K, V]) Lookup(key K, h uint64) (V, bool) {
	groups := t.storage.groups
	gi := groupIndex(h, uint64(len(groups)))
	g := &groups[gi]
	fp := fingerprint(h)

	m := match(&g.ctrl, fp)
	for m != 0 {
		i := m.first()
		if g.entries[i].key == key {
			return g.entries[i].value, true
		}
		m = m.next()
	}

	var zero V
	return zero, false
}

// InsertOrUpdate inserts key/value under hash h, overwriting any existing
// entry for key. It first consults the copy-on-write gate. An overwrite
// of an already-present key never grows the table — only once the key is
// confirmed absent does the preemptive load-factor check run, since an
// overwrite never adds an occupied slot and so can never push the table
// over its load factor. It then retries the insert against the
// (possibly forked, possibly grown) storage until it succeeds.
func (t *Table[K, V]) InsertOrUpdate(key K, h uint64, value V) {
	t.ensureUnique()

	if t.updateIfPresent(key, h, value) {
		return
	}

	t.maybeGrowForLoad()
	for {
		if t.insertNew(key, h, value) {
			return
		}
		t.grow(t.storage.capacity() * 2)
	}
}

// updateIfPresent overwrites key's entry in place if it is already
// present in its home group, without touching count or growing.
func (t *Table[K, V]) updateIfPresent(key K, h uint64, value V) bool {
	groups := t.storage.groups
	gi := groupIndex(h, uint64(len(groups)))
	g := &groups[gi]
	fp := fingerprint(h)

	m := match(&g.ctrl, fp)
	for m != 0 {
		i := m.first()
		if g.entries[i].key == key {
			g.entries[i] = entry[K, V]{hash: h, key: key, value: value}
			return true
		}
		m = m.next()
	}
	return false
}

// insertNew writes key/value into the first empty slot of key's home
// group, assuming the caller has already established key is absent. It
// returns false when the group is saturated (all groupSize slots
// occupied), signaling the caller to grow and retry.
func (t *Table[K, V]) insertNew(key K, h uint64, value V) bool {
	groups := t.storage.groups
	gi := groupIndex(h, uint64(len(groups)))
	g := &groups[gi]
	fp := fingerprint(h)

	empty := empties(&g.ctrl)
	if empty == 0 {
		return false
	}
	i := empty.first()
	g.entries[i] = entry[K, V]{hash: h, key: key, value: value}
	g.ctrl[i] = fp
	t.count++
	return true
}

// Remove deletes key under hash h if present; a no-op otherwise. No
// tombstone is written: single-group probing makes tombstones
// unnecessary, so the slot goes directly back to EMPTY.
func (t *Table[K, V]) Remove(key K, h uint64) {
	t.ensureUnique()

	groups := t.storage.groups
	gi := groupIndex(h, uint64(len(groups)))
	g := &groups[gi]
	fp := fingerprint(h)

	m := match(&g.ctrl, fp)
	for m != 0 {
		i := m.first()
		if g.entries[i].key == key {
			g.ctrl[i] = -1
			g.entries[i] = entry[K, V]{}
			t.count--
			return
		}
		m = m.next()
	}
}

// Clone returns a handle sharing this Table's storage. No entries are
// copied; the first mutation on either handle forks a private copy.
func (t *Table[K, V]) Clone() *Table[K, V] {
	t.storage.shared.Store(true)
	return &Table[K, V]{storage: t.storage, count: t.count}
}

// ensureUnique is the copy-on-write gate: before any mutation, fork a
// private storage if the current one might be shared.
func (t *Table[K, V]) ensureUnique() {
	if t.storage.shared.Load() {
		t.fork()
	}
}

// maybeGrowForLoad grows preemptively at load factor >= 7/8, ahead of
// any single group actually saturating. github.com/crn4/swiss uses the
// same 7/8 ratio (grpload=7, grpssz=8). Called only once InsertOrUpdate
// has confirmed the key is genuinely new, so a run of pure updates on an
// already-full table never grows it.
func (t *Table[K, V]) maybeGrowForLoad() {
	cap := t.storage.capacity()
	if uint64(t.count+1)*loadFactorDen > cap*loadFactorNum {
		t.grow(cap * 2)
	}
}
