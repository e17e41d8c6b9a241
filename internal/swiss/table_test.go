package swiss

import (
	"testing"

	"pgregory.net/rand"
)

// mix is a 64-bit finalizer (splitmix64), used by these tests to turn an
// int key into a well-dispersed hash. The fingerprint needs the hash's
// high bits to be well mixed; this is the test-side stand-in for
// whatever hash function a real outer layer would supply (the core
// itself never computes one).
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

func hashInt(k int) uint64 {
	return mix(uint64(k))
}

// S1: empty construction.
func TestConstructEmpty(t *testing.T) {
	tb := New[int, int](0)
	if tb.Capacity() != 32 {
		t.Fatalf("capacity = %d, want 32", tb.Capacity())
	}
	if tb.Count() != 0 {
		t.Fatalf("count = %d, want 0", tb.Count())
	}
	if _, ok := tb.Lookup(1, hashInt(1)); ok {
		t.Fatalf("lookup on empty table found a key")
	}
}

// S2: single insert/delete.
func TestInsertLookupDelete(t *testing.T) {
	tb := New[int, int](0)
	tb.InsertOrUpdate(1, hashInt(1), 2)

	if v, ok := tb.Lookup(1, hashInt(1)); !ok || v != 2 {
		t.Fatalf("lookup(1) = (%v, %v), want (2, true)", v, ok)
	}
	if tb.Count() != 1 {
		t.Fatalf("count = %d, want 1", tb.Count())
	}

	tb.Remove(1, hashInt(1))
	if _, ok := tb.Lookup(1, hashInt(1)); ok {
		t.Fatalf("lookup(1) found a value after remove")
	}
	if tb.Count() != 0 {
		t.Fatalf("count = %d, want 0 after remove", tb.Count())
	}
}

// S3: dense integer insert.
func TestDenseIntegerInsert(t *testing.T) {
	tb := New[int, int](0)
	const n = 1000
	for i := 0; i < n; i++ {
		tb.InsertOrUpdate(i, hashInt(i), i)
	}
	if tb.Count() != n {
		t.Fatalf("count = %d, want %d", tb.Count(), n)
	}
	for i := 0; i < n; i++ {
		v, ok := tb.Lookup(i, hashInt(i))
		if !ok || v != i {
			t.Fatalf("lookup(%d) = (%v, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

// P6: remove then reinsert restores count.
func TestRemoveReinsertPreservesCount(t *testing.T) {
	tb := New[int, int](0)
	for i := 0; i < 50; i++ {
		tb.InsertOrUpdate(i, hashInt(i), i)
	}
	before := tb.Count()

	tb.Remove(10, hashInt(10))
	tb.InsertOrUpdate(10, hashInt(10), 999)

	if tb.Count() != before {
		t.Fatalf("count = %d, want %d", tb.Count(), before)
	}
	if v, ok := tb.Lookup(10, hashInt(10)); !ok || v != 999 {
		t.Fatalf("lookup(10) = (%v, %v), want (999, true)", v, ok)
	}
}

// P9: lookup is pure.
func TestLookupIsPure(t *testing.T) {
	tb := New[int, int](0)
	tb.InsertOrUpdate(7, hashInt(7), 70)

	v1, ok1 := tb.Lookup(7, hashInt(7))
	v2, ok2 := tb.Lookup(7, hashInt(7))
	if v1 != v2 || ok1 != ok2 {
		t.Fatalf("consecutive lookups disagreed: (%v,%v) vs (%v,%v)", v1, ok1, v2, ok2)
	}
}

// S5: shared-buffer fork via Clone.
func TestCloneIsolatesMutation(t *testing.T) {
	a := New[int, int](0)
	a.InsertOrUpdate(1, hashInt(1), 100)

	b := a.Clone()
	b.InsertOrUpdate(2, hashInt(2), 200)

	if _, ok := a.Lookup(2, hashInt(2)); ok {
		t.Fatalf("insert into clone b leaked into a")
	}
	if v, ok := b.Lookup(1, hashInt(1)); !ok || v != 100 {
		t.Fatalf("clone b lost a's original entry: (%v, %v)", v, ok)
	}
	if v, ok := b.Lookup(2, hashInt(2)); !ok || v != 200 {
		t.Fatalf("clone b's own insert didn't take: (%v, %v)", v, ok)
	}

	// Mutating a afterward must not affect b either.
	a.InsertOrUpdate(3, hashInt(3), 300)
	if _, ok := b.Lookup(3, hashInt(3)); ok {
		t.Fatalf("insert into a leaked into clone b")
	}
}

// P1/P3: count and capacity invariants across growth.
func TestGrowthMonotonicityAndCount(t *testing.T) {
	tb := New[int, int](0)
	prevCap := tb.Capacity()
	for i := 0; i < 5000; i++ {
		tb.InsertOrUpdate(i, hashInt(i), i*2)

		cap := tb.Capacity()
		if cap < prevCap {
			t.Fatalf("capacity decreased: %d -> %d", prevCap, cap)
		}
		if cap&(cap-1) != 0 {
			t.Fatalf("capacity %d is not a power of two", cap)
		}
		prevCap = cap

		if tb.Count() != i+1 {
			t.Fatalf("count = %d, want %d", tb.Count(), i+1)
		}
	}
	for i := 0; i < 5000; i++ {
		v, ok := tb.Lookup(i, hashInt(i))
		if !ok || v != i*2 {
			t.Fatalf("lookup(%d) = (%v, %v), want (%d, true)", i, v, ok, i*2)
		}
	}
}

// S4/S6: random operation sequences cross-checked against a map oracle,
// seeded with pgregory.net/rand the same way cmd/swissbench seeds its
// datasets, so a failure is reproducible.
func TestRandomOperationsMatchOracle(t *testing.T) {
	r := rand.New(1234)
	tb := New[int, int](0)
	oracle := make(map[int]int)

	const keySpace = 64
	for step := 0; step < 20000; step++ {
		k := r.Intn(keySpace)
		op := r.Intn(3)
		switch op {
		case 0, 1: // insert/update biased 2:1 over delete
			v := r.Int()
			tb.InsertOrUpdate(k, hashInt(k), v)
			oracle[k] = v
		case 2:
			tb.Remove(k, hashInt(k))
			delete(oracle, k)
		}

		if tb.Count() != len(oracle) {
			t.Fatalf("step %d: count = %d, want %d (oracle)", step, tb.Count(), len(oracle))
		}
		gotV, gotOK := tb.Lookup(k, hashInt(k))
		wantV, wantOK := oracle[k]
		if gotOK != wantOK || (wantOK && gotV != wantV) {
			t.Fatalf("step %d: lookup(%d) = (%v,%v), want (%v,%v)", step, k, gotV, gotOK, wantV, wantOK)
		}
	}

	for k, wantV := range oracle {
		gotV, ok := tb.Lookup(k, hashInt(k))
		if !ok || gotV != wantV {
			t.Fatalf("final lookup(%d) = (%v,%v), want (%v,true)", k, gotV, ok, wantV)
		}
	}
}

// P2: every occupied slot's control byte matches its hash's fingerprint
// and group, checked directly against storage internals.
func TestControlByteInvariant(t *testing.T) {
	tb := New[int, int](0)
	for i := 0; i < 2000; i++ {
		tb.InsertOrUpdate(i, hashInt(i), i)
	}

	groups := tb.storage.groups
	gc := uint64(len(groups))
	seen := 0
	for gi := range groups {
		g := &groups[gi]
		for i := 0; i < groupSize; i++ {
			if g.ctrl[i] == -1 {
				continue
			}
			seen++
			e := g.entries[i]
			wantFp := fingerprint(e.hash)
			if g.ctrl[i] != wantFp {
				t.Fatalf("group %d slot %d: ctrl = %d, want fingerprint %d", gi, i, g.ctrl[i], wantFp)
			}
			wantGroup := groupIndex(e.hash, gc)
			if uint64(gi) != wantGroup {
				t.Fatalf("entry with hash %x stored in group %d, want group %d", e.hash, gi, wantGroup)
			}
		}
	}
	if seen != tb.Count() {
		t.Fatalf("counted %d occupied control bytes, table reports count %d", seen, tb.Count())
	}
}

// P8: iteration visits each occupied slot exactly once, and the set of
// yielded keys matches what's actually stored.
func TestAllVisitsEveryOccupiedSlotOnce(t *testing.T) {
	tb := New[int, int](0)
	want := make(map[int]int)
	for i := 0; i < 300; i++ {
		tb.InsertOrUpdate(i, hashInt(i), i*10)
		want[i] = i * 10
	}
	for i := 0; i < 300; i += 3 {
		tb.Remove(i, hashInt(i))
		delete(want, i)
	}

	got := make(map[int]int)
	count := 0
	for k, v := range tb.All() {
		if _, dup := got[k]; dup {
			t.Fatalf("key %d yielded more than once", k)
		}
		got[k] = v
		count++
	}
	if count != tb.Count() {
		t.Fatalf("All() yielded %d pairs, table count is %d", count, tb.Count())
	}
	if len(got) != len(want) {
		t.Fatalf("All() yielded %d distinct keys, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("All() gave key %d value %d, want %d", k, got[k], v)
		}
	}
}
