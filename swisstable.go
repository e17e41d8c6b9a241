// Package swisstable is a Swiss-table associative container: an
// open-addressed hash map whose control-byte metadata layout lets one
// group of 32 slots be probed with a handful of vector-style operations
// (see internal/swiss for the engine itself).
//
// Map is a thin outer layer that supplies the hash function and the
// literal/bulk-construction convenience over internal/swiss.Table, which
// never hashes a key itself.
package swisstable

import (
	"iter"
	"math/rand/v2"

	"github.com/egonelbre/swisstable/internal/keyhash"
	"github.com/egonelbre/swisstable/internal/swiss"
)

// Map is an associative container from K to V. The zero value is not
// usable; construct one with New or Of.
//
// Map behaves like a value type: Clone returns a handle that shares
// storage with the receiver until one of them is mutated, at which point
// the mutator forks a private copy. Plain Go assignment (m2 := m1) also
// copies the handle, but — unlike Clone — does not mark the storage as
// shared, so prefer Clone when you intend to keep both handles around
// and mutate either of them.
type Map[K comparable, V any] struct {
	table *swiss.Table[K, V]
	hash  keyhash.Func
	seed  uintptr
}

// New constructs a Map whose capacity is the smallest power of two
// >= max(minCapacity, 32).
func New[K comparable, V any](minCapacity int) *Map[K, V] {
	return &Map[K, V]{
		table: swiss.New[K, V](minCapacity),
		hash:  keyhash.For[K](),
		seed:  uintptr(rand.Uint64()),
	}
}

// Of builds a Map from a sequence of key/value pairs: a thin wrapper
// over Put.
func Of[K comparable, V any](pairs ...KV[K, V]) *Map[K, V] {
	m := New[K, V](len(pairs))
	for _, p := range pairs {
		m.Put(p.Key, p.Value)
	}
	return m
}

// KV is one key/value pair, used by Of for literal construction.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

func (m *Map[K, V]) hashOf(key K) uint64 {
	return keyhash.Of(m.hash, key, m.seed)
}

// Get returns the value stored for key, and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.table.Lookup(key, m.hashOf(key))
}

// Put inserts or updates the value stored for key.
func (m *Map[K, V]) Put(key K, value V) {
	m.table.InsertOrUpdate(key, m.hashOf(key), value)
}

// Delete removes key if present; it is a no-op otherwise.
func (m *Map[K, V]) Delete(key K) {
	m.table.Remove(key, m.hashOf(key))
}

// Len returns the number of entries currently stored.
func (m *Map[K, V]) Len() int {
	return m.table.Count()
}

// Cap returns the current number of slots.
func (m *Map[K, V]) Cap() uint64 {
	return m.table.Capacity()
}

// All ranges over every stored (key, value) pair in physical slot order,
// which is not key order and not stable across mutation.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.table.All()
}

// Clone returns a handle sharing this Map's storage until one of the two
// is mutated.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		table: m.table.Clone(),
		hash:  m.hash,
		seed:  m.seed,
	}
}
