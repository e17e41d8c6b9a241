// Command swissbench benchmarks this module's swisstable.Map against the
// builtin map and two other Swiss-table implementations, using the same
// flag-driven configuration and testing.Benchmark-based reporting style.
package main

import (
	"flag"
	"fmt"

	cockroach "github.com/cockroachdb/swiss"
	dolthub "github.com/dolthub/swiss"

	"github.com/egonelbre/swisstable"
)

func main() {
	var (
		seed, size uint64
		mapType    string
		keyType    string
		valueType  string
	)
	flag.Uint64Var(&seed, "seed", 1234, "Seed value for random generator")
	flag.Uint64Var(&size, "dataset-size", 1_000_000, "Number of elements in the dataset")
	flag.StringVar(&mapType, "map-type", "swiss", "std/swiss/cockroach/dolthub")
	flag.StringVar(&keyType, "key-type", "int", "ignored: keys are always int")
	flag.StringVar(&valueType, "value-type", "int", "ignored: values are always int")
	flag.Parse()

	build := func() Map[int, int] { return NewSwissMap[int, int]() }
	switch mapType {
	case "std":
		build = func() Map[int, int] { return NewStdMap[int, int]() }
	case "cockroach":
		build = func() Map[int, int] { return NewCockroachMap[int, int]() }
	case "dolthub":
		build = func() Map[int, int] { return NewDolthubMap[int, int]() }
	}
	b := New[int, int](size, seed, build)

	fmt.Println("Running Map Benchmarks")

	b.Run()
}

// Map is the adapter interface every candidate implementation below is
// wrapped to satisfy, so Bench can drive any of them identically.
type Map[K comparable, V any] interface {
	Get(K) (V, bool)
	Set(K, V)
	Delete(K)
}

type StdMap[K comparable, V any] struct {
	data map[K]V
}

func NewStdMap[K comparable, V any]() *StdMap[K, V] {
	return &StdMap[K, V]{data: make(map[K]V)}
}

func (m *StdMap[K, V]) Get(key K) (V, bool) {
	value, ok := m.data[key]
	return value, ok
}

func (m *StdMap[K, V]) Set(key K, value V) {
	m.data[key] = value
}

func (m *StdMap[K, V]) Delete(key K) {
	delete(m.data, key)
}

// SwissMap adapts this module's own swisstable.Map to the Map interface.
type SwissMap[K comparable, V any] struct {
	data *swisstable.Map[K, V]
}

func NewSwissMap[K comparable, V any]() *SwissMap[K, V] {
	return &SwissMap[K, V]{data: swisstable.New[K, V](0)}
}

func (m *SwissMap[K, V]) Get(key K) (V, bool) {
	return m.data.Get(key)
}

func (m *SwissMap[K, V]) Set(key K, value V) {
	m.data.Put(key, value)
}

func (m *SwissMap[K, V]) Delete(key K) {
	m.data.Delete(key)
}

type Cockroach[K comparable, V any] struct {
	data *cockroach.Map[K, V]
}

func NewCockroachMap[K comparable, V any]() *Cockroach[K, V] {
	return &Cockroach[K, V]{data: cockroach.New[K, V](0)}
}

func (m *Cockroach[K, V]) Get(key K) (V, bool) {
	value, ok := m.data.Get(key)
	return value, ok
}

func (m *Cockroach[K, V]) Set(key K, value V) {
	m.data.Put(key, value)
}

func (m *Cockroach[K, V]) Delete(key K) {
	m.data.Delete(key)
}

type Dolthub[K comparable, V any] struct {
	data *dolthub.Map[K, V]
}

func NewDolthubMap[K comparable, V any]() *Dolthub[K, V] {
	return &Dolthub[K, V]{data: dolthub.NewMap[K, V](0)}
}

func (m *Dolthub[K, V]) Get(key K) (V, bool) {
	value, ok := m.data.Get(key)
	return value, ok
}

func (m *Dolthub[K, V]) Set(key K, value V) {
	m.data.Put(key, value)
}

func (m *Dolthub[K, V]) Delete(key K) {
	m.data.Delete(key)
}
