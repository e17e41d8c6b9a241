// Package keyhash supplies the 64-bit hash function collaborator the
// swiss table core consumes: the core never hashes a key itself, so
// something in the outer layer must. Adapted from
// github.com/crn4/swiss/hash, which reads
// the Go runtime's own per-type hash function out of a map type's runtime
// descriptor instead of writing (or importing) a general-purpose hasher — the same function
// the builtin map[K]V would use for K, with none of the overhead of
// reimplementing FNV/xxHash/etc. for every comparable type.
package keyhash

import "unsafe"

// Func hashes the value key points at, mixed with seed.
type Func func(key unsafe.Pointer, seed uintptr) uint64

// iface mirrors runtime.eface: the two-word representation of an
// interface{} value.
type iface struct {
	typ  *rtype
	data unsafe.Pointer
}

// mapType mirrors internal/abi.MapType's stable prefix, in particular the
// Hasher field, which is all this package needs from it.
type mapType struct {
	rtype
	Key    *rtype
	Elem   *rtype
	Bucket *rtype
	Hasher func(unsafe.Pointer, uintptr) uintptr
}

// rtype mirrors internal/abi.Type in full, not just the fields this
// package reads: mapType embeds rtype by value, so Hasher's offset
// depends on every field that precedes it, including the three after
// equal that earlier versions of this mirror dropped as "unused."
// Trimming fields that precede the one you actually read shifts every
// field after them — without those 16 bytes, Hasher would read the
// real Elem field instead. Field order and sizes follow go/src/internal/abi/type.go.
type rtype struct {
	size      uintptr
	ptrdata   uintptr
	hash      uint32
	tflag     uint8
	align     uint8
	fAlign    uint8
	kind      uint8
	equal     func(unsafe.Pointer, unsafe.Pointer) bool
	gcData    *byte
	str       int32 // nameOff
	ptrToThis int32 // typeOff
}

// For returns the hash function the runtime uses for maps keyed by K.
// This mirrors crn4/swiss/hash.GetHashFuncRnt, generalized: rather than
// special-casing a handful of builtin kinds, it always goes through the
// runtime hasher, which is defined (and correct) for every comparable K.
func For[K comparable]() Func {
	var m any = (map[K]struct{})(nil)
	hasher := (*iface)(unsafe.Pointer(&m)).typ.asMapType().Hasher

	return func(key unsafe.Pointer, seed uintptr) uint64 {
		return uint64(hasher(key, seed))
	}
}

func (t *rtype) asMapType() *mapType {
	return (*mapType)(unsafe.Pointer(t))
}

// noescape hides a pointer from escape analysis. Copied, as
// github.com/crn4/swiss/hash itself notes it copied, from the Go
// runtime (see issues 23382 and 7921); the compiler inlines it down to
// nothing.
//
//go:nosplit
//go:nocheckptr
func noescape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}

// Of hashes key with seed using fn, the function returned by For[K]().
func Of[K comparable](fn Func, key K, seed uintptr) uint64 {
	return fn(noescape(unsafe.Pointer(&key)), seed)
}
