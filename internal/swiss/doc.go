// Package swiss implements the Swiss table engine: the paired
// control/entry storage, the SIMD-style group probe, the insert/lookup/
// delete/rehash state machine, and the copy-on-write ownership discipline
// that lets Table behave like a value type.
//
// The hash of a key and equality between keys are both supplied by the
// caller. Table never hashes a key itself; it consumes a precomputed
// 64-bit hash on every call, same as the design this package is based on
// (see the Abseil Swiss table and the Go runtime's own swiss map).
package swiss
