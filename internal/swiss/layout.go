package swiss

import "unsafe"

// groupSize is the number of control bytes (and slots) scanned together by
// one probe. This is the width the portable group probe in group.go
// emulates; a real 256-bit SIMD probe would also use 32 here. Group size
// must match whatever the probe in group.go actually scans.
const groupSize = 32

// minCapacity is the smallest capacity a table may have: one full group.
const minCapacity = groupSize

// loadFactorNum/loadFactorDen bound the fraction of slots a table is
// allowed to fill before insert proactively grows it, independent of
// per-group saturation. 7/8 matches the ratio github.com/crn4/swiss uses
// for its own load factor (grpload=7, grpssz=8).
const (
	loadFactorNum = 7
	loadFactorDen = 8
)

// groupCountFor returns the number of groups needed for capacity slots.
// capacity must already be a power of two multiple of groupSize.
func groupCountFor(capacity uint64) uint64 {
	return capacity / groupSize
}

// capacityFor returns the smallest power-of-two capacity, a multiple of
// groupSize, that is >= max(minCap, groupSize).
func capacityFor(minCap int) uint64 {
	if minCap < minCapacity {
		return minCapacity
	}
	c := uint64(minCap)
	// round up to a multiple of groupSize first...
	if rem := c % groupSize; rem != 0 {
		c += groupSize - rem
	}
	// ...then up to a power of two.
	return nextPow2(c)
}

func nextPow2(n uint64) uint64 {
	if n&(n-1) == 0 {
		return n
	}
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Footprint reports the number of bytes a literal, hand-laid-out buffer
// (header + capacity control bytes + alignment padding + capacity
// entries) would occupy for a table of the given capacity, holding keys
// of type K and values of type V. This is informational/diagnostic only:
// it is not used to size the actual allocation, which is one
// make([]group[K,V], n) call (see storage.go).
func Footprint[K comparable, V any](capacity uint64) uintptr {
	var e entry[K, V]
	entrySize := unsafe.Sizeof(e)
	entryAlign := unsafe.Alignof(e)

	const headerSize = unsafe.Sizeof(uint64(0)) // capacity field

	controlRegion := uintptr(capacity) // one control byte per slot

	afterControl := headerSize + controlRegion
	pad := uintptr(0)
	if rem := afterControl % entryAlign; rem != 0 {
		pad = entryAlign - rem
	}

	return headerSize + controlRegion + pad + entrySize*uintptr(capacity)
}
