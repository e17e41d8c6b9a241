package swiss

import "testing"

func TestCapacityForBoundaries(t *testing.T) {
	cases := []struct {
		min  int
		want uint64
	}{
		{-100, 32}, // B1: min_capacity in [-inf, 32] yields 32
		{-1, 32},
		{0, 32},
		{32, 32},
		{33, 64}, // B2: (2^n, 2^(n+1)] for n=5 yields 64
		{64, 64},
		{65, 128},
		{200, 256},
	}
	for _, c := range cases {
		got := capacityFor(c.min)
		if got != c.want {
			t.Errorf("capacityFor(%d) = %d, want %d", c.min, got, c.want)
		}
		if got&(got-1) != 0 {
			t.Errorf("capacityFor(%d) = %d is not a power of two", c.min, got)
		}
		if got%groupSize != 0 {
			t.Errorf("capacityFor(%d) = %d is not a multiple of groupSize", c.min, got)
		}
	}
}

func TestGroupCountFor(t *testing.T) {
	if got := groupCountFor(32); got != 1 {
		t.Fatalf("groupCountFor(32) = %d, want 1", got)
	}
	if got := groupCountFor(256); got != 8 {
		t.Fatalf("groupCountFor(256) = %d, want 8", got)
	}
}

func TestFootprintGrowsWithCapacity(t *testing.T) {
	small := Footprint[int, int](32)
	large := Footprint[int, int](64)
	if large <= small {
		t.Fatalf("Footprint(64) = %d should exceed Footprint(32) = %d", large, small)
	}
}
