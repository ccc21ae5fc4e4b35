package testutil

import (
	"math/rand"
	"sync"

	"github.com/elafarge/simd-benchmarking/array"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int32s returns an aligned array of n values uniform in [lo, hi].
func (r *RNG) Int32s(n int, lo, hi int32) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	span := int64(hi) - int64(lo) + 1
	out := array.Aligned(n)
	for i := range out {
		out[i] = int32(int64(lo) + r.rand.Int63n(span))
	}
	return out
}

// Sparse returns an aligned array of n values where roughly one element in
// every stride equals hit and the rest differ from it.
func (r *RNG) Sparse(n, stride int, hit int32) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := array.Aligned(n)
	for i := range out {
		if r.rand.Intn(stride) == 0 {
			out[i] = hit
			continue
		}
		out[i] = hit + 1 + int32(r.rand.Intn(1000))
	}
	return out
}

// Pick returns a random element of arr, or 0 for an empty array.
func (r *RNG) Pick(arr []int32) int32 {
	if len(arr) == 0 {
		return 0
	}
	return arr[r.Intn(len(arr))]
}

// ReferenceFind is the naive search every other path must agree with.
func ReferenceFind(arr []int32, start, end, step int, value int32) []int {
	out := []int{}
	for i := start; i < end; i += step {
		if arr[i] == value {
			out = append(out, i)
		}
		if step >= end-i {
			break
		}
	}
	return out
}

// IsSubset reports whether every element of sub occurs in set.
func IsSubset(sub, set []int) bool {
	m := make(map[int]struct{}, len(set))
	for _, v := range set {
		m[v] = struct{}{}
	}
	for _, v := range sub {
		if _, ok := m[v]; !ok {
			return false
		}
	}
	return true
}

// IsStrictlyIncreasing reports whether s is sorted without duplicates.
func IsStrictlyIncreasing(s []int) bool {
	for i := 1; i < len(s); i++ {
		if s[i] <= s[i-1] {
			return false
		}
	}
	return true
}
