// Package array supplies the input arrays searched by simdbmk.
//
// Arrays returned by this package start on a simd.VectorBytes boundary so
// the vectorized scanner can read them block by block from index 0.
package array

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"unsafe"

	"github.com/elafarge/simd-benchmarking/internal/simd"
)

// ErrInvalidBounds is returned when the lower bound exceeds the upper bound.
var ErrInvalidBounds = errors.New("array: min greater than max")

// Aligned allocates a zeroed []int32 of length n whose first element is
// simd.VectorBytes aligned.
//
// The Go allocator never moves heap objects, so the alignment holds for
// the lifetime of the slice.
func Aligned(n int) []int32 {
	if n < 0 {
		panic(fmt.Sprintf("array: negative length %d", n))
	}
	if n == 0 {
		return []int32{}
	}

	const lanes = simd.VectorBytes / 4
	buf := make([]int32, n+lanes)

	off := 0
	if r := uintptr(unsafe.Pointer(&buf[0])) % simd.VectorBytes; r != 0 {
		off = int((simd.VectorBytes - r) / 4)
	}
	return buf[off : off+n : off+n]
}

// From copies values into a freshly allocated aligned array.
func From(values []int32) []int32 {
	out := Aligned(len(values))
	copy(out, values)
	return out
}

// IsAligned reports whether &arr[i] is simd.VectorBytes aligned.
// An index at or past the end is reported aligned.
func IsAligned(arr []int32, i int) bool {
	if i >= len(arr) {
		return true
	}
	return simd.Aligned(arr[i:])
}

// Generate returns an aligned array of n uniform random integers in
// [lo, hi], drawn from a source seeded with seed.
func Generate(n int, lo, hi int32, seed int64) ([]int32, error) {
	if lo > hi {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidBounds, lo, hi)
	}
	if n < 0 {
		return nil, fmt.Errorf("array: negative size %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	span := int64(hi) - int64(lo) + 1

	out := Aligned(n)
	for i := range out {
		out[i] = int32(int64(lo) + rng.Int63n(span))
	}
	return out, nil
}

// Format renders arr as "[a, b, c]". When limit > 0 and arr is longer,
// only the first limit elements are written followed by the elided count.
func Format(arr []int32, limit int) string {
	n := len(arr)
	if limit > 0 && n > limit {
		n = limit
	}

	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatInt(int64(arr[i]), 10))
	}
	if n < len(arr) {
		fmt.Fprintf(&sb, ", ... (%d more)", len(arr)-n)
	}
	sb.WriteByte(']')
	return sb.String()
}
