// Package simd provides the block equality kernel behind the vectorized scan.
//
// # Supported Platforms
//
//   - x86-64: AVX-512, AVX2
//   - ARM64: NEON, SVE2
//
// Runtime CPU feature detection reports the vector ISA for diagnostics.
// The kernels themselves are portable Go. On 64-bit platforms the SWAR
// kernel is used: eight int32 lanes are packed two per 64-bit word and
// tested for equality with a zero-lane mask, which mirrors a 256-bit
// compare followed by a movemask. Elsewhere a lane-by-lane generic kernel
// is used. Build with -tags noasm, or set SIMDBMK_SIMD=generic, to force
// the generic kernel.
//
// # Operations
//
//   - AnyEqual8: does any lane of an 8-lane block equal a broadcast value
//   - Aligned: is a slice's first element on a VectorBytes boundary
//
// Both kernels return identical answers for every input.
package simd
